// Package app wires the configuration, database, entity store, repositories
// dictionary client and learning log shared by the wordbook binaries.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/wordbook/internal/config"
	"github.com/at-ishikawa/wordbook/internal/database"
	"github.com/at-ishikawa/wordbook/internal/dictionary"
	"github.com/at-ishikawa/wordbook/internal/learning"
	"github.com/at-ishikawa/wordbook/internal/repository"
	"github.com/at-ishikawa/wordbook/internal/store"
)

type App struct {
	Config     *config.Config
	DB         *sqlx.DB
	Store      *store.Store
	Words      *repository.WordRepository
	Idioms     *repository.IdiomRepository
	Dictionary *dictionary.Client
	Learning   *learning.DBLearningRepository
}

// LoadConfig loads configFile, or the default locations when it is empty.
func LoadConfig(configFile string) (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// Open connects to the database, applies pending migrations and loads the
// first snapshot of every repository.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}
	if err := database.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database.Migrate() > %w", err)
	}

	s := store.New(db)
	a := &App{
		Config: cfg,
		DB:     db,
		Store:  s,
		Words:  repository.NewWordRepository(s.Words(), cfg.Store.CoalesceWindow),
		Idioms: repository.NewIdiomRepository(s.Idioms(), cfg.Store.CoalesceWindow),
		Dictionary: dictionary.NewClient(dictionary.Config{
			BaseURL:           cfg.Dictionary.BaseURL,
			Timeout:           cfg.Dictionary.Timeout,
			CacheDirectory:    cfg.Dictionary.CacheDirectory,
			RequestsPerSecond: cfg.Dictionary.RequestsPerSecond,
		}),
		Learning: learning.NewDBLearningRepository(db),
	}
	if err := a.Refresh(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

// Refresh refetches words and idioms.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.Words.Refresh(ctx); err != nil {
		return fmt.Errorf("words.Refresh() > %w", err)
	}
	if err := a.Idioms.Refresh(ctx); err != nil {
		return fmt.Errorf("idioms.Refresh() > %w", err)
	}
	return nil
}

// Close stops the repositories and closes the database.
func (a *App) Close() error {
	a.Words.Close()
	a.Idioms.Close()
	if err := a.DB.Close(); err != nil {
		return fmt.Errorf("db.Close() > %w", err)
	}
	return nil
}

// IsRecordNotFound reports whether err comes from a mutation of a record
// that is no longer stored.
func IsRecordNotFound(err error) bool {
	return errors.Is(err, store.ErrRecordNotFound)
}
