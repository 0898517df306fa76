// Package learning records quiz answers per word and summarizes them.
package learning

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// LearningLog is one quiz answer for a word.
type LearningLog struct {
	ID        int64     `db:"id" json:"id"`
	WordID    uuid.UUID `db:"word_id" json:"word_id"`
	QuizType  string    `db:"quiz_type" json:"quiz_type"`
	Correct   bool      `db:"correct" json:"correct"`
	LearnedAt time.Time `db:"learned_at" json:"learned_at"`
}

// LearningRepository defines operations for managing learning logs.
type LearningRepository interface {
	FindAll(ctx context.Context) ([]LearningLog, error)
	FindByWord(ctx context.Context, wordID uuid.UUID, quizType string) ([]LearningLog, error)
	FindLatestByWord(ctx context.Context, wordID uuid.UUID, quizType string) (*LearningLog, error)
	Create(ctx context.Context, log *LearningLog) error
}

var _ LearningRepository = (*DBLearningRepository)(nil)

// DBLearningRepository implements LearningRepository on MySQL or sqlite.
type DBLearningRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewDBLearningRepository(db *sqlx.DB) *DBLearningRepository {
	return &DBLearningRepository{
		db:  db,
		now: time.Now,
	}
}

// FindAll returns all learning logs in insertion order.
func (r *DBLearningRepository) FindAll(ctx context.Context) ([]LearningLog, error) {
	var logs []LearningLog
	if err := r.db.SelectContext(ctx, &logs,
		"SELECT id, word_id, quiz_type, correct, learned_at FROM learning_logs ORDER BY id"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(learning_logs) > %w", err)
	}
	return logs, nil
}

// FindByWord returns the answers for a word and quiz type, oldest first.
func (r *DBLearningRepository) FindByWord(ctx context.Context, wordID uuid.UUID, quizType string) ([]LearningLog, error) {
	var logs []LearningLog
	if err := r.db.SelectContext(ctx, &logs,
		"SELECT id, word_id, quiz_type, correct, learned_at FROM learning_logs WHERE word_id = ? AND quiz_type = ? ORDER BY learned_at, id",
		wordID.String(), quizType); err != nil {
		return nil, fmt.Errorf("db.SelectContext(learning_logs by word) > %w", err)
	}
	return logs, nil
}

// FindLatestByWord returns the most recent answer for a word and quiz type,
// or nil if the word was never quizzed.
func (r *DBLearningRepository) FindLatestByWord(ctx context.Context, wordID uuid.UUID, quizType string) (*LearningLog, error) {
	var log LearningLog
	err := r.db.GetContext(ctx, &log,
		"SELECT id, word_id, quiz_type, correct, learned_at FROM learning_logs WHERE word_id = ? AND quiz_type = ? ORDER BY learned_at DESC, id DESC LIMIT 1",
		wordID.String(), quizType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(latest learning_log) > %w", err)
	}
	return &log, nil
}

// Create inserts a new learning log and sets its ID.
func (r *DBLearningRepository) Create(ctx context.Context, log *LearningLog) error {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO learning_logs (word_id, quiz_type, correct, learned_at) VALUES (?, ?, ?, ?)",
		log.WordID.String(), log.QuizType, log.Correct, log.LearnedAt)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert learning_log) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	log.ID = id
	return nil
}

// Record stores an answer given now.
func (r *DBLearningRepository) Record(ctx context.Context, wordID uuid.UUID, quizType string, correct bool) (LearningLog, error) {
	log := LearningLog{
		WordID:    wordID,
		QuizType:  quizType,
		Correct:   correct,
		LearnedAt: r.now().UTC(),
	}
	if err := r.Create(ctx, &log); err != nil {
		return LearningLog{}, err
	}
	return log, nil
}
