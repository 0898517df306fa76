// Package store is the transactional entity store shared by every repository.
//
// Mutations are staged on the store and committed together by Save, the same
// way a single unit of work is shared across entity kinds. After every
// successful commit or merge the store notifies its observers, which is how
// repositories learn that they need to refetch.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/wordbook/internal/database"
	"github.com/at-ishikawa/wordbook/internal/vocabulary"
)

// ErrRecordNotFound is returned by Save when a staged update or delete
// targets a record that is no longer in the store.
var ErrRecordNotFound = errors.New("record not found")

// ChangeKind tells observers where a change came from.
type ChangeKind int

const (
	// ChangeSaved follows a local commit.
	ChangeSaved ChangeKind = iota + 1
	// ChangeMerged follows changes merged in from an external source.
	ChangeMerged
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeSaved:
		return "saved"
	case ChangeMerged:
		return "merged"
	}
	return fmt.Sprintf("ChangeKind(%d)", int(k))
}

// Change is delivered to observers after the store was modified.
type Change struct {
	Kind     ChangeKind
	Entities []vocabulary.Kind
	At       time.Time
}

// Observer receives store changes. It is called synchronously on the
// goroutine that committed the change, so it must return quickly and must not
// call back into Save or Merge.
type Observer func(Change)

type operation string

const (
	operationInsert operation = "insert"
	operationUpdate operation = "update"
	operationDelete operation = "delete"
)

type pendingChange struct {
	kind      vocabulary.Kind
	operation operation
	id        uuid.UUID
	apply     func(ctx context.Context, tx *sqlx.Tx) error
}

type Store struct {
	db  *sqlx.DB
	now func() time.Time

	// mutateMu is held by a caller from staging a mutation until the Save
	// that commits it returns
	mutateMu sync.Mutex

	// commitMu serializes Save and Merge
	commitMu sync.Mutex

	pendingMu sync.Mutex
	pending   []pendingChange

	observersMu  sync.RWMutex
	observers    map[uint64]Observer
	nextObserver uint64
}

// New creates a store over an open, migrated database.
func New(db *sqlx.DB) *Store {
	return &Store{
		db:        db,
		now:       time.Now,
		observers: make(map[uint64]Observer),
	}
}

// Words returns the view of the store holding words.
func (s *Store) Words() *Collection[vocabulary.Word] {
	return &Collection[vocabulary.Word]{store: s, table: wordsTable}
}

// Idioms returns the view of the store holding idioms.
func (s *Store) Idioms() *Collection[vocabulary.Idiom] {
	return &Collection[vocabulary.Idiom]{store: s, table: idiomsTable}
}

// Subscribe registers o for every later change until unsubscribe is called.
func (s *Store) Subscribe(o Observer) (unsubscribe func()) {
	s.observersMu.Lock()
	id := s.nextObserver
	s.nextObserver++
	s.observers[id] = o
	s.observersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.observersMu.Lock()
			delete(s.observers, id)
			s.observersMu.Unlock()
		})
	}
}

func (s *Store) notify(change Change) {
	s.observersMu.RLock()
	observers := make([]Observer, 0, len(s.observers))
	for _, o := range s.observers {
		observers = append(observers, o)
	}
	s.observersMu.RUnlock()

	for _, o := range observers {
		o(change)
	}
}

func (s *Store) stage(change pendingChange) {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	s.pending = append(s.pending, change)
}

// HasChanges reports whether any mutation is staged.
func (s *Store) HasChanges() bool {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	return len(s.pending) > 0
}

// Rollback discards every staged mutation.
func (s *Store) Rollback() {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	s.pending = nil
}

// Save commits every staged mutation in one transaction and reports whether
// anything was committed. A failed commit discards the staged mutations, so
// the durable store and later fetches stay in agreement.
func (s *Store) Save(ctx context.Context) (bool, error) {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	s.pendingMu.Lock()
	pending := s.pending
	s.pending = nil
	s.pendingMu.Unlock()

	if len(pending) == 0 {
		return false, nil
	}

	err := database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		for _, change := range pending {
			if err := change.apply(ctx, tx); err != nil {
				return fmt.Errorf("%s %s %s > %w", change.operation, change.kind, change.id, err)
			}
		}
		return nil
	})
	if err != nil {
		slog.Default().Warn("discard staged changes after a failed commit",
			slog.Int("changes", len(pending)),
			slog.Any("error", err),
		)
		return false, err
	}

	kinds := make([]vocabulary.Kind, 0, 2)
	for _, change := range pending {
		if !slices.Contains(kinds, change.kind) {
			kinds = append(kinds, change.kind)
		}
	}
	slog.Default().Debug("store saved", slog.Int("changes", len(pending)), slog.Any("entities", kinds))
	s.notify(Change{Kind: ChangeSaved, Entities: kinds, At: s.now()})
	return true, nil
}

// MergeSet is a batch of externally sourced records. Records are upserted by
// id, so the last merged write wins; deleting an unknown id is not an error.
type MergeSet struct {
	Words         []vocabulary.Word
	Idioms        []vocabulary.Idiom
	DeletedWords  []uuid.UUID
	DeletedIdioms []uuid.UUID
}

func (m MergeSet) empty() bool {
	return len(m.Words) == 0 && len(m.Idioms) == 0 && len(m.DeletedWords) == 0 && len(m.DeletedIdioms) == 0
}

// MergeResult counts what a merge changed.
type MergeResult struct {
	Upserted int
	Deleted  int
}

// Merge applies set in one transaction and notifies observers with ChangeMerged.
// Staged local mutations are left untouched.
func (s *Store) Merge(ctx context.Context, set MergeSet) (MergeResult, error) {
	var result MergeResult
	if set.empty() {
		return result, nil
	}

	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	err := database.RunInTx(ctx, s.db, func(ctx context.Context, tx *sqlx.Tx) error {
		remove := func(t table, ids []uuid.UUID) error {
			for _, id := range ids {
				res, err := tx.ExecContext(ctx, t.deleteSQL(), id)
				if err != nil {
					return fmt.Errorf("tx.ExecContext(delete %s %s) > %w", t.name, id, err)
				}
				n, err := res.RowsAffected()
				if err != nil {
					return fmt.Errorf("result.RowsAffected() > %w", err)
				}
				result.Deleted += int(n)
			}
			return nil
		}

		if err := upsertAll(ctx, tx, wordsTable.upsertSQL(s.db.DriverName()), set.Words); err != nil {
			return err
		}
		if err := upsertAll(ctx, tx, idiomsTable.upsertSQL(s.db.DriverName()), set.Idioms); err != nil {
			return err
		}
		result.Upserted = len(set.Words) + len(set.Idioms)
		if err := remove(wordsTable, set.DeletedWords); err != nil {
			return err
		}
		return remove(idiomsTable, set.DeletedIdioms)
	})
	if err != nil {
		return MergeResult{}, err
	}

	var kinds []vocabulary.Kind
	if len(set.Words) > 0 || len(set.DeletedWords) > 0 {
		kinds = append(kinds, vocabulary.KindWord)
	}
	if len(set.Idioms) > 0 || len(set.DeletedIdioms) > 0 {
		kinds = append(kinds, vocabulary.KindIdiom)
	}
	slog.Default().Debug("store merged",
		slog.Int("upserted", result.Upserted),
		slog.Int("deleted", result.Deleted),
	)
	s.notify(Change{Kind: ChangeMerged, Entities: kinds, At: s.now()})
	return result, nil
}

func upsertAll[T vocabulary.Record](ctx context.Context, tx *sqlx.Tx, query string, records []T) error {
	for _, r := range records {
		if _, err := tx.NamedExecContext(ctx, query, r); err != nil {
			return fmt.Errorf("tx.NamedExecContext(upsert %s %s) > %w", vocabulary.KindOf[T](), r.RecordID(), err)
		}
	}
	return nil
}
