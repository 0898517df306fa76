// Package repository is the mutation and publish gateway between callers and
// the entity store. A repository keeps an in-memory snapshot of one entity
// kind, refetched in full whenever the store reports a change.
package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/at-ishikawa/wordbook/internal/coalesce"
	"github.com/at-ishikawa/wordbook/internal/store"
	"github.com/at-ishikawa/wordbook/internal/vocabulary"
)

//go:generate mockgen -source=repository.go -destination=../mocks/repository/mock_source.go -package=mock_repository Source

// Source is the part of the entity store a repository works against.
// store.Collection implements it. Lock and Unlock guard the store's shared
// staging area across every Source of the same store.
type Source[T vocabulary.Record] interface {
	sync.Locker
	Kind() vocabulary.Kind
	FetchAll(ctx context.Context) ([]T, error)
	Insert(record T)
	Update(record T)
	Delete(id uuid.UUID)
	Save(ctx context.Context) (bool, error)
	Rollback()
	Subscribe(o store.Observer) (unsubscribe func())
}

// ErrorKind classifies repository errors.
type ErrorKind string

const (
	ErrorKindFetch ErrorKind = "fetch"
	ErrorKindSave  ErrorKind = "save"
)

// Error is delivered to subscribers and returned to callers when the store
// cannot be read or written. It is always recoverable.
type Error struct {
	Kind   ErrorKind
	Entity vocabulary.Kind
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %ss > %v", e.Kind, e.Entity, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a repository error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var repoErr *Error
	return errors.As(err, &repoErr) && repoErr.Kind == kind
}

type subscriber[T vocabulary.Record] struct {
	onRecords func([]T)
	onError   func(error)
}

// Repository publishes the records of one entity kind and routes every
// mutation through the store.
//
// Subscriber callbacks run on the goroutine that produced the snapshot or
// error and must not call back into the same repository.
type Repository[T vocabulary.Record] struct {
	source Source[T]
	kind   vocabulary.Kind
	logger *slog.Logger

	ctx         context.Context
	cancel      context.CancelFunc
	batcher     *coalesce.Batcher[store.Change]
	unsubscribe func()

	// publishMu orders deliveries so subscribers see snapshots in sequence
	publishMu sync.Mutex

	mu          sync.RWMutex
	records     []T
	issued      uint64
	published   uint64
	subscribers map[uint64]subscriber[T]
	nextID      uint64
	closed      bool
}

// New creates a repository over source. Store changes arriving within window
// of each other are folded into one refetch. The snapshot stays empty until
// the first Refresh or store change.
func New[T vocabulary.Record](source Source[T], window time.Duration) *Repository[T] {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Repository[T]{
		source:      source,
		kind:        source.Kind(),
		ctx:         ctx,
		cancel:      cancel,
		records:     []T{},
		subscribers: make(map[uint64]subscriber[T]),
	}
	r.logger = slog.Default().With(slog.String("entity", string(r.kind)))
	r.batcher = coalesce.New(window, r.onStoreChange)
	r.unsubscribe = source.Subscribe(r.observe)
	return r
}

func (r *Repository[T]) observe(change store.Change) {
	if !slices.Contains(change.Entities, r.kind) {
		return
	}
	r.batcher.Add(change)
}

func (r *Repository[T]) onStoreChange(change store.Change) {
	r.logger.Debug("refresh after store change",
		slog.String("change", change.Kind.String()),
		slog.Time("at", change.At),
	)
	_ = r.Refresh(r.ctx)
}

// Records returns a copy of the latest snapshot.
func (r *Repository[T]) Records() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.records)
}

// Subscribe registers callbacks for snapshots and errors. The current
// snapshot is delivered to onRecords before Subscribe returns. Either
// callback may be nil.
func (r *Repository[T]) Subscribe(onRecords func([]T), onError func(error)) (cancel func()) {
	r.publishMu.Lock()
	defer r.publishMu.Unlock()

	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.subscribers[id] = subscriber[T]{onRecords: onRecords, onError: onError}
	current := slices.Clone(r.records)
	r.mu.Unlock()

	if onRecords != nil {
		onRecords(current)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.subscribers, id)
			r.mu.Unlock()
		})
	}
}

func (r *Repository[T]) snapshotSubscribers() []subscriber[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	subs := make([]subscriber[T], 0, len(r.subscribers))
	for _, s := range r.subscribers {
		subs = append(subs, s)
	}
	return subs
}

// Refresh refetches the whole collection and republishes it. A failed fetch
// keeps the previous snapshot and is reported to subscribers. A fetch that
// finishes after a newer one is dropped.
func (r *Repository[T]) Refresh(ctx context.Context) error {
	r.mu.Lock()
	r.issued++
	seq := r.issued
	r.mu.Unlock()

	records, err := r.source.FetchAll(ctx)
	if err != nil {
		repoErr := &Error{Kind: ErrorKindFetch, Entity: r.kind, Err: err}
		r.publishError(repoErr)
		return repoErr
	}

	r.publishMu.Lock()
	defer r.publishMu.Unlock()

	r.mu.Lock()
	if seq < r.published {
		r.mu.Unlock()
		r.logger.Debug("drop stale snapshot", slog.Uint64("seq", seq), slog.Uint64("published", r.published))
		return nil
	}
	r.published = seq
	r.records = records
	r.mu.Unlock()

	r.logger.Debug("publish snapshot", slog.Int("records", len(records)), slog.Uint64("seq", seq))
	r.deliverRecords(records)
	return nil
}

// deliverRecords must be called with publishMu held.
func (r *Repository[T]) deliverRecords(records []T) {
	for _, s := range r.snapshotSubscribers() {
		if s.onRecords != nil {
			s.onRecords(slices.Clone(records))
		}
	}
}

func (r *Repository[T]) publishError(err *Error) {
	r.logger.Warn("repository error", slog.String("kind", string(err.Kind)), slog.Any("error", err.Err))

	r.publishMu.Lock()
	defer r.publishMu.Unlock()
	for _, s := range r.snapshotSubscribers() {
		if s.onError != nil {
			s.onError(err)
		}
	}
}

// SaveContext commits every staged mutation. When nothing was staged the
// current snapshot is republished unchanged. After a successful commit the
// refreshed snapshot arrives asynchronously through the store notification.
func (r *Repository[T]) SaveContext(ctx context.Context) error {
	return r.commit(ctx, nil)
}

// commit stages a mutation and saves it under the store's mutation lock, so
// the commit carries only this mutation. Subscribers are notified after the
// lock is released.
func (r *Repository[T]) commit(ctx context.Context, stage func()) error {
	r.source.Lock()
	if stage != nil {
		stage()
	}
	saved, err := r.source.Save(ctx)
	r.source.Unlock()

	if err != nil {
		repoErr := &Error{Kind: ErrorKindSave, Entity: r.kind, Err: err}
		r.publishError(repoErr)
		return repoErr
	}
	if !saved {
		r.publishMu.Lock()
		defer r.publishMu.Unlock()
		r.deliverRecords(r.Records())
	}
	return nil
}

func (r *Repository[T]) insert(ctx context.Context, record T) (T, error) {
	if err := r.commit(ctx, func() { r.source.Insert(record) }); err != nil {
		var zero T
		return zero, err
	}
	r.logger.Info("added", slog.String("id", record.RecordID().String()), slog.String("text", record.PrimaryText()))
	return record, nil
}

// Update stages the edited record and saves. The creation time is never
// changed by an update.
func (r *Repository[T]) Update(ctx context.Context, record T) error {
	return r.commit(ctx, func() { r.source.Update(record) })
}

// ToggleFavorite flips the favorite flag of record, saves it and returns the
// updated record.
func (r *Repository[T]) ToggleFavorite(ctx context.Context, record T) (T, error) {
	toggled := vocabulary.WithFavorite(record, !record.IsFavorite())
	if err := r.Update(ctx, toggled); err != nil {
		var zero T
		return zero, err
	}
	return toggled, nil
}

// Delete removes record by id. Deleting a record that is no longer stored
// surfaces a save error wrapping store.ErrRecordNotFound.
func (r *Repository[T]) Delete(ctx context.Context, record T) error {
	return r.commit(ctx, func() { r.source.Delete(record.RecordID()) })
}

// Find returns the record with id from the current snapshot.
func (r *Repository[T]) Find(id uuid.UUID) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, record := range r.records {
		if record.RecordID() == id {
			return record, true
		}
	}
	var zero T
	return zero, false
}

// Flush runs a pending coalesced refresh immediately.
func (r *Repository[T]) Flush() bool {
	return r.batcher.Flush()
}

// Close stops listening to the store. Pending refreshes are dropped.
func (r *Repository[T]) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	r.unsubscribe()
	r.batcher.Stop()
	r.cancel()
}
