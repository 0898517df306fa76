package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/wordbook/internal/vocabulary"
)

// Collection is the typed view of one entity kind inside a Store.
// Insert, Update and Delete only stage; nothing is durable until Save.
type Collection[T vocabulary.Record] struct {
	store *Store
	table table
}

// Kind returns the entity kind held by the collection.
func (c *Collection[T]) Kind() vocabulary.Kind {
	return vocabulary.KindOf[T]()
}

// FetchAll reads every committed record in creation order.
func (c *Collection[T]) FetchAll(ctx context.Context) ([]T, error) {
	records := []T{}
	if err := c.store.db.SelectContext(ctx, &records, c.table.selectAllSQL()); err != nil {
		return nil, fmt.Errorf("db.SelectContext(%s) > %w", c.table.name, err)
	}
	return records, nil
}

func (c *Collection[T]) Insert(record T) {
	query := c.table.insertSQL()
	c.store.stage(pendingChange{
		kind:      c.Kind(),
		operation: operationInsert,
		id:        record.RecordID(),
		apply: func(ctx context.Context, tx *sqlx.Tx) error {
			if _, err := tx.NamedExecContext(ctx, query, record); err != nil {
				return fmt.Errorf("tx.NamedExecContext > %w", err)
			}
			return nil
		},
	})
}

func (c *Collection[T]) Update(record T) {
	query := c.table.updateSQL()
	c.store.stage(pendingChange{
		kind:      c.Kind(),
		operation: operationUpdate,
		id:        record.RecordID(),
		apply: func(ctx context.Context, tx *sqlx.Tx) error {
			result, err := tx.NamedExecContext(ctx, query, record)
			if err != nil {
				return fmt.Errorf("tx.NamedExecContext > %w", err)
			}
			return requireAffected(result)
		},
	})
}

func (c *Collection[T]) Delete(id uuid.UUID) {
	query := c.table.deleteSQL()
	c.store.stage(pendingChange{
		kind:      c.Kind(),
		operation: operationDelete,
		id:        id,
		apply: func(ctx context.Context, tx *sqlx.Tx) error {
			result, err := tx.ExecContext(ctx, query, id)
			if err != nil {
				return fmt.Errorf("tx.ExecContext > %w", err)
			}
			return requireAffected(result)
		},
	})
}

// Lock takes the store-wide mutation lock. Holding it from staging until Save
// returns keeps another caller's staged changes out of that commit.
func (c *Collection[T]) Lock() {
	c.store.mutateMu.Lock()
}

func (c *Collection[T]) Unlock() {
	c.store.mutateMu.Unlock()
}

// Save commits the store's staged mutations, including those of other kinds.
func (c *Collection[T]) Save(ctx context.Context) (bool, error) {
	return c.store.Save(ctx)
}

// Rollback discards the store's staged mutations.
func (c *Collection[T]) Rollback() {
	c.store.Rollback()
}

// Subscribe registers o on the store; it sees changes of every kind.
func (c *Collection[T]) Subscribe(o Observer) (unsubscribe func()) {
	return c.store.Subscribe(o)
}

type rowsAffecter interface {
	RowsAffected() (int64, error)
}

func requireAffected(result rowsAffecter) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if n == 0 {
		return ErrRecordNotFound
	}
	return nil
}
