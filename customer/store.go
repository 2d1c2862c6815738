package customer

import (
	"context"
	"errors"
	"iter"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("customer not found")
	// ErrDuplicateID means a freshly generated identifier was already taken.
	// The store is left untouched but the condition is not recoverable by
	// the caller.
	ErrDuplicateID = errors.New("duplicate customer id")
)

// Store holds the live customers. Every method touches at most one record,
// so implementations only need per-key atomicity.
type Store interface {
	// Insert assigns a fresh id to c, stores it and returns the id.
	Insert(ctx context.Context, c Customer) (uuid.UUID, error)
	// FindAll returns a bounded, restartable sequence over the live customers
	// in no particular order.
	FindAll(ctx context.Context) (iter.Seq[Customer], error)
	FindByID(ctx context.Context, id uuid.UUID) (Customer, error)
	Count(ctx context.Context) (int, error)
	// Delete reports whether a record was removed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
