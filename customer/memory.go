package customer

import (
	"context"
	"fmt"
	"iter"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// MemoryStore is a concurrency-safe in-memory Store backed by a sync.Map.
type MemoryStore struct {
	customers sync.Map // uuid.UUID -> Customer
	size      atomic.Int64
	newID     func() (uuid.UUID, error)
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{newID: uuid.NewRandom}
}

func (s *MemoryStore) Insert(_ context.Context, c Customer) (uuid.UUID, error) {
	id, err := s.newID()
	if err != nil {
		return uuid.Nil, fmt.Errorf("generate customer id: %w", err)
	}
	c.ID = id
	if _, loaded := s.customers.LoadOrStore(id, c); loaded {
		return uuid.Nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	s.size.Add(1)
	return id, nil
}

// FindAll ranges over the map lazily; a record inserted or deleted while
// iterating may or may not be observed.
func (s *MemoryStore) FindAll(_ context.Context) (iter.Seq[Customer], error) {
	return func(yield func(Customer) bool) {
		s.customers.Range(func(_, v any) bool {
			return yield(v.(Customer))
		})
	}, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id uuid.UUID) (Customer, error) {
	v, ok := s.customers.Load(id)
	if !ok {
		return Customer{}, ErrNotFound
	}
	return v.(Customer), nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	return int(s.size.Load()), nil
}

func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := s.customers.LoadAndDelete(id); !ok {
		return false, nil
	}
	s.size.Add(-1)
	return true, nil
}

var _ Store = (*MemoryStore)(nil)
