package customer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

type seedTarget interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, in NewCustomer) (Customer, error)
}

// Initializer seeds an empty store with sample customers. It runs at most
// once per process, and never against a store that already holds data.
type Initializer struct {
	target  seedTarget
	samples []NewCustomer
	logger  *slog.Logger

	once   sync.Once
	seeded int
	err    error
}

func NewInitializer(target seedTarget, logger *slog.Logger, samples ...NewCustomer) *Initializer {
	if len(samples) == 0 {
		samples = SampleCustomers()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Initializer{
		target:  target,
		samples: samples,
		logger:  logger,
	}
}

// Run returns how many customers were created. Calls after the first return
// the first call's outcome without touching the store.
func (i *Initializer) Run(ctx context.Context) (int, error) {
	i.once.Do(func() {
		i.seeded, i.err = i.seed(ctx)
	})
	return i.seeded, i.err
}

func (i *Initializer) seed(ctx context.Context) (int, error) {
	n, err := i.target.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	if n > 0 {
		i.logger.Info("Skipping customer initialization, store is not empty", "count", n)
		return 0, nil
	}

	for idx, in := range i.samples {
		c, err := i.target.Create(ctx, in)
		if err != nil {
			return idx, fmt.Errorf("seed customer %q: %w", in.Name, err)
		}
		i.logger.Info("Seeded customer", "customerId", c.ID, "name", c.Name)
	}
	return len(i.samples), nil
}

func SampleCustomers() []NewCustomer {
	locked, disabled := Locked.String(), Disabled.String()
	return []NewCustomer{
		{Name: "Tom Mayer", Birthdate: "2005-05-12"},
		{Name: "Julia Smith", Birthdate: "2001-02-28", State: &locked},
		{Name: "Max Muster", Birthdate: "1990-10-03", State: &disabled},
	}
}
