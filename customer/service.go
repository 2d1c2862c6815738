package customer

import (
	"context"
	"iter"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Service implements the customer use cases on top of a Store. It keeps no
// state of its own.
type Service struct {
	store  Store
	tracer trace.Tracer
}

func NewService(store Store) *Service {
	return &Service{
		store:  store,
		tracer: otel.Tracer("customer-service"),
	}
}

// Create validates in, resolves the default state and stores the customer.
// Nothing is stored when validation fails.
func (s *Service) Create(ctx context.Context, in NewCustomer) (Customer, error) {
	ctx, span := s.tracer.Start(ctx, "Create")
	defer span.End()

	c, err := Validate(in)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Customer{}, err
	}

	id, err := s.store.Insert(ctx, c)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Customer{}, err
	}
	c.ID = id
	span.SetAttributes(attribute.String("customer.id", id.String()))
	return c, nil
}

func (s *Service) FindAll(ctx context.Context) (iter.Seq[Customer], error) {
	ctx, span := s.tracer.Start(ctx, "FindAll")
	defer span.End()

	return s.store.FindAll(ctx)
}

// FindAllByState returns the customers in the named state. An unknown state
// name is an ErrInvalidState error, not an empty result.
func (s *Service) FindAllByState(ctx context.Context, state string) (iter.Seq[Customer], error) {
	ctx, span := s.tracer.Start(ctx, "FindAllByState", trace.WithAttributes(attribute.String("customer.state", state)))
	defer span.End()

	want, err := ParseState(state)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	all, err := s.store.FindAll(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return func(yield func(Customer) bool) {
		for c := range all {
			if c.State != want {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}, nil
}

// FindByID returns ErrNotFound when no customer has the given id.
func (s *Service) FindByID(ctx context.Context, id uuid.UUID) (Customer, error) {
	ctx, span := s.tracer.Start(ctx, "FindByID", trace.WithAttributes(attribute.String("customer.id", id.String())))
	defer span.End()

	return s.store.FindByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "Delete", trace.WithAttributes(attribute.String("customer.id", id.String())))
	defer span.End()

	return s.store.Delete(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}
