package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

// Repository is the PostgreSQL Store.
type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		db: db,
	}
}

const uniqueViolation = "23505"

func (r *Repository) Insert(ctx context.Context, c Customer) (uuid.UUID, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return uuid.Nil, fmt.Errorf("generate customer id: %w", err)
	}
	_, err = r.db.ExecContext(ctx, insertCustomerQuery, id, c.Name, c.Birthdate, c.State)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return uuid.Nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		return uuid.Nil, err
	}
	return id, nil
}

const insertCustomerQuery = `INSERT INTO customers (id, name, birthdate, state) VALUES ($1, $2, $3, $4)`

// FindAll loads the table eagerly; the returned sequence replays that result.
func (r *Repository) FindAll(ctx context.Context) (iter.Seq[Customer], error) {
	var customers []Customer
	err := r.db.SelectContext(ctx, &customers, findAllCustomersQuery)
	if err != nil {
		return nil, err
	}
	return slices.Values(customers), nil
}

const findAllCustomersQuery = `SELECT id, name, birthdate, state FROM customers`

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (Customer, error) {
	var c Customer
	err := r.db.GetContext(ctx, &c, findCustomerByIDQuery, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Customer{}, ErrNotFound
	}
	return c, err
}

const findCustomerByIDQuery = `SELECT id, name, birthdate, state FROM customers WHERE id = $1`

func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, countCustomersQuery)
	return n, err
}

const countCustomersQuery = `SELECT count(*) FROM customers`

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteCustomerQuery, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

const deleteCustomerQuery = `DELETE FROM customers WHERE id = $1`

var _ Store = (*Repository)(nil)
