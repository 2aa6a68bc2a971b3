package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/realtyhub/backend/internal/common/db"
	"github.com/realtyhub/backend/internal/user/domain"
)

const txTimeout = 30 * time.Second

// Tx is the set of store operations available inside one transaction. The
// connection backing it is checked out for the whole scope and must not be
// shared across flows.
type Tx interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	ExistingEmails(ctx context.Context, emails []string) ([]string, error)
	Insert(ctx context.Context, user domain.NewUser) (domain.Summary, error)
}

// TxManager runs fn inside a transaction. Commit happens only when fn returns
// nil; any error or panic rolls the transaction back before it surfaces.
type TxManager interface {
	WithTx(ctx context.Context, fn func(context.Context, Tx) error) error
}

type pgTxManager struct {
	pool *pgxpool.Pool
}

func (m *pgTxManager) WithTx(ctx context.Context, fn func(context.Context, Tx) error) (err error) {
	ctx, cancel := context.WithTimeout(ctx, txTimeout)
	defer cancel()

	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		} else if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(ctx, &pgTx{tx: tx})
	return err
}

type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) EmailExists(ctx context.Context, email string) (bool, error) {
	start := time.Now()
	var id string
	err := t.tx.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, email).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, db.HandleQueryError(err, nil, "check email", "users", start)
	}
	return true, nil
}

func (t *pgTx) ExistingEmails(ctx context.Context, emails []string) ([]string, error) {
	start := time.Now()
	rows, err := t.tx.Query(ctx, `SELECT email FROM users WHERE email = ANY($1)`, emails)
	if err != nil {
		return nil, db.HandleQueryError(err, nil, "check existing emails", "users", start)
	}
	defer rows.Close()

	var existing []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, db.HandleQueryError(err, nil, "scan existing email", "users", start)
		}
		existing = append(existing, email)
	}
	if err := rows.Err(); err != nil {
		return nil, db.HandleQueryError(err, nil, "check existing emails", "users", start)
	}

	return existing, nil
}

func (t *pgTx) Insert(ctx context.Context, user domain.NewUser) (domain.Summary, error) {
	start := time.Now()
	row := t.tx.QueryRow(
		ctx,
		`INSERT INTO users (id, full_name, email, address, password)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, full_name, email, address, created_at`,
		string(user.ID),
		user.FullName,
		user.Email,
		user.Address,
		user.PasswordHash,
	)

	var created domain.Summary
	err := row.Scan(&created.ID, &created.FullName, &created.Email, &created.Address, &created.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err, emailUniqueConstraint) {
			// Keep the pg error in the chain so callers can surface its
			// detail line (which names the colliding email).
			return domain.Summary{}, fmt.Errorf("%w: %w", ErrEmailExists, err)
		}
		return domain.Summary{}, db.HandleQueryError(err, nil, "insert user", "users", start)
	}

	return created, nil
}
