package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/realtyhub/backend/internal/common/db"
	"github.com/realtyhub/backend/internal/user/domain"
)

var (
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailExists is returned when the users_email_key constraint fires.
	// The constraint, not the pre-check inside the transaction, is the
	// authoritative uniqueness guarantee under concurrent signups.
	ErrEmailExists = errors.New("email already exists")
)

const emailUniqueConstraint = "users_email_key"

type Repository interface {
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByID(ctx context.Context, id domain.ID) (domain.User, error)
	List(ctx context.Context) ([]domain.Summary, error)
	Update(ctx context.Context, id domain.ID, upd domain.Update) (domain.Summary, error)
	Delete(ctx context.Context, id domain.ID) error
	TxManager() TxManager
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, full_name, email, address, password, created_at FROM users WHERE email = $1`,
		email,
	)

	var user domain.User
	err := row.Scan(&user.ID, &user.FullName, &user.Email, &user.Address, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return domain.User{}, db.HandleQueryError(err, ErrUserNotFound, "find user by email", "users", start)
	}

	return user, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, full_name, email, address, password, created_at FROM users WHERE id = $1`,
		string(id),
	)

	var user domain.User
	err := row.Scan(&user.ID, &user.FullName, &user.Email, &user.Address, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return domain.User{}, db.HandleQueryError(err, ErrUserNotFound, "find user by id", "users", start)
	}

	return user, nil
}

func (r *PgRepository) List(ctx context.Context) ([]domain.Summary, error) {
	start := time.Now()
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, full_name, email, address, created_at FROM users ORDER BY created_at`,
	)
	if err != nil {
		return nil, db.HandleQueryError(err, nil, "list users", "users", start)
	}
	defer rows.Close()

	var users []domain.Summary
	for rows.Next() {
		var u domain.Summary
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email, &u.Address, &u.CreatedAt); err != nil {
			return nil, db.HandleQueryError(err, nil, "scan user row", "users", start)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, db.HandleQueryError(err, nil, "list users", "users", start)
	}

	return users, nil
}

func (r *PgRepository) Update(ctx context.Context, id domain.ID, upd domain.Update) (domain.Summary, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`UPDATE users
		 SET full_name = COALESCE($2, full_name),
		     email = COALESCE($3, email),
		     address = COALESCE($4, address)
		 WHERE id = $1
		 RETURNING id, full_name, email, address, created_at`,
		string(id),
		upd.FullName,
		upd.Email,
		upd.Address,
	)

	var u domain.Summary
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Address, &u.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err, emailUniqueConstraint) {
			return domain.Summary{}, fmt.Errorf("%w: %w", ErrEmailExists, err)
		}
		return domain.Summary{}, db.HandleQueryError(err, ErrUserNotFound, "update user", "users", start)
	}

	return u, nil
}

func (r *PgRepository) Delete(ctx context.Context, id domain.ID) error {
	start := time.Now()
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, string(id))
	if err != nil {
		return db.HandleExecError(err, "delete user", "users", start)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *PgRepository) TxManager() TxManager {
	return &pgTxManager{pool: r.pool}
}
