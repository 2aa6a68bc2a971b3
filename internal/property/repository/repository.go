package repository

import (
	"context"
	"errors"
	"time"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/realtyhub/backend/internal/common/db"
	"github.com/realtyhub/backend/internal/property/domain"
)

var ErrPropertyNotFound = errors.New("property not found")

const propertyColumns = `id, title, description, address, price, owner_id, created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, p domain.NewProperty) (domain.Property, error)
	CreateBatch(ctx context.Context, ps []domain.NewProperty) ([]domain.Property, error)
	FindByID(ctx context.Context, id domain.ID) (domain.Property, error)
	List(ctx context.Context) ([]domain.Property, error)
	Update(ctx context.Context, id domain.ID, upd domain.Update) (domain.Property, error)
	Delete(ctx context.Context, id domain.ID) error
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, p domain.NewProperty) (domain.Property, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO properties (id, title, description, address, price, owner_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+propertyColumns,
		string(p.ID), p.Title, p.Description, p.Address, p.Price, p.OwnerID,
	)

	created, err := scanProperty(row)
	if err != nil {
		return domain.Property{}, db.HandleQueryError(err, nil, "insert property", "properties", start)
	}
	return created, nil
}

// CreateBatch inserts all properties in one transaction; a single failure
// rolls the whole batch back.
func (r *PgRepository) CreateBatch(ctx context.Context, ps []domain.NewProperty) (created []domain.Property, err error) {
	start := time.Now()

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
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

	created = make([]domain.Property, 0, len(ps))
	for _, p := range ps {
		row := tx.QueryRow(
			ctx,
			`INSERT INTO properties (id, title, description, address, price, owner_id)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING `+propertyColumns,
			string(p.ID), p.Title, p.Description, p.Address, p.Price, p.OwnerID,
		)

		prop, scanErr := scanProperty(row)
		if scanErr != nil {
			err = db.HandleQueryError(scanErr, nil, "insert property batch", "properties", start)
			return nil, err
		}
		created = append(created, prop)
	}

	return created, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.Property, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+propertyColumns+` FROM properties WHERE id = $1`,
		string(id),
	)

	p, err := scanProperty(row)
	if err != nil {
		return domain.Property{}, db.HandleQueryError(err, ErrPropertyNotFound, "find property by id", "properties", start)
	}
	return p, nil
}

func (r *PgRepository) List(ctx context.Context) ([]domain.Property, error) {
	start := time.Now()
	rows, err := r.pool.Query(
		ctx,
		`SELECT `+propertyColumns+` FROM properties ORDER BY created_at`,
	)
	if err != nil {
		return nil, db.HandleQueryError(err, nil, "list properties", "properties", start)
	}
	defer rows.Close()

	var props []domain.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, db.HandleQueryError(err, nil, "scan property row", "properties", start)
		}
		props = append(props, p)
	}
	if err := rows.Err(); err != nil {
		return nil, db.HandleQueryError(err, nil, "list properties", "properties", start)
	}

	return props, nil
}

func (r *PgRepository) Update(ctx context.Context, id domain.ID, upd domain.Update) (domain.Property, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`UPDATE properties
		 SET title = COALESCE($2, title),
		     description = COALESCE($3, description),
		     address = COALESCE($4, address),
		     price = COALESCE($5, price),
		     updated_at = now()
		 WHERE id = $1
		 RETURNING `+propertyColumns,
		string(id), upd.Title, upd.Description, upd.Address, upd.Price,
	)

	p, err := scanProperty(row)
	if err != nil {
		return domain.Property{}, db.HandleQueryError(err, ErrPropertyNotFound, "update property", "properties", start)
	}
	return p, nil
}

func (r *PgRepository) Delete(ctx context.Context, id domain.ID) error {
	start := time.Now()
	tag, err := r.pool.Exec(ctx, `DELETE FROM properties WHERE id = $1`, string(id))
	if err != nil {
		return db.HandleExecError(err, "delete property", "properties", start)
	}
	if tag.RowsAffected() == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func scanProperty(row pgx.Row) (domain.Property, error) {
	var p domain.Property
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Address, &p.Price, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return domain.Property{}, err
	}
	return p, nil
}
