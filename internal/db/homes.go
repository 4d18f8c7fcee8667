package db

import (
	"context"

	"github.com/catapp/backend/internal/model"
	"github.com/jackc/pgx/v5"
)

const homeSelect = `
	SELECT id, name, address, type
	FROM homes
`

func scanHome(row pgx.Row) (*model.Home, error) {
	var h model.Home
	if err := row.Scan(&h.ID, &h.Name, &h.Address, &h.Type); err != nil {
		return nil, err
	}
	h.Resolve()
	return &h, nil
}

func (db *Postgres) ListHomes(ctx context.Context) ([]model.Home, error) {
	const op = "db.ListHomes"

	rows, err := db.Pool.Query(ctx, homeSelect+` ORDER BY id`)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()

	homes := []model.Home{}
	for rows.Next() {
		h, err := scanHome(rows)
		if err != nil {
			return nil, wrapErr(op, err)
		}
		homes = append(homes, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}
	return homes, nil
}

func (db *Postgres) GetHome(ctx context.Context, id int64) (*model.Home, error) {
	const op = "db.GetHome"

	h, err := scanHome(db.Pool.QueryRow(ctx, homeSelect+` WHERE id = $1`, id))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return h, nil
}

func (db *Postgres) CreateHome(ctx context.Context, in model.HomeInput) (*model.Home, error) {
	const op = "db.CreateHome"

	h, err := scanHome(db.Pool.QueryRow(ctx, `
		INSERT INTO homes (name, address, type)
		VALUES ($1, $2, $3)
		RETURNING id, name, address, type
	`, in.Name, in.Address, in.Type))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return h, nil
}

func (db *Postgres) UpdateHome(ctx context.Context, id int64, in model.HomeInput) (*model.Home, error) {
	const op = "db.UpdateHome"

	h, err := scanHome(db.Pool.QueryRow(ctx, `
		UPDATE homes
		SET name = $1, address = $2, type = $3
		WHERE id = $4
		RETURNING id, name, address, type
	`, in.Name, in.Address, in.Type, id))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return h, nil
}

// DeleteHome removes the home; its humans and their cats go with it
// through ON DELETE CASCADE.
func (db *Postgres) DeleteHome(ctx context.Context, id int64) error {
	const op = "db.DeleteHome"

	tag, err := db.Pool.Exec(ctx, `DELETE FROM homes WHERE id = $1`, id)
	if err != nil {
		return wrapErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapErr(op, pgx.ErrNoRows)
	}
	return nil
}
