package db

import (
	"context"
	"time"

	"github.com/catapp/backend/internal/model"
	"github.com/jackc/pgx/v5"
)

const catSelect = `
	SELECT
		c.id, c.name, c.gender, c.date_of_birth, c.description,
		c.breed_id, c.owner_id, hm.name
	FROM cats c
	JOIN humans hu ON hu.id = c.owner_id
	JOIN homes hm ON hm.id = hu.home_id
`

func scanCat(row pgx.Row) (*model.Cat, error) {
	var c model.Cat
	var dob *time.Time
	if err := row.Scan(&c.ID, &c.Name, &c.Gender, &dob, &c.Description, &c.BreedID, &c.OwnerID, &c.Home); err != nil {
		return nil, err
	}
	c.DateOfBirth = model.DateFromTime(dob)
	c.Resolve()
	return &c, nil
}

func (db *Postgres) ListCats(ctx context.Context) ([]model.Cat, error) {
	const op = "db.ListCats"

	rows, err := db.Pool.Query(ctx, catSelect+` ORDER BY c.id`)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()

	cats := []model.Cat{}
	for rows.Next() {
		c, err := scanCat(rows)
		if err != nil {
			return nil, wrapErr(op, err)
		}
		cats = append(cats, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}
	return cats, nil
}

func (db *Postgres) GetCat(ctx context.Context, id int64) (*model.Cat, error) {
	const op = "db.GetCat"

	c, err := scanCat(db.Pool.QueryRow(ctx, catSelect+` WHERE c.id = $1`, id))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return c, nil
}

func (db *Postgres) CreateCat(ctx context.Context, in model.CatInput) (*model.Cat, error) {
	const op = "db.CreateCat"

	var id int64
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO cats (name, gender, date_of_birth, description, breed_id, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, in.Name, in.Gender, in.DateOfBirth.TimePtr(), in.Description, in.BreedID, in.OwnerID).Scan(&id)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return db.GetCat(ctx, id)
}

func (db *Postgres) UpdateCat(ctx context.Context, id int64, in model.CatInput) (*model.Cat, error) {
	const op = "db.UpdateCat"

	tag, err := db.Pool.Exec(ctx, `
		UPDATE cats
		SET name = $1, gender = $2, date_of_birth = $3, description = $4, breed_id = $5, owner_id = $6
		WHERE id = $7
	`, in.Name, in.Gender, in.DateOfBirth.TimePtr(), in.Description, in.BreedID, in.OwnerID, id)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, wrapErr(op, pgx.ErrNoRows)
	}
	return db.GetCat(ctx, id)
}

func (db *Postgres) DeleteCat(ctx context.Context, id int64) error {
	const op = "db.DeleteCat"

	tag, err := db.Pool.Exec(ctx, `DELETE FROM cats WHERE id = $1`, id)
	if err != nil {
		return wrapErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapErr(op, pgx.ErrNoRows)
	}
	return nil
}
