package db

import (
	"context"

	"github.com/catapp/backend/internal/model"
	"github.com/jackc/pgx/v5"
)

const breedSelect = `
	SELECT
		b.id, b.name, b.origin, b.description,
		ARRAY(
			SELECT 'Cat: ' || c.name || ', Home: ' || hm.name
			FROM cats c
			JOIN humans hu ON hu.id = c.owner_id
			JOIN homes hm ON hm.id = hu.home_id
			WHERE c.breed_id = b.id
			ORDER BY c.id
		)
	FROM breeds b
`

func scanBreed(row pgx.Row) (*model.Breed, error) {
	var b model.Breed
	if err := row.Scan(&b.ID, &b.Name, &b.Origin, &b.Description, &b.Homes); err != nil {
		return nil, err
	}
	b.Resolve()
	return &b, nil
}

func (db *Postgres) ListBreeds(ctx context.Context) ([]model.Breed, error) {
	const op = "db.ListBreeds"

	rows, err := db.Pool.Query(ctx, breedSelect+` ORDER BY b.id`)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()

	breeds := []model.Breed{}
	for rows.Next() {
		b, err := scanBreed(rows)
		if err != nil {
			return nil, wrapErr(op, err)
		}
		breeds = append(breeds, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}
	return breeds, nil
}

func (db *Postgres) GetBreed(ctx context.Context, id int64) (*model.Breed, error) {
	const op = "db.GetBreed"

	b, err := scanBreed(db.Pool.QueryRow(ctx, breedSelect+` WHERE b.id = $1`, id))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return b, nil
}

func (db *Postgres) CreateBreed(ctx context.Context, in model.BreedInput) (*model.Breed, error) {
	const op = "db.CreateBreed"

	var id int64
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO breeds (name, origin, description)
		VALUES ($1, $2, $3)
		RETURNING id
	`, in.Name, in.Origin, in.Description).Scan(&id)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return db.GetBreed(ctx, id)
}

func (db *Postgres) UpdateBreed(ctx context.Context, id int64, in model.BreedInput) (*model.Breed, error) {
	const op = "db.UpdateBreed"

	tag, err := db.Pool.Exec(ctx, `
		UPDATE breeds
		SET name = $1, origin = $2, description = $3
		WHERE id = $4
	`, in.Name, in.Origin, in.Description, id)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, wrapErr(op, pgx.ErrNoRows)
	}
	return db.GetBreed(ctx, id)
}

// DeleteBreed removes the breed and, by cascade, every cat of that breed.
func (db *Postgres) DeleteBreed(ctx context.Context, id int64) error {
	const op = "db.DeleteBreed"

	tag, err := db.Pool.Exec(ctx, `DELETE FROM breeds WHERE id = $1`, id)
	if err != nil {
		return wrapErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapErr(op, pgx.ErrNoRows)
	}
	return nil
}
