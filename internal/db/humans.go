package db

import (
	"context"
	"time"

	"github.com/catapp/backend/internal/model"
	"github.com/jackc/pgx/v5"
)

const humanSelect = `
	SELECT
		h.id, h.name, h.gender, h.date_of_birth, h.description, h.home_id,
		ARRAY(SELECT c.id FROM cats c WHERE c.owner_id = h.id ORDER BY c.id)
	FROM humans h
`

func scanHuman(row pgx.Row) (*model.Human, error) {
	var h model.Human
	var dob *time.Time
	if err := row.Scan(&h.ID, &h.Name, &h.Gender, &dob, &h.Description, &h.HomeID, &h.CatIDs); err != nil {
		return nil, err
	}
	h.DateOfBirth = model.DateFromTime(dob)
	h.Resolve()
	return &h, nil
}

func (db *Postgres) ListHumans(ctx context.Context) ([]model.Human, error) {
	const op = "db.ListHumans"

	rows, err := db.Pool.Query(ctx, humanSelect+` ORDER BY h.id`)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()

	humans := []model.Human{}
	for rows.Next() {
		h, err := scanHuman(rows)
		if err != nil {
			return nil, wrapErr(op, err)
		}
		humans = append(humans, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}
	return humans, nil
}

func (db *Postgres) GetHuman(ctx context.Context, id int64) (*model.Human, error) {
	const op = "db.GetHuman"

	h, err := scanHuman(db.Pool.QueryRow(ctx, humanSelect+` WHERE h.id = $1`, id))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return h, nil
}

func (db *Postgres) CreateHuman(ctx context.Context, in model.HumanInput) (*model.Human, error) {
	const op = "db.CreateHuman"

	var id int64
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO humans (name, gender, date_of_birth, description, home_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, in.Name, in.Gender, in.DateOfBirth.TimePtr(), in.Description, in.HomeID).Scan(&id)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return db.GetHuman(ctx, id)
}

func (db *Postgres) UpdateHuman(ctx context.Context, id int64, in model.HumanInput) (*model.Human, error) {
	const op = "db.UpdateHuman"

	tag, err := db.Pool.Exec(ctx, `
		UPDATE humans
		SET name = $1, gender = $2, date_of_birth = $3, description = $4, home_id = $5
		WHERE id = $6
	`, in.Name, in.Gender, in.DateOfBirth.TimePtr(), in.Description, in.HomeID, id)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, wrapErr(op, pgx.ErrNoRows)
	}
	return db.GetHuman(ctx, id)
}

// DeleteHuman removes the human and, by cascade, every cat it owns.
func (db *Postgres) DeleteHuman(ctx context.Context, id int64) error {
	const op = "db.DeleteHuman"

	tag, err := db.Pool.Exec(ctx, `DELETE FROM humans WHERE id = $1`, id)
	if err != nil {
		return wrapErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapErr(op, pgx.ErrNoRows)
	}
	return nil
}
