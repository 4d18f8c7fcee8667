package db

import (
	"context"
	"errors"
	"time"

	"github.com/catapp/backend/internal/model"
	"github.com/jackc/pgx/v5"
)

func (db *Postgres) GetTokenByKey(ctx context.Context, key string) (*model.Token, error) {
	const op = "db.GetTokenByKey"

	query := `
		SELECT t.key, t.user_id, u.login_id, t.created_at
		FROM auth_tokens t
		JOIN users u ON u.id = t.user_id
		WHERE t.key = $1
	`
	var token model.Token
	err := db.Pool.QueryRow(ctx, query, key).Scan(
		&token.Key,
		&token.UserID,
		&token.LoginID,
		&token.CreatedAt,
	)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return &token, nil
}

// FetchOrRotateToken returns the live token of userID, creating it with
// freshKey when none exists and replacing it when it was created before
// staleBefore. The account row is locked for the whole transaction so
// concurrent callers for the same account observe each other's result.
func (db *Postgres) FetchOrRotateToken(ctx context.Context, userID int64, freshKey string, now, staleBefore time.Time) (*model.Token, model.IssueOutcome, error) {
	const op = "db.FetchOrRotateToken"

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, "", wrapErr(op, err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	token := model.Token{UserID: userID}
	if err := tx.QueryRow(ctx, `
		SELECT login_id FROM users WHERE id = $1 FOR UPDATE
	`, userID).Scan(&token.LoginID); err != nil {
		return nil, "", wrapErr(op, err)
	}

	outcome := model.TokenReused
	err = tx.QueryRow(ctx, `
		SELECT key, created_at FROM auth_tokens WHERE user_id = $1
	`, userID).Scan(&token.Key, &token.CreatedAt)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		outcome = model.TokenCreated
	case err != nil:
		return nil, "", wrapErr(op, err)
	case token.CreatedAt.Before(staleBefore):
		if _, err := tx.Exec(ctx, `DELETE FROM auth_tokens WHERE user_id = $1`, userID); err != nil {
			return nil, "", wrapErr(op, err)
		}
		outcome = model.TokenRotated
	}

	if outcome != model.TokenReused {
		if _, err := tx.Exec(ctx, `
			INSERT INTO auth_tokens (key, user_id, created_at)
			VALUES ($1, $2, $3)
		`, freshKey, userID, now); err != nil {
			return nil, "", wrapErr(op, err)
		}
		token.Key = freshKey
		token.CreatedAt = now
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, "", wrapErr(op, err)
	}
	return &token, outcome, nil
}

func (db *Postgres) DeleteTokenByUserID(ctx context.Context, userID int64) error {
	const op = "db.DeleteTokenByUserID"

	tag, err := db.Pool.Exec(ctx, `DELETE FROM auth_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return wrapErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapErr(op, pgx.ErrNoRows)
	}
	return nil
}
