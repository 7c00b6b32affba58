package postgres

import (
	"context"
	"database/sql"
	"go-blog-api/logger"
)

// RevocationRepository is the revoked_tokens blacklist. It only inserts.
type RevocationRepository struct {
	DB *sql.DB
}

func NewRevocationRepository(db *sql.DB) *RevocationRepository {
	return &RevocationRepository{DB: db}
}

func (r *RevocationRepository) Add(ctx context.Context, token string) error {
	logger.Log.Info("Executing query to revoke a token")

	_, err := r.DB.ExecContext(ctx, `INSERT INTO revoked_tokens (token) VALUES ($1)`, token)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute revoke token query")
		return err
	}
	return nil
}

func (r *RevocationRepository) Exists(ctx context.Context, token string) (bool, error) {
	var found bool
	err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE token = $1)`, token).Scan(&found)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute revoked token lookup")
		return false, err
	}
	return found, nil
}
