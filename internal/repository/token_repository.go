package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type tokenRepository struct {
	db *sqlx.DB
}

func NewTokenRepository(db *sqlx.DB) TokenRepository {
	return &tokenRepository{db: db}
}

// Blacklist stores a revoked token until its natural expiry; a repeat
// logout with the same token is harmless.
func (r *tokenRepository) Blacklist(ctx context.Context, token string, expiresAt time.Time) error {
	query := `
		INSERT INTO token_blacklist (token, expires_at)
		VALUES ($1, $2)
		ON CONFLICT (token) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, token, expiresAt)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении токена в чёрный список: %w", err)
	}

	return nil
}

func (r *tokenRepository) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	var exists bool

	query := `SELECT EXISTS (SELECT 1 FROM token_blacklist WHERE token = $1 AND expires_at > NOW())`

	err := r.db.GetContext(ctx, &exists, query, token)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке чёрного списка: %w", err)
	}

	return exists, nil
}

func (r *tokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM token_blacklist WHERE expires_at <= NOW()`

	result, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("ошибка при очистке чёрного списка: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	return rowsAffected, nil
}
