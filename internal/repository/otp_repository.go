package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"connections/internal/models"
)

type otpRepository struct {
	db *sqlx.DB
}

func NewOTPRepository(db *sqlx.DB) OTPRepository {
	return &otpRepository{db: db}
}

// Issue invalidates every previous code for the email by deleting it,
// so only the newest code is ever valid.
func (r *otpRepository) Issue(ctx context.Context, kind OTPKind, email, code string, expiresAt time.Time) error {
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE email = $1`, kind)

	_, err := r.db.ExecContext(ctx, deleteQuery, email)
	if err != nil {
		return fmt.Errorf("ошибка при удалении старых кодов: %w", err)
	}

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (otp_id, email, otp, expires_at, created_at, used)
		VALUES ($1, $2, $3, $4, NOW(), FALSE)
	`, kind)

	_, err = r.db.ExecContext(ctx, insertQuery, uuid.New().String(), email, code, expiresAt)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении кода: %w", err)
	}

	return nil
}

// Consume finds the newest unused, unexpired code and marks it used.
// A used or expired code never matches again.
func (r *otpRepository) Consume(ctx context.Context, kind OTPKind, email, code string) error {
	selectQuery := fmt.Sprintf(`
		SELECT * FROM %s
		WHERE email = $1 AND otp = $2 AND expires_at > NOW() AND used = FALSE
		ORDER BY created_at DESC
		LIMIT 1
	`, kind)

	var record models.OTP
	err := r.db.GetContext(ctx, &record, selectQuery, email, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("недействительный или просроченный код")
		}
		return fmt.Errorf("ошибка при поиске кода: %w", err)
	}

	updateQuery := fmt.Sprintf(`UPDATE %s SET used = TRUE WHERE otp_id = $1`, kind)

	_, err = r.db.ExecContext(ctx, updateQuery, record.OTPID)
	if err != nil {
		return fmt.Errorf("ошибка при отметке кода: %w", err)
	}

	return nil
}

func (r *otpRepository) DeleteAll(ctx context.Context, kind OTPKind, email string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE email = $1`, kind)

	_, err := r.db.ExecContext(ctx, query, email)
	if err != nil {
		return fmt.Errorf("ошибка при удалении кодов: %w", err)
	}

	return nil
}
