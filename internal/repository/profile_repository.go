package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"time"

	"connections/internal/models"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetPersonalProfile(ctx context.Context, userID string) (*models.PersonalProfile, error) {
	var profile models.PersonalProfile

	query := `SELECT * FROM personal_profiles WHERE user_id = $1`

	err := r.db.GetContext(ctx, &profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("профиль пользователя %s не найден", userID)
		}
		return nil, fmt.Errorf("ошибка при получении профиля: %w", err)
	}

	return &profile, nil
}

func (r *profileRepository) GetOrganizationProfile(ctx context.Context, userID string) (*models.OrganizationProfile, error) {
	var profile models.OrganizationProfile

	query := `SELECT * FROM organization_profiles WHERE user_id = $1`

	err := r.db.GetContext(ctx, &profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("профиль организации %s не найден", userID)
		}
		return nil, fmt.Errorf("ошибка при получении профиля организации: %w", err)
	}

	return &profile, nil
}

func (r *profileRepository) CreatePersonalProfile(ctx context.Context, profile *models.PersonalProfile) error {
	profile.ProfileID = uuid.New().String()
	profile.UpdatedAt = time.Now()

	query := `
		INSERT INTO personal_profiles (profile_id, user_id, first_name, last_name, phone_number, gender, date_of_birth, bio, location, website, updated_at)
		VALUES (:profile_id, :user_id, :first_name, :last_name, :phone_number, :gender, :date_of_birth, :bio, :location, :website, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, profile)
	if err != nil {
		return fmt.Errorf("ошибка при создании профиля: %w", err)
	}

	return nil
}

func (r *profileRepository) CreateOrganizationProfile(ctx context.Context, profile *models.OrganizationProfile) error {
	profile.ProfileID = uuid.New().String()
	profile.UpdatedAt = time.Now()

	query := `
		INSERT INTO organization_profiles (profile_id, user_id, organization_name, description, industry, founded_year, location, website, updated_at)
		VALUES (:profile_id, :user_id, :organization_name, :description, :industry, :founded_year, :location, :website, :updated_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, profile)
	if err != nil {
		return fmt.Errorf("ошибка при создании профиля организации: %w", err)
	}

	return nil
}

func (r *profileRepository) UpdatePersonalProfile(ctx context.Context, profile *models.PersonalProfile) error {
	profile.UpdatedAt = time.Now()

	query := `
		UPDATE personal_profiles
		SET first_name = :first_name, last_name = :last_name, phone_number = :phone_number, gender = :gender, date_of_birth = :date_of_birth, bio = :bio, location = :location, website = :website, updated_at = :updated_at
		WHERE user_id = :user_id
	`

	result, err := r.db.NamedExecContext(ctx, query, profile)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении профиля: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("профиль пользователя %s не найден", profile.UserID)
	}

	return nil
}

func (r *profileRepository) UpdateOrganizationProfile(ctx context.Context, profile *models.OrganizationProfile) error {
	profile.UpdatedAt = time.Now()

	query := `
		UPDATE organization_profiles
		SET organization_name = :organization_name, description = :description, industry = :industry, founded_year = :founded_year, location = :location, website = :website, updated_at = :updated_at
		WHERE user_id = :user_id
	`

	result, err := r.db.NamedExecContext(ctx, query, profile)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении профиля организации: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("профиль организации %s не найден", profile.UserID)
	}

	return nil
}
