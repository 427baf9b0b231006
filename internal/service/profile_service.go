package service

import (
	"context"
	"fmt"
	"strings"

	"connections/internal/models"
	"connections/internal/repository"
)

// ProfileView pairs the account row with whichever profile matches
// its type, Profile is nil when none has been created yet.
type ProfileView struct {
	User    *models.User `json:"user"`
	Profile interface{}  `json:"profile"`
}

type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*ProfileView, error)
	UpdatePersonalProfile(ctx context.Context, userID string, profile *models.PersonalProfile) (*models.PersonalProfile, error)
	UpdateOrganizationProfile(ctx context.Context, userID string, profile *models.OrganizationProfile) (*models.OrganizationProfile, error)
}

type profileService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
}

func NewProfileService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID string) (*ProfileView, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &ProfileView{User: user}

	switch user.AccountType {
	case "organization":
		profile, err := s.profileRepo.GetOrganizationProfile(ctx, userID)
		if err == nil {
			view.Profile = profile
		}
	default:
		profile, err := s.profileRepo.GetPersonalProfile(ctx, userID)
		if err == nil {
			view.Profile = profile
		}
	}

	return view, nil
}

func (s *profileService) UpdatePersonalProfile(ctx context.Context, userID string, profile *models.PersonalProfile) (*models.PersonalProfile, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.AccountType != "personal" {
		return nil, fmt.Errorf("аккаунт не является персональным")
	}

	profile.UserID = userID

	existing, err := s.profileRepo.GetPersonalProfile(ctx, userID)
	if err != nil || existing == nil {
		// first save after registration creates the row
		if err := s.profileRepo.CreatePersonalProfile(ctx, profile); err != nil {
			return nil, err
		}
	} else {
		profile.ProfileID = existing.ProfileID
		if err := s.profileRepo.UpdatePersonalProfile(ctx, profile); err != nil {
			return nil, err
		}
	}

	return s.profileRepo.GetPersonalProfile(ctx, userID)
}

func (s *profileService) UpdateOrganizationProfile(ctx context.Context, userID string, profile *models.OrganizationProfile) (*models.OrganizationProfile, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.AccountType != "organization" {
		return nil, fmt.Errorf("аккаунт не является организацией")
	}

	if strings.TrimSpace(profile.OrganizationName) == "" {
		return nil, fmt.Errorf("название организации обязательно")
	}

	profile.UserID = userID

	existing, err := s.profileRepo.GetOrganizationProfile(ctx, userID)
	if err != nil || existing == nil {
		if err := s.profileRepo.CreateOrganizationProfile(ctx, profile); err != nil {
			return nil, err
		}
	} else {
		profile.ProfileID = existing.ProfileID
		if err := s.profileRepo.UpdateOrganizationProfile(ctx, profile); err != nil {
			return nil, err
		}
	}

	return s.profileRepo.GetOrganizationProfile(ctx, userID)
}
