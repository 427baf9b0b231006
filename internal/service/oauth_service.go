package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"connections/internal/config"
	"connections/internal/models"
	"connections/internal/repository"
)

// SocialLoginResult carries the session plus a hint for the client:
// a freshly created account still has an empty profile to fill in.
type SocialLoginResult struct {
	User            *models.User
	Token           string
	NeedsCompletion bool
	Prefill         map[string]string
}

type OAuthService interface {
	GoogleLogin(ctx context.Context, code string) (*SocialLoginResult, error)
	FacebookLogin(ctx context.Context, accessToken string) (*SocialLoginResult, error)
}

type oauthService struct {
	userRepo     repository.UserRepository
	profileRepo  repository.ProfileRepository
	cfg          *config.Config
	googleConfig *oauth2.Config
	httpClient   *http.Client
}

func NewOAuthService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, cfg *config.Config) OAuthService {
	return &oauthService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		cfg:         cfg,
		googleConfig: &oauth2.Config{
			ClientID:     cfg.OAuth.GoogleClientID,
			ClientSecret: cfg.OAuth.GoogleClientSecret,
			// code arrives from the browser popup flow
			RedirectURL: "postmessage",
			Scopes:      []string{"openid", "email", "profile"},
			Endpoint:    google.Endpoint,
		},
		httpClient: http.DefaultClient,
	}
}

type socialIdentity struct {
	Email     string
	FirstName string
	LastName  string
	Provider  string
}

func (s *oauthService) GoogleLogin(ctx context.Context, code string) (*SocialLoginResult, error) {
	token, err := s.googleConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("ошибка обмена кода Google: %w", err)
	}

	client := s.googleConfig.Client(ctx, token)

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса профиля Google: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Google вернул статус %d", resp.StatusCode)
	}

	var info struct {
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("ошибка разбора профиля Google: %w", err)
	}

	if info.Email == "" {
		return nil, fmt.Errorf("Google не вернул email")
	}

	return s.findOrCreate(ctx, socialIdentity{
		Email:     info.Email,
		FirstName: info.GivenName,
		LastName:  info.FamilyName,
		Provider:  "google",
	})
}

func (s *oauthService) FacebookLogin(ctx context.Context, accessToken string) (*SocialLoginResult, error) {
	endpoint := "https://graph.facebook.com/me?fields=email,first_name,last_name&access_token=" + url.QueryEscape(accessToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса профиля Facebook: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса профиля Facebook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Facebook вернул статус %d", resp.StatusCode)
	}

	var info struct {
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("ошибка разбора профиля Facebook: %w", err)
	}

	if info.Email == "" {
		return nil, fmt.Errorf("Facebook не вернул email, проверьте разрешения приложения")
	}

	return s.findOrCreate(ctx, socialIdentity{
		Email:     info.Email,
		FirstName: info.FirstName,
		LastName:  info.LastName,
		Provider:  "facebook",
	})
}

func (s *oauthService) findOrCreate(ctx context.Context, identity socialIdentity) (*SocialLoginResult, error) {
	needsCompletion := false

	user, err := s.userRepo.GetUserByEmail(ctx, identity.Email)
	if err != nil || user == nil {
		// first social login: the account gets an unusable random
		// password, the social provider stays the only entry point
		user = &models.User{
			Email:         identity.Email,
			AccountType:   "personal",
			AuthProvider:  identity.Provider,
			EmailVerified: true,
		}
		if err := s.userRepo.CreateUser(ctx, user, uuid.New().String()); err != nil {
			return nil, err
		}

		profile := &models.PersonalProfile{
			UserID:    user.UserID,
			FirstName: identity.FirstName,
			LastName:  identity.LastName,
		}
		if err := s.profileRepo.CreatePersonalProfile(ctx, profile); err != nil {
			return nil, err
		}

		needsCompletion = true
	} else if user.AuthProvider != identity.Provider {
		return nil, providerMismatchError(user.AuthProvider)
	}

	token, err := generateSessionToken(s.cfg, user.UserID)
	if err != nil {
		return nil, err
	}

	result := &SocialLoginResult{
		User:            user,
		Token:           token,
		NeedsCompletion: needsCompletion,
	}
	if needsCompletion {
		result.Prefill = map[string]string{
			"first_name": identity.FirstName,
			"last_name":  identity.LastName,
		}
	}

	return result, nil
}
