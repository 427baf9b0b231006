package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"connections/internal/config"
	"connections/internal/middleware"
	"connections/internal/service"
)

type Handlers struct {
	AuthService     service.AuthService
	OAuthService    service.OAuthService
	PostService     service.PostService
	ReactionService service.ReactionService
	ProfileService  service.ProfileService
	Cfg             *config.Config
	Validate        *validator.Validate
}

func NewHandlers(service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:     service.Auth,
		OAuthService:    service.OAuth,
		PostService:     service.Post,
		ReactionService: service.Reaction,
		ProfileService:  service.Profile,
		Cfg:             config,
		Validate:        validator.New(),
	}
}

// userIDFrom pulls the authenticated user id off the request context.
func userIDFrom(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

// viewerFrom returns the user id as an optional viewer pointer, nil
// for anonymous requests.
func viewerFrom(r *http.Request) *string {
	if userID := userIDFrom(r); userID != "" {
		return &userID
	}
	return nil
}
