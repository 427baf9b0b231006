package service

import (
	"connections/internal/config"
	"connections/internal/mailer"
	"connections/internal/repository"
	"connections/internal/storage"
)

// Broadcaster pushes an event to every connected realtime client.
// It is injected into the services so fan-out is explicit and
// mockable; the process owns exactly one implementation.
type Broadcaster interface {
	Emit(event string, payload interface{})
}

// NopBroadcaster drops every event; used when no realtime layer is wired.
type NopBroadcaster struct{}

func (NopBroadcaster) Emit(event string, payload interface{}) {}

type Service struct {
	Auth     AuthService
	OAuth    OAuthService
	Post     PostService
	Reaction ReactionService
	Profile  ProfileService
}

func NewService(rep *repository.Repository, cfg *config.Config, store storage.Storage, mail mailer.Mailer, broadcaster Broadcaster) *Service {
	if broadcaster == nil {
		broadcaster = NopBroadcaster{}
	}

	return &Service{
		Auth:     NewAuthService(rep.User, rep.Profile, rep.OTP, rep.Token, mail, cfg),
		OAuth:    NewOAuthService(rep.User, rep.Profile, cfg),
		Post:     NewPostService(rep.Post, rep.Comment, store, broadcaster, cfg),
		Reaction: NewReactionService(rep.Reaction, broadcaster),
		Profile:  NewProfileService(rep.User, rep.Profile),
	}
}
