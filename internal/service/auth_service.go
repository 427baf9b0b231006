package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"connections/internal/config"
	"connections/internal/mailer"
	"connections/internal/models"
	"connections/internal/repository"
)

// ErrEmailNotVerified is returned by Login for an email/password
// account that has not confirmed its address yet; a fresh OTP has
// already been sent when it is returned.
var ErrEmailNotVerified = errors.New("email не подтверждён")

type RegisterInitResult struct {
	Resent bool
}

type AuthService interface {
	RegisterInit(ctx context.Context, email, password, accountType string) (*RegisterInitResult, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	SendVerificationOTP(ctx context.Context, email string) error
	VerifyEmailOTP(ctx context.Context, email, otp string) (*models.User, string, error)
	CheckEmail(ctx context.Context, email string) (bool, string, error)
	Logout(ctx context.Context, token string) error
	SendPasswordResetOTP(ctx context.Context, email string) error
	VerifyPasswordResetOTP(ctx context.Context, email, otp string) (string, error)
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
	GenerateSessionToken(userID string) (string, error)
	RunBlacklistSweep(ctx context.Context)
}

type authService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	otpRepo     repository.OTPRepository
	tokenRepo   repository.TokenRepository
	mail        mailer.Mailer
	cfg         *config.Config
}

func NewAuthService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, otpRepo repository.OTPRepository, tokenRepo repository.TokenRepository, mail mailer.Mailer, cfg *config.Config) AuthService {
	return &authService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		otpRepo:     otpRepo,
		tokenRepo:   tokenRepo,
		mail:        mail,
		cfg:         cfg,
	}
}

// generateOTP draws six digits from a cryptographic source.
func generateOTP() (string, error) {
	digits := make([]byte, 6)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("ошибка генерации кода: %w", err)
		}
		digits[i] = byte(n.Int64()) + '0'
	}
	return string(digits), nil
}

func providerMismatchError(provider string) error {
	return fmt.Errorf("аккаунт с этим email уже существует, войдите через %s", provider)
}

func (s *authService) issueVerificationOTP(ctx context.Context, email string) error {
	otp, err := generateOTP()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(s.cfg.VerificationOTPExpiry)
	if err := s.otpRepo.Issue(ctx, repository.OTPVerification, email, otp, expiresAt); err != nil {
		return err
	}

	return s.mail.SendVerificationEmail(email, otp)
}

func (s *authService) RegisterInit(ctx context.Context, email, password, accountType string) (*RegisterInitResult, error) {
	existing, err := s.userRepo.GetUserByEmail(ctx, email)
	if err == nil && existing != nil {
		if existing.AuthProvider != "email" {
			return nil, providerMismatchError(existing.AuthProvider)
		}
		if !existing.EmailVerified {
			// same email again before confirming: resend a fresh code
			if err := s.issueVerificationOTP(ctx, email); err != nil {
				return nil, err
			}
			return &RegisterInitResult{Resent: true}, nil
		}
		return nil, fmt.Errorf("пользователь с email %s уже существует", email)
	}

	if accountType == "" {
		accountType = "personal"
	}

	user := &models.User{
		Email:         email,
		AccountType:   accountType,
		AuthProvider:  "email",
		EmailVerified: false,
	}

	if err := s.userRepo.CreateUser(ctx, user, password); err != nil {
		return nil, err
	}

	if err := s.issueVerificationOTP(ctx, email); err != nil {
		return nil, err
	}

	return &RegisterInitResult{Resent: false}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, email, password)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка аутентификации: %w", err)
	}

	if user.AuthProvider == "email" && !user.EmailVerified {
		if err := s.issueVerificationOTP(ctx, email); err != nil {
			log.Printf("Не удалось отправить код подтверждения для %s: %v", email, err)
		}
		return user, "", ErrEmailNotVerified
	}

	token, err := s.GenerateSessionToken(user.UserID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *authService) SendVerificationOTP(ctx context.Context, email string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	if user.AuthProvider != "email" {
		return fmt.Errorf("этот аккаунт использует вход через %s", user.AuthProvider)
	}

	return s.issueVerificationOTP(ctx, email)
}

func (s *authService) VerifyEmailOTP(ctx context.Context, email, otp string) (*models.User, string, error) {
	if err := s.otpRepo.Consume(ctx, repository.OTPVerification, email, otp); err != nil {
		return nil, "", err
	}

	user, err := s.userRepo.MarkEmailVerified(ctx, email)
	if err != nil {
		return nil, "", err
	}

	token, err := s.GenerateSessionToken(user.UserID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *authService) CheckEmail(ctx context.Context, email string) (bool, string, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		// only a missing row means the email is free, a query failure
		// must surface
		if strings.Contains(err.Error(), "не найден") {
			return true, "", nil
		}
		return false, "", err
	}

	return false, user.AuthProvider, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	// the original expiry goes into the blacklist so the row can be
	// swept once the token would have died anyway
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return fmt.Errorf("недействительный токен")
	}

	expiresAt, err := parsed.Claims.GetExpirationTime()
	if err != nil || expiresAt == nil {
		return fmt.Errorf("недействительный токен")
	}

	return s.tokenRepo.Blacklist(ctx, token, expiresAt.Time)
}

func (s *authService) SendPasswordResetOTP(ctx context.Context, email string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	if user.AuthProvider != "email" {
		return fmt.Errorf("этот аккаунт использует вход через %s", user.AuthProvider)
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(s.cfg.ResetOTPExpiry)
	if err := s.otpRepo.Issue(ctx, repository.OTPPasswordReset, email, otp, expiresAt); err != nil {
		return err
	}

	return s.mail.SendPasswordResetEmail(email, otp)
}

func (s *authService) VerifyPasswordResetOTP(ctx context.Context, email, otp string) (string, error) {
	if err := s.otpRepo.Consume(ctx, repository.OTPPasswordReset, email, otp); err != nil {
		return "", err
	}

	// short-lived token scoped to the email claim only, not a session
	claims := jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(s.cfg.ResetTokenDuration).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	resetToken, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return resetToken, nil
}

func (s *authService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	token, err := jwt.Parse(resetToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})
	if err != nil || !token.Valid {
		return fmt.Errorf("недействительный или просроченный reset token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return fmt.Errorf("неверный формат claims")
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return fmt.Errorf("недействительный или просроченный reset token")
	}

	if err := s.userRepo.UpdatePassword(ctx, email, newPassword); err != nil {
		return err
	}

	if err := s.otpRepo.DeleteAll(ctx, repository.OTPPasswordReset, email); err != nil {
		log.Printf("Не удалось удалить коды сброса для %s: %v", email, err)
	}

	return nil
}

func (s *authService) GenerateSessionToken(userID string) (string, error) {
	return generateSessionToken(s.cfg, userID)
}

func generateSessionToken(cfg *config.Config, userID string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"exp":    time.Now().Add(cfg.SessionTokenDuration).Unix(),
		"iat":    time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, nil
}

// RunBlacklistSweep deletes expired blacklist rows on a fixed interval
// until the context is cancelled.
func (s *authService) RunBlacklistSweep(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.BlacklistSweepPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.tokenRepo.DeleteExpired(ctx)
			if err != nil {
				log.Printf("Ошибка очистки чёрного списка токенов: %v", err)
				continue
			}
			if removed > 0 {
				log.Printf("Очистка чёрного списка: удалено %d токенов", removed)
			}
		}
	}
}
