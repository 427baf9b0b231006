package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"connections/internal/config"
	"connections/internal/repository"
)

type contextKey string

const UserIDKey contextKey = "userID"

// UserIDFromContext returns the authenticated user id, empty when the
// request came in anonymously.
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

type Middleware func(http.Handler) http.Handler

// Chain applies middlewares so the first listed runs outermost.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s за %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// publicPaths never require a token.
var publicPaths = []string{
	"/health",
	"/api/health",
	"/ws",
	"/api/auth/register-init",
	"/api/auth/login",
	"/api/auth/google",
	"/api/auth/facebook",
	"/api/auth/check-email",
	"/api/auth/verify-email/",
	"/api/auth/forgot-password/",
	"/api/auth/reset-password",
}

// optionalAuthGET paths work for guests but pick up the viewer when a
// token is present.
var optionalAuthGET = []string{
	"/api/posts",
	"/api/profiles/",
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if strings.HasSuffix(p, "/") {
			if strings.HasPrefix(path, p) {
				return true
			}
		} else if path == p {
			return true
		}
	}
	return false
}

func isOptionalAuth(r *http.Request) bool {
	if r.Method != http.MethodGet {
		return false
	}
	for _, p := range optionalAuthGET {
		if path := r.URL.Path; path == strings.TrimSuffix(p, "/") || strings.HasPrefix(path, p) {
			// own-profile and own-posts routes still need the token
			if strings.Contains(path, "/me") || strings.HasSuffix(path, "/user/me") {
				return false
			}
			return true
		}
	}
	return false
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// AuthMiddleware validates the bearer token, rejects blacklisted ones
// and puts the user id on the request context.
func AuthMiddleware(cfg *config.Config, tokenRepo repository.TokenRepository) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			optional := isOptionalAuth(r)

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				if optional {
					next.ServeHTTP(w, r)
					return
				}
				writeAuthError(w, http.StatusUnauthorized, "Требуется авторизация")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				writeAuthError(w, http.StatusUnauthorized, "Неверный формат заголовка Authorization")
				return
			}

			userID, err := parseSessionToken(cfg, tokenString)
			if err != nil {
				if optional {
					next.ServeHTTP(w, r)
					return
				}
				writeAuthError(w, http.StatusUnauthorized, "Недействительный токен")
				return
			}

			blacklisted, err := tokenRepo.IsBlacklisted(r.Context(), tokenString)
			if err != nil {
				// a storage hiccup must not lock everyone out
				log.Printf("Ошибка проверки чёрного списка токенов: %v", err)
			} else if blacklisted {
				writeAuthError(w, http.StatusUnauthorized, "Токен отозван")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseSessionToken(cfg *config.Config, tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(cfg.JWTSecretKey), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("недействительный токен")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("неверный формат claims")
	}

	userID, ok := claims["userId"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("токен не содержит userId")
	}

	return userID, nil
}
