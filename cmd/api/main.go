package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"connections/cmd/app"
	"connections/internal/config"
	handlers "connections/internal/handler"
	"connections/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, repo, services, hub := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(services, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// background workers
	go hub.Run()
	go services.Auth.RunBlacklistSweep(ctx)

	router := mux.NewRouter()

	// setting up routes
	router.HandleFunc("/", handlers.HomeHandler).Methods(http.MethodGet)
	router.HandleFunc("/health", handlers.HealthHandler(db, hub)).Methods(http.MethodGet)
	router.HandleFunc("/api/health", handlers.HealthHandler(db, hub)).Methods(http.MethodGet)

	router.HandleFunc("/ws", hub.ServeWS).Methods(http.MethodGet)

	router.HandleFunc("/api/auth/register-init", handler.Register).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", handler.Login).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/google", handler.GoogleLogin).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/facebook", handler.FacebookLogin).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/check-email", handler.CheckEmail).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/verify-email/send-otp", handler.SendVerificationOTP).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/verify-email/verify-otp", handler.VerifyEmailOTP).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/forgot-password/send-otp", handler.SendPasswordResetOTP).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/forgot-password/verify-otp", handler.VerifyPasswordResetOTP).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/reset-password", handler.ResetPassword).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/logout", handler.Logout).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/me", handler.Me).Methods(http.MethodGet)
	router.HandleFunc("/api/auth/verify", handler.VerifyToken).Methods(http.MethodGet)

	router.HandleFunc("/api/posts", handler.GetFeed).Methods(http.MethodGet)
	router.HandleFunc("/api/posts", handler.CreatePost).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/user/{userId}", handler.GetUserPosts).Methods(http.MethodGet)
	router.HandleFunc("/api/posts/{postId}/react", handler.ReactToPost).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/{postId}/react", handler.RemovePostReaction).Methods(http.MethodDelete)
	router.HandleFunc("/api/posts/{postId}/like", handler.LikePost).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/{postId}/like", handler.UnlikePost).Methods(http.MethodDelete)
	router.HandleFunc("/api/posts/{postId}/comments", handler.GetComments).Methods(http.MethodGet)
	router.HandleFunc("/api/posts/{postId}/comments", handler.AddComment).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/{postId}/comments/{commentId}/react", handler.ReactToComment).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/{postId}/comments/{commentId}/react", handler.RemoveCommentReaction).Methods(http.MethodDelete)
	router.HandleFunc("/api/posts/{postId}/share", handler.SharePost).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/{postId}/save", handler.SavePost).Methods(http.MethodPost)
	router.HandleFunc("/api/posts/{postId}/save", handler.UnsavePost).Methods(http.MethodDelete)

	router.HandleFunc("/api/profiles/me/profile", handler.GetMyProfile).Methods(http.MethodGet)
	router.HandleFunc("/api/profiles/{userId}", handler.GetProfile).Methods(http.MethodGet)
	router.HandleFunc("/api/profiles/personal/{userId}", handler.UpdatePersonalProfile).Methods(http.MethodPut)
	router.HandleFunc("/api/profiles/organization/{userId}", handler.UpdateOrganizationProfile).Methods(http.MethodPut)

	router.HandleFunc("/api/uploads", handler.UploadMedia).Methods(http.MethodPost)

	handlerChain := middleware.Chain(
		router,
		middleware.Logging,
		middleware.CORS,
		middleware.AuthMiddleware(cfg, repo.Token),
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
