package app

import (
	"log"

	"connections/internal/config"
	"connections/internal/database"
	"connections/internal/mailer"
	"connections/internal/realtime"
	"connections/internal/repository"
	"connections/internal/service"
	"connections/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service, *realtime.Hub) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Не удалось инициализировать MinIO: %v", err)
	}

	// websocket hub for broadcast events
	hub := realtime.NewHub()

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, minioClient, mailer.NewMailer(cfg), hub)

	return db, repo, services, hub
}
