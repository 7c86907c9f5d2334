package main

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	_ "github.com/petrescuehub/rescuehub-api/api/swagger"
	"github.com/petrescuehub/rescuehub-api/internal/handler"
	"github.com/petrescuehub/rescuehub-api/internal/repository"
	"github.com/petrescuehub/rescuehub-api/internal/router"
	"github.com/petrescuehub/rescuehub-api/internal/service"
	"github.com/petrescuehub/rescuehub-api/pkg/cache"
	"github.com/petrescuehub/rescuehub-api/pkg/config"
	"github.com/petrescuehub/rescuehub-api/pkg/database"
	"github.com/petrescuehub/rescuehub-api/pkg/logger"
)

// @title RescueHub API
// @version 1.0.0
// @description Pet adoption marketplace backend
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		repo := repository.NewCacheRepository(redisClient, logr)
		defer repo.Close() //nolint:errcheck
		cacheRepo = repo
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.PetListTTL, logr, cfg.Cache.Enabled)

	userRepo := repository.NewUserRepository(db)
	petRepo := repository.NewPetRepository(db)
	adoptionRepo := repository.NewAdoptionRepository(db)
	shelterRepo := repository.NewShelterRepository(db)
	lostFoundRepo := repository.NewLostFoundRepository(db)
	donationRepo := repository.NewDonationRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "rescuehub-api",
	})
	userSvc := service.NewUserService(userRepo, validate, logr)
	petSvc := service.NewPetService(petRepo, shelterRepo, cacheSvc, validate, logr)
	adoptionSvc := service.NewAdoptionService(adoptionRepo, petRepo, db, cacheSvc, metricsSvc, validate, logr)
	shelterSvc := service.NewShelterService(shelterRepo, validate, logr)
	lostFoundSvc := service.NewLostFoundService(lostFoundRepo, validate, logr)
	donationSvc := service.NewDonationService(donationRepo, shelterRepo, validate, logr)

	engine := router.New(router.Options{
		Config:  cfg,
		Logger:  logr,
		Auth:    authSvc,
		Metrics: metricsSvc,

		AuthHandler:      handler.NewAuthHandler(authSvc),
		UserHandler:      handler.NewUserHandler(userSvc),
		PetHandler:       handler.NewPetHandler(petSvc),
		AdoptionHandler:  handler.NewAdoptionHandler(adoptionSvc),
		ShelterHandler:   handler.NewShelterHandler(shelterSvc),
		LostFoundHandler: handler.NewLostFoundHandler(lostFoundSvc),
		DonationHandler:  handler.NewDonationHandler(donationSvc),
		MetricsHandler:   handler.NewMetricsHandler(metricsSvc, db),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := engine.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
