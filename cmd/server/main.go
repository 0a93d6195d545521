package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/gamehall/account-system/internal/api"
	"github.com/gamehall/account-system/internal/core/domain"
	"github.com/gamehall/account-system/internal/core/service"
	"github.com/gamehall/account-system/internal/infrastructure/config"
	mongodb "github.com/gamehall/account-system/internal/infrastructure/db/mongo"
	redisdb "github.com/gamehall/account-system/internal/infrastructure/db/redis"
	"github.com/gamehall/account-system/internal/infrastructure/queue"
	"github.com/gamehall/account-system/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	client, db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	accountRepo := mongodb.NewAccountRepository(db)
	adminRepo := mongodb.NewAdminRepository(db)
	settingsRepo := mongodb.NewSettingsRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	if err := accountRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create account indexes")
	}
	if err := adminRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create admin indexes")
	}

	seedSuperAdmin(ctx, cfg, adminRepo)

	// --- Services ---
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.UserTokenTTL, cfg.AdminTokenTTL)

	settings := service.NewSettingsResolver(log,
		service.NewStoreSource(settingsRepo),
		service.EnvSource{},
		service.NewDefaultWebviewSource(cfg.Port),
	)

	authService := service.NewAuthService(accountRepo, tokens, settings, service.DemoAccount{
		Identifier: cfg.Demo.Identifier,
		Password:   cfg.Demo.Password,
	}, log)

	audit := queue.NewAuditDispatcher(0, auditRepo, log)
	audit.Start(ctx)

	statsCache := redisdb.NewStatsCache(rdb, log)
	adminService := service.NewAdminService(accountRepo, adminRepo, tokens, audit, statsCache, log)

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		Auth:   authService,
		Admin:  adminService,
		Tokens: tokens,
		Mongo:  db,
		Redis:  rdb,
		Logger: log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// seedSuperAdmin creates the first super admin when credentials are
// configured and no admin exists yet.
func seedSuperAdmin(ctx context.Context, cfg *config.Config, repo *mongodb.MongoAdminRepository) {
	log := logger.Get()

	if cfg.Admin.Phone == "" || cfg.Admin.Password == "" {
		return
	}

	hasAny, err := repo.HasAny(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to check for existing admins")
		return
	}
	if hasAny {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash seed admin password")
		return
	}

	now := time.Now().UTC()
	admin := &domain.Admin{
		Phone:        cfg.Admin.Phone,
		Username:     cfg.Admin.Phone,
		PasswordHash: string(hash),
		Role:         domain.RoleSuperAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := repo.Create(ctx, admin); err != nil {
		log.Error().Err(err).Msg("failed to seed super admin")
		return
	}
	log.Info().Str("phone", cfg.Admin.Phone).Msg("seeded initial super admin")
}
