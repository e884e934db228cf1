package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/aicode/auth-platform/internal/config"
	"github.com/aicode/auth-platform/internal/database"
	"github.com/aicode/auth-platform/internal/handler"
	"github.com/aicode/auth-platform/internal/middleware"
	"github.com/aicode/auth-platform/internal/queue"
	"github.com/aicode/auth-platform/internal/repository"
	"github.com/aicode/auth-platform/internal/router"
	"github.com/aicode/auth-platform/internal/service"
	"github.com/aicode/auth-platform/internal/utils"
)

// cleanupInterval controls how often expired and revoked refresh
// tokens are swept from the database.
const cleanupInterval = time.Hour

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	codec, err := utils.NewTokenCodec(
		cfg.JWTSecret, cfg.JWTRefresh, cfg.JWTIssuer, cfg.JWTAudience,
		time.Duration(cfg.AccessTTLMin)*time.Minute,
		time.Duration(cfg.RefreshTTLDays)*24*time.Hour,
	)
	if err != nil {
		log.Fatalf("token codec: %v", err)
	}
	hasher := utils.NewHasher(cfg.BcryptCost)

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	userSvc := service.NewUserService(users, tokens, hasher, codec)
	authSvc := service.NewAuthService(userSvc, tokens, hasher, codec)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), config.NewRedisClient())

	a := handler.NewAuthHandler(userSvc, authSvc)
	router.RegisterRoutes(e)
	router.RegisterAuth(e, a, codec, limiter)

	// Audit consumer runs for the life of the process (reconnect loop inside).
	go func() {
		if err := queue.StartAuthConsumer(); err != nil {
			log.Printf("auth-consumer stopped: %v", err)
		}
	}()

	// Periodic sweep of expired and revoked refresh tokens.
	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			n, err := tokens.CleanupExpired(ctx)
			cancel()
			if err != nil {
				log.Printf("token cleanup: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("token cleanup: removed %d rows", n)
			}
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
