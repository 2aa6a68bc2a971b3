package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	authhttp "github.com/realtyhub/backend/internal/auth/http"
	authservice "github.com/realtyhub/backend/internal/auth/service"
	"github.com/realtyhub/backend/internal/common/clock"
	"github.com/realtyhub/backend/internal/common/config"
	commoncrypto "github.com/realtyhub/backend/internal/common/crypto"
	"github.com/realtyhub/backend/internal/common/db"
	commonhttp "github.com/realtyhub/backend/internal/common/http"
	"github.com/realtyhub/backend/internal/common/httpmetrics"
	"github.com/realtyhub/backend/internal/common/jwtverify"
	"github.com/realtyhub/backend/internal/common/logger"
	"github.com/realtyhub/backend/internal/common/server"
	prophttp "github.com/realtyhub/backend/internal/property/http"
	proprepo "github.com/realtyhub/backend/internal/property/repository"
	propservice "github.com/realtyhub/backend/internal/property/service"
	userhttp "github.com/realtyhub/backend/internal/user/http"
	userrepo "github.com/realtyhub/backend/internal/user/repository"
	userservice "github.com/realtyhub/backend/internal/user/service"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "api", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	hasher, err := commoncrypto.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		log.Fatalf("failed to configure password hasher: %v", err)
	}

	if err := db.RunMigrations(context.Background(), cfg.DatabaseURL); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	defer pool.Close()

	users := userrepo.NewPgRepository(pool)
	properties := proprepo.NewPgRepository(pool)
	idGenerator := commoncrypto.NewUUIDGenerator()
	issuer := authservice.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL, clock.NewRealClock())

	authSvc := authservice.NewAuthService(authservice.AuthServiceDeps{
		Repo:        users,
		Hasher:      hasher,
		IDGenerator: idGenerator,
		Issuer:      issuer,
		Log:         log,
	})
	userSvc := userservice.NewService(users, log)
	propSvc := propservice.NewService(properties, idGenerator, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.Handle("/metrics", promhttp.Handler())

	rateLimiter := commonhttp.NewRateLimiter(5, 10)
	authMux := http.NewServeMux()
	authhttp.NewHandler(authSvc, log, cfg.RequestTimeout).Register(authMux)
	mux.Handle("/v1/auth/", rateLimiter.Middleware()(authMux))

	protected := http.NewServeMux()
	userhttp.NewHandler(authSvc, userSvc, log, cfg.RequestTimeout).Register(protected)
	prophttp.NewHandler(propSvc, log, cfg.RequestTimeout).Register(protected)

	authRequired := jwtverify.Middleware(cfg.JWTSecret, log)
	mux.Handle("/v1/users/", authRequired(protected))
	mux.Handle("/v1/property/", authRequired(protected))

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	handler := commonhttp.SecurityHeadersMiddleware(
		commonhttp.RecoveryMiddleware(log)(
			commonhttp.TraceIDMiddleware(
				commonhttp.MaxRequestSizeMiddleware(commonhttp.DefaultMaxRequestSize)(
					corsMiddleware.Handler(
						httpmetrics.Wrap(mux),
					),
				),
			),
		),
	)

	srv := server.New(server.DefaultConfig(cfg.HTTPPort), handler)
	server.StartWithGracefulShutdown(srv, log, "api")
}
