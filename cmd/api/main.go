// Command api runs the CRM HTTP server.
//
// @title                       CRM API
// @version                     1.0
// @description                 Multi-tenant customers and leads with ownership-based access.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/leadbook/crm-api/internal/api"
	"github.com/leadbook/crm-api/internal/api/handler"
	"github.com/leadbook/crm-api/internal/core/ports"
	"github.com/leadbook/crm-api/internal/core/service"
	"github.com/leadbook/crm-api/internal/infrastructure/db/mongo"
	"github.com/leadbook/crm-api/internal/infrastructure/db/redis"
	"github.com/leadbook/crm-api/internal/infrastructure/password"
	"github.com/leadbook/crm-api/internal/infrastructure/token"
	"github.com/leadbook/crm-api/internal/pkg/config"
	"github.com/leadbook/crm-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{Service: "crm-api"})
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "crm-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	users := mongo.NewUserRepository(db)
	customers := mongo.NewCustomerRepository(db)
	leads := mongo.NewLeadRepository(db)
	if err := mongo.EnsureIndexes(ctx, users, customers, leads); err != nil {
		return err
	}

	readiness := map[string]handler.DependencyCheck{
		"mongodb": func(ctx context.Context) error { return client.Ping(ctx, nil) },
		"redis":   nil,
	}

	var cache ports.IdentityCache
	idc, err := redis.Open(ctx, redis.Config{
		Addr:        cfg.Redis.Addr,
		DB:          cfg.Redis.DB,
		IdentityTTL: cfg.Redis.IdentityTTL,
	})
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, identity cache disabled")
	} else {
		defer idc.Close()
		cache = idc
		readiness["redis"] = idc.Ping
		log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.IdentityTTL).Msg("identity cache enabled")
	}

	tokens := token.NewJWT(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	hasher := password.NewBcrypt(cfg.BcryptCost)

	e := api.NewRouter(api.Deps{
		Auth:      service.NewAuthService(users, tokens, hasher, log),
		Customers: service.NewCustomerService(customers, leads, log),
		Leads:     service.NewLeadService(customers, leads, log),
		Identity:  service.NewIdentityResolver(tokens, users, cache, log),
		Readiness: readiness,
		Cookie:    handler.CookieOptions{TTL: cfg.Auth.CookieTTL, Secure: cfg.IsProduction()},
		Log:       log,
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(sctx); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
