package main

import (
	"context"
	"errors"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"

	"github.com/CardPass-Solana/backend-infra/adapters/events"
	"github.com/CardPass-Solana/backend-infra/adapters/store"
	"github.com/CardPass-Solana/backend-infra/adapters/tokenizer"
	"github.com/CardPass-Solana/backend-infra/adapters/verifier"
	"github.com/CardPass-Solana/backend-infra/internal/config"
	"github.com/CardPass-Solana/backend-infra/ports"
	"github.com/CardPass-Solana/backend-infra/service"
	"github.com/CardPass-Solana/backend-infra/transport/http"
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	tok, err := tokenizer.NewJWTTokenizer(tokenizer.Config{
		Secret:    []byte(cfg.JWTSecret),
		Algorithm: cfg.JWTAlg,
		Issuer:    cfg.JWTIssuer,
		Audience:  cfg.JWTAudience,
	})
	if err != nil {
		logger.Error("invalid token signing configuration", "error", err)
		os.Exit(1)
	}

	var sigVerifier ports.SignatureVerifier
	switch cfg.AuthScheme {
	case "ed25519":
		sigVerifier = verifier.NewEd25519Verifier()
	case "secp256k1":
		sigVerifier = verifier.NewSecp256k1Verifier()
	default:
		logger.Error("unknown auth scheme", "scheme", cfg.AuthScheme)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wmLogger := watermill.NewSlogLogger(logger)

	var challengeStore ports.ChallengeStore
	var publisher message.Publisher

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("failed to parse redis url", "error", err)
			os.Exit(1)
		}
		redisClient := redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}

		challengeStore = store.NewRedisStore(redisClient)

		publisher, err = redisstream.NewPublisher(
			redisstream.PublisherConfig{Client: redisClient},
			wmLogger,
		)
		if err != nil {
			logger.Error("failed to create redis publisher", "error", err)
			os.Exit(1)
		}
		logger.Info("using redis challenge store", "sweep", "redis ttl")
	} else {
		challengeStore = store.NewMemoryStore()
		publisher = gochannel.NewGoChannel(gochannel.Config{}, wmLogger)
		logger.Info("using in-memory challenge store", "sweep_interval", cfg.SweepInterval)
	}

	go store.RunSweeper(ctx, challengeStore, cfg.SweepInterval, logger)

	authService := service.NewAuthService(
		challengeStore,
		tok,
		sigVerifier,
		events.NewWatermillPublisher(publisher),
		service.Options{
			ChallengeTTL:  cfg.ChallengeTTL,
			SessionTTL:    cfg.JWTTTL,
			Issuer:        cfg.JWTIssuer,
			DefaultDomain: cfg.AuthDomain,
		},
		logger,
	)

	router := http.SetupRouter(authService, http.CookieConfig{
		Name:     cfg.CookieName,
		Domain:   cfg.CookieDomain,
		Path:     cfg.CookiePath,
		Secure:   cfg.CookieSecure,
		SameSite: sameSiteFromString(cfg.CookieSameSite),
	})

	srv := &nethttp.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr, "scheme", cfg.AuthScheme)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}

func sameSiteFromString(s string) nethttp.SameSite {
	switch s {
	case "strict":
		return nethttp.SameSiteStrictMode
	case "none":
		return nethttp.SameSiteNoneMode
	default:
		return nethttp.SameSiteLaxMode
	}
}
