// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"social-growth-backend/internal/config"
	"social-growth-backend/internal/infra/email"
	"social-growth-backend/internal/infra/fulfillment"
	"social-growth-backend/internal/infra/i18n"
	"social-growth-backend/internal/infra/logging"
	"social-growth-backend/internal/infra/metrics"
	"social-growth-backend/internal/infra/processor"
	red "social-growth-backend/internal/infra/redis"
	"social-growth-backend/internal/infra/store"
	"social-growth-backend/internal/infra/web"
	"social-growth-backend/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, relaxed redaction)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("dev mode enabled")
	}

	// ---- Hosted record store ----
	session := store.NewSession(cfg.Store, &http.Client{Timeout: 10 * time.Second})
	storeClient := store.NewClient(cfg.Store, session)

	customerRepo := store.NewCustomerRepo(storeClient)
	orderRepo := store.NewOrderRepo(storeClient)
	usedCardRepo := store.NewUsedCardRepo(storeClient)
	productRepo := store.NewProductRepo(storeClient)
	pendingRepo := store.NewPendingOrderRepo(storeClient)
	unsubscribeRepo := store.NewUnsubscribeRepo(storeClient)

	// ---- Redis (optional: no URL means no rate limiting) ----
	var rateLimiter *red.RateLimiter
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer redisClient.Close()
		rateLimiter = red.NewRateLimiter(redisClient)
	} else {
		logger.Warn().Msg("redis.url not set; rate limiting disabled")
	}

	// ---- Outbound adapters ----
	proc := processor.NewClient(cfg.Processor.SecretKey)
	verifier := processor.NewWebhookVerifier(cfg.Processor.WebhookSecret)
	fulfill := fulfillment.NewClient(cfg.Fulfillment.URL, cfg.Fulfillment.Key)

	mailer, err := email.NewMailer(email.NewClient(cfg.Email.APIKey), cfg.Email)
	if err != nil {
		log.Fatalf("mailer: %v", err)
	}

	catalog, err := i18n.NewCatalog(i18n.LocalesFS)
	if err != nil {
		log.Fatalf("i18n: %v", err)
	}

	// ---- Use cases ----
	accountUC := usecase.NewAccountUseCase(customerRepo, unsubscribeRepo, mailer, logger)
	checkoutUC := usecase.NewCheckoutUseCase(productRepo, usedCardRepo, orderRepo, pendingRepo, proc, fulfill, accountUC, cfg.Checkout, cfg.Processor, logger)
	orderUC := usecase.NewOrderUseCase(orderRepo, fulfill, cfg.Checkout, logger)
	webhookUC := usecase.NewWebhookUseCase(pendingRepo, orderRepo, proc, fulfill, accountUC, cfg.Checkout, logger)
	contactUC := usecase.NewContactUseCase(unsubscribeRepo, mailer, logger)

	// ---- HTTP server ----
	metrics.MustRegister()
	auth := web.NewAuthManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.AccessTTL)
	srv := web.NewServer(accountUC, orderUC, checkoutUC, webhookUC, contactUC, auth, verifier, catalog, rateLimiter, cfg.Server, cfg.Auth.APIKey, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
}
