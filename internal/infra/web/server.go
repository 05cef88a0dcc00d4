package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"social-growth-backend/internal/config"
	"social-growth-backend/internal/domain/ports/adapter"
	"social-growth-backend/internal/infra/i18n"
	"social-growth-backend/internal/infra/redis"
	"social-growth-backend/internal/usecase"
)

// Per-endpoint rate limits (requests per window per caller).
const (
	rateLimitWindow   = time.Minute
	checkoutRateLimit = 10
	loginRateLimit    = 20
	contactRateLimit  = 5
)

type Server struct {
	accounts usecase.AccountUseCase
	orders   usecase.OrderUseCase
	checkout usecase.CheckoutUseCase
	webhook  usecase.WebhookUseCase
	contact  usecase.ContactUseCase

	auth     *AuthManager
	verifier adapter.WebhookVerifier
	catalog  *i18n.Catalog
	limiter  *redis.RateLimiter

	apiKey         string
	allowedOrigins []string
	log            *zerolog.Logger
}

func NewServer(
	accounts usecase.AccountUseCase,
	orders usecase.OrderUseCase,
	checkout usecase.CheckoutUseCase,
	webhook usecase.WebhookUseCase,
	contact usecase.ContactUseCase,
	auth *AuthManager,
	verifier adapter.WebhookVerifier,
	catalog *i18n.Catalog,
	limiter *redis.RateLimiter,
	cfg config.ServerConfig,
	apiKey string,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		accounts:       accounts,
		orders:         orders,
		checkout:       checkout,
		webhook:        webhook,
		contact:        contact,
		auth:           auth,
		verifier:       verifier,
		catalog:        catalog,
		limiter:        limiter,
		apiKey:         apiKey,
		allowedOrigins: cfg.AllowedOrigins,
		log:            logger,
	}
}

func (s *Server) msg(key, locale string) string {
	return s.catalog.Message(key, locale)
}

// tokenGuard requires the short-lived token handed out by /token.
func (s *Server) tokenGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := s.auth.VerifyRequest(r); err != nil {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Routes assembles the public router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(requestLogMiddleware(s.log))
	r.Use(recoverMiddleware(s.log))
	r.Use(corsMiddleware(s.allowedOrigins))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondOK(w, "ok", nil)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(rateLimitMiddleware(s.limiter, "login", loginRateLimit, rateLimitWindow, s.log))
		r.Post("/login", s.loginHandler())
	})
	r.Get("/dashboard", s.dashboardHandler())
	r.Post("/new-order", s.newOrderHandler())
	r.Post("/token", s.tokenHandler())
	r.Post("/recovery-password", s.recoveryPasswordHandler())
	r.Group(func(r chi.Router) {
		r.Use(rateLimitMiddleware(s.limiter, "contact", contactRateLimit, rateLimitWindow, s.log))
		r.Post("/contact", s.contactHandler())
	})
	r.Post("/unsubscribe", s.unsubscribeHandler())
	r.Group(func(r chi.Router) {
		r.Use(rateLimitMiddleware(s.limiter, "checkout", checkoutRateLimit, rateLimitWindow, s.log))
		r.Use(s.tokenGuard)
		r.Post("/checkout", s.checkoutHandler())
	})
	r.Post("/webhook", s.webhookHandler())

	return r
}
