package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"social-growth-backend/internal/domain"
	"social-growth-backend/internal/infra/logging"
	"social-growth-backend/internal/infra/metrics"
	"social-growth-backend/internal/usecase"
)

const maxBodyBytes = 1 << 16

func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Locale   string `json:"locale"`
}

func (s *Server) loginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeBody(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		customer, err := s.accounts.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidCredentials) {
				respondError(w, http.StatusUnauthorized, s.msg("login_invalid", req.Locale))
				return
			}
			s.serverError(w, r, err)
			return
		}

		token, err := s.auth.Mint(customer.ID)
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		respondOK(w, s.msg("login_success", req.Locale), map[string]any{
			"token": token,
			"name":  customer.Name,
		})
	}
}

func (s *Server) dashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := s.auth.ParseFromRequest(r)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		ctx := logging.WithClientID(r.Context(), claims.ID)

		orders, err := s.orders.Dashboard(ctx, claims.ID)
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		respondOK(w, "", map[string]any{"orders": orders})
	}
}

type newOrderRequest struct {
	Locale string `json:"locale"`
}

func (s *Server) newOrderHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := s.auth.ParseFromRequest(r)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		ctx := logging.WithClientID(r.Context(), claims.ID)

		var req newOrderRequest
		_ = decodeBody(r, &req) // body is optional

		order, err := s.orders.Reorder(ctx, claims.ID)
		switch {
		case err == nil:
			respondOK(w, s.msg("order_success", req.Locale), map[string]any{"order": order})
		case errors.Is(err, domain.ErrNoOrders):
			respondError(w, http.StatusConflict, s.msg("order_none", req.Locale))
		case errors.Is(err, domain.ErrOrderLimitReached):
			respondError(w, http.StatusConflict, s.msg("order_limit", req.Locale))
		case errors.Is(err, domain.ErrCooldownActive):
			respondError(w, http.StatusConflict, s.msg("order_cooldown", req.Locale))
		default:
			s.serverError(w, r, err)
		}
	}
}

// tokenHandler exchanges the static API key for a short-lived access
// token.
func (s *Server) tokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey == "" || r.Header.Get("X-Api-Key") != s.apiKey {
			respondError(w, http.StatusUnauthorized, "invalid api key")
			return
		}
		token, err := s.auth.MintAccess()
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		respondOK(w, "", map[string]any{"token": token})
	}
}

type recoveryRequest struct {
	Email  string `json:"email"`
	Locale string `json:"locale"`
}

func (s *Server) recoveryPasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recoveryRequest
		if err := decodeBody(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, s.msg("email_required", req.Locale))
			return
		}

		err := s.accounts.RecoverPassword(r.Context(), req.Email, req.Locale)
		switch {
		case err == nil:
			respondOK(w, s.msg("recovery_sent", req.Locale), nil)
		case errors.Is(err, domain.ErrValidation):
			respondError(w, http.StatusBadRequest, s.msg("email_required", req.Locale))
		case errors.Is(err, domain.ErrNotFound):
			respondError(w, http.StatusNotFound, s.msg("recovery_not_found", req.Locale))
		default:
			s.serverError(w, r, err)
		}
	}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Locale  string `json:"locale"`
}

func (s *Server) contactHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req contactRequest
		if err := decodeBody(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, s.msg("contact_error", req.Locale))
			return
		}

		err := s.contact.Relay(r.Context(), req.Name, req.Email, req.Message)
		switch {
		case err == nil:
			respondOK(w, s.msg("contact_success", req.Locale), nil)
		case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrUnauthorized):
			respondError(w, http.StatusBadRequest, s.msg("contact_error", req.Locale))
		default:
			logging.With(r.Context(), s.log).Error().Err(err).Msg("contact relay failed")
			respondError(w, http.StatusBadGateway, s.msg("contact_unexpected", req.Locale))
		}
	}
}

type unsubscribeRequest struct {
	Email  string `json:"email"`
	Locale string `json:"locale"`
}

func (s *Server) unsubscribeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req unsubscribeRequest
		if err := decodeBody(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, s.msg("email_required", req.Locale))
			return
		}

		err := s.accounts.Unsubscribe(r.Context(), req.Email)
		switch {
		case err == nil:
			respondOK(w, s.msg("unsubscribe_success", req.Locale), nil)
		case errors.Is(err, domain.ErrValidation):
			respondError(w, http.StatusBadRequest, s.msg("email_required", req.Locale))
		default:
			logging.With(r.Context(), s.log).Error().Err(err).Msg("unsubscribe failed")
			respondError(w, http.StatusInternalServerError, s.msg("unsubscribe_unexpected", req.Locale))
		}
	}
}

type checkoutRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Username        string `json:"username"`
	Locale          string `json:"locale"`
	Platform        string `json:"platform"`
	Action          string `json:"action"`
	Quantity        int    `json:"quantity"`
	PaymentMethodID string `json:"payment_method_id"`
}

func (s *Server) checkoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkoutRequest
		if err := decodeBody(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, s.msg("checkout_failed", req.Locale))
			return
		}

		result, err := s.checkout.Checkout(r.Context(), usecase.CheckoutParams{
			Name:            req.Name,
			Email:           req.Email,
			Username:        req.Username,
			Locale:          req.Locale,
			Platform:        req.Platform,
			Action:          req.Action,
			Quantity:        req.Quantity,
			PaymentMethodID: req.PaymentMethodID,
		})
		switch {
		case err == nil:
			if result.Free {
				respondOK(w, s.msg("card_validated", req.Locale), map[string]any{
					"order_id":     result.OrderID,
					"subscription": result.SubscriptionID,
				})
				return
			}
			respondOK(w, s.msg("success_purchase", req.Locale), map[string]any{
				"client_secret": result.ClientSecret,
			})
		case errors.Is(err, domain.ErrValidation):
			respondError(w, http.StatusBadRequest, s.msg("checkout_failed", req.Locale))
		case errors.Is(err, domain.ErrPriceNotFound):
			respondError(w, http.StatusBadRequest, s.msg("price_invalid", req.Locale))
		case errors.Is(err, domain.ErrTrialAlreadyUsed):
			respondError(w, http.StatusForbidden, s.msg("trial_used", req.Locale))
		default:
			logging.With(r.Context(), s.log).Error().Err(err).Msg("checkout failed")
			respondError(w, http.StatusBadGateway, s.msg("checkout_failed", req.Locale))
		}
	}
}

const signatureHeader = "Stripe-Signature"

func (s *Server) webhookHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			respondError(w, http.StatusBadRequest, "unreadable payload")
			return
		}
		defer r.Body.Close()

		event, err := s.verifier.VerifyAndParse(payload, r.Header.Get(signatureHeader))
		if err != nil {
			metrics.IncWebhookEvent("invalid")
			logging.With(r.Context(), s.log).Warn().Err(err).Msg("webhook rejected")
			respondError(w, http.StatusBadRequest, "invalid signature")
			return
		}

		outcome, err := s.webhook.HandleEvent(r.Context(), event)
		if err != nil {
			// Non-2xx makes the processor redeliver; promotion is
			// idempotent so retries are safe.
			s.serverError(w, r, err)
			return
		}
		respondOK(w, "", map[string]any{"outcome": outcome})
	}
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	logging.With(r.Context(), s.log).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	respondError(w, http.StatusInternalServerError, "internal error")
}
