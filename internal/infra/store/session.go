package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"social-growth-backend/internal/config"
	"social-growth-backend/internal/domain"
)

// refreshLeeway renews the credential slightly before it actually
// expires so in-flight requests never carry a stale token.
const refreshLeeway = 30 * time.Second

// Session owns the renewable access credential for the hosted record
// store. It signs in with the service identity's email/password and
// hands out a currently-valid bearer token, refreshing on expiry.
// Refresh runs under the mutex, so concurrent callers that both observe
// an expired credential coalesce on a single sign-in.
type Session struct {
	baseURL  string
	anonKey  string
	email    string
	password string
	client   *http.Client

	mu        sync.Mutex
	token     string
	userID    string
	expiresAt time.Time
}

func NewSession(cfg config.StoreConfig, client *http.Client) *Session {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Session{
		baseURL:  cfg.URL,
		anonKey:  cfg.AnonKey,
		email:    cfg.ServiceEmail,
		password: cfg.ServicePassword,
		client:   client,
	}
}

// Token returns a currently-valid access credential.
func (s *Session) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != "" && time.Now().Before(s.expiresAt.Add(-refreshLeeway)) {
		return s.token, nil
	}
	if err := s.refreshLocked(ctx); err != nil {
		return "", err
	}
	return s.token, nil
}

// UserID returns the service identity's id, used to scope inserted rows.
func (s *Session) UserID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID != "" && time.Now().Before(s.expiresAt.Add(-refreshLeeway)) {
		return s.userID, nil
	}
	if err := s.refreshLocked(ctx); err != nil {
		return "", err
	}
	return s.userID, nil
}

type signInResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	User        struct {
		ID string `json:"id"`
	} `json:"user"`
}

func (s *Session) refreshLocked(ctx context.Context) error {
	body, err := json.Marshal(map[string]string{
		"email":    s.email,
		"password": s.password,
	})
	if err != nil {
		return fmt.Errorf("%w: marshal sign-in: %v", domain.ErrStoreFailure, err)
	}

	url := s.baseURL + "/auth/v1/token?grant_type=password"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build sign-in request: %v", domain.ErrStoreFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", s.anonKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: sign-in: %v", domain.ErrStoreFailure, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read sign-in response: %v", domain.ErrStoreFailure, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: sign-in status %d", domain.ErrStoreFailure, resp.StatusCode)
	}

	var out signInResponse
	if err := json.Unmarshal(raw, &out); err != nil || out.AccessToken == "" {
		return fmt.Errorf("%w: parse sign-in response", domain.ErrStoreFailure)
	}

	s.token = out.AccessToken
	s.userID = out.User.ID
	s.expiresAt = credentialExpiry(out)
	return nil
}

// credentialExpiry prefers expires_in; when the store omits it, the exp
// claim of the credential itself is authoritative.
func credentialExpiry(out signInResponse) time.Time {
	if out.ExpiresIn > 0 {
		return time.Now().Add(time.Duration(out.ExpiresIn) * time.Second)
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(out.AccessToken, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			return exp.Time
		}
	}
	// No expiry information at all: refresh on every call.
	return time.Now()
}
