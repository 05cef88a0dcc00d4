//go:build !integration

package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"social-growth-backend/internal/config"
	"social-growth-backend/internal/domain"
)

func signInServer(t *testing.T, hits *int32, expiresIn int64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/token" || r.URL.Query().Get("grant_type") != "password" {
			t.Errorf("unexpected sign-in request %s %s", r.Method, r.URL)
		}
		if r.Header.Get("apikey") != "anon-key" {
			t.Errorf("apikey header = %q", r.Header.Get("apikey"))
		}
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		if creds["email"] != "svc@example.com" || creds["password"] != "svc-pass" {
			t.Errorf("unexpected credentials %v", creds)
		}
		atomic.AddInt32(hits, 1)
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-1",
			"expires_in":   expiresIn,
			"user":         map[string]string{"id": "user-1"},
		})
	}))
}

func testStoreConfig(url string) config.StoreConfig {
	return config.StoreConfig{
		URL:             url,
		AnonKey:         "anon-key",
		ServiceEmail:    "svc@example.com",
		ServicePassword: "svc-pass",
	}
}

func TestSession_SignsInAndCaches(t *testing.T) {
	var hits int32
	srv := signInServer(t, &hits, 3600)
	defer srv.Close()

	s := NewSession(testStoreConfig(srv.URL), srv.Client())
	ctx := context.Background()

	tok, err := s.Token(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok != "tok-1" {
		t.Errorf("token = %q, want tok-1", tok)
	}

	// A fresh credential must be served from memory.
	if _, err := s.Token(ctx); err != nil {
		t.Fatalf("second call errored: %v", err)
	}
	id, err := s.UserID(ctx)
	if err != nil {
		t.Fatalf("UserID errored: %v", err)
	}
	if id != "user-1" {
		t.Errorf("user id = %q, want user-1", id)
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("sign-in hit %d times, want 1", got)
	}
}

func TestSession_RefreshesExpiredCredential(t *testing.T) {
	var hits int32
	// expires_in of zero means the credential is already stale; every
	// call has to sign in again.
	srv := signInServer(t, &hits, 0)
	defer srv.Close()

	s := NewSession(testStoreConfig(srv.URL), srv.Client())
	ctx := context.Background()

	if _, err := s.Token(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Token(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Errorf("sign-in hit %d times, want 2", got)
	}
}

func TestSession_SignInFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	s := NewSession(testStoreConfig(srv.URL), srv.Client())
	if _, err := s.Token(context.Background()); !errors.Is(err, domain.ErrStoreFailure) {
		t.Fatalf("err = %v, want ErrStoreFailure", err)
	}
}
