//go:build !integration

package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"social-growth-backend/internal/domain"
	"social-growth-backend/internal/domain/model"
)

// storeHandler fakes the record store: the auth endpoint always signs
// in, and table handlers are registered per test.
func storeHandler(t *testing.T, tables map[string]http.HandlerFunc) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-1",
			"expires_in":   3600,
			"user":         map[string]string{"id": "user-1"},
		})
	})
	for table, h := range tables {
		mux.HandleFunc("/rest/v1/"+table, h)
	}
	return mux
}

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	cfg := testStoreConfig(srv.URL)
	return NewClient(cfg, NewSession(cfg, srv.Client()))
}

func TestCustomerRepo_FindByEmail(t *testing.T) {
	srv := httptest.NewServer(storeHandler(t, map[string]http.HandlerFunc{
		tableCustomers: func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
				t.Errorf("Authorization = %q", got)
			}
			switch r.URL.Query().Get("email") {
			case "eq.ana@example.com":
				w.Write([]byte(`[{"id": 7, "name": "Ana", "email": "ana@example.com", "password": "pw"}]`))
			default:
				w.Write([]byte(`[]`))
			}
		},
	}))
	defer srv.Close()

	repo := NewCustomerRepo(newTestClient(t, srv))
	ctx := context.Background()

	c, err := repo.FindByEmail(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID != 7 || c.Name != "Ana" {
		t.Errorf("customer = %+v", c)
	}

	if _, err := repo.FindByEmail(ctx, "ghost@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPendingOrderRepo_MarkPaid(t *testing.T) {
	var patches []string
	srv := httptest.NewServer(storeHandler(t, map[string]http.HandlerFunc{
		tablePendingOrders: func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPatch {
				t.Errorf("method = %s, want PATCH", r.Method)
			}
			q := r.URL.Query()
			if q.Get("success") != "eq.false" {
				t.Errorf("missing single-shot success filter, query %v", q)
			}
			patches = append(patches, q.Get("payment_intent"))
			// First confirmation matches; the repeat matches nothing.
			if len(patches) == 1 {
				w.Write([]byte(`[{"id": 3, "email": "luc@example.com", "platform": "tiktok", "quantity": 1000, "payment_intent": "pi_1", "success": true}]`))
				return
			}
			w.Write([]byte(`[]`))
		},
	}))
	defer srv.Close()

	repo := NewPendingOrderRepo(newTestClient(t, srv))
	ctx := context.Background()

	p, err := repo.MarkPaid(ctx, "pi_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Platform != "tiktok" || !p.Success {
		t.Errorf("pending = %+v", p)
	}

	if _, err := repo.MarkPaid(ctx, "pi_1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("repeat confirmation err = %v, want ErrNotFound", err)
	}
}

func TestOrderRepo_Insert(t *testing.T) {
	var inserted map[string]any
	srv := httptest.NewServer(storeHandler(t, map[string]http.HandlerFunc{
		tableOrders: func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("method = %s, want POST", r.Method)
			}
			json.NewDecoder(r.Body).Decode(&inserted)
			w.WriteHeader(http.StatusCreated)
		},
	}))
	defer srv.Close()

	repo := NewOrderRepo(newTestClient(t, srv))
	err := repo.Insert(context.Background(), &model.Order{
		ClientID:   7,
		ExternalID: "ext-9",
		Platform:   "instagram",
		Action:     "likes",
		Quantity:   100,
		URL:        "https://www.instagram.com/ana",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted["order_id"] != "ext-9" || inserted["social"] != "instagram" || inserted["service"] != "likes" {
		t.Errorf("row payload = %v", inserted)
	}
	if inserted["user_id"] != "user-1" {
		t.Errorf("rows must carry the service identity, got %v", inserted["user_id"])
	}
}

func TestProductRepo_Price(t *testing.T) {
	srv := httptest.NewServer(storeHandler(t, map[string]http.HandlerFunc{
		tableProducts: func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			// Keep the store's historical column spelling.
			if !strings.HasPrefix(q.Get("plataform"), "eq.") {
				t.Errorf("expected a plataform filter, query %v", q)
			}
			if q.Get("quantity") == "eq.100" {
				w.Write([]byte(`[{"id": 1, "plataform": "instagram", "quantity": 100, "price": 0}]`))
				return
			}
			w.Write([]byte(`[]`))
		},
	}))
	defer srv.Close()

	repo := NewProductRepo(newTestClient(t, srv))
	ctx := context.Background()

	price, err := repo.Price(ctx, "instagram", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price != 0 {
		t.Errorf("price = %d, want the free tier's 0", price)
	}

	if _, err := repo.Price(ctx, "instagram", 777); !errors.Is(err, domain.ErrPriceNotFound) {
		t.Fatalf("err = %v, want ErrPriceNotFound", err)
	}
}

func TestStoreFailureWrapping(t *testing.T) {
	srv := httptest.NewServer(storeHandler(t, map[string]http.HandlerFunc{
		tableCustomers: func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "permission denied", http.StatusForbidden)
		},
	}))
	defer srv.Close()

	repo := NewCustomerRepo(newTestClient(t, srv))
	if _, err := repo.FindByEmail(context.Background(), "ana@example.com"); !errors.Is(err, domain.ErrStoreFailure) {
		t.Fatalf("err = %v, want ErrStoreFailure", err)
	}
}
