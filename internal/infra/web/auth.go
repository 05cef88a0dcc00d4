package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"social-growth-backend/internal/domain"
)

// ===== Session/JWT primitives =====

type AuthManager struct {
	secret    []byte
	tokenTTL  time.Duration
	accessTTL time.Duration
	now       func() time.Time
}

func NewAuthManager(secret string, tokenTTL, accessTTL time.Duration) *AuthManager {
	return &AuthManager{
		secret:    []byte(secret),
		tokenTTL:  tokenTTL,
		accessTTL: accessTTL,
		now:       time.Now,
	}
}

// CustomerClaims is the session token minted at login. ID is the
// customer's row id in the store.
type CustomerClaims struct {
	ID int64 `json:"id"`
	jwt.RegisteredClaims
}

// Mint signs a session token for a logged-in customer.
func (a *AuthManager) Mint(customerID int64) (string, error) {
	now := a.now()
	claims := CustomerClaims{
		ID: customerID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenTTL)),
			Subject:   "customer",
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// MintAccess signs a short-lived token handed out in exchange for the
// static API key.
func (a *AuthManager) MintAccess() (string, error) {
	now := a.now()
	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.accessTTL)),
		Subject:   "access",
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// VerifyRequest checks that the request carries any valid bearer token
// minted by this manager (a customer session or an access token).
func (a *AuthManager) VerifyRequest(r *http.Request) error {
	_, err := a.ParseFromRequest(r)
	return err
}

// ParseFromRequest reads and validates the bearer token.
// Authorization: Bearer <jwt>
func (a *AuthManager) ParseFromRequest(r *http.Request) (*CustomerClaims, error) {
	hdr := r.Header.Get("Authorization")
	if hdr == "" || !strings.HasPrefix(strings.ToLower(hdr), "bearer ") {
		return nil, domain.ErrInvalidToken
	}
	return a.parse(strings.TrimSpace(hdr[7:]))
}

func (a *AuthManager) parse(tok string) (*CustomerClaims, error) {
	claims := &CustomerClaims{}
	tkn, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return a.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
