// Package auth verifies bearer tokens and exposes the resulting caller
// identity to the rest of the service. The ledger trusts the Caller it is
// handed; all verification happens here, at the boundary.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sheikh-saqib/transactions-ledger-api/internal/models"
)

// ErrInvalidToken indicates the bearer token is missing, malformed, or
// failed signature verification.
var ErrInvalidToken = errors.New("invalid token")

// Verifier validates HS256-signed bearer tokens against a shared secret.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret []byte) *Verifier {
	return &Verifier{secret: secret}
}

// Verify parses and validates a token string and extracts the Caller.
// The "sub" claim is the caller's account id and is required; "name" and
// "role" are optional, with role defaulting to USER so the ledger never
// sees an absent role.
func (v *Verifier) Verify(tokenString string) (models.Caller, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Caller{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Caller{}, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return models.Caller{}, fmt.Errorf("%w: missing sub claim", ErrInvalidToken)
	}
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)
	if role == "" {
		role = models.RoleUser
	}

	return models.Caller{AccountID: sub, Name: name, Role: role}, nil
}

// Token mints a signed token for the given caller, valid for ttl.
// Used by tests and local tooling; the service itself only verifies.
func (v *Verifier) Token(c models.Caller, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  c.AccountID,
		"name": c.Name,
		"role": c.Role,
		"exp":  time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

type callerKey struct{}

// WithCaller returns a context carrying the caller identity.
func WithCaller(ctx context.Context, c models.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFrom extracts the caller identity stored by the middleware.
func CallerFrom(ctx context.Context) (models.Caller, bool) {
	c, ok := ctx.Value(callerKey{}).(models.Caller)
	return c, ok
}

// Middleware rejects requests without a valid bearer token and stores the
// verified Caller in the request context for downstream handlers.
func (v *Verifier) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			unauthorized(w, "missing bearer token")
			return
		}

		caller, err := v.Verify(raw)
		if err != nil {
			unauthorized(w, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
	})
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
