package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/transactions-ledger-api/internal/auth"
	"github.com/sheikh-saqib/transactions-ledger-api/internal/ledger"
	"github.com/sheikh-saqib/transactions-ledger-api/internal/models"
	"github.com/sheikh-saqib/transactions-ledger-api/internal/storage/memory"
)

var (
	aliceCaller = models.Caller{AccountID: "alice", Name: "Alice", Role: models.RoleUser}
	bobCaller   = models.Caller{AccountID: "bob", Name: "Bob", Role: models.RoleUser}
	adminCaller = models.Caller{AccountID: "admin", Name: "Admin", Role: models.RoleAdmin}
)

func newTestServer(t *testing.T) (http.Handler, *auth.Verifier) {
	t.Helper()
	store := memory.NewAccountStore(
		&models.Account{ID: "alice", Name: "Alice", Balance: decimal.NewFromInt(100)},
		&models.Account{ID: "bob", Name: "Bob", Balance: decimal.NewFromInt(50)},
		&models.Account{ID: "admin", Name: "Admin", Balance: decimal.NewFromInt(0)},
	)
	verifier := auth.NewVerifier([]byte("test-secret"))
	l := ledger.NewLedger(store, nil, nil)
	return NewServer(l, store, verifier, nil).Router(), verifier
}

func tokenFor(t *testing.T, v *auth.Verifier, c models.Caller) string {
	t.Helper()
	token, err := v.Token(c, time.Minute)
	require.NoError(t, err)
	return token
}

// do runs a request against the router and decodes the JSON response body.
func do(t *testing.T, router http.Handler, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var decoded map[string]any
	if rr.Body.Len() > 0 && rr.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &decoded))
	}
	return rr.Code, decoded
}

func doList(t *testing.T, router http.Handler, path, token string) (int, []map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &decoded))
	return rr.Code, decoded
}

func TestHealthIsPublic(t *testing.T) {
	router, _ := newTestServer(t)
	code, body := do(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

func TestTransactionsRequireAuth(t *testing.T) {
	router, _ := newTestServer(t)
	code, _ := do(t, router, http.MethodGet, "/transactions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestCreateTransaction(t *testing.T) {
	router, v := newTestServer(t)
	alice := tokenFor(t, v, aliceCaller)

	code, body := do(t, router, http.MethodPost, "/transactions", alice, map[string]any{
		"receiver_id": "bob",
		"amount":      40,
	})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "Transaction successful", body["message"])

	// The caller is the sender; the type defaulted to transfer.
	code, rec := do(t, router, http.MethodGet, "/transactions/1", alice, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "alice", rec["sender_id"])
	assert.Equal(t, "bob", rec["receiver_id"])
	assert.Equal(t, "transfer", rec["type"])
}

func TestCreateTransactionFailures(t *testing.T) {
	router, v := newTestServer(t)
	alice := tokenFor(t, v, aliceCaller)

	code, body := do(t, router, http.MethodPost, "/transactions", alice, map[string]any{
		"receiver_id": "ghost",
		"amount":      10,
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid sender or receiver", body["message"])

	code, body = do(t, router, http.MethodPost, "/transactions", alice, map[string]any{
		"receiver_id": "bob",
		"amount":      10_000,
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "insufficient balance", body["message"])

	code, body = do(t, router, http.MethodPost, "/transactions", alice, map[string]any{
		"receiver_id": "bob",
		"amount":      -5,
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "amount must be positive", body["message"])
}

func TestListResolvesDisplayNames(t *testing.T) {
	router, v := newTestServer(t)
	alice := tokenFor(t, v, aliceCaller)

	code, _ := do(t, router, http.MethodPost, "/transactions", alice, map[string]any{
		"receiver_id": "bob",
		"amount":      5,
	})
	require.Equal(t, http.StatusCreated, code)

	code, list := doList(t, router, "/transactions", alice)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, list, 1)

	// The caller's own side renders as the caller's name, the counterparty
	// as its account name; raw ids stay untouched.
	assert.Equal(t, "Alice", list[0]["sender"])
	assert.Equal(t, "Bob", list[0]["receiver"])
	assert.Equal(t, "alice", list[0]["sender_id"])
	assert.Equal(t, "bob", list[0]["receiver_id"])
}

func TestGetTransactionScanAndIndexedVariants(t *testing.T) {
	router, v := newTestServer(t)
	alice := tokenFor(t, v, aliceCaller)

	code, _ := do(t, router, http.MethodPost, "/transactions", alice, map[string]any{
		"receiver_id": "bob",
		"amount":      5,
	})
	require.Equal(t, http.StatusCreated, code)

	for _, path := range []string{"/transactions/1", "/indexed-transactions/1"} {
		code, rec := do(t, router, http.MethodGet, path, alice, nil)
		assert.Equal(t, http.StatusOK, code, path)
		assert.Equal(t, float64(1), rec["id"], path)
	}

	for _, path := range []string{"/transactions/99", "/indexed-transactions/99", "/transactions/abc"} {
		code, body := do(t, router, http.MethodGet, path, alice, nil)
		assert.Equal(t, http.StatusNotFound, code, path)
		assert.Equal(t, "Transaction not found", body["message"], path)
	}
}

func TestListMyTransactions(t *testing.T) {
	router, v := newTestServer(t)
	alice := tokenFor(t, v, aliceCaller)
	bob := tokenFor(t, v, bobCaller)
	admin := tokenFor(t, v, adminCaller)

	code, _ := do(t, router, http.MethodPost, "/transactions", alice, map[string]any{
		"receiver_id": "bob", "amount": 5,
	})
	require.Equal(t, http.StatusCreated, code)
	code, _ = do(t, router, http.MethodPost, "/transactions", bob, map[string]any{
		"receiver_id": "alice", "amount": 2,
	})
	require.Equal(t, http.StatusCreated, code)

	code, mine := doList(t, router, "/transactions/me", alice)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, mine, 2)

	code, mine = doList(t, router, "/transactions/me", admin)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, mine)
}

func TestUpdateTransaction(t *testing.T) {
	router, v := newTestServer(t)
	alice := tokenFor(t, v, aliceCaller)
	admin := tokenFor(t, v, adminCaller)

	code, _ := do(t, router, http.MethodPost, "/transactions", alice, map[string]any{
		"receiver_id": "bob", "amount": 5,
	})
	require.Equal(t, http.StatusCreated, code)

	// Non-admin callers are rejected on role alone.
	code, body := do(t, router, http.MethodPut, "/transactions/1", alice, map[string]any{"type": "payment"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "only admins can modify transactions", body["message"])

	// Out-of-enumeration type is rejected.
	code, _ = do(t, router, http.MethodPut, "/transactions/1", admin, map[string]any{"type": "refund"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = do(t, router, http.MethodPut, "/transactions/1", admin, map[string]any{"type": "payment"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Transaction updated", body["message"])
	tx := body["transaction"].(map[string]any)
	assert.Equal(t, "payment", tx["type"])

	// Unknown record.
	code, _ = do(t, router, http.MethodPut, "/transactions/99", admin, map[string]any{"type": "payment"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestDeleteTransaction(t *testing.T) {
	router, v := newTestServer(t)
	alice := tokenFor(t, v, aliceCaller)
	admin := tokenFor(t, v, adminCaller)

	code, _ := do(t, router, http.MethodPost, "/transactions", alice, map[string]any{
		"receiver_id": "bob", "amount": 5,
	})
	require.Equal(t, http.StatusCreated, code)

	code, _ = do(t, router, http.MethodDelete, "/transactions/1", alice, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	// Still retrievable after the forbidden attempt.
	code, _ = do(t, router, http.MethodGet, "/transactions/1", alice, nil)
	require.Equal(t, http.StatusOK, code)

	code, body := do(t, router, http.MethodDelete, "/transactions/1", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Transaction deleted", body["message"])
	tx := body["transaction"].(map[string]any)
	assert.Equal(t, float64(1), tx["id"])

	code, _ = do(t, router, http.MethodGet, "/transactions/1", alice, nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = do(t, router, http.MethodGet, "/indexed-transactions/1", alice, nil)
	assert.Equal(t, http.StatusNotFound, code)
}
