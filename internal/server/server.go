// Package server is the HTTP boundary of the ledger. Handlers only decode
// requests, call the ledger, and encode results; every rule about balances,
// ids, and roles lives in the ledger itself.
package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/sheikh-saqib/transactions-ledger-api/internal/auth"
	"github.com/sheikh-saqib/transactions-ledger-api/internal/interfaces"
	"github.com/sheikh-saqib/transactions-ledger-api/internal/ledger"
)

// Server binds the ledger and its collaborators to the HTTP routes.
type Server struct {
	ledger   *ledger.Ledger
	accounts interfaces.AccountStore
	verifier *auth.Verifier
	log      *zap.Logger
}

func NewServer(l *ledger.Ledger, accounts interfaces.AccountStore, verifier *auth.Verifier, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{ledger: l, accounts: accounts, verifier: verifier, log: log}
}

// Router builds the route table. Everything except /health sits behind the
// bearer-token middleware.
func (s *Server) Router() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("POST /transactions", s.createTransaction)
	api.HandleFunc("GET /transactions", s.listTransactions)
	api.HandleFunc("GET /transactions/me", s.listMyTransactions)
	api.HandleFunc("GET /transactions/{id}", s.getTransaction)
	api.HandleFunc("GET /indexed-transactions/{id}", s.getTransactionIndexed)
	api.HandleFunc("PUT /transactions/{id}", s.updateTransaction)
	api.HandleFunc("DELETE /transactions/{id}", s.deleteTransaction)

	root := http.NewServeMux()
	root.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	root.Handle("/", s.verifier.Middleware(api))
	return root
}
