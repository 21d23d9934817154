package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/transactions-ledger-api/internal/auth"
	"github.com/sheikh-saqib/transactions-ledger-api/internal/ledger"
	"github.com/sheikh-saqib/transactions-ledger-api/internal/models"
)

// transactionView is the wire shape of a record plus the display-only
// sender/receiver names. Names are resolved per request and never stored in
// the ledger.
type transactionView struct {
	models.Transaction
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
}

// viewOf renders a record for a specific caller. The caller's own account
// shows the caller's name instead of a self reference; other parties are
// resolved through the account store, falling back to the raw id.
func (s *Server) viewOf(rec models.Transaction, caller models.Caller) transactionView {
	return transactionView{
		Transaction: rec,
		Sender:      s.displayName(rec.SenderID, caller),
		Receiver:    s.displayName(rec.ReceiverID, caller),
	}
}

func (s *Server) displayName(accountID string, caller models.Caller) string {
	if accountID == caller.AccountID {
		return caller.Name
	}
	if acct, ok := s.accounts.Get(accountID); ok {
		return acct.Name
	}
	return accountID
}

func (s *Server) viewsOf(recs []models.Transaction, caller models.Caller) []transactionView {
	views := make([]transactionView, len(recs))
	for i, rec := range recs {
		views[i] = s.viewOf(rec, caller)
	}
	return views
}

// createTransaction handles POST /transactions. The authenticated caller is
// always the sender; the body supplies the rest.
func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.CallerFrom(r.Context())

	var req struct {
		ReceiverID string                 `json:"receiver_id"`
		Amount     decimal.Decimal        `json:"amount"`
		Type       models.TransactionType `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := s.ledger.Create(caller.AccountID, req.ReceiverID, req.Amount, req.Type)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"id":      id,
		"message": "Transaction successful",
	})
}

// listTransactions handles GET /transactions.
func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.CallerFrom(r.Context())
	writeJSON(w, http.StatusOK, s.viewsOf(s.ledger.GetAll(), caller))
}

// listMyTransactions handles GET /transactions/me.
func (s *Server) listMyTransactions(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.CallerFrom(r.Context())
	writeJSON(w, http.StatusOK, s.viewsOf(s.ledger.GetByUser(caller.AccountID), caller))
}

// getTransaction handles GET /transactions/{id} via the linear-scan path.
func (s *Server) getTransaction(w http.ResponseWriter, r *http.Request) {
	s.respondOne(w, r, s.ledger.GetByID)
}

// getTransactionIndexed handles GET /indexed-transactions/{id} via the
// id-index path. Same contract as getTransaction.
func (s *Server) getTransactionIndexed(w http.ResponseWriter, r *http.Request) {
	s.respondOne(w, r, s.ledger.GetByIDIndexed)
}

func (s *Server) respondOne(w http.ResponseWriter, r *http.Request, lookup func(int64) (models.Transaction, bool)) {
	caller, _ := auth.CallerFrom(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Transaction not found")
		return
	}

	rec, ok := lookup(id)
	if !ok {
		writeMessage(w, http.StatusNotFound, "Transaction not found")
		return
	}
	writeJSON(w, http.StatusOK, s.viewOf(rec, caller))
}

// updateTransaction handles PUT /transactions/{id}. Only the type field is
// honored; anything else in the body is ignored.
func (s *Server) updateTransaction(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.CallerFrom(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	var req struct {
		Type *models.TransactionType `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := s.ledger.Update(id, caller, ledger.UpdateFields{Type: req.Type})
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "Transaction updated",
		"transaction": s.viewOf(rec, caller),
	})
}

// deleteTransaction handles DELETE /transactions/{id}.
func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	caller, _ := auth.CallerFrom(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	rec, err := s.ledger.Delete(id, caller)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "Transaction deleted",
		"transaction": s.viewOf(rec, caller),
	})
}
