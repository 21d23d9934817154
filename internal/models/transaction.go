package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a transaction record.
type TransactionType string

const (
	TypeTransfer   TransactionType = "transfer"
	TypePayment    TransactionType = "payment"
	TypeWithdrawal TransactionType = "withdrawal"
	TypeDeposit    TransactionType = "deposit"
)

// Valid reports whether t is a member of the closed set of transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeTransfer, TypePayment, TypeWithdrawal, TypeDeposit:
		return true
	}
	return false
}

// Transaction is a single recorded transfer between two accounts.
// Every field except Type is immutable once the record has been created.
type Transaction struct {
	ID         int64           `json:"id"`
	SenderID   string          `json:"sender_id"`
	ReceiverID string          `json:"receiver_id"`
	Amount     decimal.Decimal `json:"amount"`
	Type       TransactionType `json:"type"`
	CreatedAt  time.Time       `json:"created_at"` // UTC, assigned at creation
}
