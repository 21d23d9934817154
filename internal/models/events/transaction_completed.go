package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/transactions-ledger-api/internal/models"
)

// TransactionCompleted is emitted after a transfer has been applied to both
// account balances and appended to the ledger.
type TransactionCompleted struct {
	EventID       uuid.UUID              `json:"event_id"`
	TransactionID int64                  `json:"transaction_id"`
	SenderID      string                 `json:"sender_id"`
	ReceiverID    string                 `json:"receiver_id"`
	Amount        decimal.Decimal        `json:"amount"`
	Type          models.TransactionType `json:"type"`
	OccurredAt    time.Time              `json:"occurred_at"`
}
