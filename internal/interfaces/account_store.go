package interfaces

import (
	"github.com/sheikh-saqib/transactions-ledger-api/internal/models"
)

// AccountStore resolves account identifiers to account records.
// The ledger mutates balances through the returned pointer, so
// implementations must hand out stable pointers for the lifetime of the
// store rather than copies.
type AccountStore interface {
	Get(accountID string) (*models.Account, bool)
}
