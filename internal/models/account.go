package models

import "github.com/shopspring/decimal"

// Account is a pre-provisioned account holding a balance.
// Balances are mutated only by the ledger while creating a transaction.
type Account struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}
