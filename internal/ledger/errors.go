package ledger

import "errors"

// Every failure the ledger can produce is one of these sentinel values.
// They are expected, caller-recoverable conditions; the HTTP layer maps
// them to status codes.
var (
	// ErrInvalidParty — sender or receiver account does not exist.
	ErrInvalidParty = errors.New("invalid sender or receiver")

	// ErrInsufficientBalance — sender's balance is less than the amount.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidAmount — amount is zero or negative.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidType — transaction type outside the closed enumeration.
	ErrInvalidType = errors.New("invalid transaction type: must be one of transfer, payment, withdrawal, deposit")

	// ErrForbidden — caller does not hold the administrator role.
	ErrForbidden = errors.New("only admins can modify transactions")

	// ErrNotFound — no record with the given id exists.
	ErrNotFound = errors.New("transaction not found")
)
