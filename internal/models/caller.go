package models

// Roles recognized by the ledger. Anything other than ADMIN is treated as
// a regular user.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Caller is the authenticated identity behind a request. It is produced by
// the auth layer and trusted as-is by the ledger; Role is always present
// (defaulted to USER during verification, never silently absent).
type Caller struct {
	AccountID string
	Name      string
	Role      string
}

// IsAdmin reports whether the caller holds the administrator role.
func (c Caller) IsAdmin() bool { return c.Role == RoleAdmin }
