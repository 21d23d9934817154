package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/sheikh-saqib/transactions-ledger-api/internal/interfaces"
	"github.com/sheikh-saqib/transactions-ledger-api/internal/models"
)

// AccountStore is an in-memory implementation of interfaces.AccountStore.
// Accounts are pre-provisioned at construction time; there is no account
// create or delete operation. Get hands out the stored pointer so the
// ledger can mutate balances inside its own critical section.
type AccountStore struct {
	mu       sync.RWMutex // protects the map itself, not the account balances
	accounts map[string]*models.Account
}

// NewAccountStore builds a store holding the given seed accounts.
func NewAccountStore(accounts ...*models.Account) *AccountStore {
	s := &AccountStore{
		accounts: make(map[string]*models.Account, len(accounts)),
	}
	for _, a := range accounts {
		s.accounts[a.ID] = a
	}
	return s
}

// Get returns the account with the given id, or false when absent.
func (s *AccountStore) Get(accountID string) (*models.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[accountID]
	return a, ok
}

// LoadAccounts reads a JSON seed file containing an array of accounts,
// e.g. [{"id":"alice","name":"Alice","balance":"100"}].
func LoadAccounts(path string) ([]*models.Account, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read accounts file: %w", err)
	}

	var accounts []*models.Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("parse accounts file: %w", err)
	}
	return accounts, nil
}

// Compile-time check: ensure AccountStore implements interfaces.AccountStore
var _ interfaces.AccountStore = (*AccountStore)(nil)
