// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.

// Package storage holds the accounts known to a client. Token material belongs to the flow
// handlers; this store only answers "who is this account" for request context building and
// lets handlers record the accounts they sign in.
//
// Manager is a cache.Serializer: the whole store can be exported and replaced through
// Marshal and Unmarshal so that a cache.ExportReplace accessor can persist it.
package storage

import (
	"encoding/json"
	"errors"
	"sort"
	"sync"

	"github.com/AzureAD/msal-public-client-go/apps/cache"
	"github.com/AzureAD/msal-public-client-go/apps/internal/shared"
)

var _ cache.Serializer = (*Manager)(nil)

// Reader is the read-only view of the cache used while building a request context.
type Reader interface {
	// Account returns the cached account with the given home account ID.
	Account(homeAccountID string) (shared.Account, bool)
}

// Store is the cache handle given to flow handlers. Implementations must be safe for
// concurrent use; dispatches for the same client may run at the same time.
type Store interface {
	Reader
	// Accounts returns every cached account.
	Accounts() []shared.Account
	// WriteAccount adds or replaces an account.
	WriteAccount(account shared.Account) error
	// RemoveAccount removes an account. Removing an unknown account is not an error.
	RemoveAccount(account shared.Account)
}

// contract is the serialized form of the store.
type contract struct {
	Accounts map[string]shared.Account `json:"Account"`
}

// Manager is an in-memory Store.
type Manager struct {
	mu       sync.RWMutex
	accounts map[string]shared.Account
}

// New is the constructor for Manager.
func New() *Manager {
	return &Manager{accounts: map[string]shared.Account{}}
}

// Account implements Reader. When the same home account is cached for several realms the
// entry with the lowest cache key wins, so lookups are deterministic.
func (m *Manager) Account(homeAccountID string) (shared.Account, bool) {
	if homeAccountID == "" {
		return shared.Account{}, false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var (
		found  shared.Account
		minKey string
		ok     bool
	)
	for key, acc := range m.accounts {
		if acc.HomeAccountID != homeAccountID {
			continue
		}
		if !ok || key < minKey {
			found, minKey, ok = acc, key, true
		}
	}
	return found, ok
}

// Accounts implements Store. Accounts are returned in cache key order.
func (m *Manager) Accounts() []shared.Account {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.accounts))
	for k := range m.accounts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	accounts := make([]shared.Account, 0, len(keys))
	for _, k := range keys {
		accounts = append(accounts, m.accounts[k])
	}
	return accounts
}

// WriteAccount implements Store.
func (m *Manager) WriteAccount(account shared.Account) error {
	if account.HomeAccountID == "" {
		return errors.New("storage: account must have a home account ID")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.Key()] = account
	return nil
}

// RemoveAccount implements Store.
func (m *Manager) RemoveAccount(account shared.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.accounts, account.Key())
}

// Marshal implements cache.Marshaler.
func (m *Manager) Marshal() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return json.Marshal(contract{Accounts: m.accounts})
}

// Unmarshal implements cache.Unmarshaler. It replaces everything in the store.
func (m *Manager) Unmarshal(b []byte) error {
	c := contract{}
	if err := json.Unmarshal(b, &c); err != nil {
		return err
	}
	if c.Accounts == nil {
		c.Accounts = map[string]shared.Account{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts = c.Accounts
	return nil
}
