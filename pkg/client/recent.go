package client

import (
	"slices"
	"strings"
)

// DefaultRecentAccounts caps the recent-accounts list.
const DefaultRecentAccounts = 5

// Account is a previously used sign-in, shown for quick switching.
type Account struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	TenantSlug  string `json:"tenant_slug,omitempty"`
	LastUsedAt  int64  `json:"last_used_at"`
}

// RecentAccounts is a most-recent-first list of accounts, unique by email.
type RecentAccounts struct {
	Limit    int       `json:"-"`
	Accounts []Account `json:"accounts"`
}

func (r *RecentAccounts) limit() int {
	if r.Limit <= 0 {
		return DefaultRecentAccounts
	}
	return r.Limit
}

// Add moves acct to the front, replacing an entry with the same email.
func (r *RecentAccounts) Add(acct Account) {
	r.Remove(acct.Email)
	r.Accounts = slices.Insert(r.Accounts, 0, acct)
	if len(r.Accounts) > r.limit() {
		r.Accounts = r.Accounts[:r.limit()]
	}
}

// Remove drops the account with email, if present.
func (r *RecentAccounts) Remove(email string) {
	r.Accounts = slices.DeleteFunc(r.Accounts, func(a Account) bool {
		return strings.EqualFold(a.Email, email)
	})
}

// List returns a copy of the accounts, most recent first.
func (r *RecentAccounts) List() []Account {
	return slices.Clone(r.Accounts)
}
