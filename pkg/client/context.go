package client

import (
	"slices"
	"sync"
	"time"

	"github.com/mmynk/lostfound/pkg/api"
)

// Session is the signed-in user.
type Session struct {
	Token     string       `json:"token"`
	ExpiresAt int64        `json:"expires_at"`
	User      *api.Profile `json:"user"`
	Tenant    *api.Tenant  `json:"tenant,omitempty"`
}

// Expired reports whether the token is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt > 0 && now.Unix() >= s.ExpiresAt
}

// State is everything the application keeps between runs.
type State struct {
	Server      string           `json:"server,omitempty"`
	Session     *Session         `json:"session,omitempty"`
	Preferences *api.Preferences `json:"preferences,omitempty"`
	Recent      RecentAccounts   `json:"recent"`
}

func (s State) clone() State {
	out := s
	if s.Session != nil {
		sess := *s.Session
		out.Session = &sess
	}
	if s.Preferences != nil {
		p := *s.Preferences
		out.Preferences = &p
	}
	out.Recent.Accounts = slices.Clone(s.Recent.Accounts)
	return out
}

// AppContext owns the client-side application state: the session, cached
// preferences and recent accounts. Every change is written through to its
// LocalStore. It is safe for concurrent use.
type AppContext struct {
	store LocalStore
	now   func() time.Time

	mu    sync.RWMutex
	state State
	subs  map[int]func(State)
	next  int
}

// Open loads the persisted state. An expired session is dropped.
func Open(store LocalStore) (*AppContext, error) {
	app := &AppContext{
		store: store,
		now:   time.Now,
		subs:  make(map[int]func(State)),
	}
	if err := store.Load(&app.state); err != nil {
		return nil, err
	}
	if app.state.Session != nil && app.state.Session.Expired(app.now()) {
		app.state.Session = nil
	}
	return app, nil
}

// Token returns the session token, or "" when signed out.
func (a *AppContext) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.state.Session == nil {
		return ""
	}
	return a.state.Session.Token
}

// Session returns a copy of the current session, or nil.
func (a *AppContext) Session() *Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.state.Session == nil {
		return nil
	}
	s := *a.state.Session
	return &s
}

// State returns a copy of the whole state.
func (a *AppContext) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state.clone()
}

// Server returns the remembered server URL.
func (a *AppContext) Server() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state.Server
}

// SetServer remembers the server URL.
func (a *AppContext) SetServer(url string) error {
	return a.update(func(s *State) { s.Server = url })
}

// SignIn stores a new session and records the account as most recent.
func (a *AppContext) SignIn(session Session) error {
	return a.update(func(s *State) {
		s.Session = &session
		acct := Account{LastUsedAt: a.now().Unix()}
		if session.User != nil {
			acct.Email = session.User.Email
			acct.DisplayName = session.User.DisplayName
		}
		if session.Tenant != nil {
			acct.TenantSlug = session.Tenant.Slug
		}
		if acct.Email != "" {
			s.Recent.Add(acct)
		}
	})
}

// SignOut clears the session and cached preferences. Recent accounts stay.
func (a *AppContext) SignOut() error {
	return a.update(func(s *State) {
		s.Session = nil
		s.Preferences = nil
	})
}

// Preferences returns the cached preferences, or nil if never loaded.
func (a *AppContext) Preferences() *api.Preferences {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.state.Preferences == nil {
		return nil
	}
	p := *a.state.Preferences
	return &p
}

// SetPreferences caches prefs.
func (a *AppContext) SetPreferences(prefs *api.Preferences) error {
	return a.update(func(s *State) {
		if prefs == nil {
			s.Preferences = nil
			return
		}
		p := *prefs
		s.Preferences = &p
	})
}

// RecentAccounts returns the recent accounts, most recent first.
func (a *AppContext) RecentAccounts() []Account {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state.Recent.List()
}

// ForgetAccount removes email from the recent accounts.
func (a *AppContext) ForgetAccount(email string) error {
	return a.update(func(s *State) { s.Recent.Remove(email) })
}

// OnChange calls fn after every state change until the returned function
// is called.
func (a *AppContext) OnChange(fn func(State)) (cancel func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.next
	a.next++
	a.subs[id] = fn
	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		delete(a.subs, id)
	}
}

func (a *AppContext) update(fn func(*State)) error {
	a.mu.Lock()
	fn(&a.state)
	snapshot := a.state.clone()
	err := a.store.Save(&snapshot)
	subs := make([]func(State), 0, len(a.subs))
	for _, s := range a.subs {
		subs = append(subs, s)
	}
	a.mu.Unlock()

	for _, s := range subs {
		s(snapshot.clone())
	}
	return err
}
