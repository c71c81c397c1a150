package client

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/lostfound/pkg/api"
)

func TestRecentAccounts(t *testing.T) {
	r := RecentAccounts{Limit: 3}
	r.Add(Account{Email: "a@x.edu"})
	r.Add(Account{Email: "b@x.edu"})
	r.Add(Account{Email: "c@x.edu"})
	r.Add(Account{Email: "A@x.edu", DisplayName: "again"})

	got := r.List()
	require.Len(t, got, 3)
	assert.Equal(t, "A@x.edu", got[0].Email)
	assert.Equal(t, "again", got[0].DisplayName)
	assert.Equal(t, []string{"A@x.edu", "c@x.edu", "b@x.edu"}, emails(got))

	r.Add(Account{Email: "d@x.edu"})
	assert.Equal(t, []string{"d@x.edu", "A@x.edu", "c@x.edu"}, emails(r.List()))

	r.Remove("c@X.edu")
	assert.Equal(t, []string{"d@x.edu", "A@x.edu"}, emails(r.List()))
}

func emails(accts []Account) []string {
	out := make([]string, len(accts))
	for i, a := range accts {
		out[i] = a.Email
	}
	return out
}

func TestAppContext_PersistsThroughFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	app, err := Open(NewFileStore(path))
	require.NoError(t, err)
	assert.Empty(t, app.Token())
	assert.Nil(t, app.Session())

	var changes int
	cancel := app.OnChange(func(State) { changes++ })

	require.NoError(t, app.SetServer("http://localhost:8080"))
	require.NoError(t, app.SignIn(Session{
		Token:     "tok",
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
		User:      &api.Profile{ID: "u1", Email: "alice@north.edu", DisplayName: "Alice"},
		Tenant:    &api.Tenant{ID: "t1", Slug: "north"},
	}))
	require.NoError(t, app.SetPreferences(&api.Preferences{Theme: "dark", FontScale: 1.25}))
	assert.Equal(t, 3, changes)
	cancel()

	reopened, err := Open(NewFileStore(path))
	require.NoError(t, err)
	assert.Equal(t, "tok", reopened.Token())
	assert.Equal(t, "http://localhost:8080", reopened.Server())
	assert.Equal(t, "dark", reopened.Preferences().Theme)
	recent := reopened.RecentAccounts()
	require.Len(t, recent, 1)
	assert.Equal(t, "alice@north.edu", recent[0].Email)
	assert.Equal(t, "north", recent[0].TenantSlug)

	require.NoError(t, reopened.SignOut())
	assert.Empty(t, reopened.Token())
	assert.Nil(t, reopened.Preferences())
	assert.Len(t, reopened.RecentAccounts(), 1, "recent accounts survive sign-out")
	assert.Equal(t, 3, changes, "cancelled listener is not called")
}

func TestAppContext_DropsExpiredSession(t *testing.T) {
	store := &MemoryStore{}
	app, err := Open(store)
	require.NoError(t, err)
	require.NoError(t, app.SignIn(Session{Token: "old", ExpiresAt: time.Now().Add(-time.Minute).Unix()}))

	reopened, err := Open(store)
	require.NoError(t, err)
	assert.Empty(t, reopened.Token())
}

func TestFileStore_LoadMissingIsEmpty(t *testing.T) {
	var s State
	require.NoError(t, NewFileStore(filepath.Join(t.TempDir(), "none.json")).Load(&s))
	assert.Nil(t, s.Session)
}
