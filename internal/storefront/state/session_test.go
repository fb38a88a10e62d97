package state

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/storefront/storage"
	"storefront/pkg/errors"
)

func newSession(t *testing.T) (*fixture, *Session, *fakeAuth, *fakeTokens) {
	t.Helper()
	f := loaded(t)
	auth := newFakeAuth()
	tokens := &fakeTokens{}
	return f, NewSession(auth, f.store, f.m, tokens), auth, tokens
}

func TestRegisterValidatesLocally(t *testing.T) {
	_, s, auth, _ := newSession(t)
	ctx := context.Background()

	cases := []struct {
		name string
		form RegisterForm
		want string
	}{
		{"mismatch", RegisterForm{Name: "Ann", Email: "ann@example.com", Password: "secret1", ConfirmPassword: "secret2"}, "Passwords do not match!"},
		{"mismatch wins over length", RegisterForm{Name: "Ann", Email: "ann@example.com", Password: "abc", ConfirmPassword: "abd"}, "Passwords do not match!"},
		{"too short", RegisterForm{Name: "Ann", Email: "ann@example.com", Password: "abc", ConfirmPassword: "abc"}, "Password must be at least 6 characters"},
		{"bad email", RegisterForm{Name: "Ann", Email: "ann", Password: "secret1", ConfirmPassword: "secret1"}, "email must be a valid email address"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Register(ctx, tc.form)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.CodeValidation))
			assert.Equal(t, tc.want, errors.MessageOf(err))
		})
	}
	assert.Empty(t, auth.users)

	user, err := s.Register(ctx, RegisterForm{Name: " Ann ", Email: "ann@example.com", Password: "secret1", ConfirmPassword: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Ann", user.Name)
}

func TestLoginPersistsSession(t *testing.T) {
	f, s, _, tokens := newSession(t)
	ctx := context.Background()
	_, err := s.Register(ctx, RegisterForm{Name: "Ann", Email: "ann@example.com", Password: "secret1", ConfirmPassword: "secret1"})
	require.NoError(t, err)

	_, err = s.Login(ctx, "ann@example.com", "wrong")
	assert.Equal(t, "Invalid email or password", errors.MessageOf(err))
	assert.Nil(t, s.CurrentUser())

	user, err := s.Login(ctx, "ann@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "token-1", tokens.token)

	loggedIn, err := f.store.Get(storage.KeyLoggedIn)
	require.NoError(t, err)
	assert.Equal(t, "true", loggedIn)

	// A fresh session over the same store picks the user back up.
	tokens2 := &fakeTokens{}
	restored := NewSession(newFakeAuth(), f.store, f.m, tokens2).CheckAuth()
	require.NotNil(t, restored)
	assert.Equal(t, user.ID, restored.ID)
	assert.Equal(t, "token-1", tokens2.token)
}

// keyFailingStore fails writes to one key and passes everything else
// through.
type keyFailingStore struct {
	*storage.MemoryStore
	key string
}

func (s *keyFailingStore) Set(key, value string) error {
	if key == s.key {
		return fmt.Errorf("disk full")
	}
	return s.MemoryStore.Set(key, value)
}

func TestLoginRollsBackPartialSession(t *testing.T) {
	f := loaded(t)
	store := &keyFailingStore{MemoryStore: storage.NewMemoryStore(), key: storage.KeyLoggedIn}
	tokens := &fakeTokens{}
	s := NewSession(newFakeAuth(), store, f.m, tokens)
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterForm{Name: "Ann", Email: "ann@example.com", Password: "secret1", ConfirmPassword: "secret1"})
	require.NoError(t, err)

	_, err = s.Login(ctx, "ann@example.com", "secret1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Nil(t, s.CurrentUser())
	assert.Empty(t, tokens.token)

	for _, key := range []string{storage.KeyUser, storage.KeyToken, storage.KeyLoggedIn} {
		_, err := store.Get(key)
		assert.ErrorIs(t, err, storage.ErrNotFound, key)
	}
}

func TestCheckAuthDropsCorruptUser(t *testing.T) {
	f, s, _, _ := newSession(t)
	require.NoError(t, f.store.Set(storage.KeyLoggedIn, "true"))
	require.NoError(t, f.store.Set(storage.KeyUser, "{broken"))

	assert.Nil(t, s.CheckAuth())

	_, err := f.store.Get(storage.KeyLoggedIn)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = f.store.Get(storage.KeyUser)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCheckAuthLoggedOut(t *testing.T) {
	_, s, _, _ := newSession(t)
	assert.Nil(t, s.CheckAuth())
}

func TestLogoutClearsEverything(t *testing.T) {
	f, s, _, tokens := newSession(t)
	ctx := context.Background()
	_, err := s.Register(ctx, RegisterForm{Name: "Ann", Email: "ann@example.com", Password: "secret1", ConfirmPassword: "secret1"})
	require.NoError(t, err)
	_, err = s.Login(ctx, "ann@example.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, f.m.AddItem(7))

	require.NoError(t, s.Logout())

	assert.Nil(t, s.CurrentUser())
	assert.Empty(t, tokens.token)
	assert.Empty(t, f.m.Lines())
	for _, key := range []string{storage.KeyLoggedIn, storage.KeyUser, storage.KeyToken, storage.KeyCart} {
		_, err := f.store.Get(key)
		assert.ErrorIs(t, err, storage.ErrNotFound, key)
	}
}
