package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/boxoffice/internal/adapters/memstore"
	domainauth "github.com/target/boxoffice/internal/domain/auth"
	"github.com/target/boxoffice/internal/mocks"
	mockauth "github.com/target/boxoffice/internal/mocks/auth"
	"go.uber.org/mock/gomock"
)

func newTestSessionStore(t *testing.T) (*SessionStore, *memstore.KVStore) {
	t.Helper()
	kv := memstore.NewKVStore()
	return NewSessionStore(SessionStoreOptions{KV: kv}), kv
}

func TestSessionStore_SaveRoundTrip(t *testing.T) {
	store, _ := newTestSessionStore(t)
	ctx := context.Background()

	raw := map[string]any{"name": "Ada", "email": "ada@example.com", "role": "ADMIN", "team": "ops"}
	profile := domainauth.NewNormalizer().Normalize(raw)
	require.NoError(t, store.Save(ctx, "s1", "abc", profile))

	tok, ok, err := store.Token(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	got, err := store.Profile(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, profile.Name, got.Name)
	assert.Equal(t, profile.Email, got.Email)
	assert.Equal(t, profile.Roles, got.Roles)
	assert.Equal(t, "ops", got.Raw["team"], "unknown fields survive persistence")
	assert.True(t, store.IsAuthenticated(ctx, "s1"))
}

func TestSessionStore_KeyLayout(t *testing.T) {
	kv := memstore.NewKVStore()
	store := NewSessionStore(SessionStoreOptions{KV: kv, Prefix: "app:"})
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", "abc", domainauth.Profile{Raw: map[string]any{"name": "A"}}))

	v, ok, _ := kv.Get(ctx, "app:s1:token")
	assert.True(t, ok)
	assert.Equal(t, "abc", v)
	v, ok, _ = kv.Get(ctx, "app:s1:user")
	assert.True(t, ok)
	assert.JSONEq(t, `{"name":"A"}`, v)
}

func TestSessionStore_ClearIsIdempotent(t *testing.T) {
	store, kv := newTestSessionStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", "abc", domainauth.Profile{}))
	require.NoError(t, store.Clear(ctx, "s1"))
	require.NoError(t, store.Clear(ctx, "s1"))

	assert.False(t, store.IsAuthenticated(ctx, "s1"))
	p, err := store.Profile(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.Equal(t, 0, kv.Len())
}

func TestSessionStore_ScopesAreIsolated(t *testing.T) {
	store, _ := newTestSessionStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "a", "tok-a", domainauth.Profile{}))
	assert.False(t, store.IsAuthenticated(ctx, "b"))
	require.NoError(t, store.Clear(ctx, "b"))
	assert.True(t, store.IsAuthenticated(ctx, "a"))
}

func TestSessionStore_MalformedProfileReadsAsAbsent(t *testing.T) {
	for _, stored := range []string{"{not json", "null", `"a string"`, "[1,2]", ""} {
		t.Run(stored, func(t *testing.T) {
			store, kv := newTestSessionStore(t)
			ctx := context.Background()
			require.NoError(t, kv.Set(ctx, store.TokenKey("s1"), "abc"))
			require.NoError(t, kv.Set(ctx, store.ProfileKey("s1"), stored))

			p, err := store.Profile(ctx, "s1")
			require.NoError(t, err)
			assert.Nil(t, p)
			assert.True(t, store.IsAuthenticated(ctx, "s1"), "token presence is unaffected")
		})
	}
}

func TestSessionStore_EmptyTokenIsNotAuthenticated(t *testing.T) {
	store, kv := newTestSessionStore(t)
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, store.TokenKey("s1"), ""))
	assert.False(t, store.IsAuthenticated(ctx, "s1"))
}

func TestSessionStore_StorageErrors(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(SessionStoreOptions{KV: &mockauth.FailingKV{}})

	assert.False(t, store.IsAuthenticated(ctx, "s1"))

	_, err := store.Profile(ctx, "s1")
	require.ErrorIs(t, err, mockauth.ErrStorageDown)

	err = store.Save(ctx, "s1", "abc", domainauth.Profile{})
	require.ErrorIs(t, err, mockauth.ErrStorageDown)
	assert.Contains(t, err.Error(), "save token")

	require.ErrorIs(t, store.Clear(ctx, "s1"), mockauth.ErrStorageDown)
}

func TestSessionStore_SaveWritesTokenThenProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	kv := mocks.NewMockKeyValueStore(ctrl)
	store := NewSessionStore(SessionStoreOptions{KV: kv})

	gomock.InOrder(
		kv.EXPECT().Set(gomock.Any(), "boxoffice:s1:token", "abc").Return(nil),
		kv.EXPECT().Set(gomock.Any(), "boxoffice:s1:user", `{"role":"staff"}`).Return(nil),
	)

	err := store.Save(context.Background(), "s1", "abc", domainauth.Profile{Raw: map[string]any{"role": "staff"}})
	require.NoError(t, err)
}

func TestSessionStore_ClearDeletesBothKeys(t *testing.T) {
	ctrl := gomock.NewController(t)
	kv := mocks.NewMockKeyValueStore(ctrl)
	store := NewSessionStore(SessionStoreOptions{KV: kv})

	kv.EXPECT().Delete(gomock.Any(), "boxoffice:s1:token", "boxoffice:s1:user").Return(nil)
	require.NoError(t, store.Clear(context.Background(), "s1"))
}

func TestNewSessionStore_PanicsWithoutKV(t *testing.T) {
	assert.Panics(t, func() { NewSessionStore(SessionStoreOptions{}) })
}
