package client

import (
	"context"
	"testing"
	"time"

	"github.com/Rahul675/indyanet-crm/pkg/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_RequireSession(t *testing.T) {
	store := sdk.NewMemoryStore()
	p := NewProvider("http://127.0.0.1:1", "", time.Second, nil)
	p.SetStore(store)

	_, err := p.RequireSession(context.Background())
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	_, err = p.Resources(context.Background())
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestProvider_RestoresStoredSession(t *testing.T) {
	store := sdk.NewMemoryStore()
	require.NoError(t, store.Put(sdk.KeyToken, "tok"))
	require.NoError(t, store.Put(sdk.KeyUser, `{"id":"1","name":"Op","role":"operator"}`))

	p := NewProvider("http://127.0.0.1:1", "", time.Second, nil)
	p.SetStore(store)

	session, err := p.RequireSession(context.Background())
	require.NoError(t, err)
	assert.True(t, session.HasRole("operator"))

	again, err := p.Session(context.Background())
	require.NoError(t, err)
	assert.Same(t, session, again, "session client is built once")
}

func TestProvider_FileStoreUnderHome(t *testing.T) {
	home := t.TempDir()
	p := NewProvider("http://127.0.0.1:1", home, time.Second, nil)

	store, err := p.Store()
	require.NoError(t, err)
	require.NoError(t, store.Put(sdk.KeyToken, "x"))
	assert.FileExists(t, home+"/session.json")
}

func TestEnsureTimeout(t *testing.T) {
	ctx, cancel := EnsureTimeout(context.Background(), time.Minute)
	defer cancel()
	_, ok := ctx.Deadline()
	assert.True(t, ok)

	parent, parentCancel := context.WithTimeout(context.Background(), time.Hour)
	defer parentCancel()
	ctx2, cancel2 := EnsureTimeout(parent, time.Second)
	defer cancel2()
	assert.Equal(t, parent, ctx2, "existing deadline is kept")
}
