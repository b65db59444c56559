package localstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"gorecipes/internal/pkg/localstore"
	"gorecipes/internal/pkg/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func openStore(t *testing.T, path string) *localstore.FileStore {
	t.Helper()
	s, err := localstore.Open(path, logger.NewNop())
	require.NoError(t, err)
	return s
}

func TestFileStore_SetGetRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	s := openStore(t, path)

	_, ok := s.Get("token")
	assert.False(t, ok)

	require.NoError(t, s.Set(map[string]string{"token": "abc", "user": `{"name":"Ana"}`}))
	v, ok := s.Get("token")
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	// Outra instância no mesmo arquivo enxerga a escrita (persistência entre processos)
	other := openStore(t, path)
	v, ok = other.Get("user")
	assert.True(t, ok)
	assert.Equal(t, `{"name":"Ana"}`, v)

	require.NoError(t, s.Remove("token", "user", "missing"))
	_, ok = s.Get("token")
	assert.False(t, ok)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "nenhum arquivo temporário deve sobrar")
}

func TestFileStore_CorruptFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := openStore(t, path)
	_, ok := s.Get("token")
	assert.False(t, ok)
}

func TestFileStore_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	a := openStore(t, path)
	b := openStore(t, path)

	require.NoError(t, a.Set(map[string]string{"token": "t1"}))

	changes, err := b.Reload()
	require.NoError(t, err)
	assert.Equal(t, []localstore.Change{{Key: "token", Value: "t1"}}, changes)

	require.NoError(t, a.Remove("token"))
	changes, err = b.Reload()
	require.NoError(t, err)
	assert.Equal(t, []localstore.Change{{Key: "token", Removed: true}}, changes)

	// Nada mudou: diff vazio
	changes, err = b.Reload()
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestFileStore_SetKeepsKeysWrittenByOtherStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	stale := openStore(t, path)
	other := openStore(t, path)

	require.NoError(t, other.Set(map[string]string{"token": "t1"}))
	require.NoError(t, stale.Set(map[string]string{"user": `{"name":"Ana"}`}))

	fresh := openStore(t, path)
	v, ok := fresh.Get("token")
	assert.True(t, ok)
	assert.Equal(t, "t1", v)
	v, _ = fresh.Get("user")
	assert.Equal(t, `{"name":"Ana"}`, v)

	// A chave externa ainda aparece como mudança para quem não recarregou
	changes, err := stale.Reload()
	require.NoError(t, err)
	assert.Equal(t, []localstore.Change{{Key: "token", Value: "t1"}}, changes)
}

func TestFileStore_RemoveKeepsOtherKeysOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	stale := openStore(t, path)
	other := openStore(t, path)

	require.NoError(t, other.Set(map[string]string{"token": "t1", "theme": "dark"}))
	require.NoError(t, stale.Remove("token"))

	fresh := openStore(t, path)
	_, ok := fresh.Get("token")
	assert.False(t, ok)
	v, _ := fresh.Get("theme")
	assert.Equal(t, "dark", v)
}

func TestFileStore_WatchSeesExternalWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	watched := openStore(t, path)
	writer := openStore(t, path)

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan []localstore.Change, 8)
	done := make(chan error, 1)
	go func() {
		done <- watched.Watch(ctx, func(c []localstore.Change) { got <- c })
	}()

	// Dá tempo para o watcher registrar o diretório
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, writer.Set(map[string]string{"token": "from-other-tab"}))

	select {
	case changes := <-got:
		assert.Equal(t, "token", changes[0].Key)
		assert.Equal(t, "from-other-tab", changes[0].Value)
	case <-time.After(3 * time.Second):
		t.Fatal("nenhuma mudança observada")
	}

	v, _ := watched.Get("token")
	assert.Equal(t, "from-other-tab", v)

	cancel()
	assert.NoError(t, <-done)
}
