// ABOUTME: Contract tests shared by every local blob backend.
// ABOUTME: Runs get/set/overwrite/missing-key checks per backend.

package blob

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStoreContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "memos")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "memos", []byte(`[]`)))
	got, err := s.Get(ctx, "memos")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)

	require.NoError(t, s.Set(ctx, "memos", []byte(`[{"id":1}]`)))
	got, err = s.Get(ctx, "memos")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":1}]`), got)

	require.NoError(t, s.Set(ctx, "tags", []byte(`["a"]`)))
	got, err = s.Get(ctx, "memos")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":1}]`), got, "keys must not interfere")
}

func TestMemoryContract(t *testing.T) {
	testStoreContract(t, NewMemory())
}

func TestMemoryCopiesValues(t *testing.T) {
	m := NewMemory()
	value := []byte("abc")
	require.NoError(t, m.Set(context.Background(), "k", value))
	value[0] = 'z'

	got, err := m.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestSQLiteContract(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	testStoreContract(t, s)
}

func TestSQLiteCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")
	s, err := OpenSQLite(dbPath)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("expected database file to be created")
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := OpenSQLite(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Set(context.Background(), "tags", []byte(`["Work"]`)))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(dbPath)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	got, err := s.Get(context.Background(), "tags")
	require.NoError(t, err)
	assert.Equal(t, `["Work"]`, string(got))
}

func TestBadgerContract(t *testing.T) {
	b, err := OpenBadger(filepath.Join(t.TempDir(), "badger"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	testStoreContract(t, b)
}

func TestBadgerInMemory(t *testing.T) {
	b, err := OpenBadger("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	testStoreContract(t, b)
}

func TestDefaultPath(t *testing.T) {
	original := os.Getenv("XDG_DATA_HOME")
	defer func() { _ = os.Setenv("XDG_DATA_HOME", original) }()

	tmpDir := t.TempDir()
	_ = os.Setenv("XDG_DATA_HOME", tmpDir)

	assert.Equal(t, filepath.Join(tmpDir, "memopad", "memopad.db"), DefaultPath())
}

func TestOpenSelectsBackend(t *testing.T) {
	s, err := Open(context.Background(), Options{Backend: BackendMemory})
	require.NoError(t, err)
	_, ok := s.(*Memory)
	assert.True(t, ok)

	s, err = Open(context.Background(), Options{Backend: BackendSQLite, Path: filepath.Join(t.TempDir(), "x.db")})
	require.NoError(t, err)
	_, ok = s.(*SQLite)
	assert.True(t, ok)
	_ = s.Close()
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), Options{Backend: "floppy"})
	assert.Error(t, err)
}

func TestOpenPostgresRequiresURL(t *testing.T) {
	s, err := Open(context.Background(), Options{Backend: BackendPostgres})
	assert.Error(t, err)
	assert.Nil(t, s)
}
