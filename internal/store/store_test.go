package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "saves", "farm.json")
	f := NewFile(path, "")

	_, err := f.ReadSave(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	require.NoError(t, f.WriteSave(ctx, []byte(`{"day":1}`)))
	require.NoError(t, f.WriteSave(ctx, []byte(`{"day":2}`)))

	data, err := f.ReadSave(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"day":2}`, string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files should not be left behind")
}

func TestFileHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := NewFile(filepath.Join(t.TempDir(), "farm.json"), "")

	assert.ErrorIs(t, f.WriteSave(ctx, []byte("{}")), context.Canceled)
	_, err := f.ReadSave(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileSlots(t *testing.T) {
	ctx := context.Background()
	base := filepath.Join(t.TempDir(), "farm.json")
	primary := NewFile(base, "")
	other := NewFile(base, "second")

	require.NoError(t, primary.WriteSave(ctx, []byte(`{"day":3}`)))
	require.NoError(t, other.WriteSave(ctx, []byte(`{"day":9}`)))
	_, err := os.Stat(filepath.Join(filepath.Dir(base), "farm-second.json"))
	require.NoError(t, err)

	slots, err := primary.Slots(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.ElementsMatch(t, []string{DefaultSlot, "second"}, []string{slots[0].Slot, slots[1].Slot})

	require.NoError(t, other.DeleteSave(ctx))
	require.NoError(t, other.DeleteSave(ctx), "deleting a missing slot is fine")
	_, err = other.ReadSave(ctx)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	data, err := primary.ReadSave(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"day":3}`, string(data), "other slots are untouched")
}

func TestSQLiteSlots(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "farm.db")
	db, err := OpenSQLite(path, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.ReadSave(ctx)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, db.WriteSave(ctx, []byte(`{"day":1}`)))
	require.NoError(t, db.WriteSave(ctx, []byte(`{"day":3}`)))
	data, err := db.ReadSave(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"day":3}`, string(data))

	other, err := OpenSQLite(path, "second")
	require.NoError(t, err)
	t.Cleanup(func() { _ = other.Close() })
	require.NoError(t, other.WriteSave(ctx, []byte(`{"day":9}`)))

	slots, err := db.Slots(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	names := []string{slots[0].Slot, slots[1].Slot}
	assert.ElementsMatch(t, []string{DefaultSlot, "second"}, names)

	require.NoError(t, other.DeleteSave(ctx))
	_, err = other.ReadSave(ctx)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	data, err = db.ReadSave(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"day":3}`, string(data), "other slots are untouched")
}

func TestSQLitePersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "farm.db")

	db, err := OpenSQLite(path, "main")
	require.NoError(t, err)
	require.NoError(t, db.WriteSave(ctx, []byte(`{"day":5}`)))
	require.NoError(t, db.Close())

	again, err := OpenSQLite(path, "main")
	require.NoError(t, err)
	t.Cleanup(func() { _ = again.Close() })
	data, err := again.ReadSave(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"day":5}`, string(data))
}

func TestOpenBackends(t *testing.T) {
	dir := t.TempDir()

	s, err := Open("json", filepath.Join(dir, "farm.json"), "")
	require.NoError(t, err)
	assert.IsType(t, &File{}, s)

	s, err = Open("json", filepath.Join(dir, "farm.json"), "spring")
	require.NoError(t, err)
	require.NoError(t, s.WriteSave(context.Background(), []byte("{}")))
	_, err = os.Stat(filepath.Join(dir, "farm-spring.json"))
	assert.NoError(t, err)

	s, err = Open("sqlite", filepath.Join(dir, "farm.db"), "spring")
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, s)
	require.NoError(t, s.Close())

	_, err = Open("postgres", "x", "")
	assert.Error(t, err)
}
