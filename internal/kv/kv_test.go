package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(map[string]string{"yj": "sichuan/chengdu"})

	v, err := m.Read(ctx, "yj")
	require.NoError(t, err)
	assert.Equal(t, "sichuan/chengdu", v)

	_, err = m.Read(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Write(ctx, "yj", "beijing"))
	v, err = m.Read(ctx, "yj")
	require.NoError(t, err)
	assert.Equal(t, "beijing", v)
}

func TestFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "settings.json")

	f, err := NewFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Path())
	require.NoError(t, f.Ping(ctx))

	_, err = f.Read(ctx, "yj")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, f.Write(ctx, "yj", "shanxi-3/xian"))
	require.NoError(t, f.Write(ctx, "other", "x"))

	// A second instance sees what the first one wrote.
	f2, err := NewFile(path)
	require.NoError(t, err)
	v, err := f2.Read(ctx, "yj")
	require.NoError(t, err)
	assert.Equal(t, "shanxi-3/xian", v)
}

func TestFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	f, err := NewFile(path)
	require.NoError(t, err)

	_, err = f.Read(context.Background(), "yj")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	f, err := NewFile(path)
	require.NoError(t, err)

	_, err = f.Read(context.Background(), "yj")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewRedisRequiresAddress(t *testing.T) {
	_, err := NewRedis(RedisConfig{})
	assert.ErrorIs(t, err, ErrEmptyAddress)
}
