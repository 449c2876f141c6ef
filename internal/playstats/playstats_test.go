package playstats

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "stats.json"))
	require.NoError(t, err)

	assert.Equal(t, 0, s.Plays("custom_level_a"))
	assert.Empty(t, s.Counts())
	assert.True(t, s.LastPlayed("custom_level_a").IsZero())
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"levels":`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, s.Counts())
}

func TestLoad_UnreadableFileKeepsData(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}
	path := filepath.Join(t.TempDir(), "stats.json")
	original := []byte(`{"levels":{"custom_level_a":{"plays":7}}}`)
	require.NoError(t, os.WriteFile(path, original, 0o000))

	_, err := Load(path)
	require.Error(t, err)

	require.NoError(t, os.Chmod(path, 0o644))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, data)
}

func TestLoad_DirectoryIsAnError(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.Error(t, err)
}

func TestIncrement_PersistsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "stats.json")
	s, err := Load(path)
	require.NoError(t, err)

	now := time.Unix(1700000000, 0)
	n, err := s.Increment("custom_level_a", now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.Increment("custom_level_a", now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = s.Increment("Level1", now)
	require.NoError(t, err)

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Plays("custom_level_a"))
	assert.Equal(t, now.Add(time.Hour).Unix(), reloaded.LastPlayed("custom_level_a").Unix())
	assert.Equal(t, map[string]int{"custom_level_a": 2, "Level1": 1}, reloaded.Counts())
}

func TestIncrement_KeepsUnrelatedData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":3,"levels":{"x":{"plays":4}}}`), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	_, err = s.Increment("y", time.Now())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version":3`)
	assert.Equal(t, map[string]int{"x": 4, "y": 1}, s.Counts())
}

func TestIDsWithPathCharacters(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "stats.json"))
	require.NoError(t, err)

	id := "Level.v2.beta"
	_, err = s.Increment(id, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 1, s.Plays(id))
	assert.Equal(t, 0, s.Plays("Level"))
	assert.Equal(t, map[string]int{id: 1}, s.Counts())
}

func TestForget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.json")
	s, err := Load(path)
	require.NoError(t, err)

	_, err = s.Increment("a", time.Now())
	require.NoError(t, err)
	_, err = s.Increment("b", time.Now())
	require.NoError(t, err)

	require.NoError(t, s.Forget("a"))
	require.NoError(t, s.Forget("never-played"))

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"b": 1}, reloaded.Counts())
}
