package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[github]
api_url = "https://ghe.example.com/api/v3/"
per_page = 50

[cache]
enabled = false

[ui]
spinner_frames = ["-", "\\", "|", "/"]
`

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0600))
}

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, ConfigFileName), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	want, err := DefaultDir()
	require.NoError(t, err)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(want, ConfigFileName), store.Path())
}

func TestConfigStore_ReadsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, sampleConfig)

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "https://ghe.example.com/api/v3/", store.GetString("github.api_url"))
	assert.Equal(t, 50, store.GetInt("github.per_page"))
	_, ok := store.Get("cache.enabled")
	assert.True(t, ok)
	assert.False(t, store.GetBool("cache.enabled"))
	assert.Equal(t, []string{"-", "\\", "|", "/"}, store.GetStringSlice("ui.spinner_frames"))
}

func TestConfigStore_TypeMismatchReturnsZero(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, sampleConfig)
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Empty(t, store.GetString("github.per_page"))
	assert.Zero(t, store.GetInt("github.api_url"))
	assert.False(t, store.GetBool("github.api_url"))
	assert.Nil(t, store.GetStringSlice("github.per_page"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_SetPersistsNested(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("github.per_page", 75))
	require.NoError(t, store.Set("theme.match", "#ffaf00"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[github]")
	assert.Contains(t, string(data), "[theme]")

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, 75, reloaded.GetInt("github.per_page"))
	assert.Equal(t, "#ffaf00", reloaded.GetString("theme.match"))
}

func TestConfigStore_Set_EmptyKey(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Set("  ", 1))
}

func TestConfigStore_Set_RollsBackOnError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	err = store.Set("channel", make(chan int))

	assert.Error(t, err)
	_, ok := store.Get("channel")
	assert.False(t, ok)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("cache.enabled", true))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "")

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, ok := store.Get("any_key")
	assert.False(t, ok)
}

func TestConfigStore_Load_Reload(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	writeConfig(t, tmpDir, "[github]\nper_page = 10\n")
	require.NoError(t, store.Load())

	assert.Equal(t, 10, store.GetInt("github.per_page"))
}

func TestNewConfigStore_Errors(t *testing.T) {
	t.Run("cannot create directory", func(t *testing.T) {
		store, err := NewConfigStore("/dev/null/cannot/create/dirs")
		assert.Error(t, err)
		assert.Nil(t, store)
	})

	t.Run("corrupted file", func(t *testing.T) {
		tmpDir := t.TempDir()
		writeConfig(t, tmpDir, "this is not valid TOML {{{[[")

		store, err := NewConfigStore(tmpDir)
		assert.ErrorContains(t, err, "parse")
		assert.Nil(t, store)
	})
}

func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("another", "value"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "ui.key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_, _ = store.Get(key)
		}(i)
	}
	wg.Wait()
}

func TestNestMap(t *testing.T) {
	got := nestMap(map[string]any{
		"a.b.c": 1,
		"a.d":   "x",
		"e":     true,
	})

	assert.Equal(t, map[string]any{
		"a": map[string]any{
			"b": map[string]any{"c": 1},
			"d": "x",
		},
		"e": true,
	}, got)
}

func TestNestMap_ValueWinsOverTable(t *testing.T) {
	got := nestMap(map[string]any{"a": 1, "a.b": 2})

	assert.Equal(t, map[string]any{"a": 1}, got)
}

func TestFlattenMap(t *testing.T) {
	got := flattenMap(map[string]any{
		"github": map[string]any{"per_page": int64(5)},
		"top":    "v",
	}, "")

	assert.Equal(t, map[string]any{"github.per_page": int64(5), "top": "v"}, got)
}
