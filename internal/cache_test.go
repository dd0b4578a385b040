package internal

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/gnolang/boolnorm/internal/types"
)

func testReport(input, result string) tt.Report {
	return tt.Report{
		Input:     input,
		Form:      "dnf",
		Result:    result,
		Canonical: result,
		Steps: []tt.Step{
			{Expression: input},
			{Expression: result, Law: "De Morgan's Law"},
		},
	}
}

func TestCache(t *testing.T) {
	tmpDir := t.TempDir()

	cacheDir := filepath.Join(tmpDir, "cache")
	cache, err := NewCache(cacheDir)
	require.NoError(t, err)

	key := NewCacheKey("!(A*B)", "dnf", []string{"B", "A"}, "")

	t.Run("NotFound", func(t *testing.T) {
		_, found := cache.Get(key)
		assert.False(t, found)
	})

	t.Run("SetAndGet", func(t *testing.T) {
		report := testReport("!(A*B)", "!A+!B")
		cache.Set(key, report)

		loaded, found := cache.Get(key)
		require.True(t, found)
		assert.True(t, loaded.Cached)
		loaded.Cached = false
		assert.Equal(t, report, loaded)
	})

	t.Run("VariableOrderDoesNotMatter", func(t *testing.T) {
		_, found := cache.Get(NewCacheKey("!(A*B)", "dnf", []string{"A", "B"}, ""))
		assert.True(t, found)
	})

	t.Run("FormIsPartOfTheKey", func(t *testing.T) {
		_, found := cache.Get(NewCacheKey("!(A*B)", "nnf", []string{"A", "B"}, ""))
		assert.False(t, found)
	})

	t.Run("PersistAndReload", func(t *testing.T) {
		require.NoError(t, cache.Flush())

		reloaded, err := NewCache(cacheDir)
		require.NoError(t, err)
		loaded, found := reloaded.Get(key)
		require.True(t, found)
		assert.Equal(t, "!A+!B", loaded.Result)
	})

	t.Run("Expired", func(t *testing.T) {
		expiring, err := NewCache(filepath.Join(tmpDir, "expiring"))
		require.NoError(t, err)
		expiring.SetMaxAge(time.Nanosecond)
		expiring.Set(key, testReport("A", "A"))

		time.Sleep(time.Millisecond)
		_, found := expiring.Get(key)
		assert.False(t, found)
		assert.Equal(t, 0, expiring.Len())
	})

	t.Run("InvalidateAll", func(t *testing.T) {
		cache.InvalidateAll()
		assert.Equal(t, 0, cache.Len())
	})
}

func TestCacheDependencies(t *testing.T) {
	tmpDir := t.TempDir()
	cacheDir := filepath.Join(tmpDir, "cache")
	config := filepath.Join(tmpDir, ".boolnorm.yaml")
	require.NoError(t, os.WriteFile(config, []byte("hardLimit: 100\n"), 0o644))

	cache, err := NewCache(cacheDir)
	require.NoError(t, err)
	require.NoError(t, cache.SetDependencies(config))

	key := NewCacheKey("A+A", "nnf", nil, "")
	cache.Set(key, testReport("A+A", "A"))
	require.NoError(t, cache.Flush())

	// unchanged configuration keeps the entries
	again, err := NewCache(cacheDir)
	require.NoError(t, err)
	require.NoError(t, again.SetDependencies(config))
	_, found := again.Get(key)
	assert.True(t, found)

	require.NoError(t, os.WriteFile(config, []byte("hardLimit: 5\n"), 0o644))
	changed, err := NewCache(cacheDir)
	require.NoError(t, err)
	require.NoError(t, changed.SetDependencies(config))
	_, found = changed.Get(key)
	assert.False(t, found)

	assert.Error(t, changed.SetDependencies(filepath.Join(tmpDir, "missing.yaml")))
}

func TestCacheConcurrency(t *testing.T) {
	cache, err := NewCache(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)

	key := NewCacheKey("A*B", "dnf", nil, "")
	report := testReport("A*B", "A*B")

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			cache.Set(key, report)
		}()
		go func() {
			defer wg.Done()
			_, _ = cache.Get(key)
		}()
	}
	wg.Wait()

	_, found := cache.Get(key)
	assert.True(t, found)
}
