package internal

import (
	"crypto/md5"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	tt "github.com/gnolang/boolnorm/internal/types"
)

const (
	cacheFileName = "boolnorm_cache.gob"

	DefaultCacheMaxAge = 7 * 24 * time.Hour
)

// CacheKey identifies one normalization request.
type CacheKey struct {
	Input     string
	Form      string
	Variables string
	// Settings fingerprints everything else that changes the report.
	Settings string
}

func NewCacheKey(input, form string, variables []string, settings string) CacheKey {
	vars := append([]string(nil), variables...)
	sort.Strings(vars)
	return CacheKey{
		Input:     input,
		Form:      form,
		Variables: strings.Join(vars, ","),
		Settings:  settings,
	}
}

type CacheEntry struct {
	Report       tt.Report
	CreatedAt    time.Time
	LastAccessed time.Time
}

// Cache memoizes reports on disk. Entries expire after maxAge and all of
// them are dropped when a dependency file (usually the configuration)
// changes.
type Cache struct {
	CacheDir         string
	entries          map[CacheKey]CacheEntry
	mutex            sync.RWMutex
	maxAge           time.Duration
	dependencyFiles  []string
	dependencyHashes map[string]string
}

func NewCache(cacheDir string) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	cache := &Cache{
		CacheDir:         cacheDir,
		entries:          make(map[CacheKey]CacheEntry),
		maxAge:           DefaultCacheMaxAge,
		dependencyHashes: make(map[string]string),
	}

	if err := cache.load(); err != nil {
		return nil, fmt.Errorf("failed to load cache: %w", err)
	}

	return cache, nil
}

func (c *Cache) load() error {
	cacheFile := filepath.Join(c.CacheDir, cacheFileName)
	file, err := os.Open(cacheFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil // first run
	}
	if err != nil {
		return fmt.Errorf("failed to open cache file: %w", err)
	}
	defer file.Close()

	var stored struct {
		Entries          map[CacheKey]CacheEntry
		DependencyHashes map[string]string
	}
	if err := gob.NewDecoder(file).Decode(&stored); err != nil {
		return fmt.Errorf("failed to decode cache file: %w", err)
	}
	if stored.Entries != nil {
		c.entries = stored.Entries
	}
	if stored.DependencyHashes != nil {
		c.dependencyHashes = stored.DependencyHashes
	}

	return nil
}

// save expects the caller to hold the lock.
func (c *Cache) save() error {
	cacheFile := filepath.Join(c.CacheDir, cacheFileName)
	file, err := os.Create(cacheFile)
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer file.Close()

	stored := struct {
		Entries          map[CacheKey]CacheEntry
		DependencyHashes map[string]string
	}{c.entries, c.dependencyHashes}
	if err := gob.NewEncoder(file).Encode(stored); err != nil {
		return fmt.Errorf("failed to encode cache file: %w", err)
	}

	return nil
}

// Flush writes the in-memory entries to disk.
func (c *Cache) Flush() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.save()
}

// Set stores report in memory. Call Flush to persist it.
func (c *Cache) Set(key CacheKey, report tt.Report) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	report.Cached = false
	now := time.Now()
	c.entries[key] = CacheEntry{
		Report:       report,
		CreatedAt:    now,
		LastAccessed: now,
	}
}

func (c *Cache) Get(key CacheKey) (tt.Report, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		return tt.Report{}, false
	}

	if c.isEntryInvalid(entry) {
		delete(c.entries, key)
		return tt.Report{}, false
	}

	entry.LastAccessed = time.Now()
	c.entries[key] = entry

	report := entry.Report
	report.Cached = true
	return report, true
}

func (c *Cache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.entries)
}

func (c *Cache) isEntryInvalid(entry CacheEntry) bool {
	return c.maxAge > 0 && time.Since(entry.CreatedAt) > c.maxAge
}

// SetDependencies registers files whose content the cached reports depend
// on. Every entry is dropped when one of them changed since the last run.
func (c *Cache) SetDependencies(files ...string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.dependencyFiles = files
	if c.haveDependenciesChanged() {
		c.entries = make(map[CacheKey]CacheEntry)
	}
	return c.updateDependencyHashes()
}

func (c *Cache) haveDependenciesChanged() bool {
	for _, file := range c.dependencyFiles {
		hash, err := getFileHash(file)
		if err != nil {
			return true
		}

		if hash != c.dependencyHashes[file] {
			return true
		}
	}

	return false
}

func (c *Cache) updateDependencyHashes() error {
	for _, file := range c.dependencyFiles {
		hash, err := getFileHash(file)
		if err != nil {
			return fmt.Errorf("failed to get hash for %s: %w", file, err)
		}
		c.dependencyHashes[file] = hash
	}
	return nil
}

func (c *Cache) SetMaxAge(duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.maxAge = duration
}

func (c *Cache) InvalidateAll() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[CacheKey]CacheEntry)
	_ = c.save() // manual operation, nothing to report to
}

func getFileHash(filename string) (string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}
