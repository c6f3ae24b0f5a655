// Package assets resolves and caches external resources such as heightmap images.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/riverscape/internal/logger"
)

// ErrNotFound is returned when a reference cannot be resolved under any root.
var ErrNotFound = errors.New("asset not found")

// maxRemoteSize bounds downloaded assets.
const maxRemoteSize = 64 << 20

// Manager loads assets from local root directories or http(s) URLs.
type Manager struct {
	roots  []string
	client *http.Client
	cache  *Cache
	mu     sync.RWMutex
}

// NewManager creates an asset manager searching the given roots.
func NewManager(roots ...string) *Manager {
	return &Manager{
		roots:  append([]string(nil), roots...),
		client: &http.Client{Timeout: 30 * time.Second},
		cache:  NewCache(),
	}
}

// AddRoot adds a search directory.
// Roots are searched in reverse order (last added = highest priority).
func (m *Manager) AddRoot(dir string) {
	m.mu.Lock()
	m.roots = append(m.roots, dir)
	m.mu.Unlock()
}

// SetHTTPClient replaces the client used for remote references.
func (m *Manager) SetHTTPClient(c *http.Client) {
	m.mu.Lock()
	m.client = c
	m.mu.Unlock()
}

// Fetch returns the bytes for ref, which is either an http(s) URL or a path.
// Absolute paths are read directly; relative ones are resolved against the roots.
func (m *Manager) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if data, ok := m.cache.Get(ref); ok {
		return data, nil
	}

	var (
		data []byte
		err  error
	)
	if isRemote(ref) {
		data, err = m.fetchRemote(ctx, ref)
	} else {
		data, err = m.readLocal(ref)
	}
	if err != nil {
		return nil, err
	}

	m.cache.Set(ref, data)
	logger.Debug("asset loaded", zap.String("ref", ref), zap.Int("bytes", len(data)))
	return data, nil
}

func isRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

func (m *Manager) fetchRemote(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}

	m.mu.RLock()
	client := m.client
	m.mu.RUnlock()

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteSize))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	return data, nil
}

func (m *Manager) readLocal(ref string) ([]byte, error) {
	if filepath.IsAbs(ref) {
		data, err := os.ReadFile(ref)
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
		}
		return data, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.roots) - 1; i >= 0; i-- {
		data, err := os.ReadFile(filepath.Join(m.roots[i], ref))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", ref, err)
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, ref)
}

// Close drops cached data.
func (m *Manager) Close() {
	m.cache.Clear()
}

// Cache returns the manager's cache.
func (m *Manager) Cache() *Cache {
	return m.cache
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
