package bank

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"
)

// Cache holds the parsed bank and reloads it when the file changes on
// disk. With AlwaysReload set, every Get parses the file again.
type Cache struct {
	path         string
	alwaysReload bool

	mu      sync.Mutex
	bank    *Bank
	modTime time.Time
	size    int64
}

// NewCache creates a cache for the bank file at path.
func NewCache(path string, alwaysReload bool) *Cache {
	return &Cache{path: path, alwaysReload: alwaysReload}
}

// Path returns the bank file path.
func (c *Cache) Path() string {
	return c.path
}

// Get returns the current bank, reloading it if the file's modification
// time or size changed since the last load.
func (c *Cache) Get() (*Bank, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	info, err := os.Stat(c.path)
	if err != nil {
		c.bank = nil
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, c.path)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	if !c.alwaysReload && c.bank != nil &&
		info.ModTime().Equal(c.modTime) && info.Size() == c.size {
		return c.bank, nil
	}

	b, err := Load(c.path)
	if err != nil {
		c.bank = nil
		return nil, err
	}
	c.bank = b
	c.modTime = info.ModTime()
	c.size = info.Size()
	return b, nil
}

// Invalidate drops the cached bank so the next Get reloads it even if the
// file's modification time and size look unchanged.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bank = nil
}
