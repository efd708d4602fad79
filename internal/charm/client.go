// ABOUTME: Charm-backed implementation of the fitleast key/value store.
// ABOUTME: Opens one shared encrypted KV per process and pushes every write to Charm Cloud.
package charm

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/fitleast/internal/storage"
)

const (
	// DBName is the Charm KV database holding the three fitleast keys.
	DBName = "fitleast"
	// DefaultHost is used when CHARM_HOST is unset.
	DefaultHost = "charm.2389.dev"
)

// ErrReadOnly is returned from writes while another process holds the database lock.
var ErrReadOnly = errors.New("charm kv is read-only: another fitleast process (mcp?) holds the lock")

var (
	shared    *Client
	sharedErr error
	openOnce  sync.Once
)

// Client stores fitleast keys in a Charm KV database.
type Client struct {
	mu sync.RWMutex
	db *kv.KV
}

var _ storage.KV = (*Client)(nil)

// InitClient returns the process-wide client, opening it on first use.
// The first open pulls the latest cloud state unless the database is read-only.
func InitClient() (*Client, error) {
	openOnce.Do(func() {
		shared, sharedErr = open()
	})
	return shared, sharedErr
}

func open() (*Client, error) {
	if os.Getenv("CHARM_HOST") == "" {
		if err := os.Setenv("CHARM_HOST", DefaultHost); err != nil {
			return nil, err
		}
	}

	db, err := kv.OpenWithDefaultsFallback(DBName)
	if err != nil {
		return nil, fmt.Errorf("open charm kv: %w", err)
	}

	c := &Client{db: db}
	if !db.IsReadOnly() {
		_ = db.Sync()
	}
	return c, nil
}

// Host reports the Charm server in use.
func Host() string {
	if h := os.Getenv("CHARM_HOST"); h != "" {
		return h
	}
	return DefaultHost
}

// Close releases the database.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// IsReadOnly is true when the database was opened without the write lock.
func (c *Client) IsReadOnly() bool {
	return c.db.IsReadOnly()
}

// Sync pulls and pushes pending changes. Read-only clients skip it.
func (c *Client) Sync() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.db.IsReadOnly() {
		return nil
	}
	return c.db.Sync()
}

// ID returns the linked Charm account ID.
func (c *Client) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("create charm client: %w", err)
	}
	return cc.ID()
}

// Get returns the value stored under key, or storage.ErrNotFound.
func (c *Client) Get(key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, err := c.db.Get([]byte(key))
	if err != nil {
		return nil, translateGetErr(key, err)
	}
	return value, nil
}

// Set writes key and pushes the change. A failed push is not an error;
// the next successful sync carries it.
func (c *Client) Set(key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db.IsReadOnly() {
		return ErrReadOnly
	}
	if err := c.db.Set([]byte(key), value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	_ = c.db.Sync()
	return nil
}

func translateGetErr(key string, err error) error {
	if errors.Is(err, badger.ErrKeyNotFound) {
		return storage.ErrNotFound
	}
	return fmt.Errorf("get %s: %w", key, err)
}
