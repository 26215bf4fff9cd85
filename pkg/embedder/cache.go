package embedder

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

const cacheKeyPrefix = "embed:"

// CachedClient wraps an embedding Client with a badger-backed cache so
// repeated query text is embedded once. Cache entries are keyed on
// model+text, so switching models never serves stale vectors.
type CachedClient struct {
	inner  Client
	db     *badger.DB
	model  string
	logger *slog.Logger
}

// NewCachedClient opens (or creates) a badger store at path and wraps inner
// with it. An empty path opens an in-memory cache.
func NewCachedClient(inner Client, path string, model string, logger *slog.Logger) (*CachedClient, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedding cache: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &CachedClient{inner: inner, db: db, model: model, logger: logger}, nil
}

// Embed returns cached vectors where available and delegates the misses to
// the wrapped client in a single batch.
func (c *CachedClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	var missing []string
	var missingIdx []int

	for i, text := range texts {
		if vec, ok := c.lookup(text); ok {
			out[i] = vec
			continue
		}
		missing = append(missing, text)
		missingIdx = append(missingIdx, i)
	}

	if len(missing) == 0 {
		return out, nil
	}

	embedded, err := c.inner.Embed(ctx, missing)
	if err != nil {
		return nil, err
	}
	if len(embedded) != len(missing) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(embedded), len(missing))
	}

	for j, vec := range embedded {
		out[missingIdx[j]] = vec
		c.store(missing[j], vec)
	}

	c.logger.Debug("embedding cache batch",
		"requested", len(texts),
		"hits", len(texts)-len(missing),
		"misses", len(missing))

	return out, nil
}

// EmbedSingle generates an embedding for a single text.
func (c *CachedClient) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	return firstEmbedding(c.Embed(ctx, []string{text}))
}

// Dimensions returns the wrapped client's dimensionality.
func (c *CachedClient) Dimensions() int {
	return c.inner.Dimensions()
}

// Close closes the cache store and the wrapped client.
func (c *CachedClient) Close() error {
	dbErr := c.db.Close()
	innerErr := c.inner.Close()
	if dbErr != nil {
		return dbErr
	}
	return innerErr
}

func (c *CachedClient) key(text string) []byte {
	sum := sha256.Sum256([]byte(c.model + "\x00" + text))
	return []byte(cacheKeyPrefix + hex.EncodeToString(sum[:]))
}

func (c *CachedClient) lookup(text string) ([]float32, bool) {
	var vec []float32
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(c.key(text))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &vec)
		})
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			c.logger.Warn("embedding cache read failed", "error", err)
		}
		return nil, false
	}
	return vec, true
}

func (c *CachedClient) store(text string, vec []float32) {
	data, err := json.Marshal(vec)
	if err != nil {
		return
	}
	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(c.key(text), data)
	})
	if err != nil {
		c.logger.Warn("embedding cache write failed", "error", err)
	}
}
