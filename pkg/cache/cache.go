// Package cache memoizes Planner.FindPath results, keyed by a quantized
// (start, end) pose pair, so a caller retrying after an aborted drive does
// not force a full re-search. Backed by badger, the same embedded store the
// teacher uses for its own lookup table.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/jfrascon/gerona/pkg/geom"
	"github.com/jfrascon/gerona/pkg/util"
)

// ErrNotFound is returned by Get when the key is absent, mirroring the
// teacher's own ErrEdgesNotFound sentinel for a cache miss.
var ErrNotFound = errors.New("cache: path not found")

// positionQuantum and angleQuantum set the grid a pose is snapped to before
// it becomes a cache key: each component is rounded to the nearest multiple
// of its quantum, and two requests whose components all round to the same
// multiples hit the same entry.
const (
	positionQuantum = 0.25                 // metres
	angleQuantum    = 0.17453292519943295 // 10 degrees, in radians
)

// Cache is a result cache over a badger store. A Cache is safe for
// concurrent use; badger's own transaction isolation covers it.
type Cache struct {
	db  *badger.DB
	ttl time.Duration
}

// New wraps an already-open badger database. ttl is the time a cached path
// survives before badger's own expiry scan drops it; zero disables expiry.
func New(db *badger.DB, ttl time.Duration) *Cache {
	return &Cache{db: db, ttl: ttl}
}

// Get looks up the cached path for (start, end), returning ErrNotFound on a
// miss.
func (c *Cache) Get(ctx context.Context, start, end geom.Pose) ([]geom.Pose, error) {
	key := quantizeKey(start, end)

	var raw []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})

	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("cache: get: %w", err)
	}

	path, err := decodePath(raw)
	if err != nil {
		return nil, fmt.Errorf("cache: decode: %w", err)
	}
	return path, nil
}

// Put stores path under the quantized key for (start, end).
func (c *Cache) Put(ctx context.Context, start, end geom.Pose, path []geom.Pose) error {
	key := quantizeKey(start, end)

	raw, err := encodePath(path)
	if err != nil {
		return fmt.Errorf("cache: encode: %w", err)
	}

	return c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(key, raw)
		if c.ttl > 0 {
			entry = entry.WithTTL(c.ttl)
		}
		return txn.SetEntry(entry)
	})
}

// Close releases the underlying badger database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// quantizeKey builds the cache key for a (start, end) pose pair by snapping
// every component to its quantum, so near-duplicate requests collide into
// the same entry. Stable across repeated identical input, since
// util.RoundFloat is pure.
func quantizeKey(start, end geom.Pose) []byte {
	return []byte(fmt.Sprintf("%.2f:%.2f:%.3f|%.2f:%.2f:%.3f",
		quantize(start.Pos.X, positionQuantum), quantize(start.Pos.Y, positionQuantum), quantize(start.Theta, angleQuantum),
		quantize(end.Pos.X, positionQuantum), quantize(end.Pos.Y, positionQuantum), quantize(end.Theta, angleQuantum),
	))
}

func quantize(val, quantum float64) float64 {
	return util.RoundFloat(val/quantum, 0) * quantum
}
