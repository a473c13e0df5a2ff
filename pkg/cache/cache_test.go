package cache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"

	"github.com/jfrascon/gerona/pkg/cache"
	"github.com/jfrascon/gerona/pkg/geom"
)

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCacheMissReturnsErrNotFound(t *testing.T) {
	c := cache.New(openTestDB(t), 0)

	_, err := c.Get(context.Background(), geom.NewPose(0, 0, 0), geom.NewPose(1, 1, 0))

	require.True(t, errors.Is(err, cache.ErrNotFound))
}

func TestCachePutThenGetRoundTrips(t *testing.T) {
	c := cache.New(openTestDB(t), 0)
	ctx := context.Background()
	start := geom.NewPose(1, 2, 0.1)
	end := geom.NewPose(9, 4, 0.2)
	path := []geom.Pose{start, geom.NewPose(5, 3, 0.15), end}

	require.NoError(t, c.Put(ctx, start, end, path))

	got, err := c.Get(ctx, start, end)

	require.NoError(t, err)
	require.Equal(t, path, got)
}

func TestCacheQuantizesNearbyPoses(t *testing.T) {
	c := cache.New(openTestDB(t), 0)
	ctx := context.Background()
	start := geom.NewPose(1.0, 2.0, 0)
	end := geom.NewPose(9.0, 4.0, 0)
	path := []geom.Pose{start, end}

	require.NoError(t, c.Put(ctx, start, end, path))

	got, err := c.Get(ctx, geom.NewPose(1.05, 1.97, 0), geom.NewPose(9.03, 4.04, 0))

	require.NoError(t, err)
	require.Equal(t, path, got)
}
