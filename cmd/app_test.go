package cmd

import (
	"testing"
	"time"

	"foody/infrastructure/persistence/redis"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The cache covers browse paths only. Order creation re-validates shops and
// products inside its transaction and must read the store of record, never
// a TTL-stale cache entry.
func TestCatalogCacheCoversBrowsePathsOnly(t *testing.T) {
	repos := initMocks()
	storeProducts, storeShops := repos.products, repos.shops

	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:6379"})
	defer client.Close()
	enableCatalogCache(&repos, client, time.Minute)

	_, cached := repos.browseProducts.(*redis.CachedProductReader)
	require.True(t, cached, "browse product reads must go through the cache")
	_, cached = repos.browseShops.(*redis.CachedShopReader)
	require.True(t, cached, "browse shop reads must go through the cache")

	assert.Same(t, storeProducts, repos.products)
	assert.Same(t, storeShops, repos.shops)
}

func TestInitMocksUsesUncachedReadersEverywhere(t *testing.T) {
	repos := initMocks()

	assert.Same(t, repos.products, repos.browseProducts)
	assert.Same(t, repos.shops, repos.browseShops)
}
