package api

import (
	"context" // Context for Redis operations
	"strconv" // Cache key construction
	"time"    // Cache TTLs

	"finance_tracker/internal/utils" // Cache helpers

	"github.com/redis/go-redis/v9" // Redis client
)

// Cache TTLs. Reads are cached briefly; writes invalidate eagerly.
const (
	transactionsCacheTTL = 60 * time.Second
	categoriesCacheTTL   = 5 * time.Minute
	summaryCacheTTL      = 60 * time.Second
)

// transactionsCacheKey is the cache key for a user's transaction list
func transactionsCacheKey(userID uint) string {
	return "transactions:user:" + strconv.Itoa(int(userID))
}

// categoriesCacheKey is the cache key for a user's category list
func categoriesCacheKey(userID uint) string {
	return "categories:user:" + strconv.Itoa(int(userID))
}

// monthlySummaryCacheKey is the cache key for a user's by-type summary of one month
func monthlySummaryCacheKey(userID uint, month, year int) string {
	return "summary:monthly:user:" + strconv.Itoa(int(userID)) + ":" + strconv.Itoa(month) + "-" + strconv.Itoa(year)
}

// categorySummaryCacheKey is the cache key for a user's by-category summary of one month
func categorySummaryCacheKey(userID uint, month, year int) string {
	return "summary:category:user:" + strconv.Itoa(int(userID)) + ":" + strconv.Itoa(month) + "-" + strconv.Itoa(year)
}

// invalidateTransactionCaches drops the user's transaction list and all
// cached summaries after a write. Summary keys are month-scoped, so they
// are removed by pattern rather than enumerated.
func invalidateTransactionCaches(ctx context.Context, rdb *redis.Client, userID uint) {
	_ = utils.DeleteCache(ctx, rdb, transactionsCacheKey(userID))
	_ = utils.DeleteCacheByPattern(ctx, rdb, "summary:*:user:"+strconv.Itoa(int(userID))+":*")
}
