package controllers

import (
	"context"
	"fmt"

	"github.com/campusride/CampusRide/config"
	"github.com/campusride/CampusRide/utils"
)

func walletCacheKey(userID uint) string {
	return fmt.Sprintf("wallet:user:%d", userID)
}

func txHistoryCacheKey(userID uint, page, limit int) string {
	return fmt.Sprintf("txhistory:user:%d:page:%d:limit:%d", userID, page, limit)
}

// invalidateWalletCaches drops the cached wallet and transaction history for
// every user touched by a settlement. Best effort: cache misses are cheap,
// stale balances are not.
func invalidateWalletCaches(userIDs ...uint) {
	if config.Redis == nil {
		return
	}
	ctx := context.Background()
	for _, id := range userIDs {
		_ = utils.DeleteCache(ctx, config.Redis, walletCacheKey(id))
		for page := 1; page <= 5; page++ {
			_ = utils.DeleteCache(ctx, config.Redis, txHistoryCacheKey(id, page, 10))
		}
	}
}
