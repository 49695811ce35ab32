package app

import (
	"context"
	"fmt"
	"time"

	"pts_hotel/internal/domain"
)

const availableRoomsKey = "rooms:available"

func dashboardKey(day time.Time) string {
	return fmt.Sprintf("dashboard:%s", day.Format("2006-01-02"))
}

// invalidateBookingCaches drops the cached views a booking mutation can
// stale: the available-rooms list and the dashboard snapshots for the days
// the stay touches. Best effort; a missed day just waits out its TTL.
func invalidateBookingCaches(ctx context.Context, cache domain.Cache, days ...time.Time) {
	if cache == nil {
		return
	}
	_ = cache.Del(ctx, availableRoomsKey)
	seen := map[string]bool{}
	for _, d := range days {
		key := dashboardKey(d)
		if seen[key] {
			continue
		}
		seen[key] = true
		_ = cache.Del(ctx, key)
	}
}
