package usecase

import (
	"sort"

	"myshop/services/notification/internal/entity"
)

// MergeNotifications combines a user's personal notifications with the
// shared broadcasts into one newest-first list. The sort is stable and
// broadcasts are concatenated ahead of personal entries, so on equal
// timestamps broadcasts come first and each source keeps its own order.
// The function is pure: callers pass current snapshots of both streams and
// re-invoke it whenever either one changes.
func MergeNotifications(personal []entity.Notification, broadcasts []entity.Broadcast) []entity.DisplayNotification {
	merged := make([]entity.DisplayNotification, 0, len(personal)+len(broadcasts))

	for _, b := range broadcasts {
		merged = append(merged, entity.DisplayNotification{
			ID:          b.ID,
			Title:       b.Title,
			Message:     b.Message,
			Timestamp:   b.Timestamp,
			IsBroadcast: true,
		})
	}
	for _, n := range personal {
		merged = append(merged, entity.DisplayNotification{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Timestamp: n.Timestamp,
			IsRead:    n.IsRead,
		})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp.After(merged[j].Timestamp)
	})

	return merged
}

// UnreadCount counts unread personal notifications for badge display.
// Broadcasts carry no per-user read state and are deliberately excluded.
func UnreadCount(personal []entity.Notification) int {
	count := 0
	for _, n := range personal {
		if !n.IsRead {
			count++
		}
	}
	return count
}
