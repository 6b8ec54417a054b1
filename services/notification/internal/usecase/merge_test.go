package usecase

import (
	"testing"
	"time"

	"myshop/services/notification/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestMergeNotifications_NewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	personal := []entity.Notification{
		{ID: "n1", Title: "Order shipped", Timestamp: base.Add(2 * time.Hour)},
		{ID: "n2", Title: "Welcome", Timestamp: base},
	}
	broadcasts := []entity.Broadcast{
		{ID: "b1", Title: "Holiday sale", Timestamp: base.Add(time.Hour)},
	}

	merged := MergeNotifications(personal, broadcasts)

	assert.Len(t, merged, 3)
	assert.Equal(t, "n1", merged[0].ID)
	assert.Equal(t, "b1", merged[1].ID)
	assert.Equal(t, "n2", merged[2].ID)
	for i := 1; i < len(merged); i++ {
		assert.False(t, merged[i-1].Timestamp.Before(merged[i].Timestamp))
	}
}

func TestMergeNotifications_BroadcastTagging(t *testing.T) {
	merged := MergeNotifications(
		[]entity.Notification{{ID: "n1", IsRead: true, Timestamp: time.Now()}},
		[]entity.Broadcast{{ID: "b1", Timestamp: time.Now().Add(-time.Minute)}},
	)

	assert.False(t, merged[0].IsBroadcast)
	assert.True(t, merged[0].IsRead)
	assert.True(t, merged[1].IsBroadcast)
	assert.False(t, merged[1].IsRead)
}

func TestMergeNotifications_EqualTimestampsBroadcastFirst(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	personal := []entity.Notification{
		{ID: "n1", Timestamp: ts},
		{ID: "n2", Timestamp: ts},
	}
	broadcasts := []entity.Broadcast{
		{ID: "b1", Timestamp: ts},
		{ID: "b2", Timestamp: ts},
	}

	merged := MergeNotifications(personal, broadcasts)

	// Broadcasts win ties and each source keeps its own order
	assert.Equal(t, []string{"b1", "b2", "n1", "n2"}, []string{merged[0].ID, merged[1].ID, merged[2].ID, merged[3].ID})
}

func TestMergeNotifications_Idempotent(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	personal := []entity.Notification{
		{ID: "n1", Timestamp: base.Add(time.Minute)},
		{ID: "n2", Timestamp: base},
	}
	broadcasts := []entity.Broadcast{
		{ID: "b1", Timestamp: base.Add(30 * time.Second)},
	}

	first := MergeNotifications(personal, broadcasts)
	second := MergeNotifications(personal, broadcasts)

	assert.Equal(t, first, second)
}

func TestMergeNotifications_EmptyInputs(t *testing.T) {
	assert.Empty(t, MergeNotifications(nil, nil))

	onlyPersonal := MergeNotifications([]entity.Notification{{ID: "n1", Timestamp: time.Now()}}, nil)
	assert.Len(t, onlyPersonal, 1)

	onlyBroadcasts := MergeNotifications(nil, []entity.Broadcast{{ID: "b1", Timestamp: time.Now()}})
	assert.Len(t, onlyBroadcasts, 1)
	assert.True(t, onlyBroadcasts[0].IsBroadcast)
}

func TestUnreadCount(t *testing.T) {
	personal := []entity.Notification{
		{ID: "n1", IsRead: false},
		{ID: "n2", IsRead: true},
		{ID: "n3", IsRead: false},
	}

	assert.Equal(t, 2, UnreadCount(personal))
	assert.Equal(t, 0, UnreadCount(nil))
}
