package activity

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker_BeginEnd(t *testing.T) {
	tracker := NewTracker()
	assert.False(t, tracker.Busy())

	tracker.Begin()
	assert.True(t, tracker.Busy())
	assert.Equal(t, 1, tracker.Count())

	tracker.Begin()
	assert.Equal(t, 2, tracker.Count())

	tracker.End()
	assert.True(t, tracker.Busy())

	tracker.End()
	assert.False(t, tracker.Busy())
}

func TestTracker_EndNeverGoesNegative(t *testing.T) {
	tracker := NewTracker()
	tracker.End()
	tracker.End()
	assert.Equal(t, 0, tracker.Count())
}

func TestTracker_DoReleasesOnError(t *testing.T) {
	tracker := NewTracker()
	failure := errors.New("boom")

	err := tracker.Do(func() error {
		assert.True(t, tracker.Busy())
		return failure
	})

	assert.ErrorIs(t, err, failure)
	assert.False(t, tracker.Busy())
}

func TestTracker_ConcurrentDo(t *testing.T) {
	tracker := NewTracker()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = tracker.Do(func() error { return nil })
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, tracker.Count())
}

func TestTracker_InstancesAreIndependent(t *testing.T) {
	a := NewTracker()
	b := NewTracker()

	a.Begin()
	assert.True(t, a.Busy())
	assert.False(t, b.Busy())
}
