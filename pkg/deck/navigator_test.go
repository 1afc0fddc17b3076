package deck

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blaubaer/party-deck/pkg/schedule"
)

const testSlideCount = 8

type countingCelebrator struct {
	calls int
}

func (this *countingCelebrator) Celebrate() {
	this.calls++
}

func newTestNavigator(t *testing.T) (*Navigator, *schedule.Manual, *countingCelebrator) {
	t.Helper()
	clock := schedule.NewManual(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	celebrator := &countingCelebrator{}
	return NewNavigator(testSlideCount, clock, celebrator), clock, celebrator
}

func assertConsistent(t *testing.T, s Snapshot, expectedIndex int) {
	t.Helper()
	require.Equal(t, expectedIndex, s.Index)
	assert.Equal(t, expectedIndex == 0, s.Controls.PrevDisabled, "prev disabled")
	assert.Equal(t, expectedIndex == testSlideCount-1, s.Controls.NextDisabled, "next disabled")
	assert.Equal(t, 1, s.Slides.CountOf(SlideStateActive))
	for i, v := range s.Controls.Indicators {
		assert.Equal(t, i == expectedIndex, v, "indicator %d", i)
	}
	for i, v := range s.Slides {
		switch {
		case i < expectedIndex:
			assert.Equal(t, SlideStatePrior, v, "slide %d", i)
		case i == expectedIndex:
			assert.Equal(t, SlideStateActive, v, "slide %d", i)
		default:
			assert.Equal(t, SlideStateDefault, v, "slide %d", i)
		}
	}
}

func TestNavigator_Initial(t *testing.T) {
	instance, _, _ := newTestNavigator(t)

	assert.Equal(t, testSlideCount, instance.SlideCount())
	assertConsistent(t, instance.Snapshot(), 0)
}

func TestNavigator_JumpToThenRefreshControls(t *testing.T) {
	instance, _, _ := newTestNavigator(t)

	for i := 0; i < testSlideCount; i++ {
		instance.JumpTo(i)
		instance.RefreshControls()
		assertConsistent(t, instance.Snapshot(), i)
	}
	for i := testSlideCount - 1; i >= 0; i-- {
		instance.JumpTo(i)
		instance.RefreshControls()
		assertConsistent(t, instance.Snapshot(), i)
	}
}

func TestNavigator_AdvanceConvergesWithJumpTo(t *testing.T) {
	advancing, _, _ := newTestNavigator(t)
	jumping, _, _ := newTestNavigator(t)

	for i := 1; i < testSlideCount; i++ {
		require.True(t, advancing.Advance())
		jumping.JumpTo(i)
		assert.Equal(t, jumping.Snapshot(), advancing.Snapshot())
		assertConsistent(t, advancing.Snapshot(), i)
	}
}

func TestNavigator_AdvanceAtLastIsNoop(t *testing.T) {
	instance, clock, celebrator := newTestNavigator(t)
	instance.JumpTo(testSlideCount - 1)
	clock.Advance(time.Second)
	require.Equal(t, 1, celebrator.calls)
	before := instance.Snapshot()

	assert.False(t, instance.Advance())
	clock.Advance(time.Second)

	assert.Equal(t, before, instance.Snapshot())
	assert.Equal(t, 1, celebrator.calls)
	assert.Equal(t, 0, clock.Pending())
}

func TestNavigator_RetreatAtFirstIsNoop(t *testing.T) {
	instance, _, _ := newTestNavigator(t)
	before := instance.Snapshot()

	assert.False(t, instance.Retreat())

	assert.Equal(t, before, instance.Snapshot())
}

func TestNavigator_AdvanceRetreatRoundTrip(t *testing.T) {
	instance, _, _ := newTestNavigator(t)

	for i := 0; i < testSlideCount-1; i++ {
		instance.JumpTo(i)
		before := instance.Snapshot()

		require.True(t, instance.Advance())
		require.True(t, instance.Retreat())

		assert.Equal(t, before, instance.Snapshot(), "round trip from %d", i)
	}
}

func TestNavigator_CelebratesOnceAfterDelayWhenAdvancingToLast(t *testing.T) {
	instance, clock, celebrator := newTestNavigator(t)
	instance.JumpTo(testSlideCount - 2)

	require.True(t, instance.Advance())
	clock.Advance(CelebrationDelay - time.Millisecond)
	assert.Equal(t, 0, celebrator.calls)

	clock.Advance(time.Millisecond)
	assert.Equal(t, 1, celebrator.calls)

	clock.Advance(10 * time.Second)
	assert.Equal(t, 1, celebrator.calls)
}

func TestNavigator_CelebratesOnceWhenJumpingToLast(t *testing.T) {
	instance, clock, celebrator := newTestNavigator(t)

	instance.JumpTo(testSlideCount - 1)
	clock.Advance(CelebrationDelay)
	assert.Equal(t, 1, celebrator.calls)
}

func TestNavigator_RejumpToLastWhileThereDoesNotCelebrateAgain(t *testing.T) {
	instance, clock, celebrator := newTestNavigator(t)

	instance.JumpTo(testSlideCount - 1)
	instance.JumpTo(testSlideCount - 1)
	clock.Advance(CelebrationDelay)
	assert.Equal(t, 1, celebrator.calls)

	instance.JumpTo(testSlideCount - 1)
	clock.Advance(CelebrationDelay)
	assert.Equal(t, 1, celebrator.calls)
}

func TestNavigator_ArrivingAgainCelebratesAgain(t *testing.T) {
	instance, clock, celebrator := newTestNavigator(t)

	instance.JumpTo(testSlideCount - 1)
	clock.Advance(CelebrationDelay)
	require.True(t, instance.Retreat())
	require.True(t, instance.Advance())
	clock.Advance(CelebrationDelay)

	assert.Equal(t, 2, celebrator.calls)
}

func TestNavigator_NoCelebrationBeforeLast(t *testing.T) {
	instance, clock, celebrator := newTestNavigator(t)

	for instance.Current() < testSlideCount-2 {
		instance.Advance()
	}
	instance.JumpTo(3)
	clock.Advance(10 * time.Second)

	assert.Equal(t, 0, celebrator.calls)
}

func TestNavigator_JumpToOutOfRangePanics(t *testing.T) {
	instance, _, _ := newTestNavigator(t)
	instance.JumpTo(2)
	before := instance.Snapshot()

	for _, index := range []int{-1, testSlideCount, testSlideCount + 5} {
		func() {
			defer func() {
				r := recover()
				require.NotNil(t, r, "index %d", index)
				err, ok := r.(*IndexOutOfRangeError)
				require.True(t, ok, "index %d", index)
				assert.Equal(t, index, err.Index)
				assert.Equal(t, testSlideCount, err.SlideCount)
			}()
			instance.JumpTo(index)
		}()
	}

	assert.Equal(t, before, instance.Snapshot())
}

func TestNavigator_SingleSlide(t *testing.T) {
	clock := schedule.NewManual(time.Time{})
	celebrator := &countingCelebrator{}
	instance := NewNavigator(1, clock, celebrator)

	s := instance.Snapshot()
	assert.True(t, s.Controls.PrevDisabled)
	assert.True(t, s.Controls.NextDisabled)
	assert.True(t, s.IsLast())
	assert.False(t, instance.Advance())
	assert.False(t, instance.Retreat())
}

func TestNavigator_IllegalSlideCountPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewNavigator(0, schedule.NewManual(time.Time{}), nil)
	})
}

func TestNavigator_SnapshotIsACopy(t *testing.T) {
	instance, _, _ := newTestNavigator(t)
	s := instance.Snapshot()
	s.Slides[0] = SlideStatePrior
	s.Controls.Indicators[3] = true

	assertConsistent(t, instance.Snapshot(), 0)
}
