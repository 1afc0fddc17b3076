package blow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blaubaer/party-deck/pkg/audio"
	"github.com/blaubaer/party-deck/pkg/schedule"
)

type fakeInput struct {
	levels  []uint8
	samples int
	closed  int
}

func (this *fakeInput) Snapshot() []uint8 {
	level := uint8(0)
	if this.samples < len(this.levels) {
		level = this.levels[this.samples]
	}
	this.samples++
	bins := make([]uint8, audio.DefaultFFTSize/2)
	for i := range bins {
		bins[i] = level
	}
	return bins
}

func (this *fakeInput) Close() error {
	this.closed++
	return nil
}

type fakeSource struct {
	err    error
	inputs []*fakeInput
	levels []uint8
}

func (this *fakeSource) Open(ctx context.Context) (Input, error) {
	if this.err != nil {
		return nil, this.err
	}
	result := &fakeInput{levels: this.levels}
	this.inputs = append(this.inputs, result)
	return result, nil
}

func (this *fakeSource) last() *fakeInput {
	return this.inputs[len(this.inputs)-1]
}

type recordingFeedback struct {
	armed      []bool
	extinguish int
	succeed    int
}

func (this *recordingFeedback) Armed(v bool)  { this.armed = append(this.armed, v) }
func (this *recordingFeedback) Extinguish()   { this.extinguish++ }
func (this *recordingFeedback) Succeed()      { this.succeed++ }
func (this *recordingFeedback) isArmed() bool { return len(this.armed) > 0 && this.armed[len(this.armed)-1] }

type countingCelebrator struct{ calls int }

func (this *countingCelebrator) Celebrate() { this.calls++ }

type fixture struct {
	source     *fakeSource
	clock      *schedule.Manual
	feedback   *recordingFeedback
	celebrator *countingCelebrator
	instance   *Detector
}

func newFixture(levels ...uint8) *fixture {
	result := &fixture{
		source:     &fakeSource{levels: levels},
		clock:      schedule.NewManual(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
		feedback:   &recordingFeedback{},
		celebrator: &countingCelebrator{},
	}
	result.instance = New(result.source, result.clock, result.feedback, result.celebrator)
	return result
}

func TestDetector_StartDenied(t *testing.T) {
	for _, kind := range []error{ErrPermissionDenied, ErrDeviceUnavailable} {
		f := newFixture()
		f.source.err = &audio.AcquisitionError{Kind: kind, Cause: errors.New("backend says no")}

		err := f.instance.Start(context.Background())

		require.ErrorIs(t, err, kind)
		assert.Equal(t, StateIdle, f.instance.State())
		assert.Equal(t, 0, f.clock.Pending(), "no timer")
		assert.Empty(t, f.source.inputs, "no stream")
		assert.Empty(t, f.feedback.armed)
	}
}

func TestDetector_StartFailingWithUnknownErrorIsDeviceUnavailable(t *testing.T) {
	f := newFixture()
	f.source.err = errors.New("boom")

	err := f.instance.Start(context.Background())

	require.ErrorIs(t, err, ErrDeviceUnavailable)
	assert.NotErrorIs(t, err, ErrPermissionDenied)
	assert.ErrorContains(t, err, "boom")
}

func TestDetector_StartAfterDenialCanSucceed(t *testing.T) {
	f := newFixture()
	f.source.err = ErrPermissionDenied
	require.Error(t, f.instance.Start(context.Background()))

	f.source.err = nil
	require.NoError(t, f.instance.Start(context.Background()))

	assert.Equal(t, StateListening, f.instance.State())
	assert.True(t, f.feedback.isArmed())
}

func TestDetector_TriggersOnceOnFirstSampleAboveThreshold(t *testing.T) {
	f := newFixture(10, 15, 35, 20)
	require.NoError(t, f.instance.Start(context.Background()))
	require.Equal(t, StateListening, f.instance.State())
	require.Equal(t, 1, f.clock.Pending())

	f.clock.Advance(2 * SampleInterval)
	assert.Equal(t, 0, f.feedback.extinguish)
	assert.Equal(t, StateListening, f.instance.State())

	f.clock.Advance(SampleInterval)
	assert.Equal(t, 1, f.feedback.extinguish)
	assert.Equal(t, 3, f.source.last().samples, "triggered on the third sample")
	assert.Equal(t, StateIdle, f.instance.State())
	assert.Equal(t, 1, f.source.last().closed, "stream released")
	assert.False(t, f.feedback.isArmed())
	assert.Equal(t, 0, f.feedback.succeed)
	assert.Equal(t, 0, f.celebrator.calls)

	f.clock.Advance(SuccessDelay)
	assert.Equal(t, 1, f.feedback.succeed)
	assert.Equal(t, 1, f.celebrator.calls)

	f.clock.Advance(10 * time.Second)
	assert.Equal(t, 1, f.feedback.extinguish)
	assert.Equal(t, 3, f.source.last().samples, "no sample after trigger")
	assert.Equal(t, 0, f.clock.Pending(), "timer released")
}

func TestDetector_ThresholdIsExclusive(t *testing.T) {
	f := newFixture(30, 30, 30)
	require.NoError(t, f.instance.Start(context.Background()))

	f.clock.Advance(3 * SampleInterval)

	assert.Equal(t, 0, f.feedback.extinguish)
	assert.Equal(t, StateListening, f.instance.State())
}

func TestDetector_StopTwiceFromIdle(t *testing.T) {
	f := newFixture()

	f.instance.Stop()
	assert.Equal(t, StateIdle, f.instance.State())

	f.instance.Stop()
	assert.Equal(t, StateIdle, f.instance.State())
	assert.Equal(t, 0, f.clock.Pending())
}

func TestDetector_StopWhileListening(t *testing.T) {
	f := newFixture(0, 0, 200)
	require.NoError(t, f.instance.Start(context.Background()))
	f.clock.Advance(SampleInterval)

	f.instance.Stop()
	f.instance.Stop()
	f.clock.Advance(time.Second)

	assert.Equal(t, StateIdle, f.instance.State())
	assert.Equal(t, 1, f.source.last().samples)
	assert.Equal(t, 1, f.source.last().closed)
	assert.Equal(t, 0, f.feedback.extinguish)
	assert.Equal(t, 0, f.clock.Pending())
}

func TestDetector_StartWhileListeningTogglesOff(t *testing.T) {
	f := newFixture(0, 0, 200)
	require.NoError(t, f.instance.Start(context.Background()))

	require.NoError(t, f.instance.Start(context.Background()))

	assert.Equal(t, StateIdle, f.instance.State())
	assert.Len(t, f.source.inputs, 1, "no second acquisition")
	assert.Equal(t, 1, f.source.last().closed)
	assert.Equal(t, 0, f.clock.Pending())
	assert.Equal(t, []bool{true, false}, f.feedback.armed)

	f.clock.Advance(time.Second)
	assert.Equal(t, 0, f.feedback.extinguish, "not blown")
	assert.Equal(t, 0, f.feedback.succeed)
}

func TestDetector_RestartAfterTrigger(t *testing.T) {
	f := newFixture(99)
	require.NoError(t, f.instance.Start(context.Background()))
	f.clock.Advance(SampleInterval + SuccessDelay)
	require.Equal(t, StateIdle, f.instance.State())
	require.Equal(t, 1, f.feedback.succeed)

	require.NoError(t, f.instance.Start(context.Background()))

	assert.Equal(t, StateListening, f.instance.State())
	assert.Len(t, f.source.inputs, 2)
	assert.Equal(t, 1, f.clock.Pending())
}

func TestDetector_StaleTickIsIgnored(t *testing.T) {
	f := newFixture(200)
	require.NoError(t, f.instance.Start(context.Background()))
	stale := f.instance.session
	f.instance.Stop()

	f.instance.sample(stale)

	assert.Equal(t, 0, f.feedback.extinguish)
	assert.Equal(t, 0, stale.input.(*fakeInput).samples)
}

type blockingSource struct {
	entered chan struct{}
	release chan struct{}
	opens   int
	input   *fakeInput
}

func newBlockingSource() *blockingSource {
	return &blockingSource{
		entered: make(chan struct{}),
		release: make(chan struct{}),
		input:   &fakeInput{},
	}
}

func (this *blockingSource) Open(ctx context.Context) (Input, error) {
	this.opens++
	close(this.entered)
	<-this.release
	return this.input, nil
}

func startInBackground(instance *Detector) <-chan error {
	result := make(chan error, 1)
	go func() {
		result <- instance.Start(context.Background())
	}()
	return result
}

func TestDetector_StopDuringAcquisitionDoesNotBlock(t *testing.T) {
	clock := schedule.NewManual(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	source := newBlockingSource()
	feedback := &recordingFeedback{}
	instance := New(source, clock, feedback, nil)

	started := startInBackground(instance)
	<-source.entered

	stopped := make(chan struct{})
	go func() {
		instance.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		require.Fail(t, "Stop blocked by the running acquisition")
	}
	assert.Equal(t, StateIdle, instance.State())

	close(source.release)
	require.NoError(t, <-started)

	assert.Equal(t, StateIdle, instance.State())
	assert.Equal(t, 1, source.input.closed, "acquired input released again")
	assert.Equal(t, 0, clock.Pending(), "no timer")
	assert.False(t, feedback.isArmed())
}

func TestDetector_StartDuringAcquisitionIsIgnored(t *testing.T) {
	clock := schedule.NewManual(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	source := newBlockingSource()
	instance := New(source, clock, &recordingFeedback{}, nil)

	started := startInBackground(instance)
	<-source.entered

	require.NoError(t, instance.Start(context.Background()))

	close(source.release)
	require.NoError(t, <-started)
	assert.Equal(t, 1, source.opens)
	assert.Equal(t, StateListening, instance.State())
	assert.Equal(t, 1, clock.Pending())
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 20.0, Mean([]uint8{10, 30}))
	assert.Equal(t, 255.0, Mean([]uint8{255, 255, 255}))
}

func TestState_Text(t *testing.T) {
	assert.Equal(t, "idle,listening", AllStates.String())

	var actual State
	require.NoError(t, actual.Set("Listening"))
	assert.Equal(t, StateListening, actual)
	assert.Error(t, actual.Set("triggered"))
}
