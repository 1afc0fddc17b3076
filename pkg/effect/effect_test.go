package effect

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blaubaer/party-deck/pkg/schedule"
)

var epoch = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func newTestField() (*Field, *schedule.Manual) {
	clock := schedule.NewManual(epoch)
	return NewField(clock, rand.New(rand.NewPCG(1, 2))), clock
}

func TestField_SpawnRemovesAfterLifetime(t *testing.T) {
	instance, clock := newTestField()

	a := instance.Spawn(Element{Kind: KindHeart, Lifetime: time.Second})
	b := instance.Spawn(Element{Kind: KindBalloon})
	require.NotEqual(t, a, b)
	assert.Equal(t, 2, instance.Len())
	assert.Equal(t, epoch, instance.Snapshot()[0].Born)

	clock.Advance(time.Second)
	assert.Equal(t, 1, instance.Len())
	assert.Equal(t, 0, instance.Count(KindHeart))
	assert.Equal(t, 1, instance.Count(KindBalloon))
}

func TestConfetti_Celebrate(t *testing.T) {
	field, clock := newTestField()
	instance := &Confetti{Field: field}

	instance.Celebrate()
	assert.Equal(t, 0, field.Count(KindConfetti), "spawned by the scheduler only")

	clock.Advance(0)
	assert.Equal(t, 1, field.Count(KindConfetti), "first piece without delay")

	// Pieces start to disappear before the last one is spawned, so every
	// piece is recorded when it shows up.
	seen := map[uint64]Element{}
	record := func() {
		for _, e := range field.Snapshot() {
			seen[e.ID] = e
		}
	}
	record()
	for i := 1; i < ConfettiPieces; i++ {
		clock.Advance(ConfettiStagger)
		record()
	}

	require.Len(t, seen, ConfettiPieces)
	for _, e := range seen {
		assert.Equal(t, KindConfetti, e.Kind)
		assert.GreaterOrEqual(t, e.Lifetime, ConfettiMinLifetime)
		assert.Less(t, e.Lifetime, ConfettiMaxLifetime)
		assert.Contains(t, ConfettiColors, e.Color)
		assert.Contains(t, confettiShapes, e.Glyph)
	}

	clock.Advance(ConfettiMaxLifetime)
	assert.Equal(t, 0, field.Len())
	assert.Equal(t, 0, clock.Pending())
}

func TestConfetti_ConcurrentCallsAreIndependent(t *testing.T) {
	field, clock := newTestField()
	instance := &Confetti{Field: field}

	instance.Celebrate()
	instance.Celebrate()
	// Nothing reached its minimal lifetime yet.
	clock.Advance(ConfettiMinLifetime - time.Millisecond)
	perCall := int((ConfettiMinLifetime-time.Millisecond)/ConfettiStagger) + 1
	assert.Equal(t, 2*perCall, field.Count(KindConfetti))

	clock.Advance(ConfettiStagger*ConfettiPieces + ConfettiMaxLifetime)
	assert.Equal(t, 0, field.Len())
}

func TestSpawner_Hearts(t *testing.T) {
	field, clock := newTestField()
	instance := Hearts(field)

	instance.Start()
	instance.Start()
	clock.Advance(HeartInterval * 5)
	assert.Equal(t, 5, field.Count(KindHeart))

	clock.Advance(HeartLifetime)
	// the first five are gone again
	assert.Equal(t, int(HeartLifetime/HeartInterval), field.Count(KindHeart))

	instance.Stop()
	instance.Stop()
	clock.Advance(HeartLifetime)
	assert.Equal(t, 0, field.Count(KindHeart))
	assert.Equal(t, 0, clock.Pending())
}

func TestSpawner_Sparkles(t *testing.T) {
	field, clock := newTestField()
	instance := Sparkles(field)
	instance.Start()
	defer instance.Stop()

	clock.Advance(SparkleInterval * 3)

	require.Equal(t, 3, field.Count(KindSparkle))
	for _, e := range field.Snapshot() {
		assert.Equal(t, SparkleLifetime, e.Lifetime)
		assert.Contains(t, sparkleGlyphs, e.Glyph)
	}
}

func TestDecorations(t *testing.T) {
	field, clock := newTestField()
	instance := &Decorations{Field: field}

	instance.Start()
	assert.Equal(t, BalloonCount, field.Count(KindBalloon))

	clock.Advance(time.Second * 10)
	instance.Stop()
	clock.Advance(time.Second * 10)

	assert.Equal(t, 0, field.Count(KindHeart))
	assert.Equal(t, 0, field.Count(KindSparkle))
	assert.Equal(t, BalloonCount, field.Count(KindBalloon), "balloons stay")

	instance.Start()
	assert.Equal(t, BalloonCount, field.Count(KindBalloon), "placed only once")
	instance.Stop()
}

func TestDecorations_BalloonsOnly(t *testing.T) {
	field, clock := newTestField()
	instance := &Decorations{Field: field, BalloonsOnly: true}

	instance.Start()
	clock.Advance(time.Second * 3)
	assert.Equal(t, BalloonCount, field.Len())
	instance.Stop()
}

func TestElement_Position(t *testing.T) {
	heart := Element{Kind: KindHeart, X: 0.3, Born: epoch, Travel: 4 * time.Second}
	x, y := heart.Position(epoch)
	assert.Equal(t, 0.3, x)
	assert.Equal(t, 1.0, y)
	_, y = heart.Position(epoch.Add(2 * time.Second))
	assert.InDelta(t, 0.5, y, 1e-9)
	_, y = heart.Position(epoch.Add(time.Minute))
	assert.Equal(t, 0.0, y)

	confetti := Element{Kind: KindConfetti, Born: epoch, Travel: 2 * time.Second}
	_, y = confetti.Position(epoch.Add(time.Second))
	assert.InDelta(t, 0.5, y, 1e-9)

	balloon := Element{Kind: KindBalloon, Y: 0.2, Born: epoch, Travel: 3 * time.Second}
	for i := 0; i < 30; i++ {
		_, y = balloon.Position(epoch.Add(time.Duration(i) * 250 * time.Millisecond))
		assert.InDelta(t, 0.2, y, 0.05+1e-9)
	}

	sparkle := Element{Kind: KindSparkle, Born: epoch, Travel: 2 * time.Second}
	assert.False(t, sparkle.Visible(epoch))
	assert.True(t, sparkle.Visible(epoch.Add(time.Second)))
	assert.True(t, heart.Visible(epoch))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "confetti", KindConfetti.String())
	assert.Equal(t, "illegal-kind-9", Kind(9).String())
}
