package input

const SwipeThreshold = 50

type Direction int8

const (
	DirectionNone    = Direction(0)
	DirectionAdvance = Direction(1)
	DirectionRetreat = Direction(-1)
)

// Swipe recognizes horizontal swipes out of press and release positions.
// Positions are given in pixels; UnitsPerCell converts terminal cells.
type Swipe struct {
	UnitsPerCell int

	startX  int
	pressed bool
}

func (this *Swipe) Press(cellX int) {
	this.startX = cellX * this.unit()
	this.pressed = true
}

// Release finishes a swipe. Moving left advances, moving right retreats;
// anything not beyond SwipeThreshold is no swipe at all.
func (this *Swipe) Release(cellX int) Direction {
	if !this.pressed {
		return DirectionNone
	}
	this.pressed = false
	return Classify(this.startX, cellX*this.unit())
}

func (this *Swipe) Cancel() {
	this.pressed = false
}

func (this *Swipe) unit() int {
	if this.UnitsPerCell < 1 {
		return 1
	}
	return this.UnitsPerCell
}

func Classify(startX, endX int) Direction {
	diff := startX - endX
	switch {
	case diff > SwipeThreshold:
		return DirectionAdvance
	case diff < -SwipeThreshold:
		return DirectionRetreat
	default:
		return DirectionNone
	}
}
