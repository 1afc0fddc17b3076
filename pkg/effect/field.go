package effect

import (
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/blaubaer/party-deck/pkg/schedule"
)

// Field holds all live decorations. Every element with a lifetime removes
// itself once that has passed.
type Field struct {
	scheduler schedule.Scheduler
	random    *rand.Rand

	nextID   uint64
	elements []Element

	mutex sync.Mutex
}

func NewField(scheduler schedule.Scheduler, random *rand.Rand) *Field {
	if random == nil {
		random = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Field{
		scheduler: scheduler,
		random:    random,
	}
}

func (this *Field) Now() time.Time {
	return this.scheduler.Now()
}

func (this *Field) Spawn(e Element) uint64 {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	this.nextID++
	id := this.nextID
	e.ID = id
	e.Born = this.scheduler.Now()
	this.elements = append(this.elements, e)

	if e.Lifetime > 0 {
		this.scheduler.After(e.Lifetime, func() {
			this.remove(id)
		})
	}
	return id
}

func (this *Field) remove(id uint64) {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	this.elements = slices.DeleteFunc(this.elements, func(e Element) bool {
		return e.ID == id
	})
}

func (this *Field) Snapshot() []Element {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	return slices.Clone(this.elements)
}

func (this *Field) Count(kind Kind) (result int) {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	for _, e := range this.elements {
		if e.Kind == kind {
			result++
		}
	}
	return result
}

func (this *Field) Len() int {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	return len(this.elements)
}

func (this *Field) float(min, max float64) float64 {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	return min + this.random.Float64()*(max-min)
}

func (this *Field) duration(min, max time.Duration) time.Duration {
	return time.Duration(this.float(float64(min), float64(max)))
}

func (this *Field) pick(from []string) string {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	return from[this.random.IntN(len(from))]
}
