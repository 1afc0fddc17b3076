package blow

import (
	"sync"
)

// Cake is the Feedback shown on the cake slide.
type Cake struct {
	lit         [FlameCount]bool
	armed       bool
	succeeded   bool
	instruction string
	wish        string

	mutex sync.RWMutex
}

func NewCake(instruction, wish string) *Cake {
	result := &Cake{
		instruction: instruction,
		wish:        wish,
	}
	for i := range result.lit {
		result.lit[i] = true
	}
	return result
}

func (this *Cake) Armed(v bool) {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	this.armed = v
}

func (this *Cake) Extinguish() {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	for i := range this.lit {
		this.lit[i] = false
	}
}

func (this *Cake) Succeed() {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	this.succeeded = true
	this.instruction = this.wish
}

type CakeSnapshot struct {
	Lit         []bool
	Armed       bool
	Succeeded   bool
	Instruction string
}

func (this CakeSnapshot) LitCount() (result int) {
	for _, v := range this.Lit {
		if v {
			result++
		}
	}
	return result
}

func (this *Cake) Snapshot() CakeSnapshot {
	this.mutex.RLock()
	defer this.mutex.RUnlock()

	lit := make([]bool, len(this.lit))
	copy(lit, this.lit[:])
	return CakeSnapshot{
		Lit:         lit,
		Armed:       this.armed,
		Succeeded:   this.succeeded,
		Instruction: this.instruction,
	}
}
