package schedule

import (
	"fmt"
	"sync"
	"time"
)

// Manual is a Scheduler whose time only moves when Advance is called. All
// callbacks run on the goroutine that calls Advance.
type Manual struct {
	mutex sync.Mutex
	now   time.Time
	seq   uint64
	tasks []*manualTask
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (this *Manual) Now() time.Time {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	return this.now
}

func (this *Manual) After(d time.Duration, fn func()) Handle {
	return this.add(d, 0, fn)
}

func (this *Manual) Every(d time.Duration, fn func()) Handle {
	if d <= 0 {
		panic(fmt.Errorf("illegal-period: %v", d))
	}
	return this.add(d, d, fn)
}

// Pending returns the number of callbacks that may still run.
func (this *Manual) Pending() int {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	return len(this.tasks)
}

// Advance moves the clock forward by d and runs every callback that
// becomes due, in due order. Callbacks with the same due time run in the
// order they were scheduled.
func (this *Manual) Advance(d time.Duration) {
	this.mutex.Lock()
	target := this.now.Add(d)
	this.mutex.Unlock()

	for {
		this.mutex.Lock()
		t := this.nextDue(target)
		if t == nil {
			this.now = target
			this.mutex.Unlock()
			return
		}
		this.now = t.due
		if t.period > 0 {
			t.due = t.due.Add(t.period)
			t.seq = this.nextSeq()
		} else {
			this.remove(t)
		}
		fn := t.fn
		this.mutex.Unlock()

		fn()
	}
}

func (this *Manual) add(d, period time.Duration, fn func()) *manualTask {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if d < 0 {
		d = 0
	}
	t := &manualTask{
		owner:  this,
		due:    this.now.Add(d),
		period: period,
		fn:     fn,
		seq:    this.nextSeq(),
	}
	this.tasks = append(this.tasks, t)
	return t
}

func (this *Manual) nextSeq() uint64 {
	this.seq++
	return this.seq
}

func (this *Manual) nextDue(until time.Time) (result *manualTask) {
	for _, t := range this.tasks {
		if t.due.After(until) {
			continue
		}
		if result == nil || t.due.Before(result.due) || (t.due.Equal(result.due) && t.seq < result.seq) {
			result = t
		}
	}
	return result
}

func (this *Manual) remove(t *manualTask) {
	for i, candidate := range this.tasks {
		if candidate == t {
			this.tasks = append(this.tasks[:i], this.tasks[i+1:]...)
			return
		}
	}
}

type manualTask struct {
	owner  *Manual
	due    time.Time
	period time.Duration
	fn     func()
	seq    uint64
}

func (this *manualTask) Cancel() {
	this.owner.mutex.Lock()
	defer this.owner.mutex.Unlock()
	this.owner.remove(this)
}
