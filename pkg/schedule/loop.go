package schedule

import (
	"sync"
	"sync/atomic"
	"time"
)

// Loop runs callbacks on real timers. Callbacks scheduled on the same Loop
// never run concurrently with each other.
type Loop struct {
	mutex sync.Mutex
}

func NewLoop() *Loop {
	return &Loop{}
}

func (this *Loop) Now() time.Time {
	return time.Now()
}

func (this *Loop) After(d time.Duration, fn func()) Handle {
	h := &loopHandle{}
	t := time.AfterFunc(d, func() {
		this.run(h, fn)
	})
	h.stop = func() { t.Stop() }
	return h
}

func (this *Loop) Every(d time.Duration, fn func()) Handle {
	h := &loopHandle{}
	t := time.NewTicker(d)
	done := make(chan struct{})
	h.stop = func() {
		t.Stop()
		close(done)
	}
	go func() {
		for {
			select {
			case <-done:
				return
			case <-t.C:
				this.run(h, fn)
			}
		}
	}()
	return h
}

// Do runs fn serialized with all callbacks of this Loop.
func (this *Loop) Do(fn func()) {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	fn()
}

func (this *Loop) run(h *loopHandle, fn func()) {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if h.cancelled.Load() {
		return
	}
	fn()
}

type loopHandle struct {
	cancelled atomic.Bool
	once      sync.Once
	stop      func()
}

func (this *loopHandle) Cancel() {
	this.cancelled.Store(true)
	this.once.Do(this.stop)
}
