package scheduler

import "sync/atomic"

const (
	statePending int32 = iota
	stateFired
	stateCancelled
)

// timerState is the pending/fired/cancelled latch shared by both schedulers.
// Exactly one of fire or cancel wins.
type timerState struct {
	v atomic.Int32
}

func (s *timerState) fire() bool {
	return s.v.CompareAndSwap(statePending, stateFired)
}

func (s *timerState) cancel() bool {
	return s.v.CompareAndSwap(statePending, stateCancelled)
}

func (s *timerState) active() bool {
	return s.v.Load() == statePending
}
