package plant

import (
	"context"
	"errors"
	"fmt"

	loopfsm "github.com/looplab/fsm"

	"github.com/osse101/PetalGarden_Go/internal/domain"
)

// Transition is the outcome of a valid lifecycle event
type Transition struct {
	From    domain.Stage
	To      domain.Stage
	Removed bool
}

// Lifecycle validates stage transitions with looplab/fsm. The machine is
// stateful, so a short-lived instance is created per call, starting from the
// plant's current stage.
type Lifecycle struct {
	events []loopfsm.EventDesc
}

// NewLifecycle builds the transition table:
//
//	water:   new -> seed -> growing -> fully_grown
//	wither:  new, seed, growing -> withered
//	harvest: fully_grown -> removed
//	destroy: withered -> removed
func NewLifecycle() *Lifecycle {
	s := func(st domain.Stage) string { return st.String() }
	return &Lifecycle{events: []loopfsm.EventDesc{
		{Name: EventWater, Src: []string{s(domain.StageNew)}, Dst: s(domain.StageSeed)},
		{Name: EventWater, Src: []string{s(domain.StageSeed)}, Dst: s(domain.StageGrowing)},
		{Name: EventWater, Src: []string{s(domain.StageGrowing)}, Dst: s(domain.StageFullyGrown)},
		{
			Name: EventWither,
			Src:  []string{s(domain.StageNew), s(domain.StageSeed), s(domain.StageGrowing)},
			Dst:  s(domain.StageWithered),
		},
		{Name: EventHarvest, Src: []string{s(domain.StageFullyGrown)}, Dst: StateRemoved},
		{Name: EventDestroy, Src: []string{s(domain.StageWithered)}, Dst: StateRemoved},
	}}
}

// Apply returns the transition event causes from current, or an error
// wrapping domain.ErrInvalidTransition.
func (l *Lifecycle) Apply(ctx context.Context, current domain.Stage, event string) (Transition, error) {
	machine := loopfsm.NewFSM(current.String(), l.events, nil)

	if err := machine.Event(ctx, event); err != nil {
		var invalidEvent loopfsm.InvalidEventError
		var unknownEvent loopfsm.UnknownEventError
		var noTransition loopfsm.NoTransitionError
		if errors.As(err, &invalidEvent) || errors.As(err, &unknownEvent) || errors.As(err, &noTransition) {
			return Transition{}, fmt.Errorf("%w: %s from %s", domain.ErrInvalidTransition, event, current)
		}
		return Transition{}, err
	}

	dst := machine.Current()
	if dst == StateRemoved {
		return Transition{From: current, To: current, Removed: true}, nil
	}
	to, ok := domain.ParseStage(dst)
	if !ok {
		return Transition{}, fmt.Errorf("%w: unknown state %s", domain.ErrInvalidTransition, dst)
	}
	return Transition{From: current, To: to}, nil
}

// Can reports whether event is legal from current
func (l *Lifecycle) Can(current domain.Stage, event string) bool {
	return loopfsm.NewFSM(current.String(), l.events, nil).Can(event)
}

var defaultLifecycle = NewLifecycle()
