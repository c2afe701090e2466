package fsm

import "slices"

func NewFSM[S comparable, T any](machine Machine[S, T], initial S) *FSM[S, T] {
	return &FSM[S, T]{
		machine:      machine,
		initial:      initial,
		current:      initial,
		onEnter:      make(map[S][]Callback[S, T]),
		onExit:       make(map[S][]Callback[S, T]),
		onTransition: make([]Callback[S, T], 0),
	}
}

// Copy returns a holder in the initial state sharing the machine and the callbacks
// registered so far. Callbacks added later to either holder are not shared.
func (fsm *FSM[S, T]) Copy() *FSM[S, T] {
	fsm.mu.RLock()
	defer fsm.mu.RUnlock()

	c := NewFSM(fsm.machine, fsm.initial)
	for state, cbs := range fsm.onEnter {
		c.onEnter[state] = slices.Clone(cbs)
	}
	for state, cbs := range fsm.onExit {
		c.onExit[state] = slices.Clone(cbs)
	}
	c.onTransition = slices.Clone(fsm.onTransition)
	return c
}

func (fsm *FSM[S, T]) GetCurrent() S {
	fsm.mu.RLock()
	defer fsm.mu.RUnlock()

	return fsm.current
}

// SetState forces the current state without consulting the machine or running callbacks.
func (fsm *FSM[S, T]) SetState(state S) {
	fsm.mu.Lock()
	defer fsm.mu.Unlock()

	fsm.current = state
}

func (fsm *FSM[S, T]) Reset() {
	fsm.SetState(fsm.initial)
}

// OnEnter registers cb to run when the machine moves into state from a different one.
func (fsm *FSM[S, T]) OnEnter(state S, cb Callback[S, T]) *FSM[S, T] {
	fsm.mu.Lock()
	defer fsm.mu.Unlock()

	fsm.onEnter[state] = append(fsm.onEnter[state], cb)
	return fsm
}

// OnExit registers cb to run when the machine leaves state for a different one.
func (fsm *FSM[S, T]) OnExit(state S, cb Callback[S, T]) *FSM[S, T] {
	fsm.mu.Lock()
	defer fsm.mu.Unlock()

	fsm.onExit[state] = append(fsm.onExit[state], cb)
	return fsm
}

// OnTransition registers cb to run after every Trigger, self-loops included.
func (fsm *FSM[S, T]) OnTransition(cb Callback[S, T]) *FSM[S, T] {
	fsm.mu.Lock()
	defer fsm.mu.Unlock()

	fsm.onTransition = append(fsm.onTransition, cb)
	return fsm
}

// Trigger applies t to the current state and returns the states before and after.
// Callbacks run after the new state is stored, in exit, transition, enter order,
// and may safely read the machine.
func (fsm *FSM[S, T]) Trigger(t T) (S, S) {
	fsm.mu.Lock()
	prevState := fsm.current
	nextState := fsm.machine.NextState(prevState, t)
	fsm.current = nextState

	var callbacks []Callback[S, T]
	if prevState != nextState {
		callbacks = append(callbacks, fsm.onExit[prevState]...)
	}
	callbacks = append(callbacks, fsm.onTransition...)
	if prevState != nextState {
		callbacks = append(callbacks, fsm.onEnter[nextState]...)
	}
	fsm.mu.Unlock()

	for _, cb := range callbacks {
		cb(newContext(prevState, nextState, t))
	}

	return prevState, nextState
}
