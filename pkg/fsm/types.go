package fsm

import "sync"

type (
	// Machine computes the state reached when current undergoes transition t.
	// Implementations must be pure and total.
	Machine[S, T any] interface {
		NextState(current S, t T) S
	}

	MachineFunc[S, T any] func(current S, t T) S

	Callback[S comparable, T any] func(ctx *Context[S, T])

	FSM[S comparable, T any] struct {
		machine      Machine[S, T]
		initial      S
		current      S
		onExit       map[S][]Callback[S, T]
		onEnter      map[S][]Callback[S, T]
		onTransition []Callback[S, T]

		mu sync.RWMutex
	}
)

func (f MachineFunc[S, T]) NextState(current S, t T) S {
	return f(current, t)
}
