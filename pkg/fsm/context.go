package fsm

// Context describes a single applied transition. Callbacks receive their own copy.
type Context[S comparable, T any] struct {
	From       S
	To         S
	Transition T
}

func newContext[S comparable, T any](from, to S, t T) *Context[S, T] {
	return &Context[S, T]{
		From:       from,
		To:         to,
		Transition: t,
	}
}

// Changed reports whether the transition moved the machine to a different state.
func (c *Context[S, T]) Changed() bool {
	return c.From != c.To
}
