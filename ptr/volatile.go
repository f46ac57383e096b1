package ptr

// The compiler does not look through calls it may not inline, so loads and stores routed through
// these helpers are issued exactly once and in program order.

//go:noinline
func volatileLoad[T any](p *T) T {
	return *p
}

//go:noinline
func volatileStore[T any](p *T, value T) {
	*p = value
}
