package pipeline

import "strings"

type resultState int

const (
	stateEmpty resultState = iota
	stateOK
	stateFailed
)

// emptiable lets composite stage outputs report their own emptiness.
type emptiable interface {
	Empty() bool
}

// Result is the outcome of one stage: a usable value, an empty result, or
// a contained failure. Construction normalizes emptiness so the
// validation gate needs exactly one classification rule: blank text,
// zero-length byte slices, and empty composites all collapse to the empty
// state, indistinguishable in effect from an outright failure.
type Result[T any] struct {
	state resultState
	value T
	err   error
}

// Ok wraps a produced value, demoting empty values to the empty state.
func Ok[T any](value T) Result[T] {
	switch v := any(value).(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return Result[T]{state: stateEmpty}
		}
	case []byte:
		if len(v) == 0 {
			return Result[T]{state: stateEmpty}
		}
	case emptiable:
		if v.Empty() {
			return Result[T]{state: stateEmpty}
		}
	}
	return Result[T]{state: stateOK, value: value}
}

// Empty is the absence of a value.
func Empty[T any]() Result[T] {
	return Result[T]{state: stateEmpty}
}

// Failed wraps a contained stage error.
func Failed[T any](err error) Result[T] {
	return Result[T]{state: stateFailed, err: err}
}

// OK reports whether the stage produced a usable value.
func (r Result[T]) OK() bool {
	return r.state == stateOK
}

// Value returns the produced value; the zero value unless OK.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the contained failure, if any.
func (r Result[T]) Err() error {
	return r.err
}

// Outcome is the gate-facing view of any Result.
type Outcome interface {
	OK() bool
	Err() error
}
