/*
Package result implements the outcome of a computation that may fail.

Library code in this module returns plain Go errors. Result is for callers
which want to decide per call site whether a failure is recoverable (Get,
Match) or a program-logic defect which should abort (Must).
*/
package result

import "fmt"

// Result holds either a value or an error.
type Result[T any] interface {
	Match() Matcher[T]
	Get() (T, error)
	Must() T
	IsOk() bool
}

type result[T any] struct {
	value T
	err   error
}

// Ok wraps a successful value.
func Ok[T any](x T) Result[T] {
	return result[T]{value: x}
}

// Err wraps a failure.
func Err[T any](err error) Result[T] {
	return result[T]{err: err}
}

// Of wraps a Go-style (value, error) pair.
func Of[T any](x T, err error) Result[T] {
	if err != nil {
		return Err[T](err)
	}
	return Ok(x)
}

func (r result[T]) Match() Matcher[T] {
	return matcher[T]{r: r}
}

func (r result[T]) Get() (T, error) {
	return r.value, r.err
}

// Must returns the value or panics with the error.
func (r result[T]) Must() T {
	if r.err != nil {
		panic(fmt.Errorf("result: %w", r.err))
	}
	return r.value
}

func (r result[T]) IsOk() bool {
	return r.err == nil
}

// --- Matching --------------------------------------------------------------

type Matcher[T any] interface {
	Ok(*T) Matcher[T]
	Err(*error) Matcher[T]
}

type matcher[T any] struct {
	r result[T]
}

func (rm matcher[T]) Ok(v *T) Matcher[T] {
	if rm.r.err == nil {
		*v = rm.r.value
		return rm
	}
	return nil
}

func (rm matcher[T]) Err(err *error) Matcher[T] {
	if rm.r.err != nil {
		*err = rm.r.err
		return rm
	}
	return nil
}
