package service

import (
	"errors"
	"ladder-tracker/internal/api"
)

type outcomeKind int

const (
	outcomeFound outcomeKind = iota
	outcomeAbsent
	outcomeFailed
)

func (k outcomeKind) String() string {
	switch k {
	case outcomeFound:
		return "found"
	case outcomeAbsent:
		return "absent"
	default:
		return "failed"
	}
}

// lookup is the result of one upstream sub-lookup. Absent means the
// provider answered 404; failed carries any other error.
type lookup[T any] struct {
	kind  outcomeKind
	value T
	err   error
}

func found[T any](v T) lookup[T] {
	return lookup[T]{kind: outcomeFound, value: v}
}

func absent[T any]() lookup[T] {
	return lookup[T]{kind: outcomeAbsent}
}

func failed[T any](err error) lookup[T] {
	return lookup[T]{kind: outcomeFailed, err: err}
}

func classify[T any](v T, err error) lookup[T] {
	switch {
	case err == nil:
		return found(v)
	case errors.Is(err, api.ErrNotFound):
		return absent[T]()
	default:
		return failed[T](err)
	}
}
