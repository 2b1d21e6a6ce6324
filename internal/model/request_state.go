package model

import "encoding/json"

// RequestKind enumerates the states a RequestState can be in.
type RequestKind int

const (
	RequestIdle RequestKind = iota
	RequestSuccess
	RequestError
)

func (k RequestKind) String() string {
	switch k {
	case RequestSuccess:
		return "success"
	case RequestError:
		return "error"
	default:
		return "idle"
	}
}

// RequestState wraps a produced value together with how it was produced.
// The zero value is Idle.
type RequestState[T any] struct {
	kind    RequestKind
	data    T
	message string
}

// Idle returns an uninitialized RequestState.
func Idle[T any]() RequestState[T] {
	return RequestState[T]{}
}

// Success wraps a successfully produced value.
func Success[T any](data T) RequestState[T] {
	return RequestState[T]{kind: RequestSuccess, data: data}
}

// Failure wraps an error message.
func Failure[T any](message string) RequestState[T] {
	return RequestState[T]{kind: RequestError, message: message}
}

func (s RequestState[T]) Kind() RequestKind { return s.kind }
func (s RequestState[T]) IsIdle() bool      { return s.kind == RequestIdle }
func (s RequestState[T]) IsSuccess() bool   { return s.kind == RequestSuccess }
func (s RequestState[T]) IsError() bool     { return s.kind == RequestError }

// Data returns the wrapped value and whether the state is Success.
func (s RequestState[T]) Data() (T, bool) {
	return s.data, s.kind == RequestSuccess
}

// Message returns the error message, empty unless the state is Error.
func (s RequestState[T]) Message() string {
	return s.message
}

type requestStateJSON[T any] struct {
	State   string `json:"state"`
	Data    *T     `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func (s RequestState[T]) MarshalJSON() ([]byte, error) {
	out := requestStateJSON[T]{State: s.kind.String(), Message: s.message}
	if s.kind == RequestSuccess {
		data := s.data
		out.Data = &data
	}
	return json.Marshal(out)
}
