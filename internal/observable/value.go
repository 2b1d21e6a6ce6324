// Package observable provides a value holder that publishes every change to subscribers.
package observable

import (
	"context"
	"sync"
)

// Value holds the latest T and delivers it to subscribers.
// New subscribers immediately receive the current value. Slow subscribers only ever
// see the most recent value: an undelivered value is replaced, never queued.
type Value[T any] struct {
	mu          sync.Mutex
	current     T
	subscribers map[*subscriber[T]]struct{}
}

type subscriber[T any] struct {
	ch chan T
}

// NewValue returns a Value holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{
		current:     initial,
		subscribers: make(map[*subscriber[T]]struct{}),
	}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Set replaces the current value and notifies subscribers.
func (v *Value[T]) Set(value T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.current = value
	v.publishLocked()
}

// Update applies fn to the current value under the lock and publishes the result.
// fn must not call back into v.
func (v *Value[T]) Update(fn func(T) T) T {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.current = fn(v.current)
	v.publishLocked()
	return v.current
}

// Subscribe returns a channel that receives the current value and every later change
// until ctx is done, at which point the channel is closed.
func (v *Value[T]) Subscribe(ctx context.Context) <-chan T {
	sub := &subscriber[T]{ch: make(chan T, 1)}

	v.mu.Lock()
	sub.ch <- v.current
	v.subscribers[sub] = struct{}{}
	v.mu.Unlock()

	go func() {
		<-ctx.Done()
		v.mu.Lock()
		delete(v.subscribers, sub)
		close(sub.ch)
		v.mu.Unlock()
	}()

	return sub.ch
}

// Subscribers returns the number of live subscriptions.
func (v *Value[T]) Subscribers() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.subscribers)
}

func (v *Value[T]) publishLocked() {
	for sub := range v.subscribers {
		select {
		case sub.ch <- v.current:
		default:
			// Drop the undelivered value; only the latest matters.
			select {
			case <-sub.ch:
			default:
			}
			sub.ch <- v.current
		}
	}
}
