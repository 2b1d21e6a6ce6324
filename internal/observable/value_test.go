package observable

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed")
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for value")
	}
	var zero T
	return zero
}

func TestValue_Subscribe(t *testing.T) {
	t.Run("replays the current value to new subscribers", func(t *testing.T) {
		v := NewValue("USD")
		v.Set("GBP")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		assert.Equal(t, "GBP", receive(t, v.Subscribe(ctx)))
	})

	t.Run("delivers later changes", func(t *testing.T) {
		v := NewValue(1)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		ch := v.Subscribe(ctx)
		assert.Equal(t, 1, receive(t, ch))

		v.Set(2)
		assert.Equal(t, 2, receive(t, ch))
	})

	t.Run("slow subscribers only see the latest value", func(t *testing.T) {
		v := NewValue(0)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		ch := v.Subscribe(ctx)
		for i := 1; i <= 5; i++ {
			v.Set(i)
		}

		assert.Equal(t, 5, receive(t, ch))
		select {
		case got := <-ch:
			t.Fatalf("unexpected extra value %d", got)
		default:
		}
	})

	t.Run("cancelling one subscription leaves others running", func(t *testing.T) {
		v := NewValue("a")
		ctx1, cancel1 := context.WithCancel(context.Background())
		ctx2, cancel2 := context.WithCancel(context.Background())
		defer cancel2()

		ch1 := v.Subscribe(ctx1)
		ch2 := v.Subscribe(ctx2)
		receive(t, ch1)
		receive(t, ch2)

		cancel1()
		require.Eventually(t, func() bool { return v.Subscribers() == 1 }, time.Second, 5*time.Millisecond)

		_, ok := <-ch1
		assert.False(t, ok, "cancelled channel should be closed")

		v.Set("b")
		assert.Equal(t, "b", receive(t, ch2))
	})
}

func TestValue_Update(t *testing.T) {
	v := NewValue([]string{"USD"})

	got := v.Update(func(cur []string) []string {
		return append(cur, "EUR")
	})

	assert.Equal(t, []string{"USD", "EUR"}, got)
	assert.Equal(t, []string{"USD", "EUR"}, v.Get())
}
