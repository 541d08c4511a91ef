package io

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFlip(t *testing.T) {
	c := NewConn(1, 1)
	other := c.Flip()

	c.Write("to other")
	require.Equal(t, "to other", <-other.Rc())

	other.Write(42)
	require.Equal(t, 42, <-c.Rc())
}

func TestReadContext(t *testing.T) {
	c := NewConn(0, 0)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.ReadContext(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	go c.Flip().Write("hello")
	msg, err := c.ReadContext(context.Background())
	require.NoError(t, err)
	require.Equal(t, "hello", msg)
}

func TestWriteContext(t *testing.T) {
	c := NewConn(0, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, c.WriteContext(ctx, "dropped"), context.Canceled)

	done := make(chan Any)
	go func() { done <- <-c.Flip().Rc() }()
	require.NoError(t, c.WriteContext(context.Background(), "sent"))
	require.Equal(t, "sent", <-done)
}
