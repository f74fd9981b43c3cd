package notification

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToastQueueFIFO(t *testing.T) {
	q := NewToastQueue(8)

	q.Notify("first", LevelInfo)
	q.Notify("second", LevelWarning)
	require.Equal(t, 2, q.Len())

	toasts := q.Drain()
	require.Len(t, toasts, 2)
	require.Equal(t, "first", toasts[0].Message)
	require.Equal(t, LevelInfo, toasts[0].Level)
	require.Equal(t, "second", toasts[1].Message)

	require.Zero(t, q.Len())
	require.Empty(t, q.Drain())
}

func TestToastQueueDropsOldestWhenFull(t *testing.T) {
	q := NewToastQueue(3)

	for i := 1; i <= 5; i++ {
		q.Notify(fmt.Sprintf("msg-%d", i), LevelInfo)
	}

	toasts := q.Drain()
	require.Len(t, toasts, 3)
	require.Equal(t, "msg-3", toasts[0].Message)
	require.Equal(t, "msg-5", toasts[2].Message)
}

func TestToastQueueDefaultCapacity(t *testing.T) {
	q := NewToastQueue(0)

	for i := 0; i < 100; i++ {
		q.Notify("m", LevelError)
	}
	require.Equal(t, 64, q.Len())
}
