package threadpool

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFuture_ResolveOnce(t *testing.T) {
	f, pr := newFuture[int]()
	require.False(t, f.IsDone())

	pr.resolve(1, nil)
	pr.resolve(2, errors.New("ignored"))
	pr.abandon()

	require.True(t, f.IsDone())
	got, err := f.Get()
	require.NoError(t, err)
	require.Equal(t, 1, got)
}

func TestFuture_GetTwice_ReturnsErrResultRetrieved(t *testing.T) {
	f, pr := newFuture[string]()
	pr.resolve("v", nil)

	got, err := f.Get()
	require.NoError(t, err)
	require.Equal(t, "v", got)

	got, err = f.Get()
	require.ErrorIs(t, err, ErrResultRetrieved)
	require.Empty(t, got)
}

func TestFuture_Get_BlocksUntilResolved(t *testing.T) {
	f, pr := newFuture[int]()

	got := make(chan int, 1)
	go func() {
		v, _ := f.Get()
		got <- v
	}()

	select {
	case <-got:
		t.Fatalf("Get returned before resolve")
	case <-time.After(20 * time.Millisecond):
	}

	pr.resolve(7, nil)
	select {
	case v := <-got:
		require.Equal(t, 7, v)
	case <-time.After(time.Second):
		t.Fatalf("Get did not return after resolve")
	}
}

func TestFuture_GetContext_TimeoutDoesNotConsume(t *testing.T) {
	f, pr := newFuture[int]()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := f.GetContext(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	pr.resolve(3, nil)
	got, err := f.GetContext(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, got)
}

func TestFuture_Abandon(t *testing.T) {
	f, pr := newFuture[int]()
	pr.abandon()

	select {
	case <-f.Done():
	default:
		t.Fatalf("Done not closed after abandon")
	}
	_, err := f.Get()
	require.ErrorIs(t, err, ErrAbandoned)
}
