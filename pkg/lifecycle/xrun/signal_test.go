//go:build !windows

package xrun_test

import (
	"context"
	"errors"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xaop/pkg/lifecycle/xrun"
	"github.com/omeyang/xaop/pkg/observability/xlog"
)

func TestGroup_Signal(t *testing.T) {
	g, _ := xrun.NewGroup(context.Background(),
		xrun.WithLogger(xlog.Discard()),
		xrun.WithSignals(syscall.SIGUSR1),
	)
	g.Go("waiter", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGUSR1))

	err := g.Wait()
	require.ErrorIs(t, err, xrun.ErrSignal)
	var sigErr *xrun.SignalError
	require.True(t, errors.As(err, &sigErr))
	assert.Equal(t, syscall.SIGUSR1, sigErr.Signal)
}

func TestDefaultSignals(t *testing.T) {
	assert.Equal(t, []os.Signal{syscall.SIGINT, syscall.SIGTERM}, xrun.DefaultSignals())
}
