package commands

import (
	"context"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExecuteShutsDownAfterFailedCommand(t *testing.T) {
	chdir(t, t.TempDir())

	listener, err := net.Listen("tcp", "0.0.0.0:0")
	require.NoError(t, err)
	defer listener.Close()
	port := listener.Addr().(*net.TCPAddr).Port

	var calls int
	shutdown = append(shutdown, func(ctx context.Context) error {
		calls++
		return nil
	})

	err = execute(context.Background(), []string{"serve", "--port", fmt.Sprint(port)})
	require.Error(t, err)
	require.Equal(t, 1, calls)
	require.Empty(t, shutdown)
}

func TestExecuteShutsDownOnUnknownCommand(t *testing.T) {
	var calls int
	shutdown = append(shutdown, func(ctx context.Context) error {
		calls++
		return nil
	})

	err := execute(context.Background(), []string{"frobnicate"})
	require.Error(t, err)
	require.Equal(t, 1, calls)
}
