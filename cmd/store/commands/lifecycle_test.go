package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func recordingOperations(calls *[]string, failing string) map[string]gfshutdown.Operation {
	op := func(name string) gfshutdown.Operation {
		return func(ctx context.Context) error {
			*calls = append(*calls, name)
			if name == failing {
				return errors.New("close failed")
			}
			return nil
		}
	}
	return map[string]gfshutdown.Operation{
		"database":    op("database"),
		"http-server": op("http-server"),
		"telemetry":   op("telemetry"),
	}
}

func TestRelease_RunsEveryOperation(t *testing.T) {
	// Arrange
	core, logs := observer.New(zapcore.InfoLevel)
	var calls []string
	operations := recordingOperations(&calls, "telemetry")

	// Act
	release(zap.New(core), time.Second, operations)

	// Assert
	assert.Equal(t, []string{"database", "http-server", "telemetry"}, calls)
	entries := logs.FilterMessage("Shutdown operation failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "telemetry", entries[0].ContextMap()["operation"])
}

func TestAwaitExit_ServerFailureReleasesResources(t *testing.T) {
	var calls []string
	operations := recordingOperations(&calls, "")
	serveErr := make(chan error, 1)
	serveErr <- errors.New("accept: too many open files")

	exitCode := awaitExit(zap.NewNop(), make(chan int), serveErr, time.Second, operations)

	assert.Equal(t, 1, exitCode)
	assert.ElementsMatch(t, []string{"database", "http-server", "telemetry"}, calls)
}

func TestAwaitExit_GracefulShutdownExitCode(t *testing.T) {
	var calls []string
	wait := make(chan int, 1)
	wait <- 0

	exitCode := awaitExit(zap.NewNop(), wait, make(chan error), time.Second, recordingOperations(&calls, ""))

	assert.Equal(t, 0, exitCode)
	assert.Empty(t, calls)
}
