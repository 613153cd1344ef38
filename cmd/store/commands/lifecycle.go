package commands

import (
	"context"
	"sort"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"go.uber.org/zap"
)

// release executa as operações de encerramento já registradas, usado quando o
// processo termina antes de o graceful shutdown assumir
func release(log *zap.Logger, timeout time.Duration, operations map[string]gfshutdown.Operation) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	names := make([]string, 0, len(operations))
	for name := range operations {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := operations[name](ctx); err != nil {
			log.Error("Shutdown operation failed", zap.String("operation", name), zap.Error(err))
		}
	}
}

// awaitExit espera o fim do graceful shutdown ou a queda do servidor HTTP.
// Na queda as operações registradas rodam aqui e o código de saída é 1.
func awaitExit(log *zap.Logger, wait <-chan int, serveErr <-chan error, timeout time.Duration, operations map[string]gfshutdown.Operation) int {
	select {
	case exitCode := <-wait:
		return exitCode
	case err := <-serveErr:
		log.Error("Server stopped unexpectedly", zap.Error(err))
		release(log, timeout, operations)
		return 1
	}
}
