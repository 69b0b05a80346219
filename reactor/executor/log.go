package executor

import (
	"context"

	"github.com/R3E-Network/chainreactor/infrastructure/logging"
)

// LogExecutor logs LogMessageAction actions through infrastructure/logging:
// the simplest possible Executor, useful as a debugging sink or a smoke
// test stand-in for a real outbound action.
type LogExecutor struct {
	logger *logging.Logger
}

// NewLogExecutor creates a LogExecutor. A nil logger defaults to
// logging.Default().
func NewLogExecutor(logger *logging.Logger) *LogExecutor {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogExecutor{logger: logger}
}

func (e *LogExecutor) Name() string { return "LogExecutor" }

// Execute operates on the concrete LogMessageAction payload; register it
// against the engine's ChainAction bus via
// reactor.ExecutorMap(logExecutor, ChainAction.AsLogMessage).
func (e *LogExecutor) Execute(ctx context.Context, action LogMessageAction) error {
	e.logger.Info(ctx, action.Message, action.Fields)
	return nil
}
