package tracing

import (
	"go.uber.org/zap"
)

// A LogHook writes every hook invocation to a zap logger at debug level.
type LogHook struct {
	logger *zap.Logger
}

// NewLogHook creates a LogHook.
func NewLogHook(logger *zap.Logger) *LogHook {
	return &LogHook{logger: logger}
}

// Func logs the position and the item of the invocation.
func (h *LogHook) Func(ctx HookCtx) {
	h.logger.Debug("hook",
		zap.String("pos", ctx.Pos.Name),
		zap.Any("item", ctx.Item),
	)
}
