package lightswitch

import (
	"io"

	"github.com/pion/logging"
)

// newLogger returns a scoped logger, or a disabled one when factory is nil.
func newLogger(factory logging.LoggerFactory, scope string) logging.LeveledLogger {
	if factory == nil {
		return logging.NewDefaultLeveledLoggerForScope(scope, logging.LogLevelDisabled, io.Discard)
	}
	return factory.NewLogger(scope)
}
