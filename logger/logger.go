package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls how New builds a logger.
// Components never reach for a global logger: the *zap.SugaredLogger built here
// is handed to every constructor.
type Options struct {
	JSON      bool      // structured JSON output for machine consumption
	Verbosity int       // CLI -v count, see VerbosityToLevel
	Color     bool      // ANSI colors in console mode
	Output    io.Writer // defaults to os.Stderr
}

// New builds a SugaredLogger for the given options
func New(opts Options) (*zap.SugaredLogger, error) {
	level := zap.NewAtomicLevelAt(VerbosityToLevel(opts.Verbosity))

	if opts.JSON && opts.Output == nil {
		config := zap.NewProductionConfig()
		config.Level = level
		config.OutputPaths = []string{"stderr"}
		config.ErrorOutputPaths = []string{"stderr"}
		zapLogger, err := config.Build()
		if err != nil {
			return nil, err
		}
		return zapLogger.Sugar(), nil
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var encoder zapcore.Encoder
	if opts.JSON {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		encoder = newMinimalEncoder(opts.Color)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(out), level)
	return zap.New(core).Sugar(), nil
}

// Nop returns a logger that discards everything
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// OrNop returns l, or a no-op logger when l is nil
func OrNop(l *zap.SugaredLogger) *zap.SugaredLogger {
	if l == nil {
		return Nop()
	}
	return l
}

// Cleanup flushes any buffered log entries
func Cleanup(l *zap.SugaredLogger) {
	if l != nil {
		_ = l.Sync()
	}
}
