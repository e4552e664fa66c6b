package cli

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds a console logger writing to w, at debug level when
// verbose and info otherwise.
func newLogger(verbose bool, w io.Writer) *zap.Logger {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(level),
	)
	return zap.New(core)
}

// logger returns the injected logger or one writing to the command's stderr.
func (o *RootOptions) logger(w io.Writer) *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return newLogger(o.Verbose, w)
}
