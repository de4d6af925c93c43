package cli

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger builds the process logger. With a file the output is JSON and
// rotated; without one batch commands log to stderr and the viewer, which owns
// the terminal, does not log at all.
func newLogger(level, file string, maxSizeMB int, viewer bool) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, errors.Wrapf(err, "log level %q", level)
	}
	if file != "" {
		w := zapcore.AddSync(&lumberjack.Logger{
			Filename: file,
			MaxSize:  maxSizeMB,
			MaxAge:   30,
		})
		core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), w, lvl)
		return zap.New(core), nil
	}
	if viewer {
		return zap.NewNop(), nil
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(os.Stderr), lvl)
	return zap.New(core), nil
}
