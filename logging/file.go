package logging

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewFileLogger returns a logger that appends json lines at level and above to the file at path,
// rotating it once it grows past 100 megabytes. Close the returned closer when done logging.
func NewFileLogger(name, path string, level zapcore.Level) (Logger, io.Closer) {
	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    100,
		MaxBackups: 2,
		Compress:   true,
	}
	encoderConfig := newEncoderConfig()
	atomicLevel := zap.NewAtomicLevelAt(level)
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(file), atomicLevel)
	return &impl{
		SugaredLogger: zap.New(core).Sugar().Named(name),
		level:         atomicLevel,
	}, file
}
