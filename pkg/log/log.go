// Package log wraps a process-wide zap SugaredLogger.
package log

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	sugar = zap.NewNop().Sugar()
	level = zap.NewAtomicLevelAt(zap.InfoLevel)
)

// Init builds the logger. format "console" selects the development encoder,
// anything else produces JSON. When outputPath is set, logs are also written
// to outputPath/app.log.
func Init(lvl, format, outputPath string) {
	SetLevel(lvl)

	var zapConfig zap.Config
	if format == "console" {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapConfig = zap.NewProductionConfig()
		format = "json"
	}

	zapConfig.Level = level
	zapConfig.Encoding = format
	zapConfig.OutputPaths = []string{"stdout"}
	if outputPath != "" {
		_ = os.MkdirAll(outputPath, os.ModePerm)
		zapConfig.OutputPaths = append(zapConfig.OutputPaths, filepath.Join(outputPath, "app.log"))
	}

	logger, err := zapConfig.Build()
	if err != nil {
		panic(err)
	}
	sugar = logger.Sugar()
}

// SetLevel changes the active level. Unknown names fall back to info.
func SetLevel(lvl string) {
	if err := level.UnmarshalText([]byte(lvl)); err != nil {
		level.SetLevel(zap.InfoLevel)
	}
}

// Level reports the active level.
func Level() string {
	return level.Level().String()
}

func Info(msg string) {
	sugar.Info(msg)
}

func Infof(template string, args ...interface{}) {
	sugar.Infof(template, args...)
}

// Infow logs msg with structured key/value context.
func Infow(msg string, keysAndValues ...interface{}) {
	sugar.Infow(msg, keysAndValues...)
}

func Debugw(msg string, keysAndValues ...interface{}) {
	sugar.Debugw(msg, keysAndValues...)
}

func Warnf(template string, args ...interface{}) {
	sugar.Warnf(template, args...)
}

func Warnw(msg string, keysAndValues ...interface{}) {
	sugar.Warnw(msg, keysAndValues...)
}

// Error logs msg at error level with err attached under "error".
func Error(msg string, err error, keysAndValues ...interface{}) {
	sugar.Errorw(msg, append([]interface{}{"error", err}, keysAndValues...)...)
}

func Errorf(template string, args ...interface{}) {
	sugar.Errorf(template, args...)
}

// Fatal logs msg with err and exits the process.
func Fatal(msg string, err error) {
	sugar.Fatalw(msg, "error", err)
}

func Fatalf(template string, args ...interface{}) {
	sugar.Fatalf(template, args...)
}

// Sync flushes buffered entries.
func Sync() {
	_ = sugar.Sync()
}
