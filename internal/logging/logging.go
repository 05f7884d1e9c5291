// Package logging builds the zap logger used by the command line.
package logging

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel accepts debug, info, warn, error or off.
func ParseLevel(level string) (zapcore.Level, bool, error) {
	if level == "off" || level == "none" {
		return zapcore.InvalidLevel, false, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return l, false, fmt.Errorf("logging: unknown level %q", level)
	}
	return l, true, nil
}

// New returns a console logger writing to stderr.
func New(level string) (*zap.Logger, error) {
	l, enabled, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if !enabled {
		return zap.NewNop(), nil
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(l),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	return config.Build()
}

// NewWriter logs JSON lines to w.
func NewWriter(w io.Writer, level string) (*zap.Logger, error) {
	l, enabled, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if !enabled {
		return zap.NewNop(), nil
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(w),
		l,
	)
	return zap.New(core), nil
}
