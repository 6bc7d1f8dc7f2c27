// Package logging builds the zap logger used across the memo commands.
package logging

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures the logger.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // console or json
	Output zapcore.WriteSyncer
}

// New builds a logger. Output defaults to stderr so stdout stays reserved
// for command output.
func New(opts Options) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	var enc zapcore.Encoder
	switch opts.Format {
	case "", "console":
		enc = zapcore.NewConsoleEncoder(encCfg)
	case "json":
		encCfg = zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
	default:
		return nil, fmt.Errorf("log format: unknown %q", opts.Format)
	}

	out := opts.Output
	if out == nil {
		out = zapcore.Lock(os.Stderr)
	}

	return zap.New(zapcore.NewCore(enc, out, level)), nil
}

// NewRunID returns a time-sortable id identifying one invocation in logs.
func NewRunID() string {
	entropy := rand.New(rand.NewSource(time.Now().UnixNano()))
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
