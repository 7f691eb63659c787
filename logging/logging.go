// Package logging builds the zap logger used by the mood-eye commands.
// The terminal owns stdout and stderr, so logs only ever go to a file.
package logging

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultPath is used when debugging is requested without a log file
const DefaultPath = "logs/mood-eye.log"

// Setup opens path for appending, rotating it first once it exceeds maxBytes (> 0)
// An empty path returns a no-op logger; cleanup is always safe to call
func Setup(path, level string, maxBytes int64) (logger *zap.SugaredLogger, cleanup func() error, err error) {
	if path == "" {
		return zap.NewNop().Sugar(), func() error { return nil }, nil
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, nil, errors.Wrap(err, "log level")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, errors.Wrap(err, "create log directory")
	}
	if err := rotate(path, maxBytes); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open log file")
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(f), lvl)
	l := zap.New(core, zap.AddCaller())

	cleanup = func() error {
		_ = l.Sync()
		return f.Close()
	}
	return l.Sugar(), cleanup, nil
}

// rotate renames an oversized log aside with a timestamp suffix, maxBytes <= 0 never rotates
func rotate(path string, maxBytes int64) error {
	if maxBytes <= 0 {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() <= maxBytes {
		return nil
	}
	ext := filepath.Ext(path)
	stamped := strings.TrimSuffix(path, ext) + "-" + time.Now().Format("20060102-150405") + ext
	return errors.Wrap(os.Rename(path, stamped), "rotate log file")
}
