// Package logging builds the host logger and routes the engine's logrus
// output.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

// New returns a colored debug logger in development and a JSON logger at info
// level otherwise.
func New(w io.Writer) *slog.Logger {
	if config.Development() {
		return slog.New(tint.NewHandler(w, &tint.Options{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(w, nil))
}

func Default() *slog.Logger {
	return New(os.Stderr)
}

// SetupEngine configures mines.Log. When LOG_FILE is set the engine log is
// also written to that file with size-based rotation.
func SetupEngine() error {
	level := logrus.InfoLevel
	if config.Development() {
		level = logrus.DebugLevel
	}
	mines.Log.SetLevel(level)
	mines.Log.SetOutput(os.Stderr)
	mines.Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	path, ok := config.LogFile()
	if !ok {
		return nil
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   path,
		MaxSize:    50,
		MaxBackups: 3,
		MaxAge:     28,
		Level:      level,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return err
	}
	mines.Log.AddHook(hook)
	return nil
}
