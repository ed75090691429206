package toast

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sessiond/internal/models"

	"go.uber.org/zap"
)

// LogSink renders toasts through the process logger. This is the default for
// headless deployments.
type LogSink struct{}

func (LogSink) Handle(t Toast) {
	switch t.Level {
	case LevelError:
		zap.L().Warn("toast", zap.String("level", string(t.Level)), zap.String("message", t.Message))
	default:
		zap.L().Info("toast", zap.String("level", string(t.Level)), zap.String("message", t.Message))
	}
}

// FilesystemSink writes each toast as a JSON file, one per notification.
// Useful for local development and for UIs polling a shared directory.
type FilesystemSink struct {
	directory string
}

func NewFilesystemSink(config models.FilesystemToastsConfiguration) *FilesystemSink {
	if err := os.MkdirAll(config.Directory, 0750); err != nil {
		zap.L().Fatal("Failed to create toast directory", zap.Error(err))
	}
	return &FilesystemSink{directory: config.Directory}
}

func (f *FilesystemSink) Handle(t Toast) {
	content, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		zap.L().Error("Failed to marshal toast entry", zap.Error(err))
		return
	}

	filename := fmt.Sprintf("%d.json", time.Now().UnixNano())
	path := filepath.Join(f.directory, filename)

	if err = os.WriteFile(path, content, 0600); err != nil {
		zap.L().Error("Failed to write toast file", zap.String("path", path), zap.Error(err))
	}
}
