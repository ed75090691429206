package core

import (
	"sessiond/internal/activity"
	"sessiond/internal/models"
	"sessiond/internal/toast"
	"sessiond/internal/tokens"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger replaces the global logger with one honoring the configured
// level.
func NewLogger(logLevel string) {
	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		zap.L().Warn("Unknown log level, keeping info", zap.String("level", logLevel))
		level = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	zap.ReplaceGlobals(zap.Must(config.Build()))
}

func NewTokenStore(config models.TokensConfiguration) tokens.ITokenStore {
	switch config.Type {
	case "redis":
		store, err := tokens.NewRedisStore(*config.Redis)
		if err != nil {
			zap.L().Fatal("Failed to connect to token store", zap.Error(err))
		}
		return store
	case "memory":
		return tokens.NewMemoryStore()
	default:
		store, err := tokens.NewFileStore(*config.File)
		if err != nil {
			zap.L().Fatal("Failed to open token store", zap.Error(err))
		}
		return store
	}
}

func NewToastSink(config models.ToastsConfiguration) toast.ISink {
	switch config.Type {
	case "filesystem":
		return toast.NewFilesystemSink(*config.Filesystem)
	default:
		return toast.LogSink{}
	}
}

// NewJournal returns nil when the journal is disabled; callers skip wiring
// in that case.
func NewJournal(config models.JournalConfiguration) activity.IJournal {
	if !config.Enabled {
		return nil
	}
	return activity.NewFilesystemJournal(config)
}
