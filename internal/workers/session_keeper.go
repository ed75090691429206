package workers

import (
	"context"
	"errors"
	"time"

	"sessiond/internal/effects"
	"sessiond/internal/store"

	"go.uber.org/zap"
)

// SessionKeeper keeps the authenticated session alive: on every tick it
// checks the access token against the refresh leeway and triggers a silent
// refresh when the token is about to expire. Signed-out sessions are left
// alone.
type SessionKeeper struct {
	Store       *store.Store
	Effects     *effects.Coordinator
	RunInterval time.Duration
}

// Start runs an immediate check, then repeats on the configured interval
// until the context is cancelled.
func (w *SessionKeeper) Start(ctx context.Context) {
	zap.L().Info("Starting session keeper", zap.Duration("interval", w.RunInterval))

	w.runCheck(ctx)

	ticker := time.NewTicker(w.RunInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Session keeper shutting down")
			return
		case <-ticker.C:
			w.runCheck(ctx)
		}
	}
}

func (w *SessionKeeper) runCheck(ctx context.Context) {
	if !store.IsAuthenticated(w.Store.State()) {
		return
	}

	err := w.Effects.EnsureFresh(ctx)
	if err == nil || errors.Is(err, effects.ErrSuperseded) {
		return
	}
	zap.L().Warn("Session keeper refresh failed", zap.Error(err))
}
