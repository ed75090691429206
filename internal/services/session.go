package services

import (
	"context"

	"sessiond/internal/effects"
	"sessiond/internal/handlers"
	m "sessiond/internal/middlewares"
	"sessiond/internal/models"
	"sessiond/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SessionService exposes the current session projection and the
// authenticated settings actions that do not carry their own flow record.
type SessionService struct {
	Store   *store.Store
	Effects *effects.Coordinator
}

func (s SessionService) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", handlers.CreateActionHandler(s.Inspect))
	r.With(m.Validate[models.ChangePasswordBody]).
		Post("/password", handlers.CreateHandler(s.ChangePassword))
	return r
}

func (s SessionService) Inspect(_ context.Context, _ *zap.Logger) (store.SessionSummary, error) {
	return store.Summarize(s.Store.State()), nil
}

func (s SessionService) ChangePassword(
	ctx context.Context,
	_ *zap.Logger,
	body models.ChangePasswordBody,
) (store.SessionSummary, error) {
	if err := s.Effects.ChangePassword(ctx, body); err != nil {
		return store.SessionSummary{}, err
	}
	return store.Summarize(s.Store.State()), nil
}
