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

// RegisterService handles account creation. Registration never sets
// authentication; the verify-email flow follows it.
type RegisterService struct {
	Store   *store.Store
	Effects *effects.Coordinator
}

func (s RegisterService) Routes() chi.Router {
	r := chi.NewRouter()
	r.With(m.Validate[models.AuthRegisterBody]).Post("/", handlers.CreateHandler(s.Register))
	return r
}

func (s RegisterService) Register(
	ctx context.Context,
	_ *zap.Logger,
	body models.AuthRegisterBody,
) (store.SessionSummary, error) {
	if err := s.Effects.Register(ctx, body); err != nil {
		return store.SessionSummary{}, err
	}

	// Registration hands straight into email verification.
	s.Store.Dispatch(store.OpenVerifyEmail{
		Email:   body.Email,
		Trigger: models.VerifyEmailTriggerRegister,
	})
	return store.Summarize(s.Store.State()), nil
}
