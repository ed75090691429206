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

// VerifyEmailService manages the verification modal. The flow can be opened
// from registration or from a login that bounced on an unverified address;
// the trigger records which, so a UI can route accordingly after success.
type VerifyEmailService struct {
	Store   *store.Store
	Effects *effects.Coordinator
}

func (s VerifyEmailService) Routes() chi.Router {
	r := chi.NewRouter()
	r.With(m.Validate[models.VerifyEmailOpenBody]).
		Post("/open", handlers.CreateHandler(s.Open))
	r.Post("/close", handlers.CreateActionHandler(s.Close))
	r.With(m.Validate[models.VerifyEmailSubmitBody]).
		Post("/submit", handlers.CreateHandler(s.Submit))
	r.Post("/resend", handlers.CreateActionHandler(s.Resend))
	r.Delete("/", handlers.CreateActionHandler(s.Reset))
	return r
}

func (s VerifyEmailService) Open(
	_ context.Context,
	_ *zap.Logger,
	body models.VerifyEmailOpenBody,
) (store.SessionSummary, error) {
	s.Store.Dispatch(store.OpenVerifyEmail{Email: body.Email, Trigger: body.Trigger})
	return store.Summarize(s.Store.State()), nil
}

// Close hides the modal but keeps the flow record; a later open with the
// same email resumes where it left off.
func (s VerifyEmailService) Close(_ context.Context, _ *zap.Logger) (store.SessionSummary, error) {
	s.Store.Dispatch(store.CloseVerifyEmail{})
	return store.Summarize(s.Store.State()), nil
}

func (s VerifyEmailService) Submit(
	ctx context.Context,
	_ *zap.Logger,
	body models.VerifyEmailSubmitBody,
) (store.SessionSummary, error) {
	if err := s.Effects.SubmitVerifyEmail(ctx, body.Otp); err != nil {
		return store.SessionSummary{}, err
	}
	return store.Summarize(s.Store.State()), nil
}

func (s VerifyEmailService) Resend(ctx context.Context, _ *zap.Logger) (store.SessionSummary, error) {
	if err := s.Effects.ResendVerifyEmail(ctx); err != nil {
		return store.SessionSummary{}, err
	}
	return store.Summarize(s.Store.State()), nil
}

func (s VerifyEmailService) Reset(_ context.Context, _ *zap.Logger) (store.SessionSummary, error) {
	s.Store.Dispatch(store.ResetVerifyEmailFlow{})
	return store.Summarize(s.Store.State()), nil
}
