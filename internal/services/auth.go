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

// AuthService drives the login/logout/refresh journeys and the post-login
// OTP gate. Each handler dispatches the next intent through the effect
// coordinator and answers with the resulting session projection.
type AuthService struct {
	Store   *store.Store
	Effects *effects.Coordinator
}

func (s AuthService) Routes() chi.Router {
	r := chi.NewRouter()
	r.With(m.Validate[models.AuthLoginBody]).Post("/login", handlers.CreateHandler(s.Login))
	r.Post("/logout", handlers.CreateActionHandler(s.Logout))
	r.Post("/refresh", handlers.CreateActionHandler(s.Refresh))

	r.Route("/otp", func(r chi.Router) {
		r.With(m.Validate[models.PostLoginOtpBody]).
			Post("/submit", handlers.CreateHandler(s.SubmitOtp))
		r.Post("/resend", handlers.CreateActionHandler(s.ResendOtp))
	})
	return r
}

func (s AuthService) Login(
	ctx context.Context,
	_ *zap.Logger,
	body models.AuthLoginBody,
) (store.SessionSummary, error) {
	if err := s.Effects.Login(ctx, body); err != nil {
		return store.SessionSummary{}, err
	}
	return store.Summarize(s.Store.State()), nil
}

func (s AuthService) Logout(ctx context.Context, _ *zap.Logger) (store.SessionSummary, error) {
	if err := s.Effects.Logout(ctx); err != nil {
		return store.SessionSummary{}, err
	}
	return store.Summarize(s.Store.State()), nil
}

func (s AuthService) Refresh(ctx context.Context, _ *zap.Logger) (store.SessionSummary, error) {
	if err := s.Effects.Refresh(ctx); err != nil {
		return store.SessionSummary{}, err
	}
	return store.Summarize(s.Store.State()), nil
}

// SubmitOtp accepts either the emailed code or the authenticator code,
// depending on the channel the login response selected.
func (s AuthService) SubmitOtp(
	ctx context.Context,
	logger *zap.Logger,
	body models.PostLoginOtpBody,
) (store.SessionSummary, error) {
	if body.Otp == "" && body.OtpSmart == "" {
		logger.Debug("OTP submission with no code")
		return store.SessionSummary{}, errEmptyOtp
	}

	if err := s.Effects.SubmitPostLoginOtp(ctx, body.Otp, body.OtpSmart); err != nil {
		return store.SessionSummary{}, err
	}
	return store.Summarize(s.Store.State()), nil
}

func (s AuthService) ResendOtp(ctx context.Context, _ *zap.Logger) (store.SessionSummary, error) {
	if err := s.Effects.ResendPostLoginOtp(ctx); err != nil {
		return store.SessionSummary{}, err
	}
	return store.Summarize(s.Store.State()), nil
}
