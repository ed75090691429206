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

// ForgotPasswordService is the reset wizard: email → otp → resetPassword.
// Forward progress and the final reset both run through the effect
// coordinator, so the flow has a single source of truth for "in flight".
type ForgotPasswordService struct {
	Store   *store.Store
	Effects *effects.Coordinator
}

// ResetResponse reports the wizard's terminal state. Completed is a
// controller-level flag; the shared record is already back at its defaults
// when this is true.
type ResetResponse struct {
	Completed bool                 `json:"completed"`
	Session   store.SessionSummary `json:"session"`
}

func (s ForgotPasswordService) Routes() chi.Router {
	r := chi.NewRouter()
	r.With(m.Validate[models.ForgotPasswordRequestBody]).
		Post("/", handlers.CreateHandler(s.Request))
	r.With(m.Validate[models.ForgotPasswordOtpBody]).
		Post("/otp", handlers.CreateHandler(s.ContinueWithOtp))
	r.Post("/otp/cancel", handlers.CreateActionHandler(s.CancelOtp))
	r.With(m.Validate[models.ForgotPasswordResetBody]).
		Post("/reset", handlers.CreateHandler(s.Reset))
	r.Delete("/", handlers.CreateActionHandler(s.Teardown))
	return r
}

// Request submits the email step; on success the reducer auto-advances the
// wizard to the otp step.
func (s ForgotPasswordService) Request(
	ctx context.Context,
	_ *zap.Logger,
	body models.ForgotPasswordRequestBody,
) (store.SessionSummary, error) {
	if err := s.Effects.ForgotPassword(ctx, body.Email); err != nil {
		return store.SessionSummary{}, err
	}
	return store.Summarize(s.Store.State()), nil
}

// ContinueWithOtp stores the entered code and moves the wizard forward. The
// code is not validated here; only the final reset call proves it.
func (s ForgotPasswordService) ContinueWithOtp(
	_ context.Context,
	_ *zap.Logger,
	body models.ForgotPasswordOtpBody,
) (store.SessionSummary, error) {
	if store.ForgotPasswordStep(s.Store.State()) != models.ForgotPasswordStepOtp {
		return store.SessionSummary{}, errFlowNotActive
	}

	s.Store.Dispatch(store.SetForgotPasswordOtp{Otp: body.Otp})
	s.Store.Dispatch(store.SetForgotPasswordStep{Step: models.ForgotPasswordStepReset})
	return store.Summarize(s.Store.State()), nil
}

// CancelOtp implements the modal's cancel semantics: regress to the email
// step and drop the stored code.
func (s ForgotPasswordService) CancelOtp(
	_ context.Context,
	_ *zap.Logger,
) (store.SessionSummary, error) {
	s.Store.Dispatch(store.SetForgotPasswordOtp{Otp: ""})
	s.Store.Dispatch(store.SetForgotPasswordStep{Step: models.ForgotPasswordStepEmail})
	return store.Summarize(s.Store.State()), nil
}

func (s ForgotPasswordService) Reset(
	ctx context.Context,
	_ *zap.Logger,
	body models.ForgotPasswordResetBody,
) (ResetResponse, error) {
	s.Store.Dispatch(store.SetForgotPasswordNewPassword{NewPassword: body.NewPassword})
	s.Store.Dispatch(store.SetForgotPasswordConfirmPassword{ConfirmPassword: body.ConfirmPassword})

	if err := s.Effects.ResetPassword(ctx); err != nil {
		return ResetResponse{}, err
	}

	return ResetResponse{
		Completed: true,
		Session:   store.Summarize(s.Store.State()),
	}, nil
}

// Teardown is the cleanup contract: the owning view resets the record when
// it unmounts so no stale email or code leaks into a later attempt.
func (s ForgotPasswordService) Teardown(
	_ context.Context,
	_ *zap.Logger,
) (store.SessionSummary, error) {
	s.Store.Dispatch(store.ResetForgotPassword{})
	return store.Summarize(s.Store.State()), nil
}
