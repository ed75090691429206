package services

import (
	"context"

	"sessiond/internal/effects"
	"sessiond/internal/handlers"
	"sessiond/internal/helpers"
	m "sessiond/internal/middlewares"
	"sessiond/internal/models"
	"sessiond/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// FirstLoginService walks a freshly created account through two-factor
// onboarding: reminder, method selection, opt-in, then OTP confirmation.
// Exactly one modal is active at a time; the selector resolves precedence.
type FirstLoginService struct {
	Store   *store.Store
	Effects *effects.Coordinator
}

// MethodResponse is returned by the method-selection step. The provisioning
// key is only present when the smart method was chosen; it is what the user
// scans into their authenticator before confirming.
type MethodResponse struct {
	Session      store.SessionSummary `json:"session"`
	Provisioning *helpers.TOTPKey     `json:"provisioning,omitempty"`
}

func (s FirstLoginService) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/reminder", func(r chi.Router) {
		r.Post("/acknowledge", handlers.CreateActionHandler(s.AcknowledgeReminder))
		r.Post("/skip", handlers.CreateActionHandler(s.SkipReminder))
	})

	r.Route("/method", func(r chi.Router) {
		r.With(m.Validate[models.FirstLoginMethodBody]).
			Post("/", handlers.CreateHandler(s.SelectMethod))
		r.Post("/back", handlers.CreateActionHandler(s.BackToReminder))
	})

	r.With(m.Validate[models.FirstLoginOptInBody]).
		Post("/opt-in", handlers.CreateHandler(s.SetOptIn))

	r.Route("/otp", func(r chi.Router) {
		r.Post("/open", handlers.CreateActionHandler(s.OpenOtpModal))
		r.Post("/close", handlers.CreateActionHandler(s.CloseOtpModal))
	})

	r.With(m.Validate[models.FirstLoginCompleteBody]).
		Post("/complete", handlers.CreateHandler(s.Complete))

	return r
}

// AcknowledgeReminder advances from the reminder to the method selector.
func (s FirstLoginService) AcknowledgeReminder(
	_ context.Context,
	_ *zap.Logger,
) (store.SessionSummary, error) {
	if store.FirstLoginModal(s.Store.State()) != "reminder" {
		return store.SessionSummary{}, errFlowNotActive
	}

	s.Store.Dispatch(store.AcknowledgeTwoFactorReminder{})
	return store.Summarize(s.Store.State()), nil
}

// SkipReminder dismisses onboarding entirely. The account stays without 2FA
// until the user enables it from settings.
func (s FirstLoginService) SkipReminder(
	_ context.Context,
	_ *zap.Logger,
) (store.SessionSummary, error) {
	s.Store.Dispatch(store.SkipTwoFactorReminder{})
	s.Store.Dispatch(store.MarkFirstLoginComplete{})
	return store.Summarize(s.Store.State()), nil
}

// SelectMethod records the chosen channel. Choosing the smart method
// provisions a fresh authenticator secret locally; the server only learns it
// through the confirmation exchange.
func (s FirstLoginService) SelectMethod(
	_ context.Context,
	logger *zap.Logger,
	body models.FirstLoginMethodBody,
) (MethodResponse, error) {
	state := s.Store.State()
	if store.FirstLoginModal(state) != "method" || state.User == nil {
		return MethodResponse{}, errFlowNotActive
	}

	s.Store.Dispatch(store.SetFirstLoginSelectedMethod{Method: body.Method})

	var provisioning *helpers.TOTPKey
	if body.Method == models.OtpChannelSmart {
		key, err := helpers.GenerateTOTPSecret(state.User.Email)
		if err != nil {
			logger.Error("Failed to provision authenticator secret", zap.Error(err))
			return MethodResponse{}, err
		}
		provisioning = key
	}

	return MethodResponse{
		Session:      store.Summarize(s.Store.State()),
		Provisioning: provisioning,
	}, nil
}

func (s FirstLoginService) BackToReminder(
	_ context.Context,
	_ *zap.Logger,
) (store.SessionSummary, error) {
	s.Store.Dispatch(store.BackToTwoFactorReminder{})
	return store.Summarize(s.Store.State()), nil
}

func (s FirstLoginService) SetOptIn(
	_ context.Context,
	_ *zap.Logger,
	body models.FirstLoginOptInBody,
) (store.SessionSummary, error) {
	s.Store.Dispatch(store.SetTwoFactorOptIn{Enable: body.Enable})
	return store.Summarize(s.Store.State()), nil
}

// OpenOtpModal shows the confirmation modal and asks the server to send the
// guarding code. A failed send leaves the modal open; the user can resend by
// closing and reopening.
func (s FirstLoginService) OpenOtpModal(
	ctx context.Context,
	_ *zap.Logger,
) (store.SessionSummary, error) {
	if store.FirstLoginModal(s.Store.State()) != "method" {
		return store.SessionSummary{}, errFlowNotActive
	}

	s.Store.Dispatch(store.OpenFirstLoginOtpModal{})

	if err := s.Effects.RequestFirstLoginOtp(ctx); err != nil {
		return store.SessionSummary{}, err
	}
	return store.Summarize(s.Store.State()), nil
}

// CloseOtpModal returns to the method selector without losing the selection.
func (s FirstLoginService) CloseOtpModal(
	_ context.Context,
	_ *zap.Logger,
) (store.SessionSummary, error) {
	s.Store.Dispatch(store.CloseFirstLoginOtpModal{})
	return store.Summarize(s.Store.State()), nil
}

func (s FirstLoginService) Complete(
	ctx context.Context,
	_ *zap.Logger,
	body models.FirstLoginCompleteBody,
) (store.SessionSummary, error) {
	if err := s.Effects.CompleteFirstLoginSetup(ctx, body.Otp); err != nil {
		return store.SessionSummary{}, err
	}
	return store.Summarize(s.Store.State()), nil
}
