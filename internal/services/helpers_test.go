package services

import (
	"context"
	"time"

	"sessiond/internal/effects"
	"sessiond/internal/models"
	"sessiond/internal/store"
	"sessiond/internal/tokens"
)

// stubAPI answers every upstream call with a canned result.
type stubAPI struct {
	user models.User
	msg  string
	err  error

	resetBodies []models.ResetPasswordBody
}

func (s *stubAPI) Login(_ context.Context, _ models.AuthLoginBody) (models.User, string, error) {
	return s.user, s.msg, s.err
}

func (s *stubAPI) Register(_ context.Context, _ models.AuthRegisterBody) (string, error) {
	return s.msg, s.err
}

func (s *stubAPI) ForgotPassword(_ context.Context, _ string) (string, error) {
	return s.msg, s.err
}

func (s *stubAPI) ResetPassword(_ context.Context, body models.ResetPasswordBody) (string, error) {
	s.resetBodies = append(s.resetBodies, body)
	return s.msg, s.err
}

func (s *stubAPI) ChangePassword(_ context.Context, _ models.ChangePasswordBody) (string, error) {
	return s.msg, s.err
}

func (s *stubAPI) VerifyEmail(_ context.Context, _ string, _ string) (string, error) {
	return s.msg, s.err
}

func (s *stubAPI) SetupTwoFactor(_ context.Context, _ models.TwoFactorSetupBody) (string, error) {
	return s.msg, s.err
}

func (s *stubAPI) SubmitLoginOtp(_ context.Context, _ string, _ string, _ string) (string, error) {
	return s.msg, s.err
}

func (s *stubAPI) Logout(_ context.Context) (string, error) {
	return s.msg, s.err
}

func (s *stubAPI) RefreshToken(_ context.Context, _ string) (models.TokenPair, error) {
	return models.TokenPair{}, s.err
}

func (s *stubAPI) RequestOtp(_ context.Context, _ models.OtpRequestBody) (string, error) {
	return s.msg, s.err
}

type silentToaster struct{}

func (silentToaster) Success(string) {}
func (silentToaster) Error(string)   {}
func (silentToaster) Info(string)    {}

func newTestEngine(api *stubAPI) (*store.Store, *effects.Coordinator) {
	sessionStore := store.New(nil)
	coordinator := effects.NewCoordinator(
		sessionStore,
		api,
		tokens.NewMemoryStore(),
		silentToaster{},
		time.Minute,
	)
	return sessionStore, coordinator
}
