package services

import (
	"context"
	"testing"

	apierrors "sessiond/internal/errors"
	"sessiond/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Walks the wizard end to end: request, code entry, reset, automatic return
// to the email step.
func TestForgotPasswordWizard_FullJourney(t *testing.T) {
	api := &stubAPI{msg: "ok"}
	sessionStore, coordinator := newTestEngine(api)
	service := ForgotPasswordService{Store: sessionStore, Effects: coordinator}
	logger := zap.NewNop()

	summary, err := service.Request(context.Background(), logger, models.ForgotPasswordRequestBody{
		Email: "test@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ForgotPasswordStepOtp, summary.ForgotPasswordStep)

	summary, err = service.ContinueWithOtp(context.Background(), logger, models.ForgotPasswordOtpBody{
		Otp: "123456",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ForgotPasswordStepReset, summary.ForgotPasswordStep)

	response, err := service.Reset(context.Background(), logger, models.ForgotPasswordResetBody{
		NewPassword:     "new-pass",
		ConfirmPassword: "new-pass",
	})
	require.NoError(t, err)
	assert.True(t, response.Completed)
	assert.Equal(t, models.ForgotPasswordStepEmail, response.Session.ForgotPasswordStep,
		"the record is back at its defaults after a successful reset")

	// The upstream call received the accumulated wizard values.
	require.Len(t, api.resetBodies, 1)
	assert.Equal(t, "test@example.com", api.resetBodies[0].Identifier)
	assert.Equal(t, "123456", api.resetBodies[0].Otp)
	assert.Equal(t, "new-pass", api.resetBodies[0].Password)
}

func TestForgotPasswordWizard_Guards(t *testing.T) {
	t.Run("code entry before the request is rejected", func(t *testing.T) {
		sessionStore, coordinator := newTestEngine(&stubAPI{})
		service := ForgotPasswordService{Store: sessionStore, Effects: coordinator}

		_, err := service.ContinueWithOtp(context.Background(), zap.NewNop(), models.ForgotPasswordOtpBody{
			Otp: "123456",
		})

		var apiErr *apierrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, apierrors.ErrFlowNotActive, apiErr.Code)
	})

	t.Run("cancel regresses to the email step and drops the code", func(t *testing.T) {
		sessionStore, coordinator := newTestEngine(&stubAPI{msg: "ok"})
		service := ForgotPasswordService{Store: sessionStore, Effects: coordinator}
		logger := zap.NewNop()

		_, err := service.Request(context.Background(), logger, models.ForgotPasswordRequestBody{
			Email: "test@example.com",
		})
		require.NoError(t, err)

		_, err = service.ContinueWithOtp(context.Background(), logger, models.ForgotPasswordOtpBody{
			Otp: "123456",
		})
		require.NoError(t, err)

		summary, err := service.CancelOtp(context.Background(), logger)
		require.NoError(t, err)
		assert.Equal(t, models.ForgotPasswordStepEmail, summary.ForgotPasswordStep)
		assert.Empty(t, sessionStore.State().ForgotPassword.Otp)
	})

	t.Run("teardown resets the record from any position", func(t *testing.T) {
		sessionStore, coordinator := newTestEngine(&stubAPI{msg: "ok"})
		service := ForgotPasswordService{Store: sessionStore, Effects: coordinator}
		logger := zap.NewNop()

		_, err := service.Request(context.Background(), logger, models.ForgotPasswordRequestBody{
			Email: "test@example.com",
		})
		require.NoError(t, err)

		summary, err := service.Teardown(context.Background(), logger)
		require.NoError(t, err)
		assert.Equal(t, models.ForgotPasswordStepEmail, summary.ForgotPasswordStep)
		assert.Equal(t, models.NewForgotPasswordFlow(), sessionStore.State().ForgotPassword)
	})

	t.Run("a failed request stays on the email step", func(t *testing.T) {
		api := &stubAPI{err: apierrors.NewAPIError(500, apierrors.ErrUpstreamFailed)}
		sessionStore, coordinator := newTestEngine(api)
		service := ForgotPasswordService{Store: sessionStore, Effects: coordinator}

		_, err := service.Request(context.Background(), zap.NewNop(), models.ForgotPasswordRequestBody{
			Email: "test@example.com",
		})

		require.Error(t, err)
		state := sessionStore.State()
		assert.Equal(t, models.ForgotPasswordStepEmail, state.ForgotPassword.Step)
		assert.Equal(t, models.FlowStatusError, state.ForgotPassword.Status)
	})
}

func TestForgotPasswordWizard_SecondRunStartsClean(t *testing.T) {
	api := &stubAPI{msg: "ok"}
	sessionStore, coordinator := newTestEngine(api)
	service := ForgotPasswordService{Store: sessionStore, Effects: coordinator}
	logger := zap.NewNop()

	_, err := service.Request(context.Background(), logger, models.ForgotPasswordRequestBody{
		Email: "first@example.com",
	})
	require.NoError(t, err)
	_, err = service.ContinueWithOtp(context.Background(), logger, models.ForgotPasswordOtpBody{Otp: "111111"})
	require.NoError(t, err)
	_, err = service.Teardown(context.Background(), logger)
	require.NoError(t, err)

	// A later run must not see the first run's email or code.
	_, err = service.Request(context.Background(), logger, models.ForgotPasswordRequestBody{
		Email: "second@example.com",
	})
	require.NoError(t, err)
	_, err = service.ContinueWithOtp(context.Background(), logger, models.ForgotPasswordOtpBody{Otp: "222222"})
	require.NoError(t, err)
	_, err = service.Reset(context.Background(), logger, models.ForgotPasswordResetBody{
		NewPassword:     "new-pass",
		ConfirmPassword: "new-pass",
	})
	require.NoError(t, err)

	require.Len(t, api.resetBodies, 1)
	assert.Equal(t, "second@example.com", api.resetBodies[0].Identifier)
	assert.Equal(t, "222222", api.resetBodies[0].Otp)
}
