package services

import (
	"context"
	"testing"

	apierrors "sessiond/internal/errors"
	"sessiond/internal/models"
	"sessiond/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func onboardingService(t *testing.T, api *stubAPI) (FirstLoginService, *store.Store) {
	t.Helper()
	api.user = models.User{
		ID:           "u-1",
		Email:        "test@example.com",
		IsFirstLogin: true,
		OtpMethod:    models.OtpMethodEmail,
	}
	sessionStore, coordinator := newTestEngine(api)
	require.NoError(t, coordinator.Login(context.Background(), models.AuthLoginBody{
		Email:    "test@example.com",
		Password: "secret",
	}))
	require.Equal(t, "reminder", store.FirstLoginModal(sessionStore.State()))
	return FirstLoginService{Store: sessionStore, Effects: coordinator}, sessionStore
}

func TestFirstLoginService_ReminderSteps(t *testing.T) {
	t.Run("acknowledge advances to the method selector", func(t *testing.T) {
		service, sessionStore := onboardingService(t, &stubAPI{})

		summary, err := service.AcknowledgeReminder(context.Background(), zap.NewNop())

		require.NoError(t, err)
		assert.Equal(t, "method", summary.FirstLoginModal)
		assert.Equal(t, "method", store.FirstLoginModal(sessionStore.State()))
	})

	t.Run("acknowledge without the reminder showing is rejected", func(t *testing.T) {
		service, _ := onboardingService(t, &stubAPI{})
		_, err := service.AcknowledgeReminder(context.Background(), zap.NewNop())
		require.NoError(t, err)

		_, err = service.AcknowledgeReminder(context.Background(), zap.NewNop())

		var apiErr *apierrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, apierrors.ErrFlowNotActive, apiErr.Code)
	})

	t.Run("skip dismisses onboarding and clears the first-login marker", func(t *testing.T) {
		service, sessionStore := onboardingService(t, &stubAPI{})

		summary, err := service.SkipReminder(context.Background(), zap.NewNop())

		require.NoError(t, err)
		assert.Empty(t, summary.FirstLoginModal)
		assert.True(t, summary.IsAuthenticated)

		user := sessionStore.State().User
		require.NotNil(t, user)
		assert.False(t, user.IsFirstLogin)
	})
}

func TestFirstLoginService_MethodSelection(t *testing.T) {
	t.Run("email method provisions nothing", func(t *testing.T) {
		service, _ := onboardingService(t, &stubAPI{})
		_, err := service.AcknowledgeReminder(context.Background(), zap.NewNop())
		require.NoError(t, err)

		response, err := service.SelectMethod(context.Background(), zap.NewNop(), models.FirstLoginMethodBody{
			Method: models.OtpChannelEmail,
		})

		require.NoError(t, err)
		assert.Nil(t, response.Provisioning)
	})

	t.Run("smart method hands back an authenticator key", func(t *testing.T) {
		service, sessionStore := onboardingService(t, &stubAPI{})
		_, err := service.AcknowledgeReminder(context.Background(), zap.NewNop())
		require.NoError(t, err)

		response, err := service.SelectMethod(context.Background(), zap.NewNop(), models.FirstLoginMethodBody{
			Method: models.OtpChannelSmart,
		})

		require.NoError(t, err)
		require.NotNil(t, response.Provisioning)
		assert.NotEmpty(t, response.Provisioning.Secret)
		assert.Contains(t, response.Provisioning.URL, "otpauth://totp/")
		assert.Equal(t, models.OtpChannelSmart, sessionStore.State().FirstLogin.SelectedMethod)
	})

	t.Run("selection outside the method step is rejected", func(t *testing.T) {
		service, _ := onboardingService(t, &stubAPI{})

		_, err := service.SelectMethod(context.Background(), zap.NewNop(), models.FirstLoginMethodBody{
			Method: models.OtpChannelEmail,
		})

		var apiErr *apierrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, apierrors.ErrFlowNotActive, apiErr.Code)
	})
}

func TestFirstLoginService_OtpAndCompletion(t *testing.T) {
	service, sessionStore := onboardingService(t, &stubAPI{msg: "ok"})
	logger := zap.NewNop()

	_, err := service.AcknowledgeReminder(context.Background(), logger)
	require.NoError(t, err)
	_, err = service.SetOptIn(context.Background(), logger, models.FirstLoginOptInBody{Enable: true})
	require.NoError(t, err)

	summary, err := service.OpenOtpModal(context.Background(), logger)
	require.NoError(t, err)
	assert.Equal(t, "otp", summary.FirstLoginModal)

	summary, err = service.Complete(context.Background(), logger, models.FirstLoginCompleteBody{
		Otp: "123456",
	})
	require.NoError(t, err)
	assert.Empty(t, summary.FirstLoginModal, "completion closes every onboarding modal")

	user := sessionStore.State().User
	require.NotNil(t, user)
	assert.False(t, user.IsFirstLogin)
	assert.True(t, user.TwoFactorAuth)
}
