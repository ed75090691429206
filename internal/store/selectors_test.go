package store

import (
	"testing"

	"sessiond/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestFirstLoginModal_Precedence(t *testing.T) {
	tests := []struct {
		name string
		flow models.FirstLoginFlow
		want string
	}{
		{"idle", models.NewFirstLoginFlow(), ""},
		{"reminder", models.FirstLoginFlow{Show2FAReminder: true}, "reminder"},
		{"method", models.FirstLoginFlow{ShowMethodSelector: true}, "method"},
		{"otp", models.FirstLoginFlow{ShowOtpModal: true}, "otp"},
		{
			"otp wins over everything",
			models.FirstLoginFlow{Show2FAReminder: true, ShowMethodSelector: true, ShowOtpModal: true},
			"otp",
		},
		{
			"method wins over reminder",
			models.FirstLoginFlow{Show2FAReminder: true, ShowMethodSelector: true},
			"method",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := models.NewSessionState()
			state.FirstLogin = tt.flow

			assert.Equal(t, tt.want, FirstLoginModal(state))
			assert.Equal(t, tt.want != "", FirstLoginActive(state))
		})
	}
}

func TestPostLoginOtpPending(t *testing.T) {
	state := models.NewSessionState()
	assert.False(t, PostLoginOtpPending(state))

	state = Reduce(state, LoginSuccess{User: twoFactorUser()})
	assert.True(t, PostLoginOtpPending(state))

	state = Reduce(state, SubmitPostLoginOtpSuccess{})
	assert.False(t, PostLoginOtpPending(state), "authentication closes the gate")
}

func TestSummarize(t *testing.T) {
	t.Run("otp channel only surfaces while the gate is pending", func(t *testing.T) {
		state := Reduce(models.NewSessionState(), LoginSuccess{User: twoFactorUser()})
		summary := Summarize(state)

		assert.Equal(t, models.OtpChannelEmail, summary.OtpChannel)
		assert.False(t, summary.IsAuthenticated)

		state = Reduce(state, SubmitPostLoginOtpSuccess{})
		summary = Summarize(state)
		assert.Empty(t, summary.OtpChannel)
		assert.True(t, summary.IsAuthenticated)
	})

	t.Run("flow fields mirror the state", func(t *testing.T) {
		state := Reduce(models.NewSessionState(), ForgotPassword{Email: "test@example.com"})
		state = Reduce(state, ForgotPasswordSuccess{})
		summary := Summarize(state)

		assert.Equal(t, models.ForgotPasswordStepOtp, summary.ForgotPasswordStep)
		assert.Equal(t, models.FlowStatusSuccess, summary.ForgotPasswordStatus)
		assert.Equal(t, models.FlowStatusInit, summary.RefreshStatus)
	})
}
