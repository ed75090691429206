package store

import "sessiond/internal/models"

// Selectors are pure projections over SessionState. Controllers and the
// session inspection endpoint read through these instead of poking at the
// raw record.

func IsAuthenticated(state models.SessionState) bool {
	return state.IsAuthenticated
}

func CurrentUser(state models.SessionState) *models.User {
	return state.User
}

// PostLoginOtpPending reports whether the login is parked at the 2FA gate.
func PostLoginOtpPending(state models.SessionState) bool {
	return state.LoginStep == models.LoginStepVerify2FA && !state.IsAuthenticated
}

func PostLoginOtpChannel(state models.SessionState) models.OtpChannel {
	return state.UserOtp.OtpType
}

func ForgotPasswordStep(state models.SessionState) models.ForgotPasswordStep {
	return state.ForgotPassword.Step
}

func ForgotPasswordStatus(state models.SessionState) models.FlowStatus {
	return state.ForgotPassword.Status
}

// ForgotPasswordOtpVisible mirrors the wizard rule: the OTP entry modal
// shows whenever the flow sits on the otp step.
func ForgotPasswordOtpVisible(state models.SessionState) bool {
	return state.ForgotPassword.Step == models.ForgotPasswordStepOtp
}

// FirstLoginModal names the single active onboarding modal, or "" when the
// onboarding is idle. The three booleans are not mutually exclusive in the
// record; precedence here resolves any overlap the same way every caller
// should.
func FirstLoginModal(state models.SessionState) string {
	switch {
	case state.FirstLogin.ShowOtpModal:
		return "otp"
	case state.FirstLogin.ShowMethodSelector:
		return "method"
	case state.FirstLogin.Show2FAReminder:
		return "reminder"
	default:
		return ""
	}
}

func FirstLoginActive(state models.SessionState) bool {
	return FirstLoginModal(state) != ""
}

func VerifyEmailOpen(state models.SessionState) bool {
	return state.VerifyEmail.Open
}

func VerifyEmailVerified(state models.SessionState) bool {
	return state.VerifyEmail.Verified
}

// SessionSummary is the projection served on the inspection endpoint; it is
// what a UI needs to decide which modal or form to render.
type SessionSummary struct {
	IsAuthenticated      bool                      `json:"is_authenticated"`
	User                 *models.User              `json:"user,omitempty"`
	IsLoadingLogin       bool                      `json:"is_loading_login"`
	LoginStep            models.LoginStep          `json:"login_step"`
	LoginStatus          models.FlowStatus         `json:"login_status"`
	OtpChannel           models.OtpChannel         `json:"otp_channel,omitempty"`
	RegisterStatus       models.FlowStatus         `json:"register_status"`
	ForgotPasswordStep   models.ForgotPasswordStep `json:"forgot_password_step"`
	ForgotPasswordStatus models.FlowStatus         `json:"forgot_password_status"`
	FirstLoginModal      string                    `json:"first_login_modal,omitempty"`
	FirstLoginSubmitting bool                      `json:"first_login_submitting"`
	VerifyEmailOpen      bool                      `json:"verify_email_open"`
	VerifyEmailVerified  bool                      `json:"verify_email_verified"`
	LogoutStatus         models.FlowStatus         `json:"logout_status"`
	RefreshStatus        models.FlowStatus         `json:"refresh_status"`
}

func Summarize(state models.SessionState) SessionSummary {
	summary := SessionSummary{
		IsAuthenticated:      state.IsAuthenticated,
		User:                 state.User,
		IsLoadingLogin:       state.IsLoadingLogin,
		LoginStep:            state.LoginStep,
		LoginStatus:          state.LoginStatus,
		RegisterStatus:       state.Register.Status,
		ForgotPasswordStep:   state.ForgotPassword.Step,
		ForgotPasswordStatus: state.ForgotPassword.Status,
		FirstLoginModal:      FirstLoginModal(state),
		FirstLoginSubmitting: state.FirstLogin.Submitting,
		VerifyEmailOpen:      state.VerifyEmail.Open,
		VerifyEmailVerified:  state.VerifyEmail.Verified,
		LogoutStatus:         state.Logout.Status,
		RefreshStatus:        state.RefreshStatus,
	}
	if PostLoginOtpPending(state) {
		summary.OtpChannel = state.UserOtp.OtpType
	}
	return summary
}
