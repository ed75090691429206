package store

import (
	"sessiond/internal/models"
)

// Reduce is the single pure transition function over SessionState. It never
// performs I/O and never mutates the incoming state's nested pointers; the
// transition table is this switch.
func Reduce(state models.SessionState, action Action) models.SessionState {
	switch a := action.(type) {
	case HydrateSession:
		state = models.NewSessionState()
		state.User = cloneUser(a.User)
		state.IsAuthenticated = a.IsAuthenticated && a.User != nil

	case LoginUser:
		state.IsLoadingLogin = true
		state.IsAuthenticated = false
		state.User = nil
		state.LoginStep = models.LoginStepInit
		state.LoginStatus = models.FlowStatusInit
		state.UserOtp = models.UserOtp{}

	case LoginSuccess:
		state.IsLoadingLogin = false
		user := a.User
		switch {
		// First-login wins over the 2FA challenge: onboarding always runs
		// before any post-login verification.
		case user.IsFirstLogin:
			state.IsAuthenticated = true
			state.User = &user
			state.LoginStep = models.LoginStepInit
			state.FirstLogin = models.FirstLoginFlow{
				Show2FAReminder: true,
				SelectedMethod:  user.OtpMethod.Channel(),
				EnableTwoFactor: user.TwoFactorAuth,
			}
		case user.TwoFactorAuth:
			// Authentication is deliberately withheld until the OTP gate.
			state.IsAuthenticated = false
			state.User = &user
			state.LoginStep = models.LoginStepVerify2FA
			state.UserOtp = models.UserOtp{OtpType: user.OtpMethod.Channel()}
			state.FirstLogin = models.NewFirstLoginFlow()
		default:
			state.IsAuthenticated = true
			state.User = &user
			state.LoginStep = models.LoginStepInit
			state.FirstLogin = models.NewFirstLoginFlow()
		}

	case LoginFailed:
		state.IsLoadingLogin = false
		state.IsAuthenticated = false
		state.User = nil

	case Register:
		state.Register.Status = models.FlowStatusLoading

	case RegisterSuccess:
		state.Register.Status = models.FlowStatusSuccess

	case RegisterFailed:
		state.Register.Status = models.FlowStatusError

	case ForgotPassword:
		state.ForgotPassword.Status = models.FlowStatusLoading
		state.ForgotPassword.Email = a.Email

	case ForgotPasswordSuccess:
		state.ForgotPassword.Status = models.FlowStatusSuccess
		state.ForgotPassword.Step = models.ForgotPasswordStepOtp

	case ForgotPasswordFailed:
		state.ForgotPassword.Status = models.FlowStatusError

	case SetForgotPasswordStep:
		state.ForgotPassword.Step = a.Step

	case SetForgotPasswordOtp:
		state.ForgotPassword.Otp = a.Otp

	case SetForgotPasswordNewPassword:
		state.ForgotPassword.NewPassword = a.NewPassword

	case SetForgotPasswordConfirmPassword:
		state.ForgotPassword.ConfirmPassword = a.ConfirmPassword

	case ResetPassword:
		state.ForgotPassword.Status = models.FlowStatusLoading

	case ResetPasswordSuccess:
		state.ForgotPassword = models.NewForgotPasswordFlow()

	case ResetPasswordFailed:
		state.ForgotPassword.Status = models.FlowStatusError

	case ResetForgotPassword:
		state.ForgotPassword = models.NewForgotPasswordFlow()

	case LogoutUser:
		// Optimistic: the local session ends immediately, the outcome action
		// only confirms or records the server-side result.
		state.IsAuthenticated = false
		state.User = nil
		state.Logout.Status = models.FlowStatusLoading
		state.LoginStep = models.LoginStepInit
		state.UserOtp = models.UserOtp{}

	case LogoutSuccess:
		state.Logout.Status = models.FlowStatusSuccess
		state.FirstLogin = models.NewFirstLoginFlow()

	case LogoutFailed:
		state.Logout.Status = models.FlowStatusError

	case RefreshTokenSuccess:
		if state.User != nil {
			user := *state.User
			user.AccessToken = a.AccessToken
			user.RefreshToken = a.RefreshToken
			state.User = &user
		}
		state.RefreshStatus = models.FlowStatusSuccess

	case RefreshTokenFailed:
		state.IsAuthenticated = false
		state.User = nil
		state.RefreshStatus = models.FlowStatusError

	case AcknowledgeTwoFactorReminder:
		state.FirstLogin.Show2FAReminder = false
		state.FirstLogin.ShowMethodSelector = true

	case SkipTwoFactorReminder:
		state.FirstLogin = models.NewFirstLoginFlow()

	case BackToTwoFactorReminder:
		state.FirstLogin.ShowMethodSelector = false
		state.FirstLogin.ShowOtpModal = false
		state.FirstLogin.Show2FAReminder = true

	case SetFirstLoginSelectedMethod:
		state.FirstLogin.SelectedMethod = a.Method

	case SetTwoFactorOptIn:
		state.FirstLogin.EnableTwoFactor = a.Enable

	case OpenFirstLoginOtpModal:
		state.FirstLogin.ShowOtpModal = true
		state.FirstLogin.ShowMethodSelector = false

	case CloseFirstLoginOtpModal:
		state.FirstLogin.ShowOtpModal = false
		state.FirstLogin.ShowMethodSelector = true

	case CompleteFirstLoginSetup:
		state.FirstLogin.Submitting = true

	case CompleteFirstLoginSetupSuccess:
		if state.User != nil {
			user := *state.User
			user.IsFirstLogin = false
			user.TwoFactorAuth = a.TwoFactorAuth
			state.User = &user
		}
		state.FirstLogin = models.NewFirstLoginFlow()

	case CompleteFirstLoginSetupFailed:
		state.FirstLogin.Submitting = false

	case MarkFirstLoginComplete:
		if state.User != nil {
			user := *state.User
			user.IsFirstLogin = false
			state.User = &user
		}
		state.FirstLogin = models.NewFirstLoginFlow()

	case OpenVerifyEmail:
		state.VerifyEmail.Open = true
		state.VerifyEmail.Email = a.Email
		state.VerifyEmail.LastTrigger = a.Trigger

	case CloseVerifyEmail:
		state.VerifyEmail.Open = false

	case SubmitVerifyEmail:
		state.VerifyEmail.Submitting = true

	case SubmitVerifyEmailSuccess:
		state.VerifyEmail.Submitting = false
		state.VerifyEmail.Verified = true

	case SubmitVerifyEmailFailed:
		state.VerifyEmail.Submitting = false

	case ResendVerifyEmail:
		state.VerifyEmail.Resending = true

	case ResendVerifyEmailSuccess:
		state.VerifyEmail.Resending = false

	case ResendVerifyEmailFailed:
		state.VerifyEmail.Resending = false

	case ResetVerifyEmailFlow:
		state.VerifyEmail = models.NewVerifyEmailFlow()

	case SubmitPostLoginOtp:
		state.LoginStatus = models.FlowStatusLoading
		state.UserOtp.Otp = a.Otp
		state.UserOtp.OtpSmart = a.OtpSmart

	case SubmitPostLoginOtpSuccess:
		// The only transition that grants authentication after the 2FA gate.
		state.IsAuthenticated = true
		state.LoginStatus = models.FlowStatusSuccess
		state.LoginStep = models.LoginStepInit
		state.UserOtp.Otp = ""
		state.UserOtp.OtpSmart = ""

	case SubmitPostLoginOtpFailed:
		// Cleared so the user re-enters the code, not because it was consumed.
		state.LoginStatus = models.FlowStatusError
		state.UserOtp.Otp = ""
		state.UserOtp.OtpSmart = ""

	case ResendPostLoginOtp:
		// No transition; the outcome stamps the advisory expiry.

	case ResendPostLoginOtpSuccess:
		state.UserOtp.OtpExpiresAt = a.ExpiresAt

	case ResendPostLoginOtpFailed:
		// Advisory expiry keeps its previous value.
	}

	return state
}

func cloneUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}
