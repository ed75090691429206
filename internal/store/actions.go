package store

import (
	"time"

	"sessiond/internal/models"
)

// Action is a dispatched instruction consumed by the reducer. Intents ask
// for a state change or side effect; outcome actions report a completed
// effect. The reducer sees both; only the effect coordinator produces
// outcomes.
type Action interface {
	Name() string
}

// --- Login ---

type LoginUser struct {
	Email string
}

type LoginSuccess struct {
	User models.User
}

type LoginFailed struct{}

// --- Registration ---

type Register struct{}

type RegisterSuccess struct{}

type RegisterFailed struct{}

// --- Forgot password ---

type ForgotPassword struct {
	Email string
}

type ForgotPasswordSuccess struct{}

type ForgotPasswordFailed struct{}

type SetForgotPasswordStep struct {
	Step models.ForgotPasswordStep
}

type SetForgotPasswordOtp struct {
	Otp string
}

type SetForgotPasswordNewPassword struct {
	NewPassword string
}

type SetForgotPasswordConfirmPassword struct {
	ConfirmPassword string
}

type ResetPassword struct{}

type ResetPasswordSuccess struct{}

type ResetPasswordFailed struct{}

type ResetForgotPassword struct{}

// --- Logout ---

type LogoutUser struct{}

type LogoutSuccess struct{}

type LogoutFailed struct{}

// --- Token refresh ---

type RefreshTokenSuccess struct {
	AccessToken  string
	RefreshToken string
}

type RefreshTokenFailed struct{}

// --- First-login 2FA onboarding ---

type AcknowledgeTwoFactorReminder struct{}

type SkipTwoFactorReminder struct{}

type BackToTwoFactorReminder struct{}

type SetFirstLoginSelectedMethod struct {
	Method models.OtpChannel
}

type SetTwoFactorOptIn struct {
	Enable bool
}

type OpenFirstLoginOtpModal struct{}

type CloseFirstLoginOtpModal struct{}

type CompleteFirstLoginSetup struct{}

type CompleteFirstLoginSetupSuccess struct {
	TwoFactorAuth bool
}

type CompleteFirstLoginSetupFailed struct{}

type MarkFirstLoginComplete struct{}

// --- Verify email ---

type OpenVerifyEmail struct {
	Email   string
	Trigger models.VerifyEmailTrigger
}

type CloseVerifyEmail struct{}

type SubmitVerifyEmail struct{}

type SubmitVerifyEmailSuccess struct{}

type SubmitVerifyEmailFailed struct{}

type ResendVerifyEmail struct{}

type ResendVerifyEmailSuccess struct{}

type ResendVerifyEmailFailed struct{}

type ResetVerifyEmailFlow struct{}

// --- Post-login OTP ---

type SubmitPostLoginOtp struct {
	Otp      string
	OtpSmart string
}

type SubmitPostLoginOtpSuccess struct{}

type SubmitPostLoginOtpFailed struct{}

type ResendPostLoginOtp struct{}

type ResendPostLoginOtpSuccess struct {
	ExpiresAt time.Time
}

type ResendPostLoginOtpFailed struct{}

// --- Hydration ---

// HydrateSession restores the persisted snapshot on boot. Only the user and
// the authenticated flag come back; every sub-flow starts fresh.
type HydrateSession struct {
	User            *models.User
	IsAuthenticated bool
}

func (LoginUser) Name() string                        { return "auth/loginUser" }
func (LoginSuccess) Name() string                     { return "auth/loginSuccess" }
func (LoginFailed) Name() string                      { return "auth/loginFailed" }
func (Register) Name() string                         { return "auth/register" }
func (RegisterSuccess) Name() string                  { return "auth/registerSuccess" }
func (RegisterFailed) Name() string                   { return "auth/registerFailed" }
func (ForgotPassword) Name() string                   { return "auth/forgotPassword" }
func (ForgotPasswordSuccess) Name() string            { return "auth/forgotPasswordSuccess" }
func (ForgotPasswordFailed) Name() string             { return "auth/forgotPasswordFailed" }
func (SetForgotPasswordStep) Name() string            { return "auth/setForgotPasswordStep" }
func (SetForgotPasswordOtp) Name() string             { return "auth/setForgotPasswordOtp" }
func (SetForgotPasswordNewPassword) Name() string     { return "auth/setForgotPasswordNewPassword" }
func (SetForgotPasswordConfirmPassword) Name() string { return "auth/setForgotPasswordConfirmPassword" }
func (ResetPassword) Name() string                    { return "auth/resetPassword" }
func (ResetPasswordSuccess) Name() string             { return "auth/resetPasswordSuccess" }
func (ResetPasswordFailed) Name() string              { return "auth/resetPasswordFailed" }
func (ResetForgotPassword) Name() string              { return "auth/resetForgotPassword" }
func (LogoutUser) Name() string                       { return "auth/logoutUser" }
func (LogoutSuccess) Name() string                    { return "auth/logoutSuccess" }
func (LogoutFailed) Name() string                     { return "auth/logoutFailed" }
func (RefreshTokenSuccess) Name() string              { return "auth/refreshTokenSuccess" }
func (RefreshTokenFailed) Name() string               { return "auth/refreshTokenFailed" }
func (AcknowledgeTwoFactorReminder) Name() string     { return "firstLogin/acknowledgeReminder" }
func (SkipTwoFactorReminder) Name() string            { return "firstLogin/skipReminder" }
func (BackToTwoFactorReminder) Name() string          { return "firstLogin/backToReminder" }
func (SetFirstLoginSelectedMethod) Name() string      { return "firstLogin/setSelectedMethod" }
func (SetTwoFactorOptIn) Name() string                { return "firstLogin/setTwoFactorOptIn" }
func (OpenFirstLoginOtpModal) Name() string           { return "firstLogin/openOtpModal" }
func (CloseFirstLoginOtpModal) Name() string          { return "firstLogin/closeOtpModal" }
func (CompleteFirstLoginSetup) Name() string          { return "firstLogin/completeSetup" }
func (CompleteFirstLoginSetupSuccess) Name() string   { return "firstLogin/completeSetupSuccess" }
func (CompleteFirstLoginSetupFailed) Name() string    { return "firstLogin/completeSetupFailed" }
func (MarkFirstLoginComplete) Name() string           { return "firstLogin/markComplete" }
func (OpenVerifyEmail) Name() string                  { return "verifyEmail/open" }
func (CloseVerifyEmail) Name() string                 { return "verifyEmail/close" }
func (SubmitVerifyEmail) Name() string                { return "verifyEmail/submit" }
func (SubmitVerifyEmailSuccess) Name() string         { return "verifyEmail/submitSuccess" }
func (SubmitVerifyEmailFailed) Name() string          { return "verifyEmail/submitFailed" }
func (ResendVerifyEmail) Name() string                { return "verifyEmail/resend" }
func (ResendVerifyEmailSuccess) Name() string         { return "verifyEmail/resendSuccess" }
func (ResendVerifyEmailFailed) Name() string          { return "verifyEmail/resendFailed" }
func (ResetVerifyEmailFlow) Name() string             { return "verifyEmail/reset" }
func (SubmitPostLoginOtp) Name() string               { return "postLoginOtp/submit" }
func (SubmitPostLoginOtpSuccess) Name() string        { return "postLoginOtp/submitSuccess" }
func (SubmitPostLoginOtpFailed) Name() string         { return "postLoginOtp/submitFailed" }
func (ResendPostLoginOtp) Name() string               { return "postLoginOtp/resend" }
func (ResendPostLoginOtpSuccess) Name() string        { return "postLoginOtp/resendSuccess" }
func (ResendPostLoginOtpFailed) Name() string         { return "postLoginOtp/resendFailed" }
func (HydrateSession) Name() string                   { return "session/hydrate" }
