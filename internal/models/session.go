package models

import "time"

// FlowStatus tracks the lifecycle of an asynchronous sub-flow.
type FlowStatus string

const (
	FlowStatusInit    FlowStatus = "INIT"
	FlowStatusLoading FlowStatus = "LOADING"
	FlowStatusSuccess FlowStatus = "SUCCESS"
	FlowStatusError   FlowStatus = "ERROR"
)

// LoginStep gates the two-phase login: credentials first, then an OTP
// challenge when the account has two-factor enabled.
type LoginStep string

const (
	LoginStepInit      LoginStep = "INIT"
	LoginStepVerify2FA LoginStep = "VERIFY_2FA"
)

// OtpMethod is the account-level second-factor preference as reported by the
// upstream API.
type OtpMethod string

const (
	OtpMethodEmail    OtpMethod = "email"
	OtpMethodSmartOtp OtpMethod = "smart_otp"
)

// OtpChannel is the channel a single verification uses. It is the short form
// of OtpMethod used inside flow records.
type OtpChannel string

const (
	OtpChannelEmail OtpChannel = "email"
	OtpChannelSmart OtpChannel = "smart"
)

// Channel maps the account-level method to the flow-level channel.
func (m OtpMethod) Channel() OtpChannel {
	if m == OtpMethodSmartOtp {
		return OtpChannelSmart
	}
	return OtpChannelEmail
}

// User is the authenticated identity as returned by the upstream auth API.
// Tokens are mirrored here after login and refresh; the token store remains
// the persisted authority.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	DisplayName   string    `json:"display_name"`
	IsFirstLogin  bool      `json:"is_first_login"`
	TwoFactorAuth bool      `json:"two_factor_auth"`
	OtpMethod     OtpMethod `json:"otp_method"`
	AccessToken   string    `json:"access_token"`
	RefreshToken  string    `json:"refresh_token"`
}

// UserOtp holds the transient OTP values of the post-login challenge.
// OtpExpiresAt is advisory only; the server stays the authority on expiry.
type UserOtp struct {
	OtpType      OtpChannel `json:"otp_type"`
	Otp          string     `json:"otp"`
	OtpExpiresAt time.Time  `json:"otp_expires_at"`
	OtpSmart     string     `json:"otp_smart"`
}

type RegisterFlow struct {
	Status FlowStatus `json:"status"`
}

// ForgotPasswordStep is the wizard position of the password-reset flow.
type ForgotPasswordStep string

const (
	ForgotPasswordStepEmail ForgotPasswordStep = "email"
	ForgotPasswordStepOtp   ForgotPasswordStep = "otp"
	ForgotPasswordStepReset ForgotPasswordStep = "resetPassword"
)

type ForgotPasswordFlow struct {
	Status          FlowStatus         `json:"status"`
	Step            ForgotPasswordStep `json:"step"`
	Email           string             `json:"email"`
	Otp             string             `json:"otp"`
	NewPassword     string             `json:"new_password"`
	ConfirmPassword string             `json:"confirm_password"`
}

// FirstLoginFlow drives the one-time 2FA onboarding shown after the first
// successful login. The three booleans gate three sequential modals; the
// controllers keep at most one semantically active.
type FirstLoginFlow struct {
	Show2FAReminder    bool       `json:"show_2fa_reminder"`
	ShowMethodSelector bool       `json:"show_method_selector"`
	ShowOtpModal       bool       `json:"show_otp_modal"`
	SelectedMethod     OtpChannel `json:"selected_method"`
	Submitting         bool       `json:"submitting"`
	EnableTwoFactor    bool       `json:"enable_two_factor"`
}

// VerifyEmailTrigger records which journey opened the verification flow so
// the caller can decide where to navigate once verified.
type VerifyEmailTrigger string

const (
	VerifyEmailTriggerRegister VerifyEmailTrigger = "register"
	VerifyEmailTriggerLogin    VerifyEmailTrigger = "login"
)

type VerifyEmailFlow struct {
	Open        bool               `json:"open"`
	Email       string             `json:"email"`
	Submitting  bool               `json:"submitting"`
	Resending   bool               `json:"resending"`
	Verified    bool               `json:"verified"`
	LastTrigger VerifyEmailTrigger `json:"last_trigger,omitempty"`
}

type LogoutFlow struct {
	Status FlowStatus `json:"status"`
}

// SessionState is the single source of truth for authentication status and
// every verification sub-flow. It is only mutated by the store's reducer.
type SessionState struct {
	IsAuthenticated bool  `json:"is_authenticated"`
	User            *User `json:"user"`

	IsLoadingLogin bool       `json:"is_loading_login"`
	LoginStep      LoginStep  `json:"login_step"`
	LoginStatus    FlowStatus `json:"login_status"`
	UserOtp        UserOtp    `json:"user_otp"`

	Register       RegisterFlow       `json:"register"`
	ForgotPassword ForgotPasswordFlow `json:"forgot_password"`
	FirstLogin     FirstLoginFlow     `json:"first_login"`
	VerifyEmail    VerifyEmailFlow    `json:"verify_email"`
	Logout         LogoutFlow         `json:"logout"`

	// RefreshStatus is deliberately separate from Logout.Status: a failed
	// silent refresh is a different condition than a failed explicit logout.
	RefreshStatus FlowStatus `json:"refresh_status"`
}

func NewRegisterFlow() RegisterFlow {
	return RegisterFlow{Status: FlowStatusInit}
}

func NewForgotPasswordFlow() ForgotPasswordFlow {
	return ForgotPasswordFlow{
		Status: FlowStatusInit,
		Step:   ForgotPasswordStepEmail,
	}
}

func NewFirstLoginFlow() FirstLoginFlow {
	return FirstLoginFlow{SelectedMethod: OtpChannelEmail}
}

func NewVerifyEmailFlow() VerifyEmailFlow {
	return VerifyEmailFlow{}
}

func NewLogoutFlow() LogoutFlow {
	return LogoutFlow{Status: FlowStatusInit}
}

// NewSessionState returns the initial state. Sub-flows always start from
// their defaults; only User and IsAuthenticated may be hydrated from a
// persisted snapshot afterwards.
func NewSessionState() SessionState {
	return SessionState{
		LoginStep:      LoginStepInit,
		LoginStatus:    FlowStatusInit,
		Register:       NewRegisterFlow(),
		ForgotPassword: NewForgotPasswordFlow(),
		FirstLogin:     NewFirstLoginFlow(),
		VerifyEmail:    NewVerifyEmailFlow(),
		Logout:         NewLogoutFlow(),
		RefreshStatus:  FlowStatusInit,
	}
}
