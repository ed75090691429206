package models

// OTP purposes accepted by the upstream OTP API.
const (
	OtpPurposeForgotPassword      = "forgot_password"
	OtpPurposeChangePassword      = "change_password"
	OtpPurposeSetupSmartOtp       = "setup_smart_otp"
	OtpPurposeVerifySettingChange = "verify_setting_change"
	OtpPurposeVerifyEmail         = "verify_email"
	OtpPurposeLogin               = "login"
)

// APIResponse is the common envelope of the upstream auth API.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type LoginResponse struct {
	APIResponse
	Data struct {
		User User `json:"user"`
	} `json:"data"`
}

// TokenPair is returned by the refresh endpoint.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RefreshResponse struct {
	APIResponse
	Data TokenPair `json:"data"`
}

// --- Control-surface request bodies ---

type AuthLoginBody struct {
	Email    string `json:"email"    validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

type AuthRegisterBody struct {
	Email           string `json:"email"            validate:"required,email,max=254"`
	DisplayName     string `json:"display_name"     validate:"required,max=100"`
	Password        string `json:"password"         validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type PostLoginOtpBody struct {
	Otp      string `json:"otp"       validate:"omitempty,len=6,numeric"`
	OtpSmart string `json:"otp_smart" validate:"omitempty,len=6,numeric"`
}

type ForgotPasswordRequestBody struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

type ForgotPasswordOtpBody struct {
	Otp string `json:"otp" validate:"required,len=6"`
}

type ForgotPasswordResetBody struct {
	NewPassword     string `json:"new_password"     validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

type VerifyEmailOpenBody struct {
	Email   string             `json:"email"   validate:"required,email,max=254"`
	Trigger VerifyEmailTrigger `json:"trigger" validate:"required,oneof=register login"`
}

type VerifyEmailSubmitBody struct {
	Otp string `json:"otp" validate:"required,len=6"`
}

type FirstLoginMethodBody struct {
	Method OtpChannel `json:"method" validate:"required,oneof=email smart"`
}

type FirstLoginOptInBody struct {
	Enable bool `json:"enable"`
}

type FirstLoginCompleteBody struct {
	Otp string `json:"otp" validate:"required,len=6,numeric"`
}

type ChangePasswordBody struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
	Otp             string `json:"otp"              validate:"omitempty,len=6"`
	OtpPurpose      string `json:"otp_purpose"      validate:"omitempty,oneof=change_password verify_setting_change"`
}

// --- Upstream request bodies ---

type ResetPasswordBody struct {
	Identifier      string `json:"identifier"`
	Otp             string `json:"otp"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type OtpRequestBody struct {
	Identifier string `json:"identifier"`
	Channel    string `json:"channel"`
	Purpose    string `json:"purpose"`
}

type TwoFactorSetupBody struct {
	Enable bool       `json:"enable"`
	Method OtpChannel `json:"method"`
	Otp    string     `json:"otp"`
}
