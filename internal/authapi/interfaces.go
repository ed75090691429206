package authapi

import (
	"context"

	"sessiond/internal/models"
)

// IAuthAPI is the upstream auth/OTP REST surface. All payload shapes are
// dictated by the external API; this module owns no wire format of its own.
type IAuthAPI interface {
	Login(ctx context.Context, body models.AuthLoginBody) (models.User, string, error)
	Register(ctx context.Context, body models.AuthRegisterBody) (string, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, body models.ResetPasswordBody) (string, error)
	ChangePassword(ctx context.Context, body models.ChangePasswordBody) (string, error)
	VerifyEmail(ctx context.Context, identifier string, otp string) (string, error)
	SetupTwoFactor(ctx context.Context, body models.TwoFactorSetupBody) (string, error)
	SubmitLoginOtp(ctx context.Context, identifier string, otp string, otpSmart string) (string, error)
	Logout(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context, refreshToken string) (models.TokenPair, error)
	RequestOtp(ctx context.Context, body models.OtpRequestBody) (string, error)
}
