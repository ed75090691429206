package helpers

import (
	"time"

	"sessiond/internal/configuration"

	"github.com/pquerna/otp/totp"
)

// TOTPKey holds a provisioned smart-OTP secret.
type TOTPKey struct {
	Secret string // Base32-encoded secret
	URL    string // otpauth:// URL for QR code rendering
}

// GenerateTOTPSecret provisions a new smart-OTP secret for the given email.
// The secret is handed to the user's authenticator; the server learns it
// through the setup_smart_otp exchange, never from this process.
func GenerateTOTPSecret(email string) (*TOTPKey, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      configuration.AppName,
		AccountName: email,
		SecretSize:  20,
	})
	if err != nil {
		return nil, err
	}

	return &TOTPKey{
		Secret: key.Secret(),
		URL:    key.URL(),
	}, nil
}

// GenerateTOTPCode computes the current 6-digit code for a provisioned
// secret, i.e. what the authenticator app would display right now.
func GenerateTOTPCode(secret string) (string, error) {
	return totp.GenerateCode(secret, time.Now())
}

// ValidateTOTPCode checks a 6-digit code against the given secret.
func ValidateTOTPCode(secret string, code string) bool {
	return totp.Validate(code, secret)
}
