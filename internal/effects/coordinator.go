package effects

import (
	"context"
	"errors"
	"sync"
	"time"

	"sessiond/internal/authapi"
	apierrors "sessiond/internal/errors"
	"sessiond/internal/helpers"
	"sessiond/internal/models"
	"sessiond/internal/store"
	"sessiond/internal/toast"
	"sessiond/internal/tokens"

	"go.uber.org/zap"
)

// ErrSuperseded marks an effect whose result was discarded because a newer
// intent of the same kind was dispatched while it was in flight.
var ErrSuperseded = errors.New("intent superseded by a newer dispatch")

// Intent kinds tracked for latest-wins sequencing.
const (
	kindLogin          = "login"
	kindRegister       = "register"
	kindForgotPassword = "forgotPassword"
	kindResetPassword  = "resetPassword"
	kindRefresh        = "refreshToken"
)

// OtpAdvisoryValidity is the validity window communicated to the user after
// an OTP resend. Advisory only; the server remains the authority on expiry.
const OtpAdvisoryValidity = 10 * time.Minute

// Coordinator bridges dispatched intents and the upstream API: exactly one
// network call per intent, exactly one outcome action per intent that is
// still current. Token persistence and toast emission happen here and
// nowhere else.
type Coordinator struct {
	Store  *store.Store
	API    authapi.IAuthAPI
	Tokens tokens.ITokenStore
	Toasts toast.IToaster

	// RefreshLeeway is how long before access-token expiry EnsureFresh
	// triggers a silent refresh.
	RefreshLeeway time.Duration

	mu   sync.Mutex
	seqs map[string]uint64
}

func NewCoordinator(
	sessionStore *store.Store,
	api authapi.IAuthAPI,
	tokenStore tokens.ITokenStore,
	toasts toast.IToaster,
	refreshLeeway time.Duration,
) *Coordinator {
	return &Coordinator{
		Store:         sessionStore,
		API:           api,
		Tokens:        tokenStore,
		Toasts:        toasts,
		RefreshLeeway: refreshLeeway,
		seqs:          make(map[string]uint64),
	}
}

// begin tags a new intent of the given kind; any effect holding an older
// sequence becomes stale.
func (c *Coordinator) begin(kind string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seqs[kind]++
	return c.seqs[kind]
}

func (c *Coordinator) current(kind string, seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seqs[kind] == seq
}

// Login performs the credentials phase. On success tokens are persisted
// before the outcome action so that LoginSuccess observers always see a
// consistent token store.
func (c *Coordinator) Login(ctx context.Context, body models.AuthLoginBody) error {
	seq := c.begin(kindLogin)
	c.Store.Dispatch(store.LoginUser{Email: body.Email})

	user, message, err := c.API.Login(ctx, body)
	if !c.current(kindLogin, seq) {
		zap.L().Debug("Discarding stale login result")
		return ErrSuperseded
	}
	if err != nil {
		c.Store.Dispatch(store.LoginFailed{})
		c.toastError(err, "Login failed. Please try again.")
		return err
	}

	if err = c.Tokens.SetTokens(user.AccessToken, user.RefreshToken); err != nil {
		zap.L().Error("Failed to persist tokens after login", zap.Error(err))
	}

	c.Store.Dispatch(store.LoginSuccess{User: user})
	c.toastSuccess(message, "Logged in successfully")
	return nil
}

func (c *Coordinator) Register(ctx context.Context, body models.AuthRegisterBody) error {
	seq := c.begin(kindRegister)
	c.Store.Dispatch(store.Register{})

	message, err := c.API.Register(ctx, body)
	if !c.current(kindRegister, seq) {
		zap.L().Debug("Discarding stale register result")
		return ErrSuperseded
	}
	if err != nil {
		c.Store.Dispatch(store.RegisterFailed{})
		c.toastError(err, "Registration failed. Please try again.")
		return err
	}

	c.Store.Dispatch(store.RegisterSuccess{})
	c.toastSuccess(message, "Account created. Please verify your email.")
	return nil
}

func (c *Coordinator) ForgotPassword(ctx context.Context, email string) error {
	seq := c.begin(kindForgotPassword)
	c.Store.Dispatch(store.ForgotPassword{Email: email})

	message, err := c.API.ForgotPassword(ctx, email)
	if !c.current(kindForgotPassword, seq) {
		zap.L().Debug("Discarding stale forgot-password result")
		return ErrSuperseded
	}
	if err != nil {
		c.Store.Dispatch(store.ForgotPasswordFailed{})
		c.toastError(err, "Could not send the reset code. Please try again.")
		return err
	}

	c.Store.Dispatch(store.ForgotPasswordSuccess{})
	c.toastSuccess(message, "A reset code has been sent to your email")
	return nil
}

// ResetPassword submits the final step of the forgot-password wizard using
// the canonical values the setters accumulated in the store. On success the
// reducer restores the flow record to its initial shape.
func (c *Coordinator) ResetPassword(ctx context.Context) error {
	flow := c.Store.State().ForgotPassword
	if flow.Step != models.ForgotPasswordStepReset {
		return apierrors.NewAPIError(409, apierrors.ErrFlowNotActive)
	}

	seq := c.begin(kindResetPassword)
	c.Store.Dispatch(store.ResetPassword{})

	message, err := c.API.ResetPassword(ctx, models.ResetPasswordBody{
		Identifier:      flow.Email,
		Otp:             flow.Otp,
		Password:        flow.NewPassword,
		ConfirmPassword: flow.ConfirmPassword,
	})
	if !c.current(kindResetPassword, seq) {
		zap.L().Debug("Discarding stale reset-password result")
		return ErrSuperseded
	}
	if err != nil {
		c.Store.Dispatch(store.ResetPasswordFailed{})
		c.toastError(err, "Password reset failed. Please try again.")
		return err
	}

	c.Store.Dispatch(store.ResetPasswordSuccess{})
	c.toastSuccess(message, "Your password has been reset")
	return nil
}

// Logout always converges to a logged-out local state: the upstream call is
// best effort and its failure is only logged. Availability over consistency;
// a user must be able to leave the session even when the backend is down.
func (c *Coordinator) Logout(ctx context.Context) error {
	c.Store.Dispatch(store.LogoutUser{})

	if _, err := c.API.Logout(ctx); err != nil {
		zap.L().Warn("Logout API call failed, clearing local session anyway", zap.Error(err))
	}

	if err := c.Tokens.ClearTokens(); err != nil {
		zap.L().Error("Failed to clear token storage", zap.Error(err))
	}

	c.Store.Dispatch(store.LogoutSuccess{})
	c.Toasts.Success("Logged out successfully")
	return nil
}

// Refresh exchanges the stored refresh token for a new pair. A missing
// refresh token short-circuits to failure without a network call. Silent:
// no toast on either path.
func (c *Coordinator) Refresh(ctx context.Context) error {
	refreshToken, err := c.Tokens.GetRefreshToken()
	if err != nil || refreshToken == "" {
		if err != nil {
			zap.L().Error("Failed to read refresh token", zap.Error(err))
		}
		c.Store.Dispatch(store.RefreshTokenFailed{})
		return apierrors.NewAPIError(401, apierrors.ErrNotAuthenticated)
	}

	seq := c.begin(kindRefresh)
	pair, err := c.API.RefreshToken(ctx, refreshToken)
	if !c.current(kindRefresh, seq) {
		zap.L().Debug("Discarding stale refresh result")
		return ErrSuperseded
	}
	if err != nil {
		c.Store.Dispatch(store.RefreshTokenFailed{})
		return err
	}

	if err = c.Tokens.SetTokens(pair.AccessToken, pair.RefreshToken); err != nil {
		zap.L().Error("Failed to persist refreshed tokens", zap.Error(err))
	}

	c.Store.Dispatch(store.RefreshTokenSuccess{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
	return nil
}

// EnsureFresh refreshes proactively when the access token is inside the
// leeway window. A token that cannot be parsed is treated as expiring.
func (c *Coordinator) EnsureFresh(ctx context.Context) error {
	accessToken, err := c.Tokens.GetAccessToken()
	if err != nil {
		return err
	}
	if accessToken == "" {
		return nil
	}

	if !helpers.TokenNeedsRefresh(accessToken, c.RefreshLeeway) {
		return nil
	}
	return c.Refresh(ctx)
}

func (c *Coordinator) SubmitPostLoginOtp(ctx context.Context, otp string, otpSmart string) error {
	state := c.Store.State()
	if !store.PostLoginOtpPending(state) || state.User == nil {
		return apierrors.NewAPIError(409, apierrors.ErrFlowNotActive)
	}

	c.Store.Dispatch(store.SubmitPostLoginOtp{Otp: otp, OtpSmart: otpSmart})

	message, err := c.API.SubmitLoginOtp(ctx, state.User.Email, otp, otpSmart)
	if err != nil {
		c.Store.Dispatch(store.SubmitPostLoginOtpFailed{})
		c.toastError(err, "Verification failed. Please try again.")
		return err
	}

	c.Store.Dispatch(store.SubmitPostLoginOtpSuccess{})
	c.toastSuccess(message, "Logged in successfully")
	return nil
}

func (c *Coordinator) ResendPostLoginOtp(ctx context.Context) error {
	state := c.Store.State()
	if !store.PostLoginOtpPending(state) || state.User == nil {
		return apierrors.NewAPIError(409, apierrors.ErrFlowNotActive)
	}

	c.Store.Dispatch(store.ResendPostLoginOtp{})

	message, err := c.API.RequestOtp(ctx, models.OtpRequestBody{
		Identifier: state.User.Email,
		Channel:    string(models.OtpChannelEmail),
		Purpose:    models.OtpPurposeLogin,
	})
	if err != nil {
		c.Store.Dispatch(store.ResendPostLoginOtpFailed{})
		c.toastError(err, "Could not resend the code. Please try again.")
		return err
	}

	c.Store.Dispatch(store.ResendPostLoginOtpSuccess{
		ExpiresAt: time.Now().Add(OtpAdvisoryValidity),
	})
	c.toastSuccess(message, "A new code has been sent to your email")
	return nil
}

func (c *Coordinator) SubmitVerifyEmail(ctx context.Context, otp string) error {
	flow := c.Store.State().VerifyEmail
	if !flow.Open || flow.Verified {
		return apierrors.NewAPIError(409, apierrors.ErrFlowNotActive)
	}

	c.Store.Dispatch(store.SubmitVerifyEmail{})

	message, err := c.API.VerifyEmail(ctx, flow.Email, otp)
	if err != nil {
		c.Store.Dispatch(store.SubmitVerifyEmailFailed{})
		c.toastError(err, "Email verification failed. Please try again.")
		return err
	}

	c.Store.Dispatch(store.SubmitVerifyEmailSuccess{})
	c.toastSuccess(message, "Email verified")
	return nil
}

func (c *Coordinator) ResendVerifyEmail(ctx context.Context) error {
	flow := c.Store.State().VerifyEmail
	if !flow.Open || flow.Verified {
		return apierrors.NewAPIError(409, apierrors.ErrFlowNotActive)
	}

	c.Store.Dispatch(store.ResendVerifyEmail{})

	message, err := c.API.RequestOtp(ctx, models.OtpRequestBody{
		Identifier: flow.Email,
		Channel:    string(models.OtpChannelEmail),
		Purpose:    models.OtpPurposeVerifyEmail,
	})
	if err != nil {
		c.Store.Dispatch(store.ResendVerifyEmailFailed{})
		c.toastError(err, "Could not resend the code. Please try again.")
		return err
	}

	c.Store.Dispatch(store.ResendVerifyEmailSuccess{})
	c.toastSuccess(message, "A new code has been sent to your email")
	return nil
}

// RequestFirstLoginOtp asks the server to issue the code guarding the 2FA
// setup confirmation. Smart-method setups use the dedicated purpose so the
// server can provision alongside the code.
func (c *Coordinator) RequestFirstLoginOtp(ctx context.Context) error {
	state := c.Store.State()
	if state.User == nil {
		return apierrors.NewAPIError(409, apierrors.ErrFlowNotActive)
	}

	purpose := models.OtpPurposeVerifySettingChange
	if state.FirstLogin.SelectedMethod == models.OtpChannelSmart {
		purpose = models.OtpPurposeSetupSmartOtp
	}

	message, err := c.API.RequestOtp(ctx, models.OtpRequestBody{
		Identifier: state.User.Email,
		Channel:    string(models.OtpChannelEmail),
		Purpose:    purpose,
	})
	if err != nil {
		c.toastError(err, "Could not send the verification code.")
		return err
	}

	c.toastSuccess(message, "A verification code has been sent to your email")
	return nil
}

func (c *Coordinator) CompleteFirstLoginSetup(ctx context.Context, otp string) error {
	state := c.Store.State()
	if state.User == nil || !state.FirstLogin.ShowOtpModal {
		return apierrors.NewAPIError(409, apierrors.ErrFlowNotActive)
	}

	flow := state.FirstLogin
	c.Store.Dispatch(store.CompleteFirstLoginSetup{})

	message, err := c.API.SetupTwoFactor(ctx, models.TwoFactorSetupBody{
		Enable: flow.EnableTwoFactor,
		Method: flow.SelectedMethod,
		Otp:    otp,
	})
	if err != nil {
		c.Store.Dispatch(store.CompleteFirstLoginSetupFailed{})
		c.toastError(err, "Two-factor setup failed. Please try again.")
		return err
	}

	c.Store.Dispatch(store.CompleteFirstLoginSetupSuccess{TwoFactorAuth: flow.EnableTwoFactor})
	c.toastSuccess(message, "Two-factor setup complete")
	return nil
}

// ChangePassword is a settings action, not a stored sub-flow: it only calls
// upstream and toasts the result.
func (c *Coordinator) ChangePassword(ctx context.Context, body models.ChangePasswordBody) error {
	if !c.Store.State().IsAuthenticated {
		return apierrors.NewAPIError(401, apierrors.ErrNotAuthenticated)
	}

	message, err := c.API.ChangePassword(ctx, body)
	if err != nil {
		c.toastError(err, "Password change failed. Please try again.")
		return err
	}

	c.toastSuccess(message, "Password changed")
	return nil
}

func (c *Coordinator) toastSuccess(message string, fallback string) {
	if message == "" {
		message = fallback
	}
	c.Toasts.Success(message)
}

// toastError extracts the human-readable message from the typed error; the
// fallback only fires for errors that did not come through the API client.
func (c *Coordinator) toastError(err error, fallback string) {
	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		c.Toasts.Error(apiErr.Message)
		return
	}
	c.Toasts.Error(fallback)
}
