package authapi

import (
	"context"
	"errors"
	"net"
	"time"

	apierrors "sessiond/internal/errors"
	"sessiond/internal/models"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// DefaultErrorMessage terminates the toast-message fallback chain: upstream
// payload message, then a transport description, then this.
const DefaultErrorMessage = "Something went wrong. Please try again."

// Transport-level toast messages. Raw transport errors carry URLs and are
// never shown to the user.
const (
	TimeoutErrorMessage     = "The request timed out. Please try again."
	UnreachableErrorMessage = "Could not reach the server. Please check your connection."
)

// TokenSource supplies the current access token for authenticated calls.
// Returning an empty token sends the request unauthenticated.
type TokenSource func() (string, error)

// Client wraps the upstream REST API. Every failure is translated into a
// typed *apierrors.APIError here, so the effect coordinator never probes
// untyped payload shapes.
type Client struct {
	http *resty.Client
}

func NewClient(config models.APIConfiguration, tokenSource TokenSource) *Client {
	http := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(time.Duration(config.TimeoutSeconds) * time.Second).
		SetHeader("Content-Type", "application/json")

	http.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if tokenSource == nil {
			return nil
		}
		token, err := tokenSource()
		if err != nil {
			zap.L().Warn("Failed to read access token for request", zap.Error(err))
			return nil
		}
		if token != "" {
			req.SetAuthToken(token)
		}
		return nil
	})

	return &Client{http: http}
}

func (c *Client) Login(ctx context.Context, body models.AuthLoginBody) (models.User, string, error) {
	var result models.LoginResponse
	resp, err := c.http.R().SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		SetError(&result.APIResponse).
		Post("/auth/login")
	if apiErr := c.check(resp, err, &result.APIResponse, true); apiErr != nil {
		return models.User{}, "", apiErr
	}
	return result.Data.User, result.Message, nil
}

func (c *Client) Register(ctx context.Context, body models.AuthRegisterBody) (string, error) {
	return c.post(ctx, "/auth/register", body, true)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	return c.post(ctx, "/auth/forgot-password", map[string]string{"email": email}, true)
}

func (c *Client) ResetPassword(ctx context.Context, body models.ResetPasswordBody) (string, error) {
	return c.post(ctx, "/auth/reset-password", body, true)
}

func (c *Client) ChangePassword(ctx context.Context, body models.ChangePasswordBody) (string, error) {
	return c.post(ctx, "/auth/change-password", body, true)
}

func (c *Client) VerifyEmail(ctx context.Context, identifier string, otp string) (string, error) {
	return c.post(ctx, "/auth/verify-email", map[string]string{
		"identifier": identifier,
		"otp":        otp,
	}, true)
}

func (c *Client) SetupTwoFactor(ctx context.Context, body models.TwoFactorSetupBody) (string, error) {
	return c.post(ctx, "/auth/two-factor", body, true)
}

func (c *Client) SubmitLoginOtp(ctx context.Context, identifier string, otp string, otpSmart string) (string, error) {
	return c.post(ctx, "/auth/login/otp", map[string]string{
		"identifier": identifier,
		"otp":        otp,
		"otpSmart":   otpSmart,
	}, true)
}

// Logout's response carries a message only; there is no success flag to
// check on this endpoint.
func (c *Client) Logout(ctx context.Context) (string, error) {
	return c.post(ctx, "/auth/logout", nil, false)
}

func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	var result models.RefreshResponse
	resp, err := c.http.R().SetContext(ctx).
		SetBody(map[string]string{"refreshToken": refreshToken}).
		SetResult(&result).
		SetError(&result.APIResponse).
		Post("/auth/refresh-token")
	if apiErr := c.check(resp, err, &result.APIResponse, true); apiErr != nil {
		return models.TokenPair{}, apiErr
	}
	return result.Data, nil
}

func (c *Client) RequestOtp(ctx context.Context, body models.OtpRequestBody) (string, error) {
	return c.post(ctx, "/otp/request", body, true)
}

func (c *Client) post(ctx context.Context, path string, body any, checkSuccess bool) (string, error) {
	var result models.APIResponse
	req := c.http.R().SetContext(ctx).SetResult(&result).SetError(&result)
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Post(path)
	if apiErr := c.check(resp, err, &result, checkSuccess); apiErr != nil {
		return "", apiErr
	}
	return result.Message, nil
}

// check translates a resty outcome into the typed error union: transport
// failures become NETWORK_ERROR, HTTP or envelope failures become
// UPSTREAM_FAILED with the best available message.
func (c *Client) check(resp *resty.Response, err error, env *models.APIResponse, checkSuccess bool) error {
	if err != nil {
		zap.L().Debug("Upstream request failed", zap.Error(err))
		return apierrors.NewAPIErrorWithMessage(0, apierrors.ErrNetwork, transportMessage(err))
	}

	if resp.IsError() || (checkSuccess && !env.Success) {
		msg := env.Message
		if msg == "" {
			msg = DefaultErrorMessage
		}
		status := resp.StatusCode()
		return apierrors.NewAPIErrorWithMessage(status, apierrors.ErrUpstreamFailed, msg)
	}

	return nil
}

func transportMessage(err error) string {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return TimeoutErrorMessage
	}
	if errors.Is(err, context.Canceled) {
		return DefaultErrorMessage
	}
	return UnreachableErrorMessage
}

var _ IAuthAPI = (*Client)(nil)
