package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"sessiond/internal/effects"
	"sessiond/internal/models"
	"sessiond/internal/store"
	"sessiond/internal/tokens"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthAPI struct {
	mu           sync.Mutex
	refreshCalls int
	pair         models.TokenPair
}

func (s *stubAuthAPI) Login(context.Context, models.AuthLoginBody) (models.User, string, error) {
	return models.User{}, "", nil
}
func (s *stubAuthAPI) Register(context.Context, models.AuthRegisterBody) (string, error) {
	return "", nil
}
func (s *stubAuthAPI) ForgotPassword(context.Context, string) (string, error) { return "", nil }
func (s *stubAuthAPI) ResetPassword(context.Context, models.ResetPasswordBody) (string, error) {
	return "", nil
}
func (s *stubAuthAPI) ChangePassword(context.Context, models.ChangePasswordBody) (string, error) {
	return "", nil
}
func (s *stubAuthAPI) VerifyEmail(context.Context, string, string) (string, error) { return "", nil }
func (s *stubAuthAPI) SetupTwoFactor(context.Context, models.TwoFactorSetupBody) (string, error) {
	return "", nil
}
func (s *stubAuthAPI) SubmitLoginOtp(context.Context, string, string, string) (string, error) {
	return "", nil
}
func (s *stubAuthAPI) Logout(context.Context) (string, error) { return "", nil }

func (s *stubAuthAPI) RefreshToken(context.Context, string) (models.TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshCalls++
	return s.pair, nil
}

func (s *stubAuthAPI) RequestOtp(context.Context, models.OtpRequestBody) (string, error) {
	return "", nil
}

func (s *stubAuthAPI) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshCalls
}

type noopToaster struct{}

func (noopToaster) Success(string) {}
func (noopToaster) Error(string)   {}
func (noopToaster) Info(string)    {}

func keeperToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func newTestKeeper(t *testing.T, api *stubAuthAPI) (*SessionKeeper, *store.Store) {
	t.Helper()
	sessionStore := store.New(nil)
	coordinator := effects.NewCoordinator(sessionStore, api, tokens.NewMemoryStore(), noopToaster{}, time.Minute)
	keeper := &SessionKeeper{
		Store:       sessionStore,
		Effects:     coordinator,
		RunInterval: 10 * time.Millisecond,
	}
	return keeper, sessionStore
}

func authenticate(sessionStore *store.Store, accessToken string) {
	sessionStore.Dispatch(store.LoginSuccess{User: models.User{
		ID:           "u-1",
		Email:        "test@example.com",
		AccessToken:  accessToken,
		RefreshToken: "refresh-1",
	}})
}

func TestSessionKeeper_RunCheck(t *testing.T) {
	t.Run("signed-out sessions are left alone", func(t *testing.T) {
		api := &stubAuthAPI{}
		keeper, _ := newTestKeeper(t, api)

		keeper.runCheck(context.Background())

		assert.Zero(t, api.calls())
	})

	t.Run("a near-expiry token triggers a silent refresh", func(t *testing.T) {
		api := &stubAuthAPI{pair: models.TokenPair{AccessToken: "access-2", RefreshToken: "refresh-2"}}
		keeper, sessionStore := newTestKeeper(t, api)
		authenticate(sessionStore, "stale")
		nearExpiry := keeperToken(t, time.Now().Add(10*time.Second))
		require.NoError(t, keeper.Effects.Tokens.SetTokens(nearExpiry, "refresh-1"))

		keeper.runCheck(context.Background())

		assert.Equal(t, 1, api.calls())
		stored, err := keeper.Effects.Tokens.GetAccessToken()
		require.NoError(t, err)
		assert.Equal(t, "access-2", stored)
	})

	t.Run("a fresh token is not refreshed", func(t *testing.T) {
		api := &stubAuthAPI{}
		keeper, sessionStore := newTestKeeper(t, api)
		authenticate(sessionStore, "fresh")
		fresh := keeperToken(t, time.Now().Add(time.Hour))
		require.NoError(t, keeper.Effects.Tokens.SetTokens(fresh, "refresh-1"))

		keeper.runCheck(context.Background())

		assert.Zero(t, api.calls())
	})
}

func TestSessionKeeper_StartStopsOnCancel(t *testing.T) {
	api := &stubAuthAPI{pair: models.TokenPair{AccessToken: "access-2", RefreshToken: "refresh-2"}}
	keeper, sessionStore := newTestKeeper(t, api)
	authenticate(sessionStore, "stale")
	nearExpiry := keeperToken(t, time.Now().Add(10*time.Second))
	require.NoError(t, keeper.Effects.Tokens.SetTokens(nearExpiry, "refresh-1"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		keeper.Start(ctx)
		close(done)
	}()

	// The immediate check fires before the first tick.
	require.Eventually(t, func() bool { return api.calls() >= 1 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("session keeper did not stop on context cancellation")
	}
}
