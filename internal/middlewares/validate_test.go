package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testBody struct {
	Email string `json:"email" validate:"required,email"`
	Otp   string `json:"otp"   validate:"omitempty,len=6"`
}

func runValidate(t *testing.T, payload string) (*httptest.ResponseRecorder, testBody, bool) {
	t.Helper()

	var got testBody
	var ok bool
	handler := Validate[testBody](http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got, ok = BodyFromContext[testBody](r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder, got, ok
}

func TestValidate(t *testing.T) {
	t.Run("valid body reaches the handler through the context", func(t *testing.T) {
		recorder, body, ok := runValidate(t, `{"email": "test@example.com", "otp": "123456"}`)

		require.Equal(t, http.StatusOK, recorder.Code)
		require.True(t, ok)
		assert.Equal(t, "test@example.com", body.Email)
		assert.Equal(t, "123456", body.Otp)
	})

	t.Run("malformed JSON is rejected", func(t *testing.T) {
		recorder, _, ok := runValidate(t, `{"email": `)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.False(t, ok)
		assert.Contains(t, recorder.Body.String(), "VALIDATION_FAILED")
	})

	t.Run("field failures answer per-field codes", func(t *testing.T) {
		recorder, _, ok := runValidate(t, `{"email": "not-an-email", "otp": "12"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.False(t, ok)
		assert.Contains(t, recorder.Body.String(), "INVALID_EMAIL")
		assert.Contains(t, recorder.Body.String(), "INVALID_OTP")
	})
}

func TestToSnakeUpper(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Email", "EMAIL"},
		{"ConfirmPassword", "CONFIRM_PASSWORD"},
		{"OtpSmart", "OTP_SMART"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, toSnakeUpper(tt.in))
	}
}
