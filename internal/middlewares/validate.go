package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	apierrors "sessiond/internal/errors"
	"sessiond/internal/helpers"

	"github.com/go-playground/validator/v10"
)

// BodyKey carries the decoded, validated request body through the context.
type BodyKey struct{}

var validate = validator.New()

// Validate decodes the JSON body into B and runs struct validation before
// the handler sees it. Validation failures never reach the store; they are
// rejected here with per-field codes.
func Validate[B any](next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body B
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			helpers.RespondWithError(w, 400, []string{apierrors.ErrValidationFailed})
			return
		}

		if err := validate.Struct(body); err != nil {
			var validationErrors validator.ValidationErrors
			codes := []string{apierrors.ErrValidationFailed}
			if errors.As(err, &validationErrors) {
				codes = codes[:0]
				for _, fieldError := range validationErrors {
					codes = append(codes, "INVALID_"+toSnakeUpper(fieldError.Field()))
				}
			}
			helpers.RespondWithError(w, 400, codes)
			return
		}

		ctx := context.WithValue(r.Context(), BodyKey{}, body)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// BodyFromContext retrieves the validated body placed by Validate.
func BodyFromContext[B any](ctx context.Context) (B, bool) {
	body, ok := ctx.Value(BodyKey{}).(B)
	return body, ok
}

func toSnakeUpper(field string) string {
	out := make([]rune, 0, len(field)+4)
	for i, r := range field {
		if r >= 'A' && r <= 'Z' && i > 0 {
			out = append(out, '_')
		}
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}
