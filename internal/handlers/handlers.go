package handlers

import (
	"context"
	"errors"
	"net/http"

	"sessiond/internal/effects"
	apierrors "sessiond/internal/errors"
	"sessiond/internal/helpers"
	m "sessiond/internal/middlewares"

	"go.uber.org/zap"
)

// CreateHandler adapts a typed flow function to an http.HandlerFunc. The
// body must have been decoded by the Validate middleware on the same route.
func CreateHandler[B any, T any](fn func(ctx context.Context, logger *zap.Logger, body B) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zap.L().With(zap.String("path", r.URL.Path))

		body, ok := m.BodyFromContext[B](r.Context())
		if !ok {
			logger.Error("Handler reached without validated body")
			helpers.RespondWithError(w, 500, []string{apierrors.ErrInternal})
			return
		}

		result, err := fn(r.Context(), logger, body)
		if err != nil {
			writeError(w, logger, err)
			return
		}
		helpers.RespondWithJSON(w, 200, result)
	}
}

// CreateActionHandler adapts a body-less flow function.
func CreateActionHandler[T any](fn func(ctx context.Context, logger *zap.Logger) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zap.L().With(zap.String("path", r.URL.Path))

		result, err := fn(r.Context(), logger)
		if err != nil {
			writeError(w, logger, err)
			return
		}
		helpers.RespondWithJSON(w, 200, result)
	}
}

func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if errors.Is(err, effects.ErrSuperseded) {
		helpers.RespondWithError(w, 409, []string{apierrors.ErrSuperseded})
		return
	}

	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status < 400 || status > 599 {
			status = 502
		}
		helpers.RespondWithError(w, status, []string{apiErr.Code})
		return
	}

	logger.Debug("Flow failed", zap.Error(err))
	helpers.RespondWithError(w, 502, []string{apierrors.ErrUpstreamFailed})
}
