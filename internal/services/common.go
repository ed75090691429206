package services

import apierrors "sessiond/internal/errors"

var (
	errEmptyOtp      = apierrors.NewAPIError(400, apierrors.ErrValidationFailed)
	errFlowNotActive = apierrors.NewAPIError(409, apierrors.ErrFlowNotActive)
)
