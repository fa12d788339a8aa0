package handler

import (
	"nexus/internal/delivery/http/response"
	"nexus/internal/delivery/http/validator"
	domainerrors "nexus/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// bindCredentials decodes and validates a UserCredentialsRequest.
// Any failure renders the validation message and returns ok=false.
func bindCredentials(c echo.Context) (req UserCredentialsRequest, ok bool, err error) {
	if err := c.Bind(&req); err != nil {
		return req, false, response.BadRequest(c, "INVALID_INPUT", "Invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return req, false, response.BadRequestWithDetails(c,
			domainerrors.ErrValidationFailed.ErrorCode(),
			domainerrors.ErrValidationFailed.Message(),
			validator.Describe(err),
		)
	}

	return req, true, nil
}
