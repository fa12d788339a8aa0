package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"nexus/internal/delivery/http/response"
	domainerrors "nexus/internal/domain/errors"
	"nexus/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func handleError(t *testing.T, err error) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/user", nil), rec)

	NewErrorMiddleware(newDiscardLogger()).HandleHTTPError(err, c)

	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return rec, body
}

func TestErrorMiddleware_AppError(t *testing.T) {
	rec, body := handleError(t, errors.Wrap(domainerrors.ErrUserAlreadyExists, "user registration failed"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, body.Success)
	assert.Equal(t, "Email already registered!", body.Message)
	assert.Equal(t, "USER_ALREADY_EXISTS", body.Error.Code)
	assert.NotEmpty(t, body.Meta.RequestID)
}

func TestErrorMiddleware_DatabaseErrorHidesInternals(t *testing.T) {
	rec, body := handleError(t, domainerrors.NewDatabaseExecuteError(errors.New("pq: relation users does not exist"), "failed to create user"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", body.Error.Code)
	assert.Empty(t, body.Error.Details)
	assert.NotContains(t, rec.Body.String(), "relation users")
}

func TestErrorMiddleware_EchoHTTPError(t *testing.T) {
	rec, body := handleError(t, echo.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed"))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "HTTP_ERROR", body.Error.Code)
	assert.Equal(t, "method not allowed", body.Message)
}

func TestErrorMiddleware_UnclassifiedError(t *testing.T) {
	rec, body := handleError(t, errors.New("dial tcp 10.0.0.5:5432: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}
