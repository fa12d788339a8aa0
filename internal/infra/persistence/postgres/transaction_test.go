package postgres

import (
	"net/http"
	"testing"

	domainerrors "nexus/internal/domain/errors"
	"nexus/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionError(t *testing.T) {
	err := transactionError("commit", errors.New("connection reset"))

	assert.ErrorIs(t, err, domainerrors.ErrTransactionFailed)
	assert.Contains(t, err.Error(), "commit: connection reset")

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode())
	assert.Equal(t, "TRANSACTION_FAILED", appErr.ErrorCode())
}
