package response_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reserva/shared/constant"
	"reserva/shared/failure"
	"reserva/transport/http/response"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error *string `json:"error"`
	}

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)

	return *body.Error
}

func TestWithError_FailureMessagePassesThrough(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithError(rec, failure.NotFound("reservation not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "reservation not found", decodeError(t, rec))
}

func TestWithError_InternalDetailStaysServerSide(t *testing.T) {
	rec := httptest.NewRecorder()

	wrapped := fmt.Errorf("failed to get user by email: %w",
		fmt.Errorf("pq: password authentication failed for user %q", "reserva_rw"))
	response.WithError(rec, wrapped)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, constant.ResponseErrorInternal, decodeError(t, rec))
	assert.NotContains(t, rec.Body.String(), "pq:")
}

func TestWithError_InternalFailureMessageNotLeaked(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithError(rec, failure.InternalError(fmt.Errorf("dial tcp 10.0.0.5:5432: connection refused")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, constant.ResponseErrorInternal, decodeError(t, rec))
}
