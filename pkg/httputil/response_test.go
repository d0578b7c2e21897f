package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/detailerhq/booking-api/pkg/errors"
)

func TestStatusForKind(t *testing.T) {
	cases := map[errors.Kind]int{
		errors.KindValidation:    http.StatusBadRequest,
		errors.KindNotFound:      http.StatusNotFound,
		errors.KindAuthorization: http.StatusForbidden,
		errors.KindConflict:      http.StatusConflict,
		errors.KindConfig:        http.StatusInternalServerError,
		errors.KindInternal:      http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, StatusForKind(kind), kind.String())
	}
}

func TestRespondWithErrorPassesAppErrorMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("GET", "/", nil)

	RespondWithError(c, errors.Validation("Date range is too large"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Date range is too large", resp.Error.Message)
}

func TestRespondWithErrorMasksInternalErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest("GET", "/", nil)

	RespondWithError(c, assertableError("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "internal server error", resp.Error.Message)
}

type assertableError string

func (e assertableError) Error() string { return string(e) }
