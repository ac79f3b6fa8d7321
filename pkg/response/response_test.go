package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func send(t *testing.T, code int, err error) (Response, *gin.Context) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Error(c, code, "failed", err)

	require.Equal(t, code, w.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp, c
}

func TestError_ClientErrorIncludesCause(t *testing.T) {
	resp, c := send(t, http.StatusBadRequest, errors.New("latitude 95 out of range"))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "latitude 95 out of range", resp.Error)
	assert.Len(t, c.Errors, 1)
}

func TestError_ServerErrorHidesCause(t *testing.T) {
	resp, c := send(t, http.StatusInternalServerError, errors.New("sqlite: database is locked"))
	assert.Equal(t, "failed", resp.Message)
	assert.Empty(t, resp.Error)
	require.Len(t, c.Errors, 1)
	assert.Contains(t, c.Errors.String(), "database is locked")
}

func TestError_NilCause(t *testing.T) {
	resp, c := send(t, http.StatusUnauthorized, nil)
	assert.Empty(t, resp.Error)
	assert.Empty(t, c.Errors)
}
