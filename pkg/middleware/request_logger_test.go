package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kinsman/brandsite/backend/go-services/pkg/logger"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf, "json")
	defer logger.SetOutput(os.Stdout, "json")

	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/api/hello", func(c *gin.Context) { c.JSON(200, gin.H{"message": "hi"}) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/hello", nil))
	require.Equal(t, http.StatusOK, w.Code)
	id := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	require.Equal(t, "/api/hello", entry["path"])
	require.Equal(t, float64(200), entry["status"])
	require.Equal(t, id, entry["request_id"])

	req := httptest.NewRequest(http.MethodGet, "/api/hello", nil)
	req.Header.Set(RequestIDHeader, "upstream-1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "upstream-1", w.Header().Get(RequestIDHeader))
}
