package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kinsman/brandsite/backend/go-services/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpsEndpoints(t *testing.T) {
	g := gin.New()
	RegisterOps(g, store.NewMemory("site"), time.Now())

	w := do(g, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", w.Body.String())

	w = do(g, http.MethodGet, "/ready", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ready"`)

	w = do(g, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestReadyReportsMissingOrDownStore(t *testing.T) {
	for name, s := range map[string]store.Store{"none": nil, "down": downStore{store.NewMemory("t")}} {
		t.Run(name, func(t *testing.T) {
			g := gin.New()
			RegisterOps(g, s, time.Now())
			w := do(g, http.MethodGet, "/ready", "")
			require.Equal(t, http.StatusServiceUnavailable, w.Code)
			assert.Contains(t, w.Body.String(), "not_ready")
		})
	}
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	g := gin.New()
	g.GET("/api/hello", func(c *gin.Context) { c.JSON(200, gin.H{"message": "hi"}) })
	g.POST("/api/contact", func(c *gin.Context) { c.Status(200) })
	h := WithCORS(g)

	w := do(h, http.MethodGet, "/api/hello", "", "Origin", "https://example.org")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(h, http.MethodOptions, "/api/contact", "",
		"Origin", "https://example.org",
		"Access-Control-Request-Method", "POST",
		"Access-Control-Request-Headers", "Content-Type, X-Anything")
	assert.Less(t, w.Code, 300)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}
