package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// fakeToken implements Token
type fakeToken struct {
	data map[string]interface{}
}

func (t *fakeToken) Claims(v interface{}) error {
	if mm, ok := v.(*map[string]interface{}); ok {
		*mm = t.data
		return nil
	}
	return fmt.Errorf("unsupported claims type")
}

// fakeVerifier implements Verifier
type fakeVerifier struct{}

func (f *fakeVerifier) Verify(ctx context.Context, raw string) (Token, error) {
	if raw == "goodtoken" {
		return &fakeToken{data: map[string]interface{}{"sub": "admin"}}, nil
	}
	return nil, fmt.Errorf("invalid token")
}

func serveAuth(t *testing.T, ver Verifier, header string) *httptest.ResponseRecorder {
	t.Helper()
	g := gin.New()
	g.POST("/", AuthMiddleware(ver), func(c *gin.Context) {
		claims, _ := c.Get(ClaimsKey)
		c.JSON(http.StatusOK, gin.H{"claims": claims})
	})
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)
	return rw
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	for name, header := range map[string]string{
		"no header":    "",
		"bad header":   "BadHeader",
		"empty bearer": "Bearer ",
		"wrong scheme": "Basic goodtoken",
		"bad token":    "Bearer nope",
	} {
		t.Run(name, func(t *testing.T) {
			rw := serveAuth(t, &fakeVerifier{}, header)
			require.Equal(t, http.StatusUnauthorized, rw.Code)
			require.Contains(t, rw.Body.String(), "detail")
		})
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	rw := serveAuth(t, &fakeVerifier{}, "Bearer goodtoken")
	require.Equal(t, http.StatusOK, rw.Code)

	var got map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &got))
	require.Equal(t, "admin", got["claims"]["sub"])
}

func TestAuthMiddleware_NilVerifierIsOpen(t *testing.T) {
	rw := serveAuth(t, nil, "")
	require.Equal(t, http.StatusOK, rw.Code)
}
