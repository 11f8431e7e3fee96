package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func webhookRouter(token string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(WebhookAuthMiddleware(token))
	r.POST("/hook", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestWebhookAuthAcceptsValidToken(t *testing.T) {
	r := webhookRouter("secret")

	req := httptest.NewRequest(http.MethodPost, "/hook", nil)
	req.Header.Set("X-Webhook-Token", "secret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebhookAuthRejectsBadToken(t *testing.T) {
	r := webhookRouter("secret")

	for _, token := range []string{"", "wrong"} {
		req := httptest.NewRequest(http.MethodPost, "/hook", nil)
		if token != "" {
			req.Header.Set("X-Webhook-Token", token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
}

func TestWebhookAuthDisabledWithoutToken(t *testing.T) {
	r := webhookRouter("")

	req := httptest.NewRequest(http.MethodPost, "/hook", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
