package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func preflight(router *gin.Engine, origin string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	router.ServeHTTP(w, req)
	return w
}

func newCORSRouter(origins []string) *gin.Engine {
	router := gin.New()
	router.Use(CORS(origins))
	router.POST("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return router
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("origem configurada recebe credenciais", func(t *testing.T) {
		w := preflight(newCORSRouter([]string{"https://crewup.app"}), "https://crewup.app")

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://crewup.app" {
			t.Errorf("Allow-Origin: esperava 'https://crewup.app', obteve '%s'", got)
		}
		if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
			t.Errorf("Allow-Credentials: esperava 'true', obteve '%s'", got)
		}
	})

	t.Run("origem desconhecida é recusada", func(t *testing.T) {
		w := preflight(newCORSRouter([]string{"https://crewup.app"}), "https://evil.example")

		if w.Code != http.StatusForbidden {
			t.Errorf("esperava status 403, obteve %d", w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Allow-Origin deveria estar vazio, obteve '%s'", got)
		}
	})

	t.Run("curinga libera qualquer origem sem credenciais", func(t *testing.T) {
		w := preflight(newCORSRouter([]string{"*"}), "https://anything.example")

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Allow-Origin: esperava '*', obteve '%s'", got)
		}
		if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "" {
			t.Errorf("Allow-Credentials deveria estar vazio, obteve '%s'", got)
		}
	})

	t.Run("lista vazia usa o frontend local", func(t *testing.T) {
		w := preflight(newCORSRouter(nil), "http://localhost:3000")

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
			t.Errorf("Allow-Origin: esperava 'http://localhost:3000', obteve '%s'", got)
		}
	})
}
