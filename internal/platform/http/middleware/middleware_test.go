package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog_backend/internal/api"
	"catalog_backend/internal/shared/apperror"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newEngine(debug bool) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(RequestID(), AccessLog(), ErrorRenderer(debug), Recovery())
	r.NoRoute(NoRoute)
	r.NoMethod(NoMethod)
	r.GET("/ok", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"id": c.GetString(ContextRequestID)}) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	r.GET("/missing", func(c *gin.Context) {
		_ = c.Error(apperror.New(apperror.KindNotFound, "Product not found"))
	})
	r.GET("/broken", func(c *gin.Context) {
		_ = c.Error(errors.New("connection refused"))
	})
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var body api.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRequestID(t *testing.T) {
	r := newEngine(false)

	t.Run("generated when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
	})

	t.Run("propagated when present", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set(HeaderRequestID, "abc-123")
		r.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
		assert.JSONEq(t, `{"id":"abc-123"}`, w.Body.String())
	})
}

func TestErrorRenderer(t *testing.T) {
	tests := []struct {
		name            string
		debug           bool
		method          string
		path            string
		expectedStatus  int
		expectedMessage string
	}{
		{"classified error", false, http.MethodGet, "/missing", http.StatusNotFound, "Product not found"},
		{"unclassified error hides detail", false, http.MethodGet, "/broken", http.StatusInternalServerError, "Ooops"},
		{"unclassified error in debug", true, http.MethodGet, "/broken", http.StatusInternalServerError, "Ooops - connection refused"},
		{"panic", false, http.MethodGet, "/panic", http.StatusInternalServerError, "Ooops"},
		{"panic in debug", true, http.MethodGet, "/panic", http.StatusInternalServerError, "Ooops - panic: boom"},
		{"unknown route", false, http.MethodGet, "/nowhere", http.StatusNotFound, "Not found"},
		{"unsupported method", false, http.MethodDelete, "/ok", http.StatusMethodNotAllowed, "Method Not Allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine(tt.debug)
			w := httptest.NewRecorder()

			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			body := decode(t, w)
			assert.Equal(t, tt.expectedStatus, body.Code)
			assert.Equal(t, tt.expectedMessage, body.Message)
		})
	}
}
