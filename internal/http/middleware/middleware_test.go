package middleware_test

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"daytrip/internal/http/middleware"
	"daytrip/internal/infra"
)

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestLoggingAssignsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Logging())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Fatal("expected generated request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(middleware.RequestIDHeader, "given-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(middleware.RequestIDHeader); got != "given-id" {
		t.Fatalf("request id = %q", got)
	}
}

func TestLoggingRecordsCallerAndRole(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Logging())
	r.GET("/anon", func(c *gin.Context) { c.Status(http.StatusOK) })
	verifier := &stubVerifier{token: &infra.FirebaseToken{UID: "abc", Role: "premium"}}
	r.GET("/authed", middleware.Auth(verifier), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/anon", nil)
	req.RemoteAddr = "203.0.113.7:5555"
	r.ServeHTTP(httptest.NewRecorder(), req)
	anon := buf.String()
	if !strings.Contains(anon, "caller=ip:203.0.113.7") || strings.Contains(anon, "role=") {
		t.Errorf("anonymous log line = %q", anon)
	}

	buf.Reset()
	req = httptest.NewRequest(http.MethodGet, "/authed", nil)
	req.Header.Set("Authorization", "Bearer tok")
	r.ServeHTTP(httptest.NewRecorder(), req)
	if got := buf.String(); !strings.Contains(got, "caller=uid:abc role=premium") {
		t.Errorf("authenticated log line = %q", got)
	}
}
