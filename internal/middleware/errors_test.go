package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/trektide/trektide/internal/httperr"
)

func errorEngine(production bool) *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler(production, zerolog.Nop()))
	r.Use(Recovery())
	r.GET("/api/v1/fail", func(c *gin.Context) {
		_ = c.Error(httperr.BadRequest("Duplicate field value. Please use another value"))
	})
	r.GET("/api/v1/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("pq: connection refused"))
	})
	r.GET("/api/v1/panic", func(c *gin.Context) {
		panic("index out of range")
	})
	r.NoRoute(NoRoute)
	return r
}

func doRequest(r *gin.Engine, target string) (*httptest.ResponseRecorder, map[string]any) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestErrorHandler_OperationalError(t *testing.T) {
	w, body := doRequest(errorEngine(true), "/api/v1/fail")

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if body["status"] != "fail" {
		t.Errorf("status field = %v, want fail", body["status"])
	}
	if body["message"] != "Duplicate field value. Please use another value" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestErrorHandler_HidesUnknownErrors(t *testing.T) {
	w, body := doRequest(errorEngine(true), "/api/v1/boom")

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if body["status"] != "error" {
		t.Errorf("status field = %v, want error", body["status"])
	}
	if msg, _ := body["message"].(string); strings.Contains(msg, "connection refused") {
		t.Errorf("internal detail leaked to client: %q", msg)
	}
	if _, ok := body["error"]; ok {
		t.Error("underlying error exposed in production")
	}
}

func TestErrorHandler_ShowsCauseInDevelopment(t *testing.T) {
	_, body := doRequest(errorEngine(false), "/api/v1/boom")

	cause, _ := body["error"].(string)
	if !strings.Contains(cause, "connection refused") {
		t.Errorf("development response missing cause, got %v", body)
	}
}

func TestErrorHandler_RecoversPanics(t *testing.T) {
	w, body := doRequest(errorEngine(true), "/api/v1/panic")

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if body["message"] != "Something went very wrong" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestNoRoute(t *testing.T) {
	w, body := doRequest(errorEngine(true), "/api/v1/nope")

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if msg, _ := body["message"].(string); !strings.Contains(msg, "/api/v1/nope") {
		t.Errorf("message = %q, want the missing path named", msg)
	}
}
