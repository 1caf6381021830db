package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/trektide/trektide/internal/httperr"
	"github.com/trektide/trektide/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(t *testing.T) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/tours", nil)
	return c
}

func lastErrorCode(t *testing.T, c *gin.Context) int {
	t.Helper()
	last := c.Errors.Last()
	if last == nil {
		t.Fatal("no error recorded")
	}
	return httperr.From(last.Err).Code
}

func TestRestrictTo_AllowsListedRole(t *testing.T) {
	c := testContext(t)
	c.Set(ContextUser, &models.User{Role: models.RoleAdmin})

	RestrictTo(models.RoleAdmin, models.RoleLeadGuide)(c)

	if c.IsAborted() {
		t.Error("request aborted for an allowed role")
	}
	if len(c.Errors) != 0 {
		t.Errorf("errors recorded: %v", c.Errors)
	}
}

func TestRestrictTo_ForbidsOtherRoles(t *testing.T) {
	c := testContext(t)
	c.Set(ContextUser, &models.User{Role: models.RoleUser})

	RestrictTo(models.RoleAdmin, models.RoleLeadGuide)(c)

	if !c.IsAborted() {
		t.Fatal("request not aborted")
	}
	if code := lastErrorCode(t, c); code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", code)
	}
}

func TestRestrictTo_RequiresSession(t *testing.T) {
	c := testContext(t)

	RestrictTo(models.RoleUser)(c)

	if !c.IsAborted() {
		t.Fatal("request without a user not aborted")
	}
	if code := lastErrorCode(t, c); code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", code)
	}
}

func TestCurrentUser(t *testing.T) {
	c := testContext(t)
	if CurrentUser(c) != nil {
		t.Error("user reported on a bare context")
	}

	want := &models.User{ID: 3, Role: models.RoleGuide}
	c.Set(ContextUser, want)
	if got := CurrentUser(c); got != want {
		t.Errorf("CurrentUser() = %v, want %v", got, want)
	}
}

func TestExtractToken(t *testing.T) {
	c := testContext(t)
	c.Request.Header.Set("Authorization", "Bearer header-token")
	if got := extractToken(c); got != "header-token" {
		t.Errorf("extractToken() = %q, want header token", got)
	}

	c = testContext(t)
	c.Request.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie-token"})
	if got := extractToken(c); got != "cookie-token" {
		t.Errorf("extractToken() = %q, want cookie token", got)
	}

	// Header wins when both are present.
	c = testContext(t)
	c.Request.Header.Set("Authorization", "Bearer header-token")
	c.Request.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie-token"})
	if got := extractToken(c); got != "header-token" {
		t.Errorf("extractToken() = %q, want header token to win", got)
	}

	c = testContext(t)
	c.Request.Header.Set("Authorization", "Basic xyz")
	if got := extractToken(c); got != "" {
		t.Errorf("extractToken() = %q, want empty for non-bearer scheme", got)
	}
}
