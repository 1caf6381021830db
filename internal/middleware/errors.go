package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/trektide/trektide/internal/httperr"
)

// ErrorHandler renders every error pushed onto the context. Operational
// errors keep their status and message; anything else is logged and
// replaced with a generic failure. API paths get JSON, everything else the
// error page. In development the underlying cause is included.
func ErrorHandler(production bool, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		appErr := httperr.From(c.Errors.Last().Err)

		if !appErr.Operational {
			logger.Error().
				Err(c.Errors.Last().Err).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Msg("unexpected error")
		}

		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			renderJSON(c, appErr, production)
			return
		}
		renderHTML(c, appErr, production)
	}
}

func renderJSON(c *gin.Context, appErr *httperr.AppError, production bool) {
	status := "error"
	if appErr.Code >= 400 && appErr.Code < 500 {
		status = "fail"
	}

	body := gin.H{
		"status":  status,
		"message": appErr.Message,
	}
	if !production && appErr.Err != nil {
		body["error"] = appErr.Err.Error()
	}

	c.JSON(appErr.Code, body)
}

func renderHTML(c *gin.Context, appErr *httperr.AppError, production bool) {
	msg := appErr.Message
	if production && !appErr.Operational {
		msg = "Please try again later"
	}

	c.HTML(appErr.Code, "error.html", gin.H{
		"title": "Something went wrong",
		"msg":   msg,
	})
}

// NoRoute produces the uniform not-found error for unmatched paths.
func NoRoute(c *gin.Context) {
	_ = c.Error(httperr.NotFound("Can't find " + c.Request.URL.Path + " on this server"))
}

// Recovery converts panics into the generic 500 path instead of killing
// the process mid-request.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				_ = c.Error(fmt.Errorf("panic: %v", r))
				c.Abort()
			}
		}()
		c.Next()
	}
}
