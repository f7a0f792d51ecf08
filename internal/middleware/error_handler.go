package middleware

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every error as {"detail": message}. Errors that are not
// *echo.HTTPError are storage or programming failures and are not echoed back.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	} else {
		log.Printf("[error] %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	_ = c.JSON(code, map[string]string{"detail": msg})
}
