// Package envelope renders the JSON response envelopes used by every
// endpoint: {"success": true, ...} on the happy path and
// {"success": false, "error": ...} on failure.
package envelope

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Data writes a 200 list/read envelope: {success, data}.
func Data(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

// Created writes a 200 create envelope: {success, message, data}.
func Created(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// Message writes a 200 mutation envelope: {success, message}.
func Message(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
	})
}

// Error writes a failure envelope with the given status: {success, error}.
func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
