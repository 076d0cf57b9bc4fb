package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// getIntParam reads a positive integer query parameter
func getIntParam(c echo.Context, name string, defaultValue int) int {
	value, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func getClientIP(c echo.Context) string {
	return c.RealIP()
}
