package presenter

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Error string `json:"error"`
}

// OK wraps a successful JSON response.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

// HTML writes a rendered page or fragment.
func HTML(c echo.Context, markup string) error {
	return c.HTML(http.StatusOK, markup)
}

// Redirect sends the post-mutation redirect.
func Redirect(c echo.Context, location string) error {
	return c.Redirect(http.StatusSeeOther, location)
}

func BadRequest(c echo.Context, err error) error {
	fmt.Println("Bad request:", err)
	return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

// Forbidden surfaces a denial without detail.
func Forbidden(c echo.Context) error {
	return c.JSON(http.StatusForbidden, errorResponse{Error: "forbidden"})
}

func NotFound(c echo.Context, msg string) error {
	fmt.Println("Not found:", msg)
	return c.JSON(http.StatusNotFound, errorResponse{Error: msg})
}

func InternalError(c echo.Context, err error) error {
	fmt.Println("Internal error:", err)
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
}
