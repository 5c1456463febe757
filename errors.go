package siteapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

var (
	// ErrNotFound is returned when a record does not exist or, on public
	// routes, is not visible.
	ErrNotFound = errors.New("not found")
	// ErrSlugTaken is returned when a create or update collides with an
	// existing slug.
	ErrSlugTaken = errors.New("slug already in use")
	// ErrInvalidStatus is returned for status values other than "draft" or
	// "published".
	ErrInvalidStatus = errors.New(`status must be "draft" or "published"`)
	// ErrMalformedDataURL is returned when an upload payload is not a
	// base64 data URL or its bytes do not match the declared type.
	ErrMalformedDataURL = errors.New("malformed image data url")
	// ErrUnsupportedImage is returned for MIME types outside the allow-list.
	ErrUnsupportedImage = errors.New("unsupported image type")

	errUnauthorized    = errors.New("unauthorized")
	errTooManyRequests = errors.New("too many requests")
)

// errStatusMap translates sentinel errors into HTTP status codes.
var errStatusMap = map[error]int{
	ErrNotFound:         http.StatusNotFound,
	ErrSlugTaken:        http.StatusConflict,
	ErrInvalidStatus:    http.StatusBadRequest,
	ErrMalformedDataURL: http.StatusBadRequest,
	ErrUnsupportedImage: http.StatusBadRequest,
	errUnauthorized:     http.StatusUnauthorized,
	errTooManyRequests:  http.StatusTooManyRequests,
}

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respond(c echo.Context, code int, data any) error {
	return c.JSON(code, Response{Success: true, Data: data})
}

func respondOK(c echo.Context) error {
	return c.JSON(http.StatusOK, Response{Success: true})
}

func fail(c echo.Context, code int, msg string) error {
	return c.JSON(code, Response{Success: false, Error: msg})
}

// httpErrorHandler shapes every error that escapes a handler into the JSON
// envelope. Internal detail on 5xx stays in the server log.
func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	for known, code := range errStatusMap {
		if errors.Is(err, known) {
			_ = fail(c, code, known.Error())
			return
		}
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			a.log.Error().Err(err).Str("path", c.Request().URL.Path).Msg("server error")
			_ = fail(c, he.Code, "internal server error")
			return
		}
		_ = fail(c, he.Code, fmt.Sprint(he.Message))
		return
	}
	a.log.Error().Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Request().URL.Path).
		Msg("unhandled error")
	_ = fail(c, http.StatusInternalServerError, "internal server error")
}
