package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"koperasi-core/internal/domain/errs"
)

// writeDomainErr maps the error taxonomy to HTTP semantics:
// invalid input -> 400, not found -> 404, not allowed now -> 409.
func writeDomainErr(c echo.Context, err error) error {
	var ve *errs.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: ve.Error()})
	}
	var nf *errs.NotFoundError
	if errors.As(err, &nf) {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: nf.Error()})
	}
	var se *errs.StateError
	if errors.As(err, &se) {
		return c.JSON(http.StatusConflict, ErrorResponse{Error: se.Error()})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// bindAndValidate binds the JSON body and runs struct validation, writing the
// 400 response itself on failure.
func bindAndValidate(c echo.Context, req any) (ok bool, _ error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	return true, nil
}

// parseDateParam parses an optional YYYY-MM-DD query parameter.
func parseDateParam(c echo.Context, name string) (time.Time, bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return time.Time{}, false, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: name + " must be YYYY-MM-DD"})
	}
	return t, true, nil
}
