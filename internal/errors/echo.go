package errors

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HTTPErrorHandler renders every error reaching Echo as an ErrorResponse.
// Domain errors go through MapErrorToHTTP; unexpected faults are logged
// and answered with a generic 500 body.
func HTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := resolve(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"error", err,
				"method", c.Request().Method,
				"path", c.Path(),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.Error("write error response", "error", writeErr)
		}
	}
}

func resolve(err error) (int, ErrorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			return he.Code, ErrorResponse{Error: "internal server error", Code: "INTERNAL_ERROR"}
		}
		switch m := he.Message.(type) {
		case ErrorResponse:
			return he.Code, m
		case string:
			return he.Code, ErrorResponse{Error: m, Code: codeForStatus(he.Code)}
		default:
			return he.Code, ErrorResponse{Error: http.StatusText(he.Code), Code: codeForStatus(he.Code)}
		}
	}

	httpErr := MapErrorToHTTP(err)
	return httpErr.StatusCode, httpErr.ToErrorResponse()
}
