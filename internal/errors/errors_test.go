package errors

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantKind   Kind
	}{
		{"missing credentials", ErrMissingCredentials, http.StatusBadRequest, "VALIDATION_ERROR", KindValidation},
		{"password too long", ErrPasswordTooLong, http.StatusBadRequest, "VALIDATION_ERROR", KindValidation},
		{"empty content", ErrEmptyContent, http.StatusBadRequest, "VALIDATION_ERROR", KindValidation},
		{"username taken", ErrUsernameTaken, http.StatusBadRequest, "USERNAME_TAKEN", KindConflict},
		{"already logged in", ErrAlreadyLoggedIn, http.StatusBadRequest, "ALREADY_LOGGED_IN", KindConflict},
		{"not logged in", ErrNotLoggedIn, http.StatusBadRequest, "NOT_LOGGED_IN", KindState},
		{"login required", ErrLoginRequired, http.StatusUnauthorized, "LOGIN_REQUIRED", KindAuthentication},
		{"bad credentials", ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS", KindAuthentication},
		{"not owner", ErrForbidden, http.StatusForbidden, "FORBIDDEN", KindAuthorization},
		{"wrapped not found", fmt.Errorf("get post 7: %w", ErrPostNotFound), http.StatusNotFound, "NOT_FOUND", KindNotFound},
		{"unknown", errors.New("dial tcp: connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR", KindUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.Code)
			assert.Equal(t, tt.wantKind, KindOf(tt.err))
		})
	}
}

func TestMapErrorToHTTP_HidesUnexpectedMessage(t *testing.T) {
	httpErr := MapErrorToHTTP(errors.New("pq: relation \"user\" does not exist"))
	assert.Equal(t, "internal server error", httpErr.Message)
}

func TestHTTPErrorHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "domain error",
			err:        ErrForbidden,
			wantStatus: http.StatusForbidden,
			wantBody:   `{"error":"you are not the owner of this blog post","code":"FORBIDDEN"}`,
		},
		{
			name:       "echo route not found",
			err:        echo.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Not Found","code":"NOT_FOUND"}`,
		},
		{
			name:       "echo error with response body",
			err:        echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{Error: "bad", Code: "VALIDATION_ERROR"}),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"bad","code":"VALIDATION_ERROR"}`,
		},
		{
			name:       "unexpected error",
			err:        errors.New("secret internals"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"internal server error","code":"INTERNAL_ERROR"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			HTTPErrorHandler(logger)(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
