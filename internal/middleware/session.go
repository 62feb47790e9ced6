// Package middleware holds Echo middleware specific to the blog API.
package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"blogapi/internal/auth"
	"blogapi/internal/errors"
)

const sessionKey = "session"

// SessionCookie describes the cookie carrying the session token.
type SessionCookie struct {
	Name   string
	Secure bool
}

// Write sets the cookie to token for ttl.
func (sc SessionCookie) Write(c echo.Context, token string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     sc.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the cookie on the client.
func (sc SessionCookie) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sc.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Session resolves the request's session cookie and stores the result in
// the Echo context. Requests without a valid cookie get an anonymous session.
func Session(manager *auth.SessionManager, cookie SessionCookie) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var token string
			if ck, err := c.Cookie(cookie.Name); err == nil {
				token = ck.Value
			}
			sess, err := manager.Resolve(c.Request().Context(), token)
			if err != nil {
				return err
			}
			SetSession(c, sess)
			return next(c)
		}
	}
}

// RequireLogin rejects anonymous sessions with ErrLoginRequired.
func RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !CurrentSession(c).Authenticated() {
			return errors.ErrLoginRequired
		}
		return next(c)
	}
}

// SetSession replaces the session seen by later handlers of this request.
func SetSession(c echo.Context, sess auth.Session) {
	c.Set(sessionKey, sess)
}

// CurrentSession returns the session of the request, anonymous if none was resolved.
func CurrentSession(c echo.Context) auth.Session {
	sess, _ := c.Get(sessionKey).(auth.Session)
	return sess
}
