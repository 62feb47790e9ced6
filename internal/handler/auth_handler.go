package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"blogapi/internal/auth"
	"blogapi/internal/errors"
	"blogapi/internal/middleware"
	"blogapi/internal/service"
)

// AuthHandler handles registration and session endpoints.
type AuthHandler struct {
	credentials service.CredentialService
	sessions    *auth.SessionManager
	cookie      middleware.SessionCookie
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(credentials service.CredentialService, sessions *auth.SessionManager, cookie middleware.SessionCookie) *AuthHandler {
	return &AuthHandler{
		credentials: credentials,
		sessions:    sessions,
		cookie:      cookie,
	}
}

// RegisterRequest represents a user registration request. Passwords are
// further limited to 72 bytes when hashed.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,max=72"`
}

// LoginRequest represents a login request. Lengths are not checked here so
// that any unknown username is answered as bad credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// MessageResponse is the body of successful mutations.
type MessageResponse struct {
	Message string `json:"message"`
}

// WhoAmIResponse describes the user bound to the session. UserID is null
// for anonymous sessions.
type WhoAmIResponse struct {
	UserID   *uint  `json:"user_id"`
	Username string `json:"username,omitempty"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.credentials.Register(c.Request().Context(), req.Username, req.Password); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "user registered successfully"})
}

// Login godoc
// @Summary Log in and bind the session to the user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	if sess.Authenticated() {
		return errors.ErrAlreadyLoggedIn
	}

	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	userID, ok, err := h.credentials.Verify(ctx, req.Username, req.Password)
	if err != nil {
		return err
	}
	if !ok {
		return errors.ErrInvalidCredentials
	}

	sess, err = h.sessions.Login(ctx, sess, userID)
	if err != nil {
		return err
	}
	h.cookie.Write(c, sess.Token, h.sessions.TTL())
	middleware.SetSession(c, sess)

	return c.JSON(http.StatusOK, MessageResponse{Message: "logged in successfully"})
}

// Logout godoc
// @Summary Log out of the current session
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	if err := h.sessions.Logout(c.Request().Context(), sess); err != nil {
		return err
	}
	h.cookie.Clear(c)
	middleware.SetSession(c, auth.Session{})

	return c.JSON(http.StatusOK, MessageResponse{Message: "logged out successfully"})
}

// WhoAmI godoc
// @Summary Report the user bound to the current session
// @Tags auth
// @Produce json
// @Success 200 {object} WhoAmIResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /check_login [get]
// @Router /current_user [get]
func (h *AuthHandler) WhoAmI(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	if !sess.Authenticated() {
		return c.JSON(http.StatusOK, WhoAmIResponse{})
	}

	user, err := h.credentials.GetUser(c.Request().Context(), sess.UserID)
	if err != nil {
		if stderrors.Is(err, service.ErrUserNotFound) {
			return c.JSON(http.StatusOK, WhoAmIResponse{})
		}
		return err
	}

	return c.JSON(http.StatusOK, WhoAmIResponse{UserID: &user.ID, Username: user.Username})
}
