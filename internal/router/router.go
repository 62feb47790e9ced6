package router

import (
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"blogapi/internal/auth"
	"blogapi/internal/config"
	"blogapi/internal/errors"
	"blogapi/internal/handler"
	"blogapi/internal/logging"
	"blogapi/internal/middleware"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	logger *slog.Logger,
	sessions *auth.SessionManager,
	authHandler *handler.AuthHandler,
	postHandler *handler.PostHandler,
) {
	e.HideBanner = true
	e.HTTPErrorHandler = errors.HTTPErrorHandler(logger)
	e.Validator = NewValidator()

	e.Use(echomw.RequestID())
	e.Use(logging.RequestLogger(logger))
	e.Use(echomw.Recover())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	cookie := middleware.SessionCookie{Name: cfg.SessionCookieName, Secure: cfg.SessionSecure}
	api := e.Group("/api", middleware.Session(sessions, cookie))

	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.GET("/logout", authHandler.Logout)
	api.GET("/check_login", authHandler.WhoAmI)
	api.GET("/current_user", authHandler.WhoAmI)

	api.GET("/blog", postHandler.List)
	api.POST("/blog", postHandler.Create, middleware.RequireLogin)
	api.GET("/blog/:id", postHandler.Get)
	api.PATCH("/blog/:id", postHandler.Update, middleware.RequireLogin)
	api.DELETE("/blog/:id", postHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns a validator reporting fields by their JSON names.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
