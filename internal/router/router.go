package router

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"feedbackhub/internal/auth"
	"feedbackhub/internal/errors"
	"feedbackhub/internal/handler"
	"feedbackhub/internal/logging"
	"feedbackhub/internal/metrics"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	logger zerolog.Logger,
	jwtService *auth.JWTService,
	sessions *auth.SessionManager,
	m *metrics.Metrics,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	feedbackHandler *handler.FeedbackHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(logging.RequestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(auth.SessionCookie(jwtService))
	e.Use(auth.Identify(sessions, logger))

	// Add validator
	e.Validator = NewCustomValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	if m != nil {
		e.GET("/metrics", echo.WrapHandler(m.Handler()))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/register")
	})

	// Public routes
	e.GET("/register", authHandler.RegisterForm)
	e.POST("/register", authHandler.Register)
	e.GET("/login", authHandler.LoginForm)
	e.POST("/login", authHandler.Login)

	// Routes below need a live session
	secured := auth.RequireAuthenticated()

	e.GET("/logout", authHandler.Logout, secured)

	e.GET("/users/:username", userHandler.GetUser, secured)
	e.POST("/users/:username/delete", userHandler.DeleteUser, secured)

	e.GET("/users/:username/feedback/add", feedbackHandler.AddForm, secured)
	e.POST("/users/:username/feedback/add", feedbackHandler.Add, secured)
	e.GET("/feedback/:id/update", feedbackHandler.UpdateForm, secured)
	e.POST("/feedback/:id/update", feedbackHandler.Update, secured)
	e.POST("/feedback/:id/delete", feedbackHandler.Delete, secured)
}

// messageProvider is implemented by request structs that carry their own
// validation messages keyed by "field.tag".
type messageProvider interface {
	ValidationMessages() map[string]string
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator reports field names by their json tag.
func NewCustomValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface. Failures come back as
// *errors.ValidationError with one message per field.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return err
	}

	var messages map[string]string
	if mp, ok := i.(messageProvider); ok {
		messages = mp.ValidationMessages()
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
			fields[fe.Field()] = msg
			continue
		}
		fields[fe.Field()] = defaultMessage(fe)
	}
	return errors.NewValidationError(fields)
}

func defaultMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Must be at most %s characters.", fe.Param())
	case "email":
		return "Please enter a valid email."
	default:
		return "Invalid value."
	}
}
