package router

import (
	"net/http"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nyaruka/phonenumbers"
	echoSwagger "github.com/swaggo/echo-swagger"

	"companyhub/internal/auth"
	"companyhub/internal/config"
	"companyhub/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	companyHandler *handler.CompanyHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = NewValidator()
	e.HTTPErrorHandler = NewErrorHandler(cfg)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, handler.Response{Success: true, Message: "ok"})
	})

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/verify-email/:userId", authHandler.VerifyEmail)
	api.POST("/auth/verify-mobile", authHandler.VerifyMobile)
	api.POST("/auth/request-otp", authHandler.RequestOTP)

	// Company routes require a valid session token
	company := api.Group("/company", echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.Verify(token)
		},
	}))

	company.POST("/register", companyHandler.RegisterCompany)
	company.GET("/profile", companyHandler.GetProfile)
	company.PUT("/profile", companyHandler.UpdateProfile)
	company.POST("/upload-logo", companyHandler.UploadLogo)
	company.POST("/upload-banner", companyHandler.UploadBanner)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds the request validator with the custom rules the API uses.
func NewValidator() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report field names as they appear on the wire.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Passwords need at least one lower, upper, digit and special character.
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		var lower, upper, digit, special bool
		for _, r := range fl.Field().String() {
			switch {
			case unicode.IsLower(r):
				lower = true
			case unicode.IsUpper(r):
				upper = true
			case unicode.IsDigit(r):
				digit = true
			case unicode.IsPunct(r) || unicode.IsSymbol(r):
				special = true
			}
		}
		return lower && upper && digit && special
	})

	// Mobile numbers must be valid E.164.
	_ = v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		parsed, err := phonenumbers.Parse(fl.Field().String(), "")
		if err != nil {
			return false
		}
		return phonenumbers.IsValidNumber(parsed)
	})

	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
