package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperr "companyhub/internal/errors"
	"companyhub/internal/model"
	"companyhub/internal/service"
)

// AuthHandler handles authentication and verification endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,password"`
	FullName string `json:"full_name" validate:"required,min=2,max=255"`
	Gender   string `json:"gender" validate:"required,oneof=m f o"`
	MobileNo string `json:"mobile_no" validate:"required,mobile"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VerifyMobileRequest carries a one-time code submission.
type VerifyMobileRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
	OTP    string `json:"otp" validate:"required,len=6,numeric"`
}

// RequestOTPRequest asks for a fresh one-time code.
type RequestOTPRequest struct {
	UserID string `json:"userId" validate:"required,uuid"`
}

// UserPayload is the user shape returned to clients. Never carries the
// password hash.
type UserPayload struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	FullName         string `json:"full_name"`
	Gender           string `json:"gender"`
	MobileNo         string `json:"mobile_no"`
	IsMobileVerified bool   `json:"is_mobile_verified"`
	IsEmailVerified  bool   `json:"is_email_verified"`
}

func toUserPayload(u *model.User) UserPayload {
	return UserPayload{
		ID:               u.ID.String(),
		Email:            u.Email,
		FullName:         u.FullName,
		Gender:           u.Gender,
		MobileNo:         u.MobileNo,
		IsMobileVerified: u.IsMobileVerified,
		IsEmailVerified:  u.IsEmailVerified,
	}
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} Response
// @Failure 400 {object} ErrorBody
// @Failure 409 {object} ErrorBody
// @Failure 500 {object} ErrorBody
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Gender:   req.Gender,
		MobileNo: req.MobileNo,
	})
	if err != nil {
		return apperr.MapErrorToHTTP(err)
	}

	return c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: "User registered successfully. Please verify your mobile number and email.",
		Data: map[string]interface{}{
			"user_id":   user.ID.String(),
			"email":     user.Email,
			"full_name": user.FullName,
		},
	})
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} Response
// @Failure 400 {object} ErrorBody
// @Failure 401 {object} ErrorBody
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return apperr.MapErrorToHTTP(err)
	}

	return c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Login successful",
		Data: map[string]interface{}{
			"token": token,
			"user":  toUserPayload(user),
		},
	})
}

// VerifyEmail godoc
// @Summary Mark a user's email address as verified
// @Tags auth
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} Response
// @Failure 404 {object} ErrorBody
// @Router /auth/verify-email/{userId} [get]
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	if err := h.authService.VerifyEmail(c.Request().Context(), userID); err != nil {
		return apperr.MapErrorToHTTP(err)
	}

	return c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Email verified successfully",
	})
}

// VerifyMobile godoc
// @Summary Verify a mobile number with a one-time code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyMobileRequest true "Code submission"
// @Success 200 {object} Response
// @Failure 400 {object} ErrorBody
// @Failure 404 {object} ErrorBody
// @Failure 429 {object} ErrorBody
// @Router /auth/verify-mobile [post]
func (h *AuthHandler) VerifyMobile(c echo.Context) error {
	var req VerifyMobileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	if err := h.authService.VerifyMobile(c.Request().Context(), userID, req.OTP); err != nil {
		return apperr.MapErrorToHTTP(err)
	}

	return c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Mobile number verified successfully",
	})
}

// RequestOTP godoc
// @Summary Issue a fresh mobile verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RequestOTPRequest true "User"
// @Success 200 {object} Response
// @Failure 404 {object} ErrorBody
// @Router /auth/request-otp [post]
func (h *AuthHandler) RequestOTP(c echo.Context) error {
	var req RequestOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	if err := h.authService.RequestOTP(c.Request().Context(), userID); err != nil {
		return apperr.MapErrorToHTTP(err)
	}

	return c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Verification code sent",
	})
}
