package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"companyhub/internal/auth"
	apperr "companyhub/internal/errors"
	"companyhub/internal/service"
)

const foundedDateLayout = "2006-01-02"

// CompanyHandler handles company profile endpoints.
type CompanyHandler struct {
	companyService service.CompanyService
	uploadService  service.UploadService
}

// NewCompanyHandler creates a new company handler.
func NewCompanyHandler(companyService service.CompanyService, uploadService service.UploadService) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
		uploadService:  uploadService,
	}
}

// CompanyRegisterRequest represents a company registration payload.
type CompanyRegisterRequest struct {
	CompanyName string            `json:"company_name" validate:"required,min=2,max=255"`
	Address     string            `json:"address" validate:"required,min=5,max=500"`
	City        string            `json:"city" validate:"required,min=2,max=50"`
	State       string            `json:"state" validate:"required,min=2,max=50"`
	Country     string            `json:"country" validate:"required,min=2,max=50"`
	PostalCode  string            `json:"postal_code" validate:"required,min=3,max=20"`
	Industry    string            `json:"industry" validate:"required,min=2,max=100"`
	Website     *string           `json:"website" validate:"omitempty,url"`
	FoundedDate *string           `json:"founded_date" validate:"omitempty,datetime=2006-01-02"`
	Description *string           `json:"description" validate:"omitempty,max=5000"`
	SocialLinks map[string]string `json:"social_links" validate:"omitempty,dive,url"`
}

// CompanyUpdateRequest represents a partial update. Absent keys stay untouched.
type CompanyUpdateRequest struct {
	CompanyName *string           `json:"company_name" validate:"omitempty,min=2,max=255"`
	Address     *string           `json:"address" validate:"omitempty,min=5,max=500"`
	City        *string           `json:"city" validate:"omitempty,min=2,max=50"`
	State       *string           `json:"state" validate:"omitempty,min=2,max=50"`
	Country     *string           `json:"country" validate:"omitempty,min=2,max=50"`
	PostalCode  *string           `json:"postal_code" validate:"omitempty,min=3,max=20"`
	Industry    *string           `json:"industry" validate:"omitempty,min=2,max=100"`
	Website     *string           `json:"website" validate:"omitempty,url"`
	FoundedDate *string           `json:"founded_date" validate:"omitempty,datetime=2006-01-02"`
	Description *string           `json:"description" validate:"omitempty,max=5000"`
	SocialLinks map[string]string `json:"social_links" validate:"omitempty,dive,url"`
}

// OwnerID resolves the authenticated caller from the verified token claims
// stored by the auth middleware.
func OwnerID(c echo.Context) (uuid.UUID, error) {
	claims, ok := c.Get("user").(*auth.Claims)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return id, nil
}

// RegisterCompany godoc
// @Summary Register the caller's company profile
// @Tags company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CompanyRegisterRequest true "Company profile"
// @Success 201 {object} Response
// @Failure 400 {object} ErrorBody
// @Failure 401 {object} ErrorBody
// @Failure 409 {object} ErrorBody
// @Router /company/register [post]
func (h *CompanyHandler) RegisterCompany(c echo.Context) error {
	ownerID, err := OwnerID(c)
	if err != nil {
		return err
	}

	var req CompanyRegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	foundedDate, err := parseFoundedDate(req.FoundedDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid founded_date")
	}

	profile, err := h.companyService.RegisterCompany(c.Request().Context(), ownerID, service.CompanyInput{
		CompanyName: req.CompanyName,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
		PostalCode:  req.PostalCode,
		Industry:    req.Industry,
		Website:     req.Website,
		FoundedDate: foundedDate,
		Description: req.Description,
		SocialLinks: req.SocialLinks,
	})
	if err != nil {
		return apperr.MapErrorToHTTP(err)
	}

	return c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: "Company registered successfully",
		Data:    profile,
	})
}

// GetProfile godoc
// @Summary Get the caller's company profile
// @Tags company
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 401 {object} ErrorBody
// @Failure 404 {object} ErrorBody
// @Router /company/profile [get]
func (h *CompanyHandler) GetProfile(c echo.Context) error {
	ownerID, err := OwnerID(c)
	if err != nil {
		return err
	}

	profile, err := h.companyService.GetProfile(c.Request().Context(), ownerID)
	if err != nil {
		return apperr.MapErrorToHTTP(err)
	}

	return c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    profile,
	})
}

// UpdateProfile godoc
// @Summary Partially update the caller's company profile
// @Tags company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CompanyUpdateRequest true "Fields to update"
// @Success 200 {object} Response
// @Failure 400 {object} ErrorBody
// @Failure 401 {object} ErrorBody
// @Failure 404 {object} ErrorBody
// @Router /company/profile [put]
func (h *CompanyHandler) UpdateProfile(c echo.Context) error {
	ownerID, err := OwnerID(c)
	if err != nil {
		return err
	}

	var req CompanyUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	foundedDate, err := parseFoundedDate(req.FoundedDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid founded_date")
	}

	profile, err := h.companyService.UpdateProfile(c.Request().Context(), ownerID, service.CompanyUpdate{
		CompanyName: req.CompanyName,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
		PostalCode:  req.PostalCode,
		Industry:    req.Industry,
		Website:     req.Website,
		FoundedDate: foundedDate,
		Description: req.Description,
		SocialLinks: req.SocialLinks,
	})
	if err != nil {
		return apperr.MapErrorToHTTP(err)
	}

	return c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Company profile updated successfully",
		Data:    profile,
	})
}

// UploadLogo godoc
// @Summary Upload the company logo
// @Tags company
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param logo formData file true "Logo image, max 2MB"
// @Success 200 {object} Response
// @Failure 400 {object} ErrorBody
// @Failure 404 {object} ErrorBody
// @Router /company/upload-logo [post]
func (h *CompanyHandler) UploadLogo(c echo.Context) error {
	return h.uploadImage(c, service.TargetLogo)
}

// UploadBanner godoc
// @Summary Upload the company banner
// @Tags company
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param banner formData file true "Banner image, max 5MB"
// @Success 200 {object} Response
// @Failure 400 {object} ErrorBody
// @Failure 404 {object} ErrorBody
// @Router /company/upload-banner [post]
func (h *CompanyHandler) UploadBanner(c echo.Context) error {
	return h.uploadImage(c, service.TargetBanner)
}

func (h *CompanyHandler) uploadImage(c echo.Context, target string) error {
	ownerID, err := OwnerID(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile(target)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file field: "+target)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read uploaded file")
	}
	defer src.Close()

	url, profile, err := h.uploadService.UploadImage(
		c.Request().Context(), ownerID, target, fileHeader.Filename, fileHeader.Size, src)
	if err != nil {
		return apperr.MapErrorToHTTP(err)
	}

	return c.JSON(http.StatusOK, Response{
		Success: true,
		Message: "Image uploaded successfully",
		Data: map[string]interface{}{
			"url":     url,
			"company": profile,
		},
	})
}

func parseFoundedDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(foundedDateLayout, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
