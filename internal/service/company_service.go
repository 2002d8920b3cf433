package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"companyhub/internal/cache"
	apperr "companyhub/internal/errors"
	"companyhub/internal/model"
	"companyhub/internal/repository"
	"companyhub/internal/sanitize"
)

const profileCacheTTL = 5 * time.Minute

// CompanyInput carries the full payload for company registration.
type CompanyInput struct {
	CompanyName string
	Address     string
	City        string
	State       string
	Country     string
	PostalCode  string
	Industry    string
	Website     *string
	FoundedDate *time.Time
	Description *string
	SocialLinks map[string]string
}

// CompanyUpdate enumerates the fields a partial update may touch. Nil means
// untouched; id and owner_id are not representable here on purpose.
type CompanyUpdate struct {
	CompanyName *string
	Address     *string
	City        *string
	State       *string
	Country     *string
	PostalCode  *string
	Industry    *string
	Website     *string
	FoundedDate *time.Time
	Description *string
	SocialLinks map[string]string
}

// CompanyService handles company profile operations.
type CompanyService interface {
	RegisterCompany(ctx context.Context, ownerID uuid.UUID, input CompanyInput) (*model.CompanyProfile, error)
	GetProfile(ctx context.Context, ownerID uuid.UUID) (*model.CompanyProfile, error)
	UpdateProfile(ctx context.Context, ownerID uuid.UUID, update CompanyUpdate) (*model.CompanyProfile, error)
}

type companyService struct {
	repo  repository.CompanyRepository
	cache *cache.Client
}

// NewCompanyService creates a new company profile service.
func NewCompanyService(repo repository.CompanyRepository, cacheClient *cache.Client) CompanyService {
	return &companyService{
		repo:  repo,
		cache: cacheClient,
	}
}

// profileCacheKey is shared by every path that reads or invalidates the
// cached profile.
func profileCacheKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("company:%s", ownerID.String())
}

// RegisterCompany inserts the owner's profile. Each user owns at most one.
func (s *companyService) RegisterCompany(ctx context.Context, ownerID uuid.UUID, input CompanyInput) (*model.CompanyProfile, error) {
	existing, err := s.repo.FindByOwnerID(ctx, ownerID)
	if err == nil && existing != nil {
		return nil, apperr.ErrProfileExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check profile existence: %w", err)
	}

	profile := &model.CompanyProfile{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		CompanyName: sanitize.Text(input.CompanyName),
		Address:     sanitize.Text(input.Address),
		City:        sanitize.Text(input.City),
		State:       sanitize.Text(input.State),
		Country:     sanitize.Text(input.Country),
		PostalCode:  sanitize.Text(input.PostalCode),
		Industry:    sanitize.Text(input.Industry),
		Website:     input.Website,
		FoundedDate: input.FoundedDate,
		Description: sanitize.TextPtr(input.Description),
		SocialLinks: input.SocialLinks,
	}

	if err := validateRequired(profile); err != nil {
		return nil, err
	}
	if err := validateFoundedDate(input.FoundedDate); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, profile); err != nil {
		if apperr.IsDuplicateEntry(err) {
			// Two concurrent registrations for the same owner; the store
			// rejects the second.
			return nil, apperr.ErrProfileExists
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}

	return profile, nil
}

// GetProfile retrieves the owner's profile with caching.
func (s *companyService) GetProfile(ctx context.Context, ownerID uuid.UUID) (*model.CompanyProfile, error) {
	// Try cache first
	if data, _ := s.cache.Get(ctx, profileCacheKey(ownerID)); data != nil {
		var cached model.CompanyProfile
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	profile, err := s.repo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}

	// Cache the result
	if payload, err := json.Marshal(profile); err == nil {
		_ = s.cache.Set(ctx, profileCacheKey(ownerID), payload, profileCacheTTL)
	}

	return profile, nil
}

// UpdateProfile merges only the supplied fields into the owner's profile.
func (s *companyService) UpdateProfile(ctx context.Context, ownerID uuid.UUID, update CompanyUpdate) (*model.CompanyProfile, error) {
	updates := map[string]interface{}{}

	setText := func(column string, value *string, required bool) error {
		if value == nil {
			return nil
		}
		clean := sanitize.Text(*value)
		if required && clean == "" {
			return apperr.ErrRequiredFieldEmpty
		}
		updates[column] = clean
		return nil
	}

	for _, f := range []struct {
		column   string
		value    *string
		required bool
	}{
		{"company_name", update.CompanyName, true},
		{"address", update.Address, true},
		{"city", update.City, true},
		{"state", update.State, true},
		{"country", update.Country, true},
		{"postal_code", update.PostalCode, true},
		{"industry", update.Industry, true},
		{"description", update.Description, false},
	} {
		if err := setText(f.column, f.value, f.required); err != nil {
			return nil, err
		}
	}

	if update.Website != nil {
		// URL-shaped, already validated; HTML-escaping would corrupt query
		// strings. Empty clears the field.
		if trimmed := strings.TrimSpace(*update.Website); trimmed == "" {
			updates["website"] = nil
		} else {
			updates["website"] = trimmed
		}
	}
	if update.FoundedDate != nil {
		if err := validateFoundedDate(update.FoundedDate); err != nil {
			return nil, err
		}
		updates["founded_date"] = *update.FoundedDate
	}
	if update.SocialLinks != nil {
		payload, err := json.Marshal(update.SocialLinks)
		if err != nil {
			return nil, fmt.Errorf("marshal social links: %w", err)
		}
		updates["social_links"] = string(payload)
	}

	if len(updates) == 0 {
		return nil, apperr.ErrNoFieldsToUpdate
	}

	profile, err := s.repo.Update(ctx, ownerID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrProfileNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	_ = s.cache.Delete(ctx, profileCacheKey(ownerID))

	return profile, nil
}

func validateRequired(p *model.CompanyProfile) error {
	for _, v := range []string{
		p.CompanyName, p.Address, p.City, p.State, p.Country, p.PostalCode, p.Industry,
	} {
		if v == "" {
			return apperr.ErrRequiredFieldEmpty
		}
	}
	return nil
}

func validateFoundedDate(d *time.Time) error {
	if d != nil && d.After(time.Now()) {
		return apperr.ErrFoundedDateInFuture
	}
	return nil
}
