package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"companyhub/internal/model"
)

// CompanyRepository defines company profile persistence operations.
type CompanyRepository interface {
	Create(ctx context.Context, profile *model.CompanyProfile) error
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) (*model.CompanyProfile, error)
	Update(ctx context.Context, ownerID uuid.UUID, updates map[string]interface{}) (*model.CompanyProfile, error)
	UpdateImageURL(ctx context.Context, ownerID uuid.UUID, field, url string) (*model.CompanyProfile, error)
}

type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository builds a GORM-backed repository.
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, profile *model.CompanyProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *companyRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) (*model.CompanyProfile, error) {
	var profile model.CompanyProfile
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// Update applies the given column set to the owner's profile and returns the
// merged record. The service layer enumerates permitted columns; id and
// owner_id never appear in updates.
func (r *companyRepository) Update(ctx context.Context, ownerID uuid.UUID, updates map[string]interface{}) (*model.CompanyProfile, error) {
	res := r.db.WithContext(ctx).Model(&model.CompanyProfile{}).
		Where("owner_id = ?", ownerID).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.CompanyProfile{}).Where("owner_id = ?", ownerID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindByOwnerID(ctx, ownerID)
}

// UpdateImageURL sets a single image column, used only by the upload path.
func (r *companyRepository) UpdateImageURL(ctx context.Context, ownerID uuid.UUID, field, url string) (*model.CompanyProfile, error) {
	return r.Update(ctx, ownerID, map[string]interface{}{field: url})
}
