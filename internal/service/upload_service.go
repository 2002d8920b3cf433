package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"companyhub/internal/cache"
	apperr "companyhub/internal/errors"
	"companyhub/internal/model"
	"companyhub/internal/repository"
	"companyhub/internal/storage"
)

// Upload targets and their size policies.
const (
	TargetLogo   = "logo"
	TargetBanner = "banner"

	LogoMaxBytes   = 2 << 20
	BannerMaxBytes = 5 << 20
)

// UploadService validates uploaded images and forwards them to object storage.
type UploadService interface {
	UploadImage(ctx context.Context, ownerID uuid.UUID, target, filename string, size int64, r io.Reader) (string, *model.CompanyProfile, error)
}

type uploadService struct {
	companyRepo repository.CompanyRepository
	uploader    storage.Uploader
	cache       *cache.Client
}

// NewUploadService creates a new asset upload service.
func NewUploadService(companyRepo repository.CompanyRepository, uploader storage.Uploader, cacheClient *cache.Client) UploadService {
	return &uploadService{
		companyRepo: companyRepo,
		uploader:    uploader,
		cache:       cacheClient,
	}
}

// UploadImage stores an image for the owner's profile and records its URL.
// The object key is derived from the profile id so repeated uploads overwrite
// the previous asset instead of accumulating.
func (s *uploadService) UploadImage(ctx context.Context, ownerID uuid.UUID, target, filename string, size int64, r io.Reader) (string, *model.CompanyProfile, error) {
	limit, field, err := targetPolicy(target)
	if err != nil {
		return "", nil, err
	}

	if size > limit {
		return "", nil, apperr.ErrFileTooLarge
	}

	profile, err := s.companyRepo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperr.ErrProfileNotFound
		}
		return "", nil, fmt.Errorf("find profile: %w", err)
	}

	// Size from the multipart header is client-reported; re-enforce while reading.
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return "", nil, apperr.ErrFileTooLarge
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return "", nil, apperr.ErrNotImage
	}

	key := fmt.Sprintf("companies/%s/%s", profile.ID, target)
	url, err := s.uploader.Upload(ctx, key, mime.String(), bytes.NewReader(data))
	if err != nil {
		return "", nil, fmt.Errorf("upload %s: %w", target, err)
	}

	updated, err := s.companyRepo.UpdateImageURL(ctx, ownerID, field, url)
	if err != nil {
		return "", nil, fmt.Errorf("record %s url: %w", target, err)
	}

	_ = s.cache.Delete(ctx, profileCacheKey(ownerID))

	return url, updated, nil
}

func targetPolicy(target string) (limit int64, field string, err error) {
	switch target {
	case TargetLogo:
		return LogoMaxBytes, model.ImageFieldLogo, nil
	case TargetBanner:
		return BannerMaxBytes, model.ImageFieldBanner, nil
	default:
		return 0, "", fmt.Errorf("unknown upload target %q", target)
	}
}
