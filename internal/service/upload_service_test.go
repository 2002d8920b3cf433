package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"companyhub/internal/cache"
	apperr "companyhub/internal/errors"
	"companyhub/internal/model"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// fakeUploader records what reached object storage.
type fakeUploader struct {
	key         string
	contentType string
	calls       int
}

func (f *fakeUploader) Upload(_ context.Context, key, contentType string, body io.Reader) (string, error) {
	f.key = key
	f.contentType = contentType
	f.calls++
	_, _ = io.Copy(io.Discard, body)
	return "https://cdn.example.com/" + key, nil
}

func TestUploadService_UploadImage(t *testing.T) {
	ownerID := uuid.New()
	profileID := uuid.New()
	profile := &model.CompanyProfile{ID: profileID, OwnerID: ownerID}

	t.Run("stores logo under a deterministic key", func(t *testing.T) {
		mockRepo := new(MockCompanyRepository)
		uploader := &fakeUploader{}
		wantKey := fmt.Sprintf("companies/%s/logo", profileID)
		wantURL := "https://cdn.example.com/" + wantKey

		mockRepo.On("FindByOwnerID", mock.Anything, ownerID).Return(profile, nil)
		mockRepo.On("UpdateImageURL", mock.Anything, ownerID, "logo_url", wantURL).
			Return(&model.CompanyProfile{ID: profileID, OwnerID: ownerID, LogoURL: &wantURL}, nil)

		svc := NewUploadService(mockRepo, uploader, cache.NewWithClient(nil))
		url, updated, err := svc.UploadImage(context.Background(), ownerID, TargetLogo,
			"logo.png", int64(len(pngMagic)), bytes.NewReader(pngMagic))

		assert.NoError(t, err)
		assert.Equal(t, wantURL, url)
		assert.Equal(t, wantKey, uploader.key)
		assert.Equal(t, "image/png", uploader.contentType)
		assert.NotNil(t, updated.LogoURL)
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects non-image content", func(t *testing.T) {
		mockRepo := new(MockCompanyRepository)
		uploader := &fakeUploader{}
		payload := []byte("#!/bin/sh\necho not an image\n")

		mockRepo.On("FindByOwnerID", mock.Anything, ownerID).Return(profile, nil)

		svc := NewUploadService(mockRepo, uploader, cache.NewWithClient(nil))
		_, _, err := svc.UploadImage(context.Background(), ownerID, TargetLogo,
			"script.sh", int64(len(payload)), bytes.NewReader(payload))

		assert.Equal(t, apperr.ErrNotImage, err)
		assert.Zero(t, uploader.calls)
		mockRepo.AssertNotCalled(t, "UpdateImageURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects oversize logo before reading", func(t *testing.T) {
		mockRepo := new(MockCompanyRepository)
		uploader := &fakeUploader{}

		svc := NewUploadService(mockRepo, uploader, cache.NewWithClient(nil))
		_, _, err := svc.UploadImage(context.Background(), ownerID, TargetLogo,
			"big.png", LogoMaxBytes+1, bytes.NewReader(pngMagic))

		assert.Equal(t, apperr.ErrFileTooLarge, err)
		assert.Zero(t, uploader.calls)
	})

	t.Run("banner allows more than the logo limit", func(t *testing.T) {
		mockRepo := new(MockCompanyRepository)
		uploader := &fakeUploader{}

		// A padded PNG bigger than the logo cap but under the banner cap.
		payload := append(append([]byte{}, pngMagic...), make([]byte, LogoMaxBytes)...)
		wantURL := fmt.Sprintf("https://cdn.example.com/companies/%s/banner", profileID)

		mockRepo.On("FindByOwnerID", mock.Anything, ownerID).Return(profile, nil)
		mockRepo.On("UpdateImageURL", mock.Anything, ownerID, "banner_url", wantURL).
			Return(&model.CompanyProfile{ID: profileID, OwnerID: ownerID, BannerURL: &wantURL}, nil)

		svc := NewUploadService(mockRepo, uploader, cache.NewWithClient(nil))
		url, _, err := svc.UploadImage(context.Background(), ownerID, TargetBanner,
			"banner.png", int64(len(payload)), bytes.NewReader(payload))

		assert.NoError(t, err)
		assert.Equal(t, wantURL, url)
	})

	t.Run("no profile yet", func(t *testing.T) {
		mockRepo := new(MockCompanyRepository)
		uploader := &fakeUploader{}

		mockRepo.On("FindByOwnerID", mock.Anything, ownerID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewUploadService(mockRepo, uploader, cache.NewWithClient(nil))
		_, _, err := svc.UploadImage(context.Background(), ownerID, TargetLogo,
			"logo.png", int64(len(pngMagic)), bytes.NewReader(pngMagic))

		assert.Equal(t, apperr.ErrProfileNotFound, err)
		assert.Zero(t, uploader.calls)
	})
}
