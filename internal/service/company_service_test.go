package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"companyhub/internal/cache"
	apperr "companyhub/internal/errors"
	"companyhub/internal/model"
)

// MockCompanyRepository is a mock implementation of CompanyRepository.
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) Create(ctx context.Context, profile *model.CompanyProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockCompanyRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) (*model.CompanyProfile, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CompanyProfile), args.Error(1)
}

func (m *MockCompanyRepository) Update(ctx context.Context, ownerID uuid.UUID, updates map[string]interface{}) (*model.CompanyProfile, error) {
	args := m.Called(ctx, ownerID, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CompanyProfile), args.Error(1)
}

func (m *MockCompanyRepository) UpdateImageURL(ctx context.Context, ownerID uuid.UUID, field, url string) (*model.CompanyProfile, error) {
	args := m.Called(ctx, ownerID, field, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CompanyProfile), args.Error(1)
}

func validCompanyInput() CompanyInput {
	return CompanyInput{
		CompanyName: "Acme Widgets",
		Address:     "1 Infinite Loop",
		City:        "Springfield",
		State:       "IL",
		Country:     "US",
		PostalCode:  "62701",
		Industry:    "Manufacturing",
	}
}

func newTestCompanyService(repo *MockCompanyRepository) CompanyService {
	return NewCompanyService(repo, cache.NewWithClient(nil))
}

func TestCompanyService_RegisterCompany(t *testing.T) {
	ownerID := uuid.New()

	tests := []struct {
		name          string
		input         CompanyInput
		setupMock     func(*MockCompanyRepository)
		expectedError error
	}{
		{
			name:  "successful registration",
			input: validCompanyInput(),
			setupMock: func(m *MockCompanyRepository) {
				m.On("FindByOwnerID", mock.Anything, ownerID).Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.CompanyProfile")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "profile already exists",
			input: validCompanyInput(),
			setupMock: func(m *MockCompanyRepository) {
				m.On("FindByOwnerID", mock.Anything, ownerID).
					Return(&model.CompanyProfile{OwnerID: ownerID}, nil)
			},
			expectedError: apperr.ErrProfileExists,
		},
		{
			name:  "concurrent registration loses on the unique index",
			input: validCompanyInput(),
			setupMock: func(m *MockCompanyRepository) {
				m.On("FindByOwnerID", mock.Anything, ownerID).Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.CompanyProfile")).
					Return(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry for key 'idx_company_profiles_owner_id'"})
			},
			expectedError: apperr.ErrProfileExists,
		},
		{
			name: "required field empty after sanitization",
			input: func() CompanyInput {
				in := validCompanyInput()
				in.CompanyName = "<b></b>"
				return in
			}(),
			setupMock: func(m *MockCompanyRepository) {
				m.On("FindByOwnerID", mock.Anything, ownerID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperr.ErrRequiredFieldEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockCompanyRepository)
			tt.setupMock(mockRepo)

			svc := newTestCompanyService(mockRepo)
			profile, err := svc.RegisterCompany(context.Background(), ownerID, tt.input)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, profile)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, profile)
				assert.Equal(t, ownerID, profile.OwnerID)
				assert.Equal(t, "Acme Widgets", profile.CompanyName)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCompanyService_RegisterCompany_FoundedDateInFuture(t *testing.T) {
	ownerID := uuid.New()
	mockRepo := new(MockCompanyRepository)
	mockRepo.On("FindByOwnerID", mock.Anything, ownerID).Return(nil, gorm.ErrRecordNotFound)

	future := time.Now().Add(48 * time.Hour)
	input := validCompanyInput()
	input.FoundedDate = &future

	svc := newTestCompanyService(mockRepo)
	profile, err := svc.RegisterCompany(context.Background(), ownerID, input)

	assert.Equal(t, apperr.ErrFoundedDateInFuture, err)
	assert.Nil(t, profile)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProfileCacheKey(t *testing.T) {
	ownerID := uuid.New()
	assert.Equal(t, "company:"+ownerID.String(), profileCacheKey(ownerID))
}

func TestCompanyService_GetProfile(t *testing.T) {
	ownerID := uuid.New()

	t.Run("returns existing profile", func(t *testing.T) {
		mockRepo := new(MockCompanyRepository)
		mockRepo.On("FindByOwnerID", mock.Anything, ownerID).
			Return(&model.CompanyProfile{OwnerID: ownerID, CompanyName: "Acme Widgets"}, nil)

		svc := newTestCompanyService(mockRepo)
		profile, err := svc.GetProfile(context.Background(), ownerID)

		assert.NoError(t, err)
		assert.Equal(t, "Acme Widgets", profile.CompanyName)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockCompanyRepository)
		mockRepo.On("FindByOwnerID", mock.Anything, ownerID).Return(nil, gorm.ErrRecordNotFound)

		svc := newTestCompanyService(mockRepo)
		profile, err := svc.GetProfile(context.Background(), ownerID)

		assert.Equal(t, apperr.ErrProfileNotFound, err)
		assert.Nil(t, profile)
	})
}

func TestCompanyService_UpdateProfile(t *testing.T) {
	ownerID := uuid.New()

	t.Run("empty update is rejected before the store", func(t *testing.T) {
		mockRepo := new(MockCompanyRepository)

		svc := newTestCompanyService(mockRepo)
		profile, err := svc.UpdateProfile(context.Background(), ownerID, CompanyUpdate{})

		assert.Equal(t, apperr.ErrNoFieldsToUpdate, err)
		assert.Nil(t, profile)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("only supplied columns reach the store", func(t *testing.T) {
		mockRepo := new(MockCompanyRepository)
		city := "  Shelbyville <i>x</i> "
		website := "https://acme.example.com"

		mockRepo.On("Update", mock.Anything, ownerID, map[string]interface{}{
			"city":    "Shelbyville x",
			"website": website,
		}).Return(&model.CompanyProfile{OwnerID: ownerID, City: "Shelbyville x"}, nil)

		svc := newTestCompanyService(mockRepo)
		profile, err := svc.UpdateProfile(context.Background(), ownerID, CompanyUpdate{
			City:    &city,
			Website: &website,
		})

		assert.NoError(t, err)
		assert.Equal(t, "Shelbyville x", profile.City)
		mockRepo.AssertExpectations(t)
	})

	t.Run("website query string survives the update", func(t *testing.T) {
		mockRepo := new(MockCompanyRepository)
		website := "https://example.com/page?a=1&b=2"

		mockRepo.On("Update", mock.Anything, ownerID, map[string]interface{}{
			"website": website,
		}).Return(&model.CompanyProfile{OwnerID: ownerID, Website: &website}, nil)

		svc := newTestCompanyService(mockRepo)
		profile, err := svc.UpdateProfile(context.Background(), ownerID, CompanyUpdate{Website: &website})

		assert.NoError(t, err)
		assert.Equal(t, website, *profile.Website)
		mockRepo.AssertExpectations(t)
	})

	t.Run("empty website clears the field", func(t *testing.T) {
		mockRepo := new(MockCompanyRepository)
		empty := "  "

		mockRepo.On("Update", mock.Anything, ownerID, map[string]interface{}{
			"website": nil,
		}).Return(&model.CompanyProfile{OwnerID: ownerID}, nil)

		svc := newTestCompanyService(mockRepo)
		profile, err := svc.UpdateProfile(context.Background(), ownerID, CompanyUpdate{Website: &empty})

		assert.NoError(t, err)
		assert.Nil(t, profile.Website)
		mockRepo.AssertExpectations(t)
	})

	t.Run("required field cannot be blanked", func(t *testing.T) {
		mockRepo := new(MockCompanyRepository)
		empty := "   "

		svc := newTestCompanyService(mockRepo)
		_, err := svc.UpdateProfile(context.Background(), ownerID, CompanyUpdate{CompanyName: &empty})

		assert.Equal(t, apperr.ErrRequiredFieldEmpty, err)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown owner", func(t *testing.T) {
		mockRepo := new(MockCompanyRepository)
		name := "Acme Widgets"
		mockRepo.On("Update", mock.Anything, ownerID, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

		svc := newTestCompanyService(mockRepo)
		_, err := svc.UpdateProfile(context.Background(), ownerID, CompanyUpdate{CompanyName: &name})

		assert.Equal(t, apperr.ErrProfileNotFound, err)
	})
}
