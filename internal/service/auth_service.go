package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"companyhub/internal/auth"
	apperr "companyhub/internal/errors"
	"companyhub/internal/identity"
	"companyhub/internal/model"
	"companyhub/internal/repository"
	"companyhub/internal/sanitize"
)

const bcryptCost = 12

const mirrorTimeout = 10 * time.Second

// RegisterInput carries the validated registration payload.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Gender   string
	MobileNo string
}

// OTPSender delivers a one-time code to a mobile number.
type OTPSender interface {
	SendOTP(ctx context.Context, mobileNo, code string) error
}

// LogOTPSender writes codes to the application log. Stands in until an SMS
// gateway is wired; TODO(sms): replace once a delivery provider is chosen.
type LogOTPSender struct{}

// SendOTP implements OTPSender.
func (LogOTPSender) SendOTP(_ context.Context, mobileNo, code string) error {
	log.Infof("OTP for %s: %s", mobileNo, code)
	return nil
}

// AuthService handles registration, login and the verification workflow.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	VerifyEmail(ctx context.Context, userID uuid.UUID) error
	VerifyMobile(ctx context.Context, userID uuid.UUID, otp string) error
	RequestOTP(ctx context.Context, userID uuid.UUID) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	otpStore   auth.OTPStore
	otpSender  OTPSender
	identity   *identity.Client
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	jwtService *auth.JWTService,
	otpStore auth.OTPStore,
	otpSender OTPSender,
	identityClient *identity.Client,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		otpStore:   otpStore,
		otpSender:  otpSender,
		identity:   identityClient,
	}
}

// Register creates a new unverified user with a hashed password, mirrors the
// account to the external identity provider and issues a mobile OTP.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	email := NormalizeEmail(input.Email)

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperr.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		FullName:     sanitize.Text(input.FullName),
		Gender:       input.Gender,
		MobileNo:     strings.TrimSpace(input.MobileNo),
		SignupType:   model.SignupTypeEmail,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if apperr.IsDuplicateEntry(err) {
			// Uniqueness is enforced by the store; a concurrent register on
			// the same email or mobile loses here.
			if strings.Contains(err.Error(), "mobile") {
				return nil, apperr.ErrMobileTaken
			}
			return nil, apperr.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	// Best-effort mirroring; the relational record is the source of truth.
	go func(u model.User, password string) {
		mirrorCtx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
		defer cancel()
		if err := s.identity.MirrorAccount(mirrorCtx, identity.MirrorRequest{
			UID:         u.ID.String(),
			Email:       u.Email,
			Password:    password,
			DisplayName: u.FullName,
			PhoneNumber: u.MobileNo,
		}); err != nil {
			log.Warnf("identity mirroring failed for user %s: %v", u.ID, err)
		}
	}(*user, input.Password)

	if err := s.issueOTP(ctx, user); err != nil {
		// The account exists; the user can request a fresh code.
		log.Warnf("otp issuance failed for user %s: %v", user.ID, err)
	}

	return user, nil
}

// Login authenticates a user and returns a signed session token.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperr.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperr.ErrInvalidCredentials
	}

	token, err := s.jwtService.Issue(user.ID.String(), user.Email, user.FullName)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	return token, user, nil
}

// VerifyEmail marks the user's email as verified. Re-verifying an already
// verified user is a no-op success.
func (s *authService) VerifyEmail(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.userRepo.SetVerificationFlag(ctx, userID, repository.FlagEmailVerified, true); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrUserNotFound
		}
		return fmt.Errorf("set email verified: %w", err)
	}
	return nil
}

// VerifyMobile matches the submitted code and marks the mobile as verified.
func (s *authService) VerifyMobile(ctx context.Context, userID uuid.UUID, otp string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if user.IsMobileVerified {
		return nil
	}

	if err := s.otpStore.Verify(ctx, userID.String(), strings.TrimSpace(otp)); err != nil {
		return err
	}

	if _, err := s.userRepo.SetVerificationFlag(ctx, userID, repository.FlagMobileVerified, true); err != nil {
		return fmt.Errorf("set mobile verified: %w", err)
	}
	return nil
}

// RequestOTP issues a fresh code for an unverified mobile number.
func (s *authService) RequestOTP(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if user.IsMobileVerified {
		return nil
	}

	return s.issueOTP(ctx, user)
}

func (s *authService) issueOTP(ctx context.Context, user *model.User) error {
	code, err := s.otpStore.Issue(ctx, user.ID.String())
	if err != nil {
		return err
	}
	return s.otpSender.SendOTP(ctx, user.MobileNo, code)
}

// NormalizeEmail lowercases and trims an email address so uniqueness is
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
