package service

import (
	"context"

	"github.com/sulayman101/puntrms/internal/domain/entity"
	"github.com/sulayman101/puntrms/internal/domain/repository"
	"github.com/sulayman101/puntrms/pkg/apperror"
	"github.com/sulayman101/puntrms/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

// AuthService signs staff in with phone number and PIN
type AuthService struct {
	staffRepo  repository.StaffRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(staffRepo repository.StaffRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		staffRepo:  staffRepo,
		jwtManager: jwtManager,
	}
}

// TokenPair holds an access token and its refresh token
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login verifies a phone and PIN pair and issues tokens. Lookup and compare
// failures return the same error so the response does not reveal which
// phone numbers exist.
func (s *AuthService) Login(ctx context.Context, phone, pin string) (*entity.Staff, *TokenPair, error) {
	staff, err := s.staffRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, nil, err
	}
	if staff == nil {
		return nil, nil, apperror.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.PINHash), []byte(pin)); err != nil {
		return nil, nil, apperror.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(staff)
	if err != nil {
		return nil, nil, err
	}
	return staff, tokens, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*entity.Staff, *TokenPair, error) {
	staffID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, nil, apperror.ErrInvalidToken
	}

	staff, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return nil, nil, err
	}
	if staff == nil {
		return nil, nil, apperror.ErrInvalidToken
	}

	tokens, err := s.issueTokens(staff)
	if err != nil {
		return nil, nil, err
	}
	return staff, tokens, nil
}

func (s *AuthService) issueTokens(staff *entity.Staff) (*TokenPair, error) {
	access, err := s.jwtManager.GenerateAccessToken(staff.ID, staff.Name, staff.Phone, staff.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtManager.GenerateRefreshToken(staff.ID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
