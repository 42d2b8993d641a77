package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"studio-api/core/config"
	"studio-api/core/constants"
	apperrors "studio-api/core/errors"
	"studio-api/core/logger"
	"studio-api/core/middleware"
	"studio-api/core/utils"
	"studio-api/modules/auth/dto"
	"studio-api/modules/auth/entity"
	"studio-api/modules/auth/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	GetMe(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpdateTimezone(ctx context.Context, userID uuid.UUID, req *dto.UpdateTimezoneRequest) (*dto.UserResponse, error)
	GetTimezone(ctx context.Context, hostID uuid.UUID) (string, error)
}

type authService struct {
	repo repository.UserRepositoryInterface
}

func NewAuthService(repo repository.UserRepositoryInterface) AuthService {
	return &authService{repo: repo}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" || strings.TrimSpace(req.DisplayName) == "" {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidRequestData, "email, password and display_name are required", nil)
	}

	zone := req.Timezone
	if zone == "" {
		zone = constants.DefaultHostTimezone
	}
	if _, err := time.LoadLocation(zone); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidRequestData, "unknown timezone "+zone, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("AuthService:Register:HashPassword", err)
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "failed to hash password", err)
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(req.DisplayName),
		Timezone:     zone,
		BookingSlug:  utils.BookingSlug(req.DisplayName),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewAppError(apperrors.ErrAlreadyExists, "email already registered", err)
		}
		return nil, apperrors.NewAppError(apperrors.ErrCreateFailed, "failed to create user", err)
	}

	logger.Info("AuthService:Register:Created", "user_id", user.ID, "booking_slug", user.BookingSlug)
	return userResponse(user), nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrGetFailed, "failed to look up user", err)
	}
	if user == nil {
		return nil, apperrors.NewAppError(apperrors.ErrUnauthorized, "invalid credentials", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrUnauthorized, "invalid credentials", nil)
	}

	ttl := time.Duration(config.Get().JWT.AccessTTLMin) * time.Minute
	token, err := middleware.IssueToken(user.ID, user.Email, constants.ScopeTokenAccess, ttl)
	if err != nil {
		logger.Error("AuthService:Login:IssueToken", err)
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "failed to issue token", err)
	}

	return &dto.LoginResponse{
		AccessToken: token,
		User:        *userResponse(user),
	}, nil
}

func (s *authService) GetMe(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrGetFailed, "failed to look up user", err)
	}
	if user == nil {
		return nil, apperrors.NewAppError(apperrors.ErrNotFound, "user not found", nil)
	}
	return userResponse(user), nil
}

func (s *authService) UpdateTimezone(ctx context.Context, userID uuid.UUID, req *dto.UpdateTimezoneRequest) (*dto.UserResponse, error) {
	if _, err := time.LoadLocation(req.Timezone); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidRequestData, "unknown timezone "+req.Timezone, err)
	}
	if err := s.repo.UpdateTimezone(ctx, userID, req.Timezone); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrUpdateFailed, "failed to update timezone", err)
	}
	return s.GetMe(ctx, userID)
}

// GetTimezone satisfies the availability module's host directory.
// Missing hosts fall back to the default zone so slot generation for a
// stale id still behaves deterministically.
func (s *authService) GetTimezone(ctx context.Context, hostID uuid.UUID) (string, error) {
	user, err := s.repo.GetByID(ctx, hostID)
	if err != nil {
		return "", err
	}
	if user == nil || user.Timezone == "" {
		return constants.DefaultHostTimezone, nil
	}
	return user.Timezone, nil
}

func userResponse(user *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Timezone:    user.Timezone,
		BookingSlug: user.BookingSlug,
		CreatedAt:   user.CreatedAt,
	}
}
