package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hotel-management/internal/data/entity"
	"hotel-management/internal/data/repository"
	"hotel-management/internal/dto/request"
	"hotel-management/internal/dto/response"
	"hotel-management/pkg/apperror"
	"hotel-management/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest, meta request.SessionMeta) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, meta request.SessionMeta) (*response.AuthResponse, error)
	Logout(ctx context.Context, sessionToken uuid.UUID) error
	CleanExpiredSessions(ctx context.Context) (int64, error)
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

// Register always creates a guest. A taken email, phone or cnic is reported
// by the unique index, not by a lookup.
func (s *authService) Register(ctx context.Context, req *request.RegisterRequest, meta request.SessionMeta) (*response.AuthResponse, error) {
	if err := utils.Validate(req); err != nil {
		s.log.Warn("Register validation failed", zap.Error(err))
		return nil, err
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         strings.TrimSpace(req.Name),
		Email:        &email,
		Phone:        nonEmpty(req.Phone),
		PasswordHash: &hashed,
		Role:         entity.RoleGuest,
		Picture:      req.Picture,
		IsActive:     true,
		Preferences:  req.Preferences,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, err
	}

	token, session, err := s.openSession(ctx, user, meta)
	if err != nil {
		return nil, err
	}

	s.log.Info("User registered", zap.String("user_id", user.ID.String()))

	resp := response.AuthToResponse(token, session, user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, meta request.SessionMeta) (*response.AuthResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, err
	}

	invalid := apperror.Unauthorized(apperror.TypeInvalidCredentials, "Invalid email or password")
	if user == nil || user.PasswordHash == nil {
		s.log.Warn("Login for unknown account")
		return nil, invalid
	}
	if !utils.CheckPasswordHash(req.Password, *user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, invalid
	}
	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, apperror.New(http.StatusForbidden, apperror.TypeAccountDisabled, "Account is deactivated")
	}

	token, session, err := s.openSession(ctx, user, meta)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	resp := response.AuthToResponse(token, session, user)
	return &resp, nil
}

// Logout revokes only the session the request was made with.
func (s *authService) Logout(ctx context.Context, sessionToken uuid.UUID) error {
	revoked, err := s.repo.Session.Revoke(ctx, sessionToken)
	if err != nil {
		return err
	}
	if !revoked {
		return apperror.Unauthorized(apperror.TypeInvalidToken, "Session already ended")
	}

	s.log.Info("Session revoked", zap.String("session", sessionToken.String()))
	return nil
}

func (s *authService) CleanExpiredSessions(ctx context.Context) (int64, error) {
	return s.repo.Session.CleanExpiredSessions(ctx)
}

func (s *authService) openSession(ctx context.Context, user *entity.User, meta request.SessionMeta) (string, *entity.Session, error) {
	now := time.Now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    user.ID,
		Token:     utils.GenerateSessionToken(),
		UserAgent: nonEmpty(&meta.UserAgent),
		IPAddress: nonEmpty(&meta.IPAddress),
		ExpiresAt: now.Add(time.Duration(s.config.JWT.ExpiryHours) * time.Hour),
	}

	token, err := utils.SignToken(s.config.JWT.Secret, user.ID, session.Token, string(user.Role), session.ExpiresAt)
	if err != nil {
		return "", nil, err
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return "", nil, err
	}

	return token, session, nil
}

// nonEmpty turns blank optional strings into NULLs so the partial unique
// indexes ignore them.
func nonEmpty(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
