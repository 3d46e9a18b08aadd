package usecase

import (
	"context"
	"fmt"
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

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	AddUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	GetUsers(ctx context.Context, req *request.UserListRequest) (*response.PaginatedResponse[response.UserResponse], error)
	UpdateUser(ctx context.Context, req *request.UpdateUserRequest) (*response.UserResponse, error)
	SetActive(ctx context.Context, req *request.SetActiveRequest) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, userID string) error
}

type userService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	media       MediaStore
	log         *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, media MediaStore, log *zap.Logger) UserService {
	return &userService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		media:       media,
		log:         log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound(apperror.TypeUserNotFound, "User not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// AddUser creates a staff or guest record. Either email or phone identifies
// the user; a password is optional for staff that never sign in.
func (us *userService) AddUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	req.Email = nonEmpty(req.Email)
	req.Phone = nonEmpty(req.Phone)
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	var passwordHash *string
	if req.Password != nil && *req.Password != "" {
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		passwordHash = &hashed
	}

	role := entity.RoleGuest
	if req.Role != "" {
		role = entity.UserRole(req.Role)
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:             strings.TrimSpace(req.Name),
		Email:            lower(req.Email),
		Phone:            req.Phone,
		PasswordHash:     passwordHash,
		Role:             role,
		Picture:          req.Picture,
		Address:          nonEmpty(req.Address),
		DOB:              nonEmpty(req.DOB),
		MaritalStatus:    nonEmpty(req.MaritalStatus),
		CNIC:             nonEmpty(req.CNIC),
		EmergencyContact: req.EmergencyContact,
		IsActive:         active,
		Preferences:      req.Preferences,
	}

	if err := us.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	us.log.Info("User added",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) GetUsers(ctx context.Context, req *request.UserListRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	filter := entity.UserFilter{ActiveOnly: req.ActiveOnly}

	users, err := us.userRepo.FindAll(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := us.userRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(response.UsersToResponse(users), req.Page, req.Limit(), total), nil
}

func (us *userService) UpdateUser(ctx context.Context, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	user, err := us.findUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		user.Email = lower(nonEmpty(req.Email))
	}
	if req.Phone != nil {
		user.Phone = nonEmpty(req.Phone)
	}
	if user.Email == nil && user.Phone == nil {
		return nil, apperror.MissingFields("Email or phone is required", "email", "phone")
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = &hashed
	}
	if req.Role != nil {
		user.Role = entity.UserRole(*req.Role)
	}
	if req.Address != nil {
		user.Address = nonEmpty(req.Address)
	}
	if req.DOB != nil {
		user.DOB = nonEmpty(req.DOB)
	}
	if req.MaritalStatus != nil {
		user.MaritalStatus = nonEmpty(req.MaritalStatus)
	}
	if req.CNIC != nil {
		user.CNIC = nonEmpty(req.CNIC)
	}
	if req.EmergencyContact != nil {
		user.EmergencyContact = req.EmergencyContact
	}
	if req.Preferences != nil {
		user.Preferences = req.Preferences
	}

	var oldPicture string
	if req.Picture != nil {
		oldPicture = user.Picture
		user.Picture = *req.Picture
	}
	user.UpdatedAt = time.Now()

	if err := us.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if oldPicture != "" && us.media != nil {
		us.media.Remove(oldPicture)
	}

	us.log.Info("User updated", zap.String("user_id", user.ID.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

// SetActive toggles the account. Deactivation ends every session the user
// holds.
func (us *userService) SetActive(ctx context.Context, req *request.SetActiveRequest) (*response.UserResponse, error) {
	if err := utils.Validate(req); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, apperror.NotFound(apperror.TypeUserNotFound, "User not found")
	}

	user, err := us.userRepo.SetActive(ctx, id, *req.IsActive)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound(apperror.TypeUserNotFound, "User not found")
	}

	if !user.IsActive {
		if err := us.sessionRepo.RevokeAllUserSessions(ctx, user.ID); err != nil {
			return nil, err
		}
	}

	us.log.Info("User active flag changed",
		zap.String("user_id", user.ID.String()),
		zap.Bool("is_active", user.IsActive))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) DeleteUser(ctx context.Context, userID string) error {
	user, err := us.findUser(ctx, userID)
	if err != nil {
		return err
	}

	deleted, err := us.userRepo.Delete(ctx, user.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NotFound(apperror.TypeUserNotFound, "User not found")
	}

	if err := us.sessionRepo.RevokeAllUserSessions(ctx, user.ID); err != nil {
		return err
	}
	if user.Picture != "" && us.media != nil {
		us.media.Remove(user.Picture)
	}

	us.log.Info("User deleted", zap.String("user_id", user.ID.String()))
	return nil
}

func (us *userService) findUser(ctx context.Context, userID string) (*entity.User, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperror.MissingFields("User id is required", "userId")
	}
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.NotFound(apperror.TypeUserNotFound, "User not found")
	}

	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound(apperror.TypeUserNotFound, "User not found")
	}
	return user, nil
}

func lower(value *string) *string {
	if value == nil {
		return nil
	}
	l := strings.ToLower(*value)
	return &l
}
