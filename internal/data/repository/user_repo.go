package repository

import (
	"context"
	"errors"
	"fmt"

	"hotel-management/internal/data/entity"
	"hotel-management/pkg/apperror"
	"hotel-management/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindAll(ctx context.Context, filter entity.UserFilter, limit, offset int) ([]*entity.User, error)
	Count(ctx context.Context, filter entity.UserFilter) (int64, error)
	CountByRole(ctx context.Context, role entity.UserRole) (int64, error)
	Update(ctx context.Context, user *entity.User) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*entity.User, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `id, name, email, phone, password, role, picture, address, dob,
		       marital_status, cnic, emergency_contact, is_active, preferences, created_at, updated_at`

var userUniqueConstraints = []string{"users_email_key", "users_phone_key", "users_cnic_key"}

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.Role,
		&user.Picture,
		&user.Address,
		&user.DOB,
		&user.MaritalStatus,
		&user.CNIC,
		&user.EmergencyContact,
		&user.IsActive,
		&user.Preferences,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func preferencesOrEmpty(prefs map[string]any) map[string]any {
	if prefs == nil {
		return map[string]any{}
	}
	return prefs
}

// Create maps a collision on email, phone or cnic to USER_ALREADY_EXISTS.
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, name, email, phone, password, role, picture, address, dob,
		                   marital_status, cnic, emergency_contact, is_active, preferences,
		                   created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.Role,
		user.Picture,
		user.Address,
		user.DOB,
		user.MaritalStatus,
		user.CNIC,
		user.EmergencyContact,
		user.IsActive,
		preferencesOrEmpty(user.Preferences),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if database.IsUniqueViolation(err, userUniqueConstraints...) {
		return apperror.AlreadyExists(apperror.TypeUserExists, "User already exists").Wrap(err)
	}
	if err != nil {
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return fmt.Errorf("create user %s: %w", user.ID, err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted_at IS NULL`

	user, err := scanUser(ur.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id, err)
	}

	return user, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1) AND deleted_at IS NULL`

	user, err := scanUser(ur.db.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}

	return user, nil
}

func userFilterClause(filter entity.UserFilter) string {
	if filter.ActiveOnly {
		return ` WHERE deleted_at IS NULL AND is_active = TRUE`
	}
	return ` WHERE deleted_at IS NULL`
}

// FindAll retrieves a page of users, newest first.
func (ur *userRepository) FindAll(ctx context.Context, filter entity.UserFilter, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users` + userFilterClause(filter) +
		` ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := ur.db.Query(ctx, query, limit, offset)
	if err != nil {
		ur.log.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]*entity.User, 0, limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

func (ur *userRepository) Count(ctx context.Context, filter entity.UserFilter) (int64, error) {
	var count int64
	if err := ur.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`+userFilterClause(filter)).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func (ur *userRepository) CountByRole(ctx context.Context, role entity.UserRole) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM users WHERE role = $1 AND deleted_at IS NULL`
	if err := ur.db.QueryRow(ctx, query, role).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users by role %s: %w", role, err)
	}
	return count, nil
}

func (ur *userRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET name = $2, email = $3, phone = $4, password = $5, role = $6, picture = $7,
		    address = $8, dob = $9, marital_status = $10, cnic = $11, emergency_contact = $12,
		    is_active = $13, preferences = $14, updated_at = $15
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.Phone,
		user.PasswordHash,
		user.Role,
		user.Picture,
		user.Address,
		user.DOB,
		user.MaritalStatus,
		user.CNIC,
		user.EmergencyContact,
		user.IsActive,
		preferencesOrEmpty(user.Preferences),
		user.UpdatedAt,
	)
	if database.IsUniqueViolation(err, userUniqueConstraints...) {
		return apperror.AlreadyExists(apperror.TypeUserExists, "User already exists").Wrap(err)
	}
	if err != nil {
		ur.log.Error("Failed to update user",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return fmt.Errorf("update user %s: %w", user.ID, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NotFound(apperror.TypeUserNotFound, "User not found")
	}

	return nil
}

func (ur *userRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) (*entity.User, error) {
	query := `
		UPDATE users SET is_active = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING ` + userColumns

	user, err := scanUser(ur.db.QueryRow(ctx, query, id, active))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to set user active flag",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("set active %s: %w", id, err)
	}

	return user, nil
}

// Delete is a soft delete; the row stays for reservations that reference it.
func (ur *userRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE users SET deleted_at = NOW(), is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := ur.db.Exec(ctx, query, id)
	if err != nil {
		ur.log.Error("Failed to delete user",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return false, fmt.Errorf("delete user %s: %w", id, err)
	}

	return result.RowsAffected() > 0, nil
}
