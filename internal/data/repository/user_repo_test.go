package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"hotel-management/internal/data/entity"
	"hotel-management/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateUniqueViolations(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		errType string
	}{
		{name: "email", err: &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, errType: apperror.TypeUserExists},
		{name: "phone", err: &pgconn.PgError{Code: "23505", ConstraintName: "users_phone_key"}, errType: apperror.TypeUserExists},
		{name: "cnic", err: &pgconn.PgError{Code: "23505", ConstraintName: "users_cnic_key"}, errType: apperror.TypeUserExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockPool(t)
			repo := NewUserRepository(mock, testLogger())

			mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
				WithArgs(anyArgs(16)...).
				WillReturnError(tt.err)

			err := repo.Create(context.Background(), &entity.User{Base: entity.Base{ID: uuid.New()}, Name: "Guest"})
			require.Error(t, err)
			assert.True(t, apperror.Is(err, tt.errType), "got %v", err)
		})
	}
}

func TestUserRepository_CreateOtherFailure(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock, testLogger())

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(anyArgs(16)...).
		WillReturnError(errors.New("connection reset"))

	err := repo.Create(context.Background(), &entity.User{Base: entity.Base{ID: uuid.New()}})
	require.Error(t, err)
	_, typed := apperror.As(err)
	assert.False(t, typed)
}
