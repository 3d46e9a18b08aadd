package request

import "hotel-management/internal/data/entity"

type CreateUserRequest struct {
	Name             string                   `json:"name" validate:"required,max=100"`
	Email            *string                  `json:"email,omitempty" validate:"required_without=Phone,omitempty,email"`
	Phone            *string                  `json:"phone,omitempty" validate:"required_without=Email,omitempty,min=7,max=20"`
	Password         *string                  `json:"password,omitempty" validate:"omitempty,min=6"`
	Role             string                   `json:"role,omitempty" validate:"omitempty,oneof=admin manager receptionist housekeeping guest"`
	Address          *string                  `json:"address,omitempty"`
	DOB              *string                  `json:"dob,omitempty"`
	MaritalStatus    *string                  `json:"maritalStatus,omitempty" validate:"omitempty,oneof=single married divorced widowed"`
	CNIC             *string                  `json:"cnic,omitempty"`
	EmergencyContact *entity.EmergencyContact `json:"emergencyContact,omitempty"`
	IsActive         *bool                    `json:"isActive,omitempty"`
	Preferences      map[string]any           `json:"preferences,omitempty"`
	Picture          string                   `json:"-"`
}

type UpdateUserRequest struct {
	UserID           string                   `json:"userId" validate:"required"`
	Name             *string                  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Email            *string                  `json:"email,omitempty" validate:"omitempty,email"`
	Phone            *string                  `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
	Password         *string                  `json:"password,omitempty" validate:"omitempty,min=6"`
	Role             *string                  `json:"role,omitempty" validate:"omitempty,oneof=admin manager receptionist housekeeping guest"`
	Address          *string                  `json:"address,omitempty"`
	DOB              *string                  `json:"dob,omitempty"`
	MaritalStatus    *string                  `json:"maritalStatus,omitempty" validate:"omitempty,oneof=single married divorced widowed"`
	CNIC             *string                  `json:"cnic,omitempty"`
	EmergencyContact *entity.EmergencyContact `json:"emergencyContact,omitempty"`
	Preferences      map[string]any           `json:"preferences,omitempty"`
	Picture          *string                  `json:"-"`
}

type UserListRequest struct {
	PaginatedRequest
	ActiveOnly bool
}

type SetActiveRequest struct {
	UserID   string `json:"userId" validate:"required"`
	IsActive *bool  `json:"isActive" validate:"required"`
}
