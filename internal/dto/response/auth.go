package response

import (
	"time"

	"hotel-management/internal/data/entity"
)

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

type UserResponse struct {
	ID               string                   `json:"id"`
	Name             string                   `json:"name"`
	Email            *string                  `json:"email,omitempty"`
	Phone            *string                  `json:"phone,omitempty"`
	Role             entity.UserRole          `json:"role"`
	Picture          string                   `json:"picture,omitempty"`
	Address          *string                  `json:"address,omitempty"`
	DOB              *string                  `json:"dob,omitempty"`
	MaritalStatus    *string                  `json:"maritalStatus,omitempty"`
	CNIC             *string                  `json:"cnic,omitempty"`
	EmergencyContact *entity.EmergencyContact `json:"emergencyContact,omitempty"`
	IsActive         bool                     `json:"isActive"`
	Preferences      map[string]any           `json:"preferences,omitempty"`
	CreatedAt        time.Time                `json:"createdAt"`
	UpdatedAt        time.Time                `json:"updatedAt"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:               user.ID.String(),
		Name:             user.Name,
		Email:            user.Email,
		Phone:            user.Phone,
		Role:             user.Role,
		Picture:          user.Picture,
		Address:          user.Address,
		DOB:              user.DOB,
		MaritalStatus:    user.MaritalStatus,
		CNIC:             user.CNIC,
		EmergencyContact: user.EmergencyContact,
		IsActive:         user.IsActive,
		Preferences:      user.Preferences,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}
}

func UsersToResponse(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, UserToResponse(u))
	}
	return out
}

func AuthToResponse(token string, session *entity.Session, user *entity.User) AuthResponse {
	return AuthResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      UserToResponse(user),
	}
}
