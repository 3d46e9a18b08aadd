package request

type RegisterRequest struct {
	Name        string         `json:"name" validate:"required,max=100"`
	Email       string         `json:"email" validate:"required,email"`
	Password    string         `json:"password" validate:"required,min=6"`
	Phone       *string        `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
	Preferences map[string]any `json:"preferences,omitempty"`
	Picture     string         `json:"-"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionMeta describes the client a session is opened for.
type SessionMeta struct {
	UserAgent string
	IPAddress string
}
