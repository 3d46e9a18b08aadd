package entity

type UserRole string

const (
	RoleAdmin        UserRole = "admin"
	RoleManager      UserRole = "manager"
	RoleReceptionist UserRole = "receptionist"
	RoleHousekeeping UserRole = "housekeeping"
	RoleGuest        UserRole = "guest"
)

type EmergencyContact struct {
	Name     string `json:"name,omitempty"`
	Relation string `json:"relation,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

type User struct {
	Base
	Name             string            `db:"name"`
	Email            *string           `db:"email"`
	Phone            *string           `db:"phone"`
	PasswordHash     *string           `db:"password"`
	Role             UserRole          `db:"role"`
	Picture          string            `db:"picture"`
	Address          *string           `db:"address"`
	DOB              *string           `db:"dob"`
	MaritalStatus    *string           `db:"marital_status"`
	CNIC             *string           `db:"cnic"`
	EmergencyContact *EmergencyContact `db:"emergency_contact"`
	IsActive         bool              `db:"is_active"`
	Preferences      map[string]any    `db:"preferences"`
}

// UserFilter narrows the staff/guest listing.
type UserFilter struct {
	ActiveOnly bool
}
