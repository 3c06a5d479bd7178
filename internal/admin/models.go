// Package admin implements panel staff identity: registration, login,
// and the role claim the admin gate checks.
package admin

import (
	"time"

	"github.com/google/uuid"
)

// RoleAdmin is the role given to newly registered staff. The gate also
// accepts "superadmin" and "owner" for records provisioned out of band.
const RoleAdmin = "admin"

// Admin is a panel staff account. PasswordHash never leaves the package.
type Admin struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// Profile is the public slice of an Admin returned to the panel.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (a Admin) Profile() Profile {
	return Profile{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
	}
}

// RegisterInput carries the staff registration form.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput carries the panel login form.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
