package domain

import (
	"errors"
	"time"
)

// Role determines which operations an account may invoke.
type Role string

const (
	RoleAdministrator  Role = "administrator"
	RoleTester         Role = "tester"
	RoleDeveloper      Role = "developer"
	RoleProjectManager Role = "project_manager"
)

// Roles lists every role in display order.
var Roles = []Role{RoleAdministrator, RoleTester, RoleDeveloper, RoleProjectManager}

// BootstrapUsername is the built-in administrator created on first run.
const BootstrapUsername = "admin"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmptyField         = errors.New("username and password are required")
	ErrInvalidRole        = errors.New("invalid role")
	ErrSelfDelete         = errors.New("an account cannot delete itself")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInsufficientRole   = errors.New("insufficient role")
)

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdministrator, RoleTester, RoleDeveloper, RoleProjectManager:
		return true
	}
	return false
}

// Account is a stored identity. Username is the key and never changes.
type Account struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Is reports whether the account holds one of the given roles.
func (a *Account) Is(roles ...Role) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}
