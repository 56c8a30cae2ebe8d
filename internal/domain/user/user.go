package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser     Role = "user"
	RoleEmployer Role = "employer"
	RoleAdmin    Role = "admin"
)

// ValidRole reports whether r is one of the three accepted roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleEmployer, RoleAdmin:
		return true
	}
	return false
}

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidRole        = errors.New("invalid role specified")
	ErrCompanyNameMissing = errors.New("company name is required for employers")
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	Role         Role      `json:"role"`
	CompanyName  string    `json:"companyName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SanitizedView is the projection returned by auth endpoints. The password
// hash is excluded structurally, not just at serialization time.
type SanitizedView struct {
	Email       string `json:"email"`
	Role        Role   `json:"role"`
	CompanyName string `json:"companyName,omitempty"`
}

func (u User) Sanitized() SanitizedView {
	return SanitizedView{
		Email:       u.Email,
		Role:        u.Role,
		CompanyName: u.CompanyName,
	}
}

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	Role        Role   `json:"role"`
	CompanyName string `json:"companyName"`
}

// NewFromRegistration is the single place the role invariants live: the role
// must be one of the enumeration, and companyName is kept iff the role is
// employer. The password arrives already hashed.
func NewFromRegistration(req RegisterRequest, passwordHash string) (User, error) {
	if !ValidRole(req.Role) {
		return User{}, ErrInvalidRole
	}

	companyName := ""

	if req.Role == RoleEmployer {
		if req.CompanyName == "" {
			return User{}, ErrCompanyNameMissing
		}
		companyName = req.CompanyName
	}

	return User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         req.Role,
		CompanyName:  companyName,
		CreatedAt:    time.Now().UTC(),
	}, nil
}
