package domain

import (
	"strings"
	"time"
)

// Role is the effective permission level of a profile
type Role string

const (
	RoleStudent    Role = "student"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// ParseRole validates a role string, ignoring case and surrounding space
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleStudent, RoleAdmin, RoleSuperAdmin:
		return r, true
	}
	return "", false
}

// IsStaff reports whether the role is admin or superadmin
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Profile is one per authenticated identity
type Profile struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255)" json:"-"`
	DisplayName  string    `gorm:"column:display_name;type:varchar(100)" json:"display_name"`
	Bio          *string   `gorm:"column:bio;type:text" json:"bio,omitempty"`
	Role         Role      `gorm:"column:role;type:varchar(20);default:student;index" json:"role"`
	KarmaPoints  int       `gorm:"column:karma_points;default:0;index" json:"karma_points"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

// PublicProfile is what other users see
type PublicProfile struct {
	ID          uint64    `json:"id"`
	DisplayName string    `json:"display_name"`
	Bio         *string   `json:"bio,omitempty"`
	Role        Role      `json:"role"`
	KarmaPoints int       `json:"karma_points"`
	CreatedAt   time.Time `json:"created_at"`
}

// Public strips private fields
func (p *Profile) Public() PublicProfile {
	return PublicProfile{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		Bio:         p.Bio,
		Role:        p.Role,
		KarmaPoints: p.KarmaPoints,
		CreatedAt:   p.CreatedAt,
	}
}
