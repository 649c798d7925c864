package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleApplicant   Role = "applicant"
	RoleUnderwriter Role = "underwriter"
	RoleAdmin       Role = "admin"
	RoleProcessor   Role = "processor"
	RoleManager     Role = "manager"
)

func (r Role) Valid() bool {
	switch r {
	case RoleApplicant, RoleUnderwriter, RoleAdmin, RoleProcessor, RoleManager:
		return true
	}
	return false
}

var ErrNotFound = errors.New("user not found")

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	Email     string    `gorm:"size:255;not null;uniqueIndex:ux_users_email" json:"email"`
	FirstName string    `gorm:"size:100;not null" json:"first_name"`
	LastName  string    `gorm:"size:100;not null" json:"last_name"`
	Phone     string    `gorm:"size:20" json:"phone,omitempty"`
	Role      Role      `gorm:"size:20;not null;default:'applicant'" json:"role"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }
