package models

import (
	"time"
)

const (
	RoleStudent = "student"
	RoleAdvisor = "advisor"
	RoleHOD     = "hod"
	RoleAdmin   = "admin"
)

// Roles lists every role a user may hold.
var Roles = []string{RoleStudent, RoleAdvisor, RoleHOD, RoleAdmin}

// IsValidRole reports whether role is one of Roles.
func IsValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	ID           uint      `gorm:"primaryKey;column:id" json:"id"`
	Email        string    `gorm:"column:email;size:191;uniqueIndex;not null" json:"email"`
	Password     string    `gorm:"column:password;not null" json:"-"`
	Name         string    `gorm:"column:name;size:120;not null" json:"name"`
	Role         string    `gorm:"column:role;size:20;not null;index" json:"role"`
	DepartmentID *uint     `gorm:"column:department_id;index" json:"department_id"`
	ClassID      *uint     `gorm:"column:class_id;index" json:"class_id"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserView is a user row joined with its department and class names.
type UserView struct {
	User
	DepartmentName *string `gorm:"column:department_name" json:"department_name"`
	ClassName      *string `gorm:"column:class_name" json:"class_name"`
}
