package domain

import (
	"time"
)

type UserRole string

const (
	UserRoleMember     UserRole = "member"
	UserRoleSpecialist UserRole = "specialist"
)

func (r UserRole) IsValid() bool {
	return r == UserRoleMember || r == UserRoleSpecialist
}

type User struct {
	ID             string    `json:"_id" bson:"_id"`
	Name           string    `json:"name" bson:"name"`
	Email          string    `json:"email" bson:"email"`
	PasswordHash   string    `json:"-" bson:"passwordHash"`
	UserType       UserRole  `json:"userType" bson:"userType"`
	Category       Category  `json:"category,omitempty" bson:"category,omitempty"`
	Specialization string    `json:"specialization,omitempty" bson:"specialization,omitempty"`
	Phone          string    `json:"phone,omitempty" bson:"phone,omitempty"`
	ProfilePhoto   string    `json:"profilePhoto,omitempty" bson:"profilePhoto,omitempty"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (u *User) IsSpecialist() bool {
	return u.UserType == UserRoleSpecialist
}

type UpdateProfileDTO struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	ProfilePhoto string `json:"profilePhoto"`
}

type SpecialistFilter struct {
	Query    string   `json:"q"`
	Category Category `json:"category"`
}
