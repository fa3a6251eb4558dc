package models

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model   `json:"-"`
	ID           uint      `json:"-" gorm:"primaryKey"`
	Name         string    `json:"name"`
	Email        string    `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Password     string    `json:"-"`                        // Store hashed password, ignore for JSON serialization
	ProfileImage string    `json:"profileImage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	TokenEpoch   uint      `json:"-"` // Bumped on password change; outstanding tokens keep the old value
}

// PublicID renders the numeric primary key the way the API and the post
// attribution fields carry it.
func (u *User) PublicID() string {
	return strconv.FormatUint(uint64(u.ID), 10)
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserRequest struct {
	Name         string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
	ProfileImage string `json:"profileImage,omitempty" validate:"omitempty,url"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// UserResponse is the wire shape of a user record. The password hash never
// leaves the process; the id goes out as a string like the post attribution.
type UserResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	ProfileImage string    `json:"profileImage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToResponse strips the internal fields from a stored user record.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:           u.PublicID(),
		Name:         u.Name,
		Email:        u.Email,
		ProfileImage: u.ProfileImage,
		CreatedAt:    u.CreatedAt,
	}
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Epoch  uint   `json:"epoch"`
	jwt.RegisteredClaims
}
