package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is a registered PlayHaven account.
type User struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Email      string    `json:"email" gorm:"size:120;uniqueIndex;not null"`
	Username   string    `json:"username" gorm:"size:80;uniqueIndex;not null"`
	FirstName  string    `json:"first_name,omitempty" gorm:"size:80"`
	LastName   string    `json:"last_name,omitempty" gorm:"size:80"`
	Password   string    `json:"-" gorm:"size:256;not null"` // bcrypt hash
	BirthDate  int       `json:"birth_date,omitempty"`
	BirthMonth int       `json:"birth_month,omitempty"`
	BirthYear  int       `json:"birth_year,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// UserCompact is the public shape embedded in friend lists and notifications.
type UserCompact struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Username: u.Username}
}

// RegisterRequest defines the request body for account registration
type RegisterRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Username   string `json:"username" validate:"required,min=2,max=80"`
	Password   string `json:"password" validate:"required,min=8"`
	FirstName  string `json:"first_name,omitempty" validate:"omitempty,max=80"`
	LastName   string `json:"last_name,omitempty" validate:"omitempty,max=80"`
	BirthDate  int    `json:"birth_date,omitempty" validate:"omitempty,min=1,max=31"`
	BirthMonth int    `json:"birth_month,omitempty" validate:"omitempty,min=1,max=12"`
	BirthYear  int    `json:"birth_year,omitempty" validate:"omitempty,min=1900"`
}

// LoginRequest defines the request body for email/password login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
