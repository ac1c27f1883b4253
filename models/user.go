// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User model
type User struct {
	ID                       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Username                 string             `json:"username" bson:"username"`
	Email                    string             `json:"email" bson:"email"`
	Password                 string             `json:"password,omitempty" bson:"password"`
	FullName                 string             `json:"fullName" bson:"fullName"`
	Bio                      string             `json:"bio,omitempty" bson:"bio,omitempty"`
	ProfilePic               string             `json:"profilePic,omitempty" bson:"profilePic,omitempty"`
	Department               string             `json:"department,omitempty" bson:"department,omitempty"`
	Year                     string             `json:"year,omitempty" bson:"year,omitempty"`
	Role                     string             `json:"role" bson:"role"` // "user" or "admin"
	IsActive                 bool               `json:"isActive" bson:"isActive"`
	EmailVerified            bool               `json:"emailVerified" bson:"emailVerified"`
	EmailVerificationToken   string             `json:"-" bson:"emailVerificationToken,omitempty"`
	EmailVerificationExpires time.Time          `json:"-" bson:"emailVerificationExpires,omitempty"`
	ResetPasswordToken       string             `json:"-" bson:"resetPasswordToken,omitempty"`
	ResetTokenExpiresAt      time.Time          `json:"-" bson:"resetTokenExpiresAt,omitempty"`
	FCMToken                 string             `json:"fcmToken,omitempty" bson:"fcmToken,omitempty"`
	LastActivityAt           time.Time          `json:"lastActivityAt" bson:"lastActivityAt"`
	CreatedAt                time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt                time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// PublicProfile strips fields that must never leave the server.
func (u User) PublicProfile() User {
	u.Password = ""
	u.FCMToken = ""
	return u
}

// RegisterRequest models
type RegisterRequest struct {
	Username   string `json:"username" validate:"required,min=3,max=30"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	FullName   string `json:"fullName" validate:"required,max=100"`
	Department string `json:"department,omitempty"`
	Year       string `json:"year,omitempty"`
}

type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

type UpdateProfileRequest struct {
	FullName   string `json:"fullName,omitempty"`
	Bio        string `json:"bio,omitempty"`
	ProfilePic string `json:"profilePic,omitempty"`
	Department string `json:"department,omitempty"`
	Year       string `json:"year,omitempty"`
}

// Response is the standard API envelope.
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Pagination describes the paging envelope returned by list endpoints.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// PaginatedData wraps list results with their pagination envelope.
type PaginatedData struct {
	Items      interface{} `json:"items"`
	Pagination Pagination  `json:"pagination"`
}

// LoginResponse carries tokens plus the authenticated user.
type LoginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
	User         User   `json:"user"`
}
