package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials for authenticating a user. Both name and email
// must match the stored record.
type LoginRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8"`
}

// RefreshRequest exchanges a stored refresh token for a new login token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RegisterRequest is the self-service registration payload. The password must be
// confirmed by repeating it.
type RegisterRequest struct {
	Name                 string `json:"name" validate:"required,max=255"`
	Email                string `json:"email" validate:"required,email,max=255"`
	Password             string `json:"password" validate:"required,min=8,eqfield=PasswordConfirmation"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// CreateUserRequest is the payload for the pre-hashed registration endpoint.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// AssignDeviceRequest links a device to a user.
type AssignDeviceRequest struct {
	DeviceID int64 `json:"device_id" validate:"required"`
	UserID   int64 `json:"user_id" validate:"required"`
}

// JWTClaims is the payload carried by issued login tokens. The registered ID claim
// (jti) identifies the token for revocation.
type JWTClaims struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
