package model

import (
	"strings"

	"github.com/google/uuid"
)

// User is the application account: base credentials plus profile fields and
// a role reference.
type User struct {
	Base
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Phone        string    `json:"phone" db:"phone"`
	Street       string    `json:"street" db:"street"`
	City         string    `json:"city" db:"city"`
	ZipCode      string    `json:"zip_code" db:"zip_code"`
	NIP          string    `json:"nip" db:"nip"`
	CompanyName  string    `json:"company_name" db:"company_name"`
	RoleID       uuid.UUID `json:"role_id" db:"role_id"`
}

// FullName renders a display name, falling back to the username when the
// profile has no first name yet.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.Username
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=detailer client"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordRequest struct {
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required"`
}

type UpdateProfileRequest struct {
	Email       *string `json:"email" binding:"omitempty,email"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Phone       *string `json:"phone" binding:"omitempty,max=20"`
	Street      *string `json:"street" binding:"omitempty,max=50"`
	City        *string `json:"city" binding:"omitempty,max=50"`
	ZipCode     *string `json:"zip_code" binding:"omitempty,max=10"`
	NIP         *string `json:"nip" binding:"omitempty,max=11"`
	CompanyName *string `json:"company_name" binding:"omitempty,max=200"`
}

// Profile is the caller-facing projection of a user record.
type Profile struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Phone       string    `json:"phone"`
	Street      string    `json:"street"`
	City        string    `json:"city"`
	ZipCode     string    `json:"zip_code"`
	NIP         string    `json:"nip"`
	CompanyName string    `json:"company_name"`
}
