package dto

import "time"

// RegisterRequest defines the structure for creating a new account.
type RegisterRequest struct {
	Username        string `json:"username" form:"username" validate:"required,max=150,username"`
	Email           string `json:"email" form:"email" validate:"required,email,max=254"`
	Password        string `json:"password1" form:"password1" validate:"required,min=8,max=128"`
	PasswordConfirm string `json:"password2" form:"password2" validate:"required"`
}

// LoginRequest defines the structure for logging in.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
	Next     string `json:"next" form:"next"`
}

// UpdateProfileRequest defines the editable profile fields.
type UpdateProfileRequest struct {
	UserID    int64  `json:"-" form:"-"` // Set from session
	Email     string `json:"email" form:"email" validate:"required,email,max=254"`
	FirstName string `json:"first_name" form:"first_name" validate:"omitempty,max=150"`
	LastName  string `json:"last_name" form:"last_name" validate:"omitempty,max=150"`
	Phone     string `json:"phone" form:"phone" validate:"omitempty,max=15"`
	LinkedIn  string `json:"linkedin" form:"linkedin" validate:"omitempty,url,max=200"`
}

// CreateAdminRequest is used by the createadmin command.
type CreateAdminRequest struct {
	Username string `validate:"required,max=150,username"`
	Email    string `validate:"required,email,max=254"`
	Password string `validate:"required,min=8,max=128"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Role       string    `json:"role"`
	Phone      *string   `json:"phone"`
	LinkedIn   *string   `json:"linkedin"`
	IsAdmin    bool      `json:"is_admin"`
	DateJoined time.Time `json:"date_joined"`
}

// AuthResponse is returned after register and login.
type AuthResponse struct {
	Success  bool         `json:"success"`
	Message  string       `json:"message"`
	Redirect string       `json:"redirect"`
	Token    string       `json:"token"`
	User     UserResponse `json:"user"`
}

// AuthFormResponse describes the register and login forms to anonymous callers.
type AuthFormResponse struct {
	Form   string   `json:"form"`
	Fields []string `json:"fields"`
	Next   string   `json:"next,omitempty"`
}
