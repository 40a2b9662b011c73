package dto

import (
	"mime/multipart"

	userDto "reserva/internal/domains/user/model/dto"
)

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest arrives as multipart form data. Password changes
// require a matching confirmation; the avatar is validated for type and
// size before it reaches storage.
type UpdateProfileRequest struct {
	Name            *string               `json:"name,omitempty"             validate:"omitempty,max=100"`
	Phone           *string               `json:"phone,omitempty"            validate:"omitempty,max=30"`
	Address         *string               `json:"address,omitempty"          validate:"omitempty,max=500"`
	Password        *string               `json:"password,omitempty"         validate:"omitempty,min=8,max=72"`
	ConfirmPassword *string               `json:"confirm_password,omitempty"`
	Avatar          *multipart.FileHeader `json:"avatar,omitempty"           validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
	AvatarFile      multipart.File        `json:"-"`
}

func (r *UpdateProfileRequest) IsEmpty() bool {
	return r.Name == nil &&
		r.Phone == nil &&
		r.Address == nil &&
		r.Password == nil &&
		r.Avatar == nil
}

// AuthResponse wraps the authenticated user for register and login.
type AuthResponse struct {
	User userDto.UserResponse `json:"user"`
}

// MeResponse reports the current session's user. User is null when the
// caller has no valid session.
type MeResponse struct {
	User *userDto.UserResponse `json:"user"`
}
