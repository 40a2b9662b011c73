package dto

import (
	"reserva/internal/domains/user/model"
	"reserva/shared"
	gDto "reserva/shared/dto"
)

type UserResponse struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	FullName     string  `json:"full_name"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
	Role         string  `json:"role"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.FullName = model.FullName
	r.Phone = model.Phone
	r.Address = model.Address
	r.ProfileImage = model.ProfileImage
	r.Role = model.Role
	r.Metadata.FromModel(model.Metadata)
}

type UpdateUserRequest struct {
	Role     *string `json:"role,omitempty"      validate:"omitempty,oneof=customer admin owner" db:"role"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,min=1"                      db:"full_name"`
	Phone    *string `json:"phone,omitempty"     db:"phone"`
	Address  *string `json:"address,omitempty"   db:"address"`
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
