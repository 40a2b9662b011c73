package model

import (
	"reserva/shared/constant"
	"reserva/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID           = "id"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldFullName     = "full_name"
	FieldPhone        = "phone"
	FieldAddress      = "address"
	FieldProfileImage = "profile_image"
	FieldGoogleID     = "google_id"
	FieldRole         = "role"
)

// User holds one account row. Password is nil for federation-only
// accounts; GoogleID is nil for password-only ones. Both may be set.
type User struct {
	ID           string  `db:"id"`
	Email        string  `db:"email"`
	Password     *string `db:"password"`
	FullName     string  `db:"full_name"`
	Phone        *string `db:"phone"`
	Address      *string `db:"address"`
	ProfileImage *string `db:"profile_image"`
	GoogleID     *string `db:"google_id"`
	Role         string  `db:"role"`
	model.Metadata
}

func (u User) IsElevated() bool {
	return u.Role == constant.RoleAdmin || u.Role == constant.RoleOwner
}
