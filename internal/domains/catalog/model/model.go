package model

import "reserva/shared/model"

const (
	ServiceTableName  = "services"
	ServiceEntityName = "service"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
	FieldIcon        = "icon"
	FieldImage       = "image"
)

const (
	ItemTableName  = "service_items"
	ItemEntityName = "service_item"

	FieldServiceID       = "service_id"
	FieldPrice           = "price"
	FieldDurationMinutes = "duration_minutes"
	FieldIsAvailable     = "is_available"
)

// Service is a bookable category such as salon, catering, or makeup.
type Service struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
	Icon        *string `db:"icon"`
	Image       *string `db:"image"`
	model.Metadata
}

// ServiceItem is a concrete offering under a service with its own price.
type ServiceItem struct {
	ID              string  `db:"id"`
	ServiceID       string  `db:"service_id"`
	Name            string  `db:"name"`
	Description     *string `db:"description"`
	Price           float64 `db:"price"`
	DurationMinutes *int    `db:"duration_minutes"`
	Image           *string `db:"image"`
	IsAvailable     bool    `db:"is_available"`
	model.Metadata
}
