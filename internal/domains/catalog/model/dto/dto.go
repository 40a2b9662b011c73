package dto

import (
	"reserva/internal/domains/catalog/model"
	gDto "reserva/shared/dto"
	gModel "reserva/shared/model"
	"reserva/shared/timezone"

	"github.com/google/uuid"
)

type CreateServiceRequest struct {
	Name        string  `json:"name"                  validate:"required,min=1"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Image       *string `json:"image,omitempty"`
}

func (r *CreateServiceRequest) ToModel(createdBy string) model.Service {
	return model.Service{
		ID:          uuid.NewString(),
		Name:        r.Name,
		Description: r.Description,
		Icon:        r.Icon,
		Image:       r.Image,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  createdBy,
			ModifiedBy: createdBy,
		},
	}
}

type UpdateServiceRequest struct {
	Name        *string `json:"name,omitempty"        validate:"omitempty,min=1" db:"name"`
	Description *string `json:"description,omitempty" db:"description"`
	Icon        *string `json:"icon,omitempty"        db:"icon"`
	Image       *string `json:"image,omitempty"       db:"image"`
}

type CreateServiceItemRequest struct {
	Name            string       `json:"name"                       validate:"required,min=1"`
	Description     *string      `json:"description,omitempty"`
	Price           gDto.Decimal `json:"price"                      validate:"gte=0"`
	DurationMinutes *int         `json:"duration_minutes,omitempty" validate:"omitempty,gt=0"`
	Image           *string      `json:"image,omitempty"`
	IsAvailable     *bool        `json:"is_available,omitempty"`
}

func (r *CreateServiceItemRequest) ToModel(serviceID, createdBy string) model.ServiceItem {
	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}

	return model.ServiceItem{
		ID:              uuid.NewString(),
		ServiceID:       serviceID,
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price.Float64(),
		DurationMinutes: r.DurationMinutes,
		Image:           r.Image,
		IsAvailable:     available,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  createdBy,
			ModifiedBy: createdBy,
		},
	}
}

type UpdateServiceItemRequest struct {
	Name            *string       `json:"name,omitempty"             validate:"omitempty,min=1" db:"name"`
	Description     *string       `json:"description,omitempty"      db:"description"`
	Price           *gDto.Decimal `json:"price,omitempty"            validate:"omitempty,gte=0" db:"price"`
	DurationMinutes *int          `json:"duration_minutes,omitempty" validate:"omitempty,gt=0"  db:"duration_minutes"`
	Image           *string       `json:"image,omitempty"            db:"image"`
	IsAvailable     *bool         `json:"is_available,omitempty"     db:"is_available"`
}

type ServiceItemResponse struct {
	ID              string       `json:"id"`
	ServiceID       string       `json:"service_id"`
	Name            string       `json:"name"`
	Description     *string      `json:"description,omitempty"`
	Price           gDto.Decimal `json:"price"`
	DurationMinutes *int         `json:"duration_minutes,omitempty"`
	Image           *string      `json:"image,omitempty"`
	IsAvailable     bool         `json:"is_available"`
	gDto.Metadata
}

func (r *ServiceItemResponse) FromModel(item model.ServiceItem) {
	r.ID = item.ID
	r.ServiceID = item.ServiceID
	r.Name = item.Name
	r.Description = item.Description
	r.Price = gDto.Decimal(item.Price)
	r.DurationMinutes = item.DurationMinutes
	r.Image = item.Image
	r.IsAvailable = item.IsAvailable
	r.Metadata.FromModel(item.Metadata)
}

type ServiceResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description *string               `json:"description,omitempty"`
	Icon        *string               `json:"icon,omitempty"`
	Image       *string               `json:"image,omitempty"`
	Items       []ServiceItemResponse `json:"items"`
	ItemCount   int                   `json:"item_count"`
	gDto.Metadata
}

// FromModel fills the response; items carries the available offerings and
// itemCount counts every item including unavailable ones.
func (r *ServiceResponse) FromModel(service model.Service, items []model.ServiceItem, itemCount int) {
	r.ID = service.ID
	r.Name = service.Name
	r.Description = service.Description
	r.Icon = service.Icon
	r.Image = service.Image
	r.ItemCount = itemCount
	r.Metadata.FromModel(service.Metadata)

	r.Items = make([]ServiceItemResponse, len(items))
	for i, item := range items {
		r.Items[i].FromModel(item)
	}
}

// ItemWithServiceResponse embeds the parent service on a single item read.
type ItemWithServiceResponse struct {
	ServiceItemResponse
	Service ServiceSummary `json:"service"`
}

type ServiceSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
}

func (r *ItemWithServiceResponse) FromModels(item model.ServiceItem, service model.Service) {
	r.ServiceItemResponse.FromModel(item)
	r.Service = ServiceSummary{
		ID:          service.ID,
		Name:        service.Name,
		Description: service.Description,
		Icon:        service.Icon,
	}
}

type GetServicesResponse struct {
	Services []ServiceResponse `json:"services"`
}
