package dto

import (
	"fmt"
	"time"

	"reserva/internal/domains/reservation/model"
	"reserva/shared"
	"reserva/shared/constant"
	gDto "reserva/shared/dto"
	gModel "reserva/shared/model"
	"reserva/shared/timezone"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	ServiceItemID string            `json:"service_item_id"          validate:"required"`
	Date          string            `json:"date"                     validate:"required,datetime=2006-01-02"`
	Time          string            `json:"time"                     validate:"required,datetime=15:04"`
	GuestCount    *gDto.PositiveInt `json:"guest_count,omitempty"    validate:"omitempty,gt=0"`
	Notes         *string           `json:"notes,omitempty"`
	Location      gDto.Location     `json:"location,omitempty"`
	ContactPhone  *string           `json:"contact_phone,omitempty"`
	PaymentMethod *string           `json:"payment_method,omitempty" validate:"omitempty,oneof=cod transfer ewallet"`
}

func (r *CreateReservationRequest) ToModel(userID string) (model.Reservation, error) {
	date, err := time.Parse(constant.ReservationDateFormat, r.Date)
	if err != nil {
		return model.Reservation{}, fmt.Errorf("invalid reservation date: %w", err)
	}

	var guestCount *int
	if r.GuestCount != nil {
		count := r.GuestCount.Int()
		guestCount = &count
	}

	var location *string
	if !r.Location.IsZero() {
		encoded, err := r.Location.Encode()
		if err != nil {
			return model.Reservation{}, fmt.Errorf("invalid location: %w", err)
		}

		location = &encoded
	}

	itemID := r.ServiceItemID

	return model.Reservation{
		ID:              uuid.NewString(),
		UserID:          userID,
		ServiceItemID:   &itemID,
		ReservationDate: date,
		TimeSlot:        r.Time,
		GuestCount:      guestCount,
		Notes:           r.Notes,
		Location:        location,
		ContactPhone:    r.ContactPhone,
		PaymentMethod:   r.PaymentMethod,
		Paid:            false,
		Status:          constant.ReservationStatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}, nil
}

// UpdateReservationRequest carries both the owner-editable fields and the
// operator-only ones. The service rejects Status and Paid changes from
// non-elevated callers.
type UpdateReservationRequest struct {
	Date          string            `json:"date,omitempty"           validate:"omitempty,datetime=2006-01-02"`
	Time          string            `json:"time,omitempty"           validate:"omitempty,datetime=15:04"`
	GuestCount    *gDto.PositiveInt `json:"guest_count,omitempty"    validate:"omitempty,gt=0"`
	Notes         *string           `json:"notes,omitempty"`
	Location      gDto.Location     `json:"location,omitempty"`
	ContactPhone  *string           `json:"contact_phone,omitempty"`
	PaymentMethod *string           `json:"payment_method,omitempty" validate:"omitempty,oneof=cod transfer ewallet"`
	Status        *string           `json:"status,omitempty"         validate:"omitempty,oneof=pending confirmed completed cancelled"`
	Paid          *bool             `json:"paid,omitempty"`
}

func (r *UpdateReservationRequest) IsEmpty() bool {
	return r.Date == constant.Empty &&
		r.Time == constant.Empty &&
		r.GuestCount == nil &&
		r.Notes == nil &&
		r.Location.IsZero() &&
		r.ContactPhone == nil &&
		r.PaymentMethod == nil &&
		r.Status == nil &&
		r.Paid == nil
}

func (r *UpdateReservationRequest) HasOperatorFields() bool {
	return r.Status != nil || r.Paid != nil
}

// ToFields builds the update map for the owner-editable fields.
func (r *UpdateReservationRequest) ToFields(modifiedBy string) (map[string]any, error) {
	fields := map[string]any{}

	if r.Date != constant.Empty {
		date, err := time.Parse(constant.ReservationDateFormat, r.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid reservation date: %w", err)
		}

		fields[model.FieldReservationDate] = date
	}

	if r.Time != constant.Empty {
		fields[model.FieldTimeSlot] = r.Time
	}

	if r.GuestCount != nil {
		fields[model.FieldGuestCount] = r.GuestCount.Int()
	}

	if r.Notes != nil {
		fields[model.FieldNotes] = *r.Notes
	}

	if !r.Location.IsZero() {
		encoded, err := r.Location.Encode()
		if err != nil {
			return nil, fmt.Errorf("invalid location: %w", err)
		}

		fields[model.FieldLocation] = encoded
	}

	if r.ContactPhone != nil {
		fields[model.FieldContactPhone] = *r.ContactPhone
	}

	if r.PaymentMethod != nil {
		fields[model.FieldPaymentMethod] = *r.PaymentMethod
	}

	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = modifiedBy

	return fields, nil
}

type ReservationServiceSummary struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Icon *string `json:"icon,omitempty"`
}

type ReservationItem struct {
	ID      string                     `json:"id"`
	Name    string                     `json:"name"`
	Price   gDto.Decimal               `json:"price"`
	Image   *string                    `json:"image,omitempty"`
	Service *ReservationServiceSummary `json:"service,omitempty"`
}

type ReservationResponse struct {
	ID              string           `json:"id"`
	UserID          string           `json:"user_id"`
	ReservationDate string           `json:"reservation_date"`
	TimeSlot        string           `json:"time_slot"`
	GuestCount      *int             `json:"guest_count,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
	Location        *gDto.Location   `json:"location,omitempty"`
	ContactPhone    *string          `json:"contact_phone,omitempty"`
	PaymentMethod   *string          `json:"payment_method,omitempty"`
	Paid            bool             `json:"paid"`
	Status          string           `json:"status"`
	Item            *ReservationItem `json:"item,omitempty"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(res model.Reservation) {
	r.ID = res.ID
	r.UserID = res.UserID
	r.ReservationDate = timezone.Format(res.ReservationDate, constant.ReservationDateFormat)
	r.TimeSlot = res.TimeSlot
	r.GuestCount = res.GuestCount
	r.Notes = res.Notes
	r.ContactPhone = res.ContactPhone
	r.PaymentMethod = res.PaymentMethod
	r.Paid = res.Paid
	r.Status = res.Status
	r.Metadata.FromModel(res.Metadata)

	if res.Location != nil {
		location := gDto.DecodeLocation(*res.Location)
		r.Location = &location
	}

	if res.ServiceItemID != nil && res.ItemName != nil {
		item := &ReservationItem{
			ID:    *res.ServiceItemID,
			Name:  *res.ItemName,
			Image: res.ItemImage,
		}

		if res.ItemPrice != nil {
			item.Price = gDto.Decimal(*res.ItemPrice)
		}

		if res.ServiceID != nil && res.ServiceName != nil {
			item.Service = &ReservationServiceSummary{
				ID:   *res.ServiceID,
				Name: *res.ServiceName,
				Icon: res.ServiceIcon,
			}
		}

		r.Item = item
	}
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

// Event payloads published to Kafka on lifecycle changes.
const (
	EventReservationCreated       = "reservation.created"
	EventReservationStatusChanged = "reservation.status_changed"
)

type ReservationEvent struct {
	Type          string `json:"type"`
	ReservationID string `json:"reservation_id"`
	UserID        string `json:"user_id"`
	Status        string `json:"status"`
	OccurredAt    string `json:"occurred_at"`
}
