package model

import (
	"time"

	"reserva/shared/constant"
	"reserva/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID              = "id"
	FieldUserID          = "user_id"
	FieldServiceItemID   = "service_item_id"
	FieldReservationDate = "reservation_date"
	FieldTimeSlot        = "time_slot"
	FieldGuestCount      = "guest_count"
	FieldNotes           = "notes"
	FieldLocation        = "location"
	FieldContactPhone    = "contact_phone"
	FieldPaymentMethod   = "payment_method"
	FieldPaid            = "paid"
	FieldStatus          = "status"
)

// SortRecentFirst orders reservations newest booking date first, falling
// back to insertion order for same-day bookings.
const SortRecentFirst = "reservations.reservation_date DESC, reservations.created_at DESC"

// Reservation is one booking row. The item and service columns come from
// the left joins declared in GetJoinQuery and are nil when the catalog
// entry has been deleted (service_item_id goes NULL with it).
type Reservation struct {
	ID              string    `db:"id"`
	UserID          string    `db:"user_id"`
	ServiceItemID   *string   `db:"service_item_id"`
	ReservationDate time.Time `db:"reservation_date"`
	TimeSlot        string    `db:"time_slot"`
	GuestCount      *int      `db:"guest_count"`
	Notes           *string   `db:"notes"`
	Location        *string   `db:"location"`
	ContactPhone    *string   `db:"contact_phone"`
	PaymentMethod   *string   `db:"payment_method"`
	Paid            bool      `db:"paid"`
	Status          string    `db:"status"`
	model.Metadata

	ItemName    *string  `db:"item_name"    table:"service_items" column:"name"`
	ItemPrice   *float64 `db:"item_price"   table:"service_items" column:"price"`
	ItemImage   *string  `db:"item_image"   table:"service_items" column:"image"`
	ServiceID   *string  `db:"svc_id"       table:"services"      column:"id"`
	ServiceName *string  `db:"svc_name"     table:"services"      column:"name"`
	ServiceIcon *string  `db:"svc_icon"     table:"services"      column:"icon"`
}

func (Reservation) GetJoinQuery() string {
	return "LEFT JOIN service_items ON service_items.id = reservations.service_item_id " +
		"LEFT JOIN services ON services.id = service_items.service_id"
}

// CanTransition reports whether an operator may move a reservation from
// one status to another. Terminal states only allow the idempotent
// cancelled -> cancelled no-op, handled by the service.
func CanTransition(from, to string) bool {
	switch from {
	case constant.ReservationStatusPending:
		return to == constant.ReservationStatusConfirmed || to == constant.ReservationStatusCancelled
	case constant.ReservationStatusConfirmed:
		return to == constant.ReservationStatusCompleted || to == constant.ReservationStatusCancelled
	default:
		return false
	}
}

func IsValidStatus(status string) bool {
	switch status {
	case constant.ReservationStatusPending,
		constant.ReservationStatusConfirmed,
		constant.ReservationStatusCompleted,
		constant.ReservationStatusCancelled:
		return true
	}

	return false
}
