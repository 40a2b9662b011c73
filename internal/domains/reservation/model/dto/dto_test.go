package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"reserva/internal/domains/reservation/model/dto"
	"reserva/shared/constant"
	gDto "reserva/shared/dto"
)

func TestCreateReservationRequest_ToModel(t *testing.T) {
	req := dto.CreateReservationRequest{
		ServiceItemID: "item-1",
		Date:          "2026-09-10",
		Time:          "14:00",
		Location:      gDto.Location{FreeText: "Jl. Sudirman No. 1"},
	}

	reservation, err := req.ToModel("user-1")

	assert.NoError(t, err)
	assert.NotEmpty(t, reservation.ID)
	assert.Equal(t, "user-1", reservation.UserID)
	assert.Equal(t, constant.ReservationStatusPending, reservation.Status)
	assert.False(t, reservation.Paid)
	assert.Equal(t, "2026-09-10", reservation.ReservationDate.Format(constant.ReservationDateFormat))
	assert.NotNil(t, reservation.Location)
	assert.Equal(t, "Jl. Sudirman No. 1", *reservation.Location)
}

func TestCreateReservationRequest_ToModelInvalidDate(t *testing.T) {
	req := dto.CreateReservationRequest{
		ServiceItemID: "item-1",
		Date:          "10-09-2026",
		Time:          "14:00",
	}

	_, err := req.ToModel("user-1")

	assert.Error(t, err)
}

func TestCreateReservationRequest_StructuredLocation(t *testing.T) {
	payload := `{
		"service_item_id": "item-1",
		"date": "2026-09-10",
		"time": "14:00",
		"location": {"street": "Jl. Melati 5", "city": "Bandung"}
	}`

	var req dto.CreateReservationRequest
	assert.NoError(t, json.Unmarshal([]byte(payload), &req))

	reservation, err := req.ToModel("user-1")

	assert.NoError(t, err)
	assert.NotNil(t, reservation.Location)

	decoded := gDto.DecodeLocation(*reservation.Location)
	assert.NotNil(t, decoded.Address)
	assert.Equal(t, "Bandung", decoded.Address.City)
}

func TestCreateReservationRequest_GuestCountRejectsGarbage(t *testing.T) {
	payload := `{"service_item_id": "item-1", "date": "2026-09-10", "time": "14:00", "guest_count": "plenty"}`

	var req dto.CreateReservationRequest
	assert.Error(t, json.Unmarshal([]byte(payload), &req))
}

func TestCreateReservationRequest_GuestCountRejectsNonPositive(t *testing.T) {
	for _, count := range []string{"-3", "0"} {
		payload := `{"service_item_id": "item-1", "date": "2026-09-10", "time": "14:00", "guest_count": ` + count + `}`

		var req dto.CreateReservationRequest
		assert.Error(t, json.Unmarshal([]byte(payload), &req), "guest_count %s must not decode", count)
	}
}

func TestUpdateReservationRequest_ToFields(t *testing.T) {
	notes := "bring extra chairs"
	req := dto.UpdateReservationRequest{
		Date:  "2026-09-12",
		Notes: &notes,
	}

	fields, err := req.ToFields("user-1")

	assert.NoError(t, err)
	assert.Contains(t, fields, "reservation_date")
	assert.Equal(t, "bring extra chairs", fields["notes"])
	assert.Equal(t, "user-1", fields["modified_by"])
	assert.NotContains(t, fields, "status")
	assert.NotContains(t, fields, "paid")
}

func TestUpdateReservationRequest_IsEmpty(t *testing.T) {
	assert.True(t, (&dto.UpdateReservationRequest{}).IsEmpty())

	paid := true
	assert.False(t, (&dto.UpdateReservationRequest{Paid: &paid}).IsEmpty())
}
