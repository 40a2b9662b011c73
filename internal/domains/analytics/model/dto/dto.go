package dto

import (
	"reserva/internal/domains/analytics/model"
	"reserva/shared/constant"
	gDto "reserva/shared/dto"
)

type StatusCounts struct {
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

type MonthlyRevenue struct {
	Month        string       `json:"month"`
	Revenue      gDto.Decimal `json:"revenue"`
	Reservations int          `json:"reservations"`
}

type ServiceRevenue struct {
	ServiceID    string       `json:"service_id"`
	Name         string       `json:"name"`
	Revenue      gDto.Decimal `json:"revenue"`
	Reservations int          `json:"reservations"`
}

type RevenueResponse struct {
	TotalRevenue      gDto.Decimal     `json:"total_revenue"`
	TotalReservations int              `json:"total_reservations"`
	StatusCounts      StatusCounts     `json:"status_counts"`
	MonthlyRevenue    []MonthlyRevenue `json:"monthly_revenue"`
	TopServices       []ServiceRevenue `json:"top_services"`
}

func (r *RevenueResponse) FromModels(total float64, byStatus []model.StatusCount, monthly []model.MonthlyRevenue, top []model.ServiceRevenue) {
	r.TotalRevenue = gDto.Decimal(total)

	for _, row := range byStatus {
		r.TotalReservations += row.Total

		switch row.Status {
		case constant.ReservationStatusPending:
			r.StatusCounts.Pending = row.Total
		case constant.ReservationStatusConfirmed:
			r.StatusCounts.Confirmed = row.Total
		case constant.ReservationStatusCompleted:
			r.StatusCounts.Completed = row.Total
		case constant.ReservationStatusCancelled:
			r.StatusCounts.Cancelled = row.Total
		}
	}

	r.MonthlyRevenue = make([]MonthlyRevenue, 0, len(monthly))
	for _, row := range monthly {
		r.MonthlyRevenue = append(r.MonthlyRevenue, MonthlyRevenue{
			Month:        row.Month,
			Revenue:      gDto.Decimal(row.Revenue),
			Reservations: row.Reservations,
		})
	}

	r.TopServices = make([]ServiceRevenue, 0, len(top))
	for _, row := range top {
		r.TopServices = append(r.TopServices, ServiceRevenue{
			ServiceID:    row.ServiceID,
			Name:         row.Name,
			Revenue:      gDto.Decimal(row.Revenue),
			Reservations: row.Reservations,
		})
	}
}
