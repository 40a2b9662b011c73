package model

// StatusCount is one row of the reservation count grouped by status.
type StatusCount struct {
	Status string `db:"status"`
	Total  int    `db:"total"`
}

// MonthlyRevenue is one calendar month of completed-reservation revenue.
type MonthlyRevenue struct {
	Month        string  `db:"month"`
	Revenue      float64 `db:"revenue"`
	Reservations int     `db:"reservations"`
}

// ServiceRevenue ranks a service by its completed-reservation revenue.
type ServiceRevenue struct {
	ServiceID    string  `db:"service_id"`
	Name         string  `db:"name"`
	Revenue      float64 `db:"revenue"`
	Reservations int     `db:"reservations"`
}
