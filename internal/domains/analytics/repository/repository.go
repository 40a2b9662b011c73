package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"reserva/infras/otel"
	"reserva/infras/postgres"
	"reserva/internal/domains/analytics/model"
	"reserva/shared/constant"
	"reserva/shared/logger"
)

// Analytics aggregates over reservation and catalog rows. Revenue is the
// sum of joined item prices over completed reservations, so reservations
// whose catalog item was deleted contribute their count but no revenue.
type Analytics interface {
	TotalRevenue(ctx context.Context) (float64, error)
	CountByStatus(ctx context.Context) ([]model.StatusCount, error)
	MonthlyRevenue(ctx context.Context, months int) ([]model.MonthlyRevenue, error)
	TopServices(ctx context.Context, limit int) ([]model.ServiceRevenue, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Analytics {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (repo *repositoryImpl) TotalRevenue(ctx context.Context) (float64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".analytics.TotalRevenue")
	defer scope.End()

	query := "SELECT COALESCE(SUM(service_items.price), 0) " +
		"FROM reservations " +
		"LEFT JOIN service_items ON service_items.id = reservations.service_item_id " +
		"WHERE reservations.status = $1"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var total float64
	if err := repo.db.Read.GetContext(ctx, &total, query, constant.ReservationStatusCompleted); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to sum completed revenue: %w", err)
	}

	return total, nil
}

func (repo *repositoryImpl) CountByStatus(ctx context.Context) ([]model.StatusCount, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".analytics.CountByStatus")
	defer scope.End()

	query := "SELECT status, COUNT(id) AS total FROM reservations GROUP BY status"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	rows := []model.StatusCount{}
	if err := repo.db.Read.SelectContext(ctx, &rows, query); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to count reservations by status: %w", err)
	}

	return rows, nil
}

func (repo *repositoryImpl) MonthlyRevenue(ctx context.Context, months int) ([]model.MonthlyRevenue, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".analytics.MonthlyRevenue")
	defer scope.End()

	query := "SELECT TO_CHAR(DATE_TRUNC('month', reservations.reservation_date), 'YYYY-MM') AS month, " +
		"COALESCE(SUM(service_items.price), 0) AS revenue, " +
		"COUNT(reservations.id) AS reservations " +
		"FROM reservations " +
		"LEFT JOIN service_items ON service_items.id = reservations.service_item_id " +
		"WHERE reservations.status = $1 " +
		"AND reservations.reservation_date >= DATE_TRUNC('month', NOW()) - ($2 - 1) * INTERVAL '1 month' " +
		"GROUP BY 1 ORDER BY 1"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	rows := []model.MonthlyRevenue{}
	if err := repo.db.Read.SelectContext(ctx, &rows, query, constant.ReservationStatusCompleted, months); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get monthly revenue: %w", err)
	}

	return rows, nil
}

func (repo *repositoryImpl) TopServices(ctx context.Context, limit int) ([]model.ServiceRevenue, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".analytics.TopServices")
	defer scope.End()

	query := "SELECT services.id AS service_id, services.name, " +
		"COALESCE(SUM(service_items.price), 0) AS revenue, " +
		"COUNT(reservations.id) AS reservations " +
		"FROM reservations " +
		"JOIN service_items ON service_items.id = reservations.service_item_id " +
		"JOIN services ON services.id = service_items.service_id " +
		"WHERE reservations.status = $1 " +
		"GROUP BY services.id, services.name " +
		"ORDER BY revenue DESC, services.name ASC " +
		"LIMIT $2"
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	rows := []model.ServiceRevenue{}
	if err := repo.db.Read.SelectContext(ctx, &rows, query, constant.ReservationStatusCompleted, limit); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to rank services by revenue: %w", err)
	}

	return rows, nil
}
