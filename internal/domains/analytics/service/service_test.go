package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"reserva/config"
	"reserva/infras/otel/mocks"
	analyticsMocks "reserva/internal/domains/analytics/mocks"
	"reserva/internal/domains/analytics/model"
	"reserva/internal/domains/analytics/service"
	"reserva/shared/cache"
	"reserva/shared/constant"
	gDto "reserva/shared/dto"
)

type stubCache struct{}

func (stubCache) Save(context.Context, string, any, int) error { return nil }
func (stubCache) Get(context.Context, string, any) error       { return cache.Nil }
func (stubCache) Delete(context.Context, string) error         { return nil }
func (stubCache) Clear(context.Context, string) error          { return nil }

func TestAnalyticsService_Revenue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := analyticsMocks.NewMockAnalytics(ctrl)
	svc := service.New(repo, &config.Config{}, stubCache{}, mocks.NewOtel())

	repo.EXPECT().TotalRevenue(gomock.Any()).Return(450000.0, nil)
	repo.EXPECT().CountByStatus(gomock.Any()).Return([]model.StatusCount{
		{Status: constant.ReservationStatusPending, Total: 2},
		{Status: constant.ReservationStatusCompleted, Total: 3},
		{Status: constant.ReservationStatusCancelled, Total: 1},
	}, nil)
	repo.EXPECT().MonthlyRevenue(gomock.Any(), 12).Return([]model.MonthlyRevenue{
		{Month: "2026-07", Revenue: 150000, Reservations: 1},
		{Month: "2026-08", Revenue: 300000, Reservations: 2},
	}, nil)
	repo.EXPECT().TopServices(gomock.Any(), 5).Return([]model.ServiceRevenue{
		{ServiceID: "svc-1", Name: "Salon", Revenue: 450000, Reservations: 3},
	}, nil)

	res, err := svc.Revenue(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, gDto.Decimal(450000), res.TotalRevenue)
	assert.Equal(t, 6, res.TotalReservations)
	assert.Equal(t, 2, res.StatusCounts.Pending)
	assert.Equal(t, 3, res.StatusCounts.Completed)
	assert.Equal(t, 0, res.StatusCounts.Confirmed)
	assert.Len(t, res.MonthlyRevenue, 2)
	assert.Equal(t, "2026-07", res.MonthlyRevenue[0].Month)
	assert.Len(t, res.TopServices, 1)
	assert.Equal(t, "Salon", res.TopServices[0].Name)
}

func TestAnalyticsService_RevenueRepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := analyticsMocks.NewMockAnalytics(ctrl)
	svc := service.New(repo, &config.Config{}, stubCache{}, mocks.NewOtel())

	repo.EXPECT().TotalRevenue(gomock.Any()).Return(0.0, errors.New("connection refused"))

	_, err := svc.Revenue(context.Background())

	assert.Error(t, err)
}
