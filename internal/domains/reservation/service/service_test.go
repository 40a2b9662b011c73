package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"reserva/config"
	"reserva/infras/kafka"
	"reserva/infras/otel/mocks"
	catalogMocks "reserva/internal/domains/catalog/mocks"
	catalogModel "reserva/internal/domains/catalog/model"
	reservationMocks "reserva/internal/domains/reservation/mocks"
	"reserva/internal/domains/reservation/model"
	"reserva/internal/domains/reservation/model/dto"
	"reserva/internal/domains/reservation/service"
	"reserva/shared/cache"
	"reserva/shared/constant"
	gDto "reserva/shared/dto"
	"reserva/shared/failure"
	gModel "reserva/shared/model"
	"reserva/shared/timezone"
)

// stubCache always misses so the service hits its repositories, and
// swallows the async save and invalidation calls.
type stubCache struct{}

func (stubCache) Save(context.Context, string, any, int) error { return nil }
func (stubCache) Get(context.Context, string, any) error       { return cache.Nil }
func (stubCache) Delete(context.Context, string) error         { return nil }
func (stubCache) Clear(context.Context, string) error          { return nil }

// stubProducer swallows the async lifecycle events.
type stubProducer struct{}

func (stubProducer) SendMessages(context.Context, ...kafka.Message) error { return nil }

func userContext(id, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func stringPtr(s string) *string { return &s }

func metadata() gModel.Metadata {
	return gModel.Metadata{
		CreatedAt:  timezone.Now(),
		ModifiedAt: timezone.Now(),
		CreatedBy:  "system",
		ModifiedBy: "system",
	}
}

func newService(t *testing.T) (service.Reservation, *reservationMocks.MockReservation, *catalogMocks.MockServiceItem) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := reservationMocks.NewMockReservation(ctrl)
	items := catalogMocks.NewMockServiceItem(ctrl)

	svc := service.New(repo, items, &config.Config{}, stubCache{}, mocks.NewOtel(), stubProducer{})

	return svc, repo, items
}

func pendingReservation(id, userID string) model.Reservation {
	return model.Reservation{
		ID:              id,
		UserID:          userID,
		ServiceItemID:   stringPtr("item-1"),
		ReservationDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		TimeSlot:        "14:00",
		Status:          constant.ReservationStatusPending,
		Metadata:        metadata(),
	}
}

func TestReservationService_Create(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *reservationMocks.MockReservation, items *catalogMocks.MockServiceItem)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "created",
			setupMock: func(repo *reservationMocks.MockReservation, items *catalogMocks.MockServiceItem) {
				items.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(catalogModel.ServiceItem{ID: "item-1", ServiceID: "svc-1", Name: "Haircut", Price: 50000, IsAvailable: true, Metadata: metadata()}, nil)
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, filter any, columns ...string) (model.Reservation, error) {
						res := pendingReservation("res-1", "user-1")
						res.ItemName = stringPtr("Haircut")

						return res, nil
					})
			},
		},
		{
			name: "item not found",
			setupMock: func(repo *reservationMocks.MockReservation, items *catalogMocks.MockServiceItem) {
				items.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(catalogModel.ServiceItem{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "item unavailable",
			setupMock: func(repo *reservationMocks.MockReservation, items *catalogMocks.MockServiceItem) {
				items.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(catalogModel.ServiceItem{ID: "item-1", IsAvailable: false, Metadata: metadata()}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, items := newService(t)
			tt.setupMock(repo, items)

			req := dto.CreateReservationRequest{
				ServiceItemID: "item-1",
				Date:          "2026-09-10",
				Time:          "14:00",
			}

			res, err := svc.Create(userContext("user-1", constant.RoleCustomer), req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "res-1", res.ID)
			assert.Equal(t, constant.ReservationStatusPending, res.Status)
			assert.NotNil(t, res.Item)
			assert.Equal(t, "Haircut", res.Item.Name)
		})
	}
}

func TestReservationService_Get(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		found    model.Reservation
		wantErr  bool
		wantCode int
	}{
		{
			name:  "owner reads own reservation",
			ctx:   userContext("user-1", constant.RoleCustomer),
			found: pendingReservation("res-1", "user-1"),
		},
		{
			name:     "someone else's reservation reads as not found",
			ctx:      userContext("user-2", constant.RoleCustomer),
			found:    pendingReservation("res-1", "user-1"),
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name:  "admin reads any reservation",
			ctx:   userContext("admin-1", constant.RoleAdmin),
			found: pendingReservation("res-1", "user-1"),
		},
		{
			name:     "absent reservation",
			ctx:      userContext("user-1", constant.RoleCustomer),
			found:    model.Reservation{},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)

			repo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(tt.found, nil)

			res, err := svc.Get(tt.ctx, "res-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.found.ID, res.ID)
		})
	}
}

func TestReservationService_Update(t *testing.T) {
	confirmed := constant.ReservationStatusConfirmed
	completed := constant.ReservationStatusCompleted

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.UpdateReservationRequest
		current   model.Reservation
		wantErr   bool
		wantCode  int
		expectUpd bool
	}{
		{
			name:      "owner reschedules a pending reservation",
			ctx:       userContext("user-1", constant.RoleCustomer),
			req:       dto.UpdateReservationRequest{Date: "2026-09-12", Time: "16:00"},
			current:   pendingReservation("res-1", "user-1"),
			expectUpd: true,
		},
		{
			name:     "owner cannot touch status",
			ctx:      userContext("user-1", constant.RoleCustomer),
			req:      dto.UpdateReservationRequest{Status: &confirmed},
			current:  pendingReservation("res-1", "user-1"),
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name: "owner cannot update a confirmed reservation",
			ctx:  userContext("user-1", constant.RoleCustomer),
			req:  dto.UpdateReservationRequest{Time: "16:00"},
			current: func() model.Reservation {
				r := pendingReservation("res-1", "user-1")
				r.Status = constant.ReservationStatusConfirmed
				return r
			}(),
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name:      "admin confirms a pending reservation",
			ctx:       userContext("admin-1", constant.RoleAdmin),
			req:       dto.UpdateReservationRequest{Status: &confirmed},
			current:   pendingReservation("res-1", "user-1"),
			expectUpd: true,
		},
		{
			name:     "admin cannot complete a pending reservation",
			ctx:      userContext("admin-1", constant.RoleAdmin),
			req:      dto.UpdateReservationRequest{Status: &completed},
			current:  pendingReservation("res-1", "user-1"),
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)

			repo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(tt.current, nil)

			if tt.expectUpd {
				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			}

			err := svc.Update(tt.ctx, tt.req, "res-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestReservationService_ListOwn(t *testing.T) {
	svc, repo, _ := newService(t)
	ctx := userContext("user-1", constant.RoleCustomer)

	repo.EXPECT().Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			assert.Len(t, filter.Filters, 1)

			ownFilter, ok := filter.Filters[0].(gDto.Filter)
			assert.True(t, ok)
			assert.Equal(t, model.FieldUserID, ownFilter.Field)
			assert.Equal(t, "user-1", ownFilter.Value)

			return 1, nil
		})
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Reservation, error) {
			assert.Equal(t, model.SortRecentFirst, params.OrderBy)

			return []model.Reservation{pendingReservation("res-1", "user-1")}, nil
		})

	res, err := svc.ListOwn(ctx, gDto.QueryParams{Limit: 10})

	assert.NoError(t, err)
	assert.Len(t, res.Reservations, 1)
	assert.Equal(t, 1, res.TotalData)
}

func TestReservationService_UpdateEmptyRequest(t *testing.T) {
	svc, _, _ := newService(t)

	err := svc.Update(userContext("user-1", constant.RoleCustomer), dto.UpdateReservationRequest{}, "res-1")

	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestReservationService_Cancel(t *testing.T) {
	tests := []struct {
		name      string
		current   model.Reservation
		wantErr   bool
		wantCode  int
		expectUpd bool
	}{
		{
			name:      "pending reservation cancels",
			current:   pendingReservation("res-1", "user-1"),
			expectUpd: true,
		},
		{
			name: "confirmed reservation cancels",
			current: func() model.Reservation {
				r := pendingReservation("res-1", "user-1")
				r.Status = constant.ReservationStatusConfirmed
				return r
			}(),
			expectUpd: true,
		},
		{
			name: "cancelling twice is a no-op",
			current: func() model.Reservation {
				r := pendingReservation("res-1", "user-1")
				r.Status = constant.ReservationStatusCancelled
				return r
			}(),
		},
		{
			name: "completed reservation cannot be cancelled",
			current: func() model.Reservation {
				r := pendingReservation("res-1", "user-1")
				r.Status = constant.ReservationStatusCompleted
				return r
			}(),
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)

			repo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(tt.current, nil)

			if tt.expectUpd {
				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, fields map[string]any, filter any) error {
						assert.Equal(t, constant.ReservationStatusCancelled, fields[model.FieldStatus])
						return nil
					})
			}

			err := svc.Cancel(userContext("user-1", constant.RoleCustomer), "res-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				return
			}

			assert.NoError(t, err)
		})
	}
}
