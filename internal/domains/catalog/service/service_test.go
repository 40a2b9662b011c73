package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"reserva/config"
	"reserva/infras/otel/mocks"
	catalogMocks "reserva/internal/domains/catalog/mocks"
	"reserva/internal/domains/catalog/model"
	"reserva/internal/domains/catalog/model/dto"
	"reserva/internal/domains/catalog/service"
	"reserva/shared/cache"
	"reserva/shared/failure"
	gModel "reserva/shared/model"
	"reserva/shared/timezone"
)

// stubCache always misses so the services hit their repositories. It also
// swallows the async save and invalidation calls.
type stubCache struct{}

func (stubCache) Save(context.Context, string, any, int) error { return nil }
func (stubCache) Get(context.Context, string, any) error       { return cache.Nil }
func (stubCache) Delete(context.Context, string) error         { return nil }
func (stubCache) Clear(context.Context, string) error          { return nil }

func stringPtr(s string) *string { return &s }

func metadata() gModel.Metadata {
	return gModel.Metadata{
		CreatedAt:  timezone.Now(),
		ModifiedAt: timezone.Now(),
		CreatedBy:  "system",
		ModifiedBy: "system",
	}
}

func TestCatalogService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockServices := catalogMocks.NewMockService(ctrl)
	mockItems := catalogMocks.NewMockServiceItem(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockServices, mockItems, &config.Config{}, stubCache{}, mockOtel)

	salon := model.Service{ID: "svc-salon", Name: "Salon", Metadata: metadata()}
	catering := model.Service{ID: "svc-catering", Name: "Catering", Metadata: metadata()}

	cheapCut := model.ServiceItem{ID: "item-1", ServiceID: "svc-salon", Name: "Haircut", Price: 50000, IsAvailable: true, Metadata: metadata()}
	dearCut := model.ServiceItem{ID: "item-2", ServiceID: "svc-salon", Name: "Coloring", Price: 150000, IsAvailable: true, Metadata: metadata()}

	mockServices.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Service{catering, salon}, nil)

	mockItems.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.ServiceItem{cheapCut, dearCut}, nil)

	// Salon has a third, unavailable item that the listing excludes but the
	// count still includes.
	mockItems.EXPECT().
		CountByService(gomock.Any()).
		Return(map[string]int{"svc-salon": 3, "svc-catering": 0}, nil)

	res, err := svc.GetAll(context.Background())

	assert.NoError(t, err)
	assert.Len(t, res.Services, 2)
	assert.Equal(t, "svc-catering", res.Services[0].ID)
	assert.Equal(t, 0, res.Services[0].ItemCount)
	assert.Empty(t, res.Services[0].Items)
	assert.Equal(t, "svc-salon", res.Services[1].ID)
	assert.Equal(t, 3, res.Services[1].ItemCount)
	assert.Len(t, res.Services[1].Items, 2)
	assert.Equal(t, "item-1", res.Services[1].Items[0].ID)
}

func TestCatalogService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(services *catalogMocks.MockService, items *catalogMocks.MockServiceItem)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "found with available items",
			setupMock: func(services *catalogMocks.MockService, items *catalogMocks.MockServiceItem) {
				services.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Service{ID: "svc-1", Name: "Makeup", Metadata: metadata()}, nil)
				items.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.ServiceItem{{ID: "item-1", ServiceID: "svc-1", Price: 80000, IsAvailable: true, Metadata: metadata()}}, nil)
				items.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(2, nil)
			},
		},
		{
			name: "not found",
			setupMock: func(services *catalogMocks.MockService, items *catalogMocks.MockServiceItem) {
				services.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Service{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "repository error",
			setupMock: func(services *catalogMocks.MockService, items *catalogMocks.MockServiceItem) {
				services.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Service{}, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockServices := catalogMocks.NewMockService(ctrl)
			mockItems := catalogMocks.NewMockServiceItem(ctrl)
			svc := service.New(mockServices, mockItems, &config.Config{}, stubCache{}, mocks.NewOtel())

			tt.setupMock(mockServices, mockItems)

			res, err := svc.Get(context.Background(), "svc-1")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "svc-1", res.ID)
			assert.Len(t, res.Items, 1)
			assert.Equal(t, 2, res.ItemCount)
		})
	}
}

func TestCatalogService_GetItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockServices := catalogMocks.NewMockService(ctrl)
	mockItems := catalogMocks.NewMockServiceItem(ctrl)
	svc := service.New(mockServices, mockItems, &config.Config{}, stubCache{}, mocks.NewOtel())

	// Unavailable items still resolve on a direct read.
	mockItems.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.ServiceItem{ID: "item-1", ServiceID: "svc-1", Name: "Bridal", Price: 500000, IsAvailable: false, Metadata: metadata()}, nil)
	mockServices.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Service{ID: "svc-1", Name: "Makeup", Metadata: metadata()}, nil)

	res, err := svc.GetItem(context.Background(), "item-1")

	assert.NoError(t, err)
	assert.Equal(t, "item-1", res.ID)
	assert.False(t, res.IsAvailable)
	assert.Equal(t, "svc-1", res.Service.ID)
	assert.Equal(t, "Makeup", res.Service.Name)
}

func TestCatalogService_CreateService(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(services *catalogMocks.MockService)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "created",
			setupMock: func(services *catalogMocks.MockService) {
				services.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				services.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "duplicate name",
			setupMock: func(services *catalogMocks.MockService) {
				services.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockServices := catalogMocks.NewMockService(ctrl)
			mockItems := catalogMocks.NewMockServiceItem(ctrl)
			svc := service.New(mockServices, mockItems, &config.Config{}, stubCache{}, mocks.NewOtel())

			tt.setupMock(mockServices)

			err := svc.CreateService(context.Background(), dto.CreateServiceRequest{Name: "Salon", Description: stringPtr("hair and beauty")})

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCatalogService_CreateItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockServices := catalogMocks.NewMockService(ctrl)
	mockItems := catalogMocks.NewMockServiceItem(ctrl)
	svc := service.New(mockServices, mockItems, &config.Config{}, stubCache{}, mocks.NewOtel())

	mockServices.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

	err := svc.CreateItem(context.Background(), dto.CreateServiceItemRequest{Name: "Haircut", Price: 50000}, "missing-svc")

	assert.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}

func TestCatalogService_UpdateService(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockServices := catalogMocks.NewMockService(ctrl)
	mockItems := catalogMocks.NewMockServiceItem(ctrl)
	svc := service.New(mockServices, mockItems, &config.Config{}, stubCache{}, mocks.NewOtel())

	err := svc.UpdateService(context.Background(), dto.UpdateServiceRequest{}, "svc-1")

	assert.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
}

func TestCatalogService_DeleteService(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockServices := catalogMocks.NewMockService(ctrl)
	mockItems := catalogMocks.NewMockServiceItem(ctrl)
	svc := service.New(mockServices, mockItems, &config.Config{}, stubCache{}, mocks.NewOtel())

	mockServices.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	mockServices.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

	assert.NoError(t, svc.DeleteService(context.Background(), "svc-1"))
}
