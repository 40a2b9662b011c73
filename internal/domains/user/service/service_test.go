package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"reserva/config"
	"reserva/infras/otel/mocks"
	userMocks "reserva/internal/domains/user/mocks"
	"reserva/internal/domains/user/model"
	"reserva/internal/domains/user/model/dto"
	"reserva/internal/domains/user/service"
	"reserva/shared/cache"
	"reserva/shared/constant"
	gDto "reserva/shared/dto"
	"reserva/shared/failure"
	gModel "reserva/shared/model"
	"reserva/shared/timezone"
)

type stubCache struct{}

func (stubCache) Save(context.Context, string, any, int) error { return nil }
func (stubCache) Get(context.Context, string, any) error       { return cache.Nil }
func (stubCache) Delete(context.Context, string) error         { return nil }
func (stubCache) Clear(context.Context, string) error          { return nil }

func stringPtr(s string) *string { return &s }

func newService(t *testing.T) (service.User, *userMocks.MockUser) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := userMocks.NewMockUser(ctrl)
	svc := service.New(repo, &config.Config{}, stubCache{}, mocks.NewOtel())

	return svc, repo
}

func callerContext(id, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func sampleUser(id string) model.User {
	return model.User{
		ID:       id,
		Email:    id + "@example.com",
		FullName: "Sample User",
		Role:     constant.RoleCustomer,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "system",
			ModifiedBy: "system",
		},
	}
}

func TestUserService_GetAll(t *testing.T) {
	svc, repo := newService(t)

	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.User{sampleUser("user-1"), sampleUser("user-2")}, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Limit: 10}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Len(t, res.Users, 2)
	assert.Equal(t, 2, res.TotalData)
}

func TestUserService_Get(t *testing.T) {
	tests := []struct {
		name     string
		found    model.User
		wantErr  bool
		wantCode int
	}{
		{
			name:  "found",
			found: sampleUser("user-1"),
		},
		{
			name:     "absent",
			found:    model.User{},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)

			repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.found, nil)

			res, err := svc.Get(context.Background(), "user-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "user-1", res.ID)
		})
	}
}

func TestUserService_Update(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.UpdateUserRequest
		wantErr   bool
		wantCode  int
		expectUpd bool
	}{
		{
			name:      "admin edits a profile",
			ctx:       callerContext("admin-1", constant.RoleAdmin),
			req:       dto.UpdateUserRequest{FullName: stringPtr("New Name")},
			expectUpd: true,
		},
		{
			name:      "owner changes a role",
			ctx:       callerContext("owner-1", constant.RoleOwner),
			req:       dto.UpdateUserRequest{Role: stringPtr(constant.RoleAdmin)},
			expectUpd: true,
		},
		{
			name:     "admin cannot change roles",
			ctx:      callerContext("admin-1", constant.RoleAdmin),
			req:      dto.UpdateUserRequest{Role: stringPtr(constant.RoleAdmin)},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)

			if tt.expectUpd {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			}

			err := svc.Update(tt.ctx, tt.req, "user-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestUserService_UpdateAbsentUser(t *testing.T) {
	svc, repo := newService(t)

	repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

	err := svc.Update(callerContext("admin-1", constant.RoleAdmin), dto.UpdateUserRequest{FullName: stringPtr("x")}, "ghost")

	assert.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestUserService_UpdateEmptyRequest(t *testing.T) {
	svc, _ := newService(t)

	err := svc.Update(callerContext("admin-1", constant.RoleAdmin), dto.UpdateUserRequest{}, "user-1")

	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}
