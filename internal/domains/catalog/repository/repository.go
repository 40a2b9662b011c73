package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"reserva/infras/otel"
	"reserva/infras/postgres"
	"reserva/internal/domains/catalog/model"
	"reserva/shared/constant"
	gDto "reserva/shared/dto"
	"reserva/shared/logger"
	gRepo "reserva/shared/repository"
)

type Service interface {
	Insert(ctx context.Context, model model.Service) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Service, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Service, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type ServiceItem interface {
	Insert(ctx context.Context, model model.ServiceItem) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.ServiceItem, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ServiceItem, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	CountByService(ctx context.Context) (map[string]int, error)
}

type serviceRepositoryImpl struct {
	gRepo.Repository[model.Service]
	db   *postgres.Connection
	otel otel.Otel
}

func NewService(db *postgres.Connection, otel otel.Otel) Service {
	return &serviceRepositoryImpl{
		Repository: gRepo.NewRepository[model.Service](model.ServiceEntityName, model.ServiceTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type itemRepositoryImpl struct {
	gRepo.Repository[model.ServiceItem]
	db   *postgres.Connection
	otel otel.Otel
}

func NewServiceItem(db *postgres.Connection, otel otel.Otel) ServiceItem {
	return &itemRepositoryImpl{
		Repository: gRepo.NewRepository[model.ServiceItem](model.ItemEntityName, model.ItemTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// CountByService counts every item per service, unavailable ones included.
func (repo *itemRepositoryImpl) CountByService(ctx context.Context) (map[string]int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".service_item.CountByService")
	defer scope.End()

	query := fmt.Sprintf("SELECT %s, COUNT(%s) AS item_count FROM %s GROUP BY %s",
		model.FieldServiceID, model.FieldID, model.ItemTableName, model.FieldServiceID)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	rows := []struct {
		ServiceID string `db:"service_id"`
		ItemCount int    `db:"item_count"`
	}{}

	if err := repo.db.Read.SelectContext(ctx, &rows, query); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to count items per service: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.ServiceID] = row.ItemCount
	}

	return counts, nil
}
