package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"reserva/config"
	"reserva/infras/otel"
	"reserva/internal/domains/catalog/model"
	"reserva/internal/domains/catalog/model/dto"
	"reserva/internal/domains/catalog/repository"
	"reserva/shared"
	"reserva/shared/cache"
	"reserva/shared/constant"
	gDto "reserva/shared/dto"
	"reserva/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetService    = "catalog:service"
	cacheGetAllService = "catalog:services"
	cacheGetItem       = "catalog:item"
)

// Catalog exposes the service and item tree: public reads plus the
// admin-gated mutations.
type Catalog interface {
	GetAll(ctx context.Context) (dto.GetServicesResponse, error)
	Get(ctx context.Context, id string) (dto.ServiceResponse, error)
	GetItem(ctx context.Context, id string) (dto.ItemWithServiceResponse, error)
	CreateService(ctx context.Context, req dto.CreateServiceRequest) error
	UpdateService(ctx context.Context, req dto.UpdateServiceRequest, id string) error
	DeleteService(ctx context.Context, id string) error
	CreateItem(ctx context.Context, req dto.CreateServiceItemRequest, serviceID string) error
	UpdateItem(ctx context.Context, req dto.UpdateServiceItemRequest, id string) error
	DeleteItem(ctx context.Context, id string) error
}

type serviceImpl struct {
	services repository.Service
	items    repository.ServiceItem
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(services repository.Service, items repository.ServiceItem, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Catalog {
	return &serviceImpl{
		services: services,
		items:    items,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func availableItemsFilter(serviceID string) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			Field:    model.FieldIsAvailable,
			Operator: gDto.FilterOperatorEq,
			Value:    true,
			Table:    model.ItemTableName,
		},
	}

	if serviceID != constant.Empty {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldServiceID,
			Operator: gDto.FilterOperatorEq,
			Value:    serviceID,
			Table:    model.ItemTableName,
		})
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	}
}

func priceAscending() gDto.QueryParams {
	return gDto.QueryParams{SortBy: model.FieldPrice, SortDir: gDto.SortDirAsc}
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetServicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAllService, "all")

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for services")

		return res, nil
	}

	services, err := s.services.GetAll(ctx,
		gDto.QueryParams{SortBy: model.FieldName, SortDir: gDto.SortDirAsc},
		gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get services")

		return res, fmt.Errorf("failed to get services: %w", err)
	}

	items, err := s.items.GetAll(ctx, priceAscending(), availableItemsFilter(constant.Empty))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service items")

		return res, fmt.Errorf("failed to get service items: %w", err)
	}

	counts, err := s.items.CountByService(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to count service items")

		return res, fmt.Errorf("failed to count service items: %w", err)
	}

	itemsByService := make(map[string][]model.ServiceItem, len(services))
	for _, item := range items {
		itemsByService[item.ServiceID] = append(itemsByService[item.ServiceID], item)
	}

	res.Services = make([]dto.ServiceResponse, len(services))
	for i, svc := range services {
		res.Services[i].FromModel(svc, itemsByService[svc.ID], counts[svc.ID])
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save services to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetService, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	service, err := s.services.Get(ctx, shared.FilterByID(id, model.FieldID, model.ServiceTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service")

		return res, fmt.Errorf("failed to get service: %w", err)
	}

	if service.ID == constant.Empty {
		return res, failure.NotFound("service not found")
	}

	items, err := s.items.GetAll(ctx, priceAscending(), availableItemsFilter(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service items")

		return res, fmt.Errorf("failed to get service items: %w", err)
	}

	count, err := s.items.Count(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldServiceID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    model.ItemTableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to count service items")

		return res, fmt.Errorf("failed to count service items: %w", err)
	}

	res.FromModel(service, items, count)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save service to cache")
		}
	}()

	return res, nil
}

// GetItem returns one item with its parent service embedded, regardless of
// the item's availability flag.
func (s *serviceImpl) GetItem(ctx context.Context, id string) (res dto.ItemWithServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetItem")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetItem, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	item, err := s.items.Get(ctx, shared.FilterByID(id, model.FieldID, model.ItemTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service item")

		return res, fmt.Errorf("failed to get service item: %w", err)
	}

	if item.ID == constant.Empty {
		return res, failure.NotFound("service item not found")
	}

	service, err := s.services.Get(ctx, shared.FilterByID(item.ServiceID, model.FieldID, model.ServiceTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get parent service")

		return res, fmt.Errorf("failed to get parent service: %w", err)
	}

	res.FromModels(item, service)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save service item to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) CreateService(ctx context.Context, req dto.CreateServiceRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateService")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exists, err := s.services.Exist(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldName,
				Operator: gDto.FilterOperatorEq,
				Value:    req.Name,
				Table:    model.ServiceTableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check if service exists")

		return fmt.Errorf("failed to check if service exists: %w", err)
	}

	if exists {
		return failure.Conflict("service name already exists")
	}

	if err = s.services.Insert(ctx, req.ToModel(userID)); err != nil {
		log.Error().Err(err).Msg("failed to create service")

		return fmt.Errorf("failed to create service: %w", err)
	}

	s.invalidateCatalog(ctx)

	return nil
}

func (s *serviceImpl) UpdateService(ctx context.Context, req dto.UpdateServiceRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateService")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateServiceRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.ServiceTableName)

	exist, err := s.services.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if service exists")

		return fmt.Errorf("failed to check if service exists: %w", err)
	}

	if !exist {
		return failure.NotFound("service not found")
	}

	if err = s.services.Update(ctx, shared.TransformFields(req, userID), filter); err != nil {
		log.Error().Err(err).Msg("failed to update service")

		return fmt.Errorf("failed to update service: %w", err)
	}

	s.invalidateCatalog(ctx)

	return nil
}

// DeleteService removes the service; its items go with it through the
// ON DELETE CASCADE constraint.
func (s *serviceImpl) DeleteService(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteService")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.ServiceTableName)

	exist, err := s.services.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if service exists")

		return fmt.Errorf("failed to check if service exists: %w", err)
	}

	if !exist {
		return failure.NotFound("service not found")
	}

	if err = s.services.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete service")

		return fmt.Errorf("failed to delete service: %w", err)
	}

	s.invalidateCatalog(ctx)

	return nil
}

func (s *serviceImpl) CreateItem(ctx context.Context, req dto.CreateServiceItemRequest, serviceID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateItem")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	serviceExists, err := s.services.Exist(ctx, shared.FilterByID(serviceID, model.FieldID, model.ServiceTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if service exists")

		return fmt.Errorf("failed to check if service exists: %w", err)
	}

	if !serviceExists {
		return failure.NotFound("service not found")
	}

	if err = s.items.Insert(ctx, req.ToModel(serviceID, userID)); err != nil {
		log.Error().Err(err).Msg("failed to create service item")

		return fmt.Errorf("failed to create service item: %w", err)
	}

	s.invalidateCatalog(ctx)

	return nil
}

func (s *serviceImpl) UpdateItem(ctx context.Context, req dto.UpdateServiceItemRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateItem")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateServiceItemRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.ItemTableName)

	exist, err := s.items.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if service item exists")

		return fmt.Errorf("failed to check if service item exists: %w", err)
	}

	if !exist {
		return failure.NotFound("service item not found")
	}

	if err = s.items.Update(ctx, shared.TransformFields(req, userID), filter); err != nil {
		log.Error().Err(err).Msg("failed to update service item")

		return fmt.Errorf("failed to update service item: %w", err)
	}

	s.invalidateCatalog(ctx)

	return nil
}

func (s *serviceImpl) DeleteItem(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteItem")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.ItemTableName)

	exist, err := s.items.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if service item exists")

		return fmt.Errorf("failed to check if service item exists: %w", err)
	}

	if !exist {
		return failure.NotFound("service item not found")
	}

	if err = s.items.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete service item")

		return fmt.Errorf("failed to delete service item: %w", err)
	}

	s.invalidateCatalog(ctx)

	return nil
}

func (s *serviceImpl) invalidateCatalog(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllService)
		shared.InvalidateCaches(c, s.cache, cacheGetService)
		shared.InvalidateCaches(c, s.cache, cacheGetItem)
	}()
}
