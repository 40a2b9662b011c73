package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"reserva/config"
	"reserva/infras/kafka"
	"reserva/infras/otel"
	catalogModel "reserva/internal/domains/catalog/model"
	catalogRepo "reserva/internal/domains/catalog/repository"
	"reserva/internal/domains/reservation/model"
	"reserva/internal/domains/reservation/model/dto"
	"reserva/internal/domains/reservation/repository"
	"reserva/shared"
	"reserva/shared/cache"
	"reserva/shared/constant"
	gDto "reserva/shared/dto"
	"reserva/shared/failure"
	"reserva/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllReservation = "reservation:gets"
	cacheCountReservation  = "reservation:count"
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	ListOwn(ctx context.Context, params gDto.QueryParams) (dto.GetReservationsResponse, error)
	ListAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	Update(ctx context.Context, req dto.UpdateReservationRequest, id string) error
	Cancel(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Reservation
	itemRepo catalogRepo.ServiceItem
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	producer kafka.Producer
}

func New(repo repository.Reservation, itemRepo catalogRepo.ServiceItem, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, producer kafka.Producer) Reservation {
	return &serviceImpl{
		repo:     repo,
		itemRepo: itemRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		producer: producer,
	}
}

func caller(ctx context.Context) (id, role string, elevated bool) {
	id, _ = ctx.Value(constant.ContextKeyUserID).(string)
	role, _ = ctx.Value(constant.ContextKeyUserRole).(string)
	elevated = role == constant.RoleAdmin || role == constant.RoleOwner

	return id, role, elevated
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _, _ := caller(ctx)

	item, err := s.itemRepo.Get(ctx, shared.FilterByID(req.ServiceItemID, catalogModel.FieldID, catalogModel.ItemTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service item")

		return res, fmt.Errorf("failed to get service item: %w", err)
	}

	if item.ID == constant.Empty {
		return res, failure.NotFound("service item not found")
	}

	if !item.IsAvailable {
		return res, failure.BadRequestFromString("service item is not available")
	}

	reservation, err := req.ToModel(userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse reservation request")

		return res, failure.BadRequestFromString(err.Error())
	}

	if err = s.repo.Insert(ctx, reservation); err != nil {
		log.Error().Err(err).Msg("failed to create reservation")

		return res, fmt.Errorf("failed to create reservation: %w", err)
	}

	// Reload through the join so the response embeds item and service.
	created, err := s.repo.Get(ctx, shared.FilterByID(reservation.ID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to reload reservation")

		return res, fmt.Errorf("failed to reload reservation: %w", err)
	}

	res.FromModel(created)

	s.invalidateReservations(ctx)
	s.publishEvent(ctx, dto.EventReservationCreated, reservation.ID, userID, reservation.Status)

	return res, nil
}

func (s *serviceImpl) ListOwn(ctx context.Context, params gDto.QueryParams) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListOwn")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _, _ := caller(ctx)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    userID,
				Table:    model.TableName,
			},
		},
	}

	return s.list(ctx, params, filter)
}

func (s *serviceImpl) ListAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.list(ctx, params, filter)
}

func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	params.OrderBy = model.SortRecentFirst

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservation, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.count(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountReservation, gDto.QueryParams{}, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation count to cache")
		}
	}()

	return res, nil
}

// resolveOwned loads a reservation and applies the ownership rule: a row
// that exists but belongs to someone else reads as not found for regular
// callers so ids cannot be probed.
func (s *serviceImpl) resolveOwned(ctx context.Context, id string) (model.Reservation, error) {
	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return reservation, fmt.Errorf("failed to get reservation: %w", err)
	}

	callerID, _, elevated := caller(ctx)

	if reservation.ID == constant.Empty || (reservation.UserID != callerID && !elevated) {
		return reservation, failure.NotFound("reservation not found")
	}

	return reservation, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.resolveOwned(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateReservationRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	reservation, err := s.resolveOwned(ctx, id)
	if err != nil {
		return err
	}

	callerID, _, elevated := caller(ctx)

	if !elevated {
		if req.HasOperatorFields() {
			return failure.Forbidden("only operators can change status or payment")
		}

		if reservation.Status != constant.ReservationStatusPending {
			return failure.BadRequestFromString("cannot update a non-pending reservation")
		}
	}

	fields, err := req.ToFields(callerID)
	if err != nil {
		return failure.BadRequestFromString(err.Error())
	}

	statusChanged := false
	newStatus := reservation.Status

	if elevated && req.Status != nil && *req.Status != reservation.Status {
		if !model.CanTransition(reservation.Status, *req.Status) {
			return failure.BadRequestFromString(
				fmt.Sprintf("cannot transition reservation from %s to %s", reservation.Status, *req.Status))
		}

		newStatus = *req.Status
		fields[model.FieldStatus] = newStatus
		statusChanged = true
	}

	if elevated && req.Paid != nil {
		fields[model.FieldPaid] = *req.Paid
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update reservation")

		return fmt.Errorf("failed to update reservation: %w", err)
	}

	s.invalidateReservations(ctx)

	if statusChanged {
		s.publishEvent(ctx, dto.EventReservationStatusChanged, id, reservation.UserID, newStatus)
	}

	return nil
}

// Cancel soft-deletes by moving the reservation to cancelled. Cancelling
// an already cancelled reservation succeeds without touching the row.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.resolveOwned(ctx, id)
	if err != nil {
		return err
	}

	if reservation.Status == constant.ReservationStatusCancelled {
		return nil
	}

	if reservation.Status == constant.ReservationStatusCompleted {
		return failure.BadRequestFromString("cannot cancel a completed reservation")
	}

	callerID, _, _ := caller(ctx)

	fields := map[string]any{
		model.FieldStatus:        constant.ReservationStatusCancelled,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: callerID,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to cancel reservation")

		return fmt.Errorf("failed to cancel reservation: %w", err)
	}

	s.invalidateReservations(ctx)
	s.publishEvent(ctx, dto.EventReservationStatusChanged, id, reservation.UserID, constant.ReservationStatusCancelled)

	return nil
}

func (s *serviceImpl) invalidateReservations(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
	}()
}

// publishEvent emits a lifecycle event without blocking the request. The
// producer is a no-op when Kafka is disabled.
func (s *serviceImpl) publishEvent(ctx context.Context, eventType, reservationID, userID, status string) {
	go func() {
		c := context.WithoutCancel(ctx)

		event := dto.ReservationEvent{
			Type:          eventType,
			ReservationID: reservationID,
			UserID:        userID,
			Status:        status,
			OccurredAt:    timezone.Format(timezone.Now(), constant.DateFormat),
		}

		if err := s.producer.SendMessages(c, kafka.Message{Key: reservationID, Value: event}); err != nil {
			log.Error().Err(err).Str("type", eventType).Msg("failed to publish reservation event")
		}
	}()
}
