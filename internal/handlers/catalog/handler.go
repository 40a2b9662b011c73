package catalog

import (
	"net/http"

	"reserva/infras/otel"
	"reserva/internal/domains/catalog/model/dto"
	"reserva/internal/domains/catalog/service"
	"reserva/shared/constant"
	"reserva/shared/validator"
	"reserva/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Catalog
	otel    otel.Otel
}

func New(service service.Catalog, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/services", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetServices)
		routerGroup.Post("/", handler.CreateService)
		routerGroup.Get("/items/{id}", handler.GetServiceItem)
		routerGroup.Put("/items/{id}", handler.UpdateServiceItem)
		routerGroup.Delete("/items/{id}", handler.DeleteServiceItem)
		routerGroup.Get("/{id}", handler.GetService)
		routerGroup.Put("/{id}", handler.UpdateService)
		routerGroup.Delete("/{id}", handler.DeleteService)
		routerGroup.Post("/{id}/items", handler.CreateServiceItem)
	})
}

// GetServices lists every service with its available items.
// @Summary List services
// @Tags Catalog
// @Produce json
// @Success 200 {object} dto.GetServicesResponse "List of services"
// @Failure 500 {object} response.Error
// @Router /api/services [get]
func (handler *Handler) GetServices(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServices")
	defer scope.End()

	res, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get services")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetService retrieves one service with its available items.
// @Summary Get a service
// @Tags Catalog
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} dto.ServiceResponse
// @Failure 404 {object} response.Error
// @Router /api/services/{id} [get]
func (handler *Handler) GetService(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetService")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(request, "id"))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get service")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetServiceItem retrieves one item with its parent service embedded.
// @Summary Get a service item
// @Tags Catalog
// @Produce json
// @Param id path string true "Service Item ID"
// @Success 200 {object} dto.ItemWithServiceResponse
// @Failure 404 {object} response.Error
// @Router /api/services/items/{id} [get]
func (handler *Handler) GetServiceItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServiceItem")
	defer scope.End()

	res, err := handler.service.GetItem(ctx, chi.URLParam(request, "id"))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get service item")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// CreateService creates a service category.
// @Summary Create a service
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body dto.CreateServiceRequest true "Create Service Request"
// @Success 201 {object} response.Message "Service created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /api/services [post]
func (handler *Handler) CreateService(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateService")
	defer scope.End()

	req := dto.CreateServiceRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.CreateService(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create service")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusCreated, "Service created successfully")
}

// UpdateService updates a service category.
// @Summary Update a service
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Param request body dto.UpdateServiceRequest true "Update Service Request"
// @Success 200 {object} response.Message "Service updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/services/{id} [put]
func (handler *Handler) UpdateService(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateService")
	defer scope.End()

	req := dto.UpdateServiceRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.UpdateService(ctx, req, chi.URLParam(request, "id")); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update service")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Service updated successfully")
}

// DeleteService removes a service and, through the schema, its items.
// @Summary Delete a service
// @Tags Catalog
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} response.Message "Service deleted successfully"
// @Failure 404 {object} response.Error
// @Router /api/services/{id} [delete]
func (handler *Handler) DeleteService(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteService")
	defer scope.End()

	if err := handler.service.DeleteService(ctx, chi.URLParam(request, "id")); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete service")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Service deleted successfully")
}

// CreateServiceItem adds an item beneath a service.
// @Summary Create a service item
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Param request body dto.CreateServiceItemRequest true "Create Service Item Request"
// @Success 201 {object} response.Message "Service item created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/services/{id}/items [post]
func (handler *Handler) CreateServiceItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateServiceItem")
	defer scope.End()

	req := dto.CreateServiceItemRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.CreateItem(ctx, req, chi.URLParam(request, "id")); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create service item")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusCreated, "Service item created successfully")
}

// UpdateServiceItem updates an item.
// @Summary Update a service item
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Service Item ID"
// @Param request body dto.UpdateServiceItemRequest true "Update Service Item Request"
// @Success 200 {object} response.Message "Service item updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/services/items/{id} [put]
func (handler *Handler) UpdateServiceItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateServiceItem")
	defer scope.End()

	req := dto.UpdateServiceItemRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.UpdateItem(ctx, req, chi.URLParam(request, "id")); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update service item")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Service item updated successfully")
}

// DeleteServiceItem removes an item; reservations that point at it keep
// their rows with a null item reference.
// @Summary Delete a service item
// @Tags Catalog
// @Produce json
// @Param id path string true "Service Item ID"
// @Success 200 {object} response.Message "Service item deleted successfully"
// @Failure 404 {object} response.Error
// @Router /api/services/items/{id} [delete]
func (handler *Handler) DeleteServiceItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteServiceItem")
	defer scope.End()

	if err := handler.service.DeleteItem(ctx, chi.URLParam(request, "id")); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete service item")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Service item deleted successfully")
}
