package analytics

import (
	"net/http"

	"reserva/infras/otel"
	"reserva/internal/domains/analytics/service"
	"reserva/shared/constant"
	"reserva/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Analytics
	otel    otel.Otel
}

func New(service service.Analytics, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/analytics", func(routerGroup chi.Router) {
		routerGroup.Get("/revenue", handler.GetRevenue)
	})
}

// GetRevenue reports total revenue, counts by status, the trailing twelve
// months of revenue, and top services by completed revenue.
// @Summary Revenue analytics
// @Tags Analytics
// @Produce json
// @Success 200 {object} dto.RevenueResponse
// @Failure 500 {object} response.Error
// @Router /api/analytics/revenue [get]
func (handler *Handler) GetRevenue(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRevenue")
	defer scope.End()

	res, err := handler.service.Revenue(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get revenue analytics")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
