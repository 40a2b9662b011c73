package router

import (
	"reserva/internal/handlers/analytics"
	"reserva/internal/handlers/auth"
	"reserva/internal/handlers/catalog"
	"reserva/internal/handlers/reservation"
	"reserva/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth        auth.Handler
	Catalog     catalog.Handler
	Reservation reservation.Handler
	Analytics   analytics.Handler
	User        user.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Auth.Router(router)

	router.Route("/api", func(routerGroup chi.Router) {
		r.DomainHandlers.Catalog.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Analytics.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
