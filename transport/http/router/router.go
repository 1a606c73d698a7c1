package router

import (
	"hotel/internal/handlers/auth"
	"hotel/internal/handlers/booking"
	"hotel/internal/handlers/room"

	"github.com/go-chi/chi/v5"
)

// APIVersion prefixes every domain route and every path in permissions.json.
const APIVersion = "/v1"

type routable interface {
	Router(router chi.Router)
}

type DomainHandlers struct {
	Auth    auth.Handler
	Room    room.Handler
	Booking booking.Handler
}

func (d *DomainHandlers) all() []routable {
	return []routable{&d.Auth, &d.Room, &d.Booking}
}

type Router struct {
	DomainHandlers DomainHandlers
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route(APIVersion, func(routerGroup chi.Router) {
		for _, handler := range r.DomainHandlers.all() {
			handler.Router(routerGroup)
		}
	})
}
