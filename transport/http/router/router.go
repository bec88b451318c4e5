package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reservation/infras/metrics"
	"reservation/internal/handlers/booking"
	"reservation/internal/handlers/cancellation"
	"reservation/internal/handlers/hold"
	"reservation/transport/http/middleware"
)

type DomainHandlers struct {
	Hold         hold.Handler
	Booking      booking.Handler
	Cancellation cancellation.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthRole       middleware.AuthRole
	Metrics        *metrics.Metrics
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(r.Metrics.Registry, promhttp.HandlerOpts{}))

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthRole.APIKey, r.AuthRole.Auth, r.AuthRole.RBAC)

		r.DomainHandlers.Hold.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Cancellation.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole, m *metrics.Metrics) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthRole:       authRole,
		Metrics:        m,
	}
}
