package router

import "net/http"

type LedgerRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

type CustomerRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

type AdminRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

func New(
	ledgerController LedgerRouteRegistrar,
	customerController CustomerRouteRegistrar,
	adminController AdminRouteRegistrar,
	authMiddleware func(http.Handler) http.Handler,
) *http.ServeMux {
	mux := http.NewServeMux()
	registerSwaggerRoutes(mux)

	if ledgerController != nil {
		ledgerController.RegisterRoutes(mux, authMiddleware)
	}
	if customerController != nil {
		customerController.RegisterRoutes(mux, authMiddleware)
	}
	if adminController != nil {
		adminController.RegisterRoutes(mux, authMiddleware)
	}

	return mux
}
