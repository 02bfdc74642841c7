package api

import (
	"net/http"

	"reverie/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	routes.Register(
		mux,
		domain.Entries.Handler().Routes(),
	)
}
