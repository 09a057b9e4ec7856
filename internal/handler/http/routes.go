package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-api-gateway/internal/policy"
	"github.com/MKhiriev/go-api-gateway/internal/utils"
)

// stubbedPrefixes are served by the placeholder business handler. Each is
// mounted with the constant the route policy uses.
var stubbedPrefixes = []string{
	policy.PrefixOAuth2,
	policy.PrefixUsers,
	policy.PrefixMap,
	policy.PrefixContact,
	policy.PrefixPrivateAdmin,
	policy.PrefixPrivateProtected,
	policy.PrefixPrivateUsers,
	policy.PrefixPrivateNotifications,
	policy.PrefixPrivateMap,
}

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()

	// admission pipeline, in order
	router.Use(h.withTraceID)
	router.Use(h.withAccessLog)
	router.Use(middleware.Recoverer)
	router.Use(h.withCORS)
	router.Use(h.withRateLimit)
	router.Use(h.withRouteClassification)
	router.Use(h.authenticate)
	router.Use(h.authorize)

	router.Get("/health", h.health)
	router.Get("/api/version", h.getServerVersion)
	router.Get("/api/version/build", h.getBuildInfo)
	if h.metrics != nil {
		router.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}

	router.Route(policy.PrefixAuth, func(r chi.Router) {
		r.Post("/oauth/callback", h.oauthCallback)
		r.Get("/oauth/callback", h.oauthCallback)
	})

	for _, prefix := range stubbedPrefixes {
		router.Handle(prefix, http.HandlerFunc(h.stub))
		router.Handle(prefix+"/*", http.HandlerFunc(h.stub))
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return router
}
