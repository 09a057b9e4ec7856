package http

import (
	"net/http"

	"github.com/MKhiriev/go-api-gateway/internal/utils"
	"github.com/MKhiriev/go-api-gateway/models"
)

// stub stands in for the business services behind the gateway.
func (h *Handler) stub(w http.ResponseWriter, r *http.Request) {
	resp := models.StubResponse{
		Service:  h.routes.Service(r.URL.Path),
		Endpoint: r.URL.Path,
		Method:   r.Method,
	}
	if p, ok := utils.GetPrincipalFromContext(r.Context()); ok {
		resp.UserID = p.UserID
		resp.Role = p.Role
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}
