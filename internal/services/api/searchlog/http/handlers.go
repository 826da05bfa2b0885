// Package http provides http transport for the search event log
package http

import (
	stdhttp "net/http"

	"assetsearch/internal/modkit/httpkit"
	"assetsearch/internal/services/api/searchlog/domain"
	svc "assetsearch/internal/services/api/searchlog/service"
)

// Register mounts searchlog endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.GetQuery[domain.TopInput](r, "/top", h.top)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /searchlog/top SearchLog searchlogTop
// @Summary Most searched terms
// @Description Aggregates the search event log in ClickHouse. 503 when the event log is disabled
// @Tags SearchLog
// @Produce json
// @Param hours query int false "Window in hours (1-720)" default(24)
// @Param limit query int false "Number of terms (1-100)" default(10)
// @Success 200 {array} domain.TopTerm "ok"
// @Failure 503 {object} httpkit.Envelope "event log disabled or unavailable"
// @Router /searchlog/top [get]
func (h *handlers) top(r *stdhttp.Request, in domain.TopInput) (any, error) {
	return h.svc.Top(r.Context(), in)
}
