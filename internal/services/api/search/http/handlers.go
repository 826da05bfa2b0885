// Package http provides the JSON transport for asset search
package http

import (
	stdhttp "net/http"

	"assetsearch/internal/modkit/httpkit"
	"assetsearch/internal/services/api/search/domain"
)

// Register mounts search endpoints on the given router
func Register(r httpkit.Router, s domain.Searcher) {
	h := &handlers{svc: s}
	httpkit.GetQuery[domain.SearchInput](r, "/search", h.search)
}

type handlers struct{ svc domain.Searcher }

// swagger:route GET /assets/search Assets assetsSearch
// @Summary Search avatars by name or author
// @Description Case insensitive substring search over both avatar libraries, 20 per page.
// @Description A term shorter than two characters returns 200 with an advisory and no records
// @Tags Assets
// @Produce json
// @Param q query string false "Search term" maxlength(200)
// @Param page query int false "Page number, values below 1 mean 1" default(1)
// @Success 200 {object} domain.SearchResponse "ok"
// @Failure 400 {object} httpkit.Envelope "invalid term"
// @Failure 429 {object} httpkit.Envelope "rate limited"
// @Failure 503 {object} httpkit.Envelope "search unavailable"
// @Router /assets/search [get]
func (h *handlers) search(r *stdhttp.Request, in domain.SearchInput) (any, error) {
	res, err := h.svc.Search(r.Context(), in.Query())
	if err != nil {
		return nil, err
	}
	return domain.Response(res), nil
}
