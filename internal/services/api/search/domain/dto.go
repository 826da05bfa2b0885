package domain

// SearchInput is bound from the query string of the page and the JSON API
type SearchInput struct {
	Q    string `query:"q" validate:"max=200,printable" example:"neko"`
	Page int    `query:"page,lenient" example:"1"`
}

// Query converts bound input to a SearchQuery
func (in SearchInput) Query() SearchQuery { return SearchQuery{Term: in.Q, Page: in.Page} }

// Pagination is the JSON view of the pagination block
type Pagination struct {
	Total      int   `json:"total" example:"45"`
	Page       int   `json:"page" example:"2"`
	PageSize   int   `json:"page_size" example:"20"`
	TotalPages int   `json:"total_pages" example:"3"`
	Window     []int `json:"window" example:"1,2,3"`
	HasPrev    bool  `json:"has_prev" example:"true"`
	HasNext    bool  `json:"has_next" example:"true"`
}

// SearchResponse is the JSON API payload
type SearchResponse struct {
	Term       string        `json:"term" example:"neko"`
	Outcome    Outcome       `json:"outcome" example:"results"`
	Advisory   string        `json:"advisory,omitempty"`
	Records    []AssetRecord `json:"records"`
	Pagination Pagination    `json:"pagination"`
}

// Response builds the JSON payload for r
func Response(r Result) SearchResponse {
	recs := r.Records
	if recs == nil {
		recs = []AssetRecord{}
	}
	window := []int{}
	if r.Paging.TotalPages > 0 {
		window = r.Paging.Window.Pages()
	}
	return SearchResponse{
		Term:     r.Term,
		Outcome:  r.Outcome,
		Advisory: r.Advisory,
		Records:  recs,
		Pagination: Pagination{
			Total:      r.Paging.Total,
			Page:       r.Paging.Current,
			PageSize:   r.Paging.PerPage,
			TotalPages: r.Paging.TotalPages,
			Window:     window,
			HasPrev:    r.Paging.HasPrev,
			HasNext:    r.Paging.HasNext,
		},
	}
}
