// Package domain holds the asset search types, DTOs and ports
package domain

import (
	"fmt"

	"assetsearch/internal/core/paging"
	"assetsearch/internal/core/query"
)

// Outcome classifies how a search ended; it is the metrics label and the view selector
type Outcome string

const (
	// OutcomeEmpty means no term was given
	OutcomeEmpty Outcome = "empty"
	// OutcomeAdvisory means the term was too short and no query ran
	OutcomeAdvisory Outcome = "advisory"
	// OutcomeNoMatches means both sources returned nothing for the term
	OutcomeNoMatches Outcome = "no_matches"
	// OutcomeResults means at least one record matched
	OutcomeResults Outcome = "results"
	// OutcomeUnavailable means the store failed
	OutcomeUnavailable Outcome = "unavailable"
)

// Advisory is the notice shown when the term is shorter than min code points
func Advisory(min int) string {
	return fmt.Sprintf("搜索词太短了呢，为了避免服务器超时，请至少输入 %d 个字符以上再搜索吧 (｡•́︿•̀｡)", min)
}

// SearchQuery is one search request after binding
type SearchQuery struct {
	Term string
	Page int
}

// AssetRecord is the normalized view over both sources
type AssetRecord struct {
	Name        string       `json:"name" example:"Neko Maid"`
	Description string       `json:"description" example:"quest compatible"`
	Author      string       `json:"author" example:"yingxue"`
	GUID        string       `json:"guid" example:"avtr_3c1f0a52-9d7e-4c1b-8f10-5b2d7c9e0a11"`
	Source      query.Source `json:"-"`
	Label       string       `json:"source" example:"Avatar库1"`
}

// Result is one search answered, whatever the outcome
type Result struct {
	Term     string
	Outcome  Outcome
	Advisory string
	Records  []AssetRecord
	Paging   paging.State
}

// TotalCount is the number of matching rows across both sources
func (r Result) TotalCount() int { return r.Paging.Total }

// TotalPages is ceil(total / page size)
func (r Result) TotalPages() int { return r.Paging.TotalPages }

// CurrentPage is the normalized requested page
func (r Result) CurrentPage() int { return r.Paging.Current }
