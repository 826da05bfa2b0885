// Package render turns search results into the full html page or the results fragment
package render

import (
	"embed"
	"html/template"
	"io"
	"io/fs"

	"assetsearch/internal/core/paging"
	"assetsearch/internal/services/api/search/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var tmpl = template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))

// Texts shown outside the result cards
const (
	Title       = "Yingxue的VRChat资源检索库"
	Placeholder = "输入模型名称、作者或ID..."
	// UnavailableNotice replaces the driver message the page used to print
	UnavailableNotice = "数据库连接或查询失败，请稍后再试"
	RateLimitNotice   = "搜索太频繁了，请稍等一下再试 (｡•́︿•̀｡)"
)

// View is everything the templates read
type View struct {
	Term    string
	Outcome domain.Outcome
	// Notice is the advisory or the failure text, empty otherwise
	Notice  string
	Records []domain.AssetRecord
	Paging  paging.State
	Links   []paging.PageLink
}

// FromResult builds the view for a search; err only decides the failure notice
func FromResult(res domain.Result, err error) View {
	v := View{
		Term:    res.Term,
		Outcome: res.Outcome,
		Records: res.Records,
		Paging:  res.Paging,
	}
	switch {
	case err != nil || res.Outcome == domain.OutcomeUnavailable:
		v.Outcome = domain.OutcomeUnavailable
		v.Notice = UnavailableNotice
		v.Records = nil
		return v
	case res.Outcome == domain.OutcomeAdvisory:
		v.Notice = res.Advisory
		return v
	}
	v.Links = res.Paging.Links(res.Term)
	return v
}

// NoMatches reports whether the empty state quoting the term is drawn
func (v View) NoMatches() bool { return v.Outcome == domain.OutcomeNoMatches }

// Failed reports whether the notice is an error rather than an advisory
func (v View) Failed() bool { return v.Outcome == domain.OutcomeUnavailable }

// Fragment writes the results block the in-page driver swaps in
func (v View) Fragment(w io.Writer) error { return tmpl.ExecuteTemplate(w, "results", v) }

// Page writes the full document
func (v View) Page(w io.Writer) error {
	return tmpl.ExecuteTemplate(w, "page", pageData{View: v, Title: Title, Placeholder: Placeholder})
}

type pageData struct {
	View
	Title       string
	Placeholder string
}

// Static is the embedded script and stylesheet, rooted at the static dir
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
