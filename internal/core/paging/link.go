package paging

import (
	"net/url"
	"strconv"
	"strings"
)

// Link builds the self referential page url ?q=<term>&page=<n>
// the term is query escaped so a round trip through ParseLink returns it unchanged
func Link(term string, page int) string {
	var b strings.Builder
	b.WriteString("?q=")
	b.WriteString(url.QueryEscape(term))
	b.WriteString("&page=")
	b.WriteString(strconv.Itoa(page))
	return b.String()
}

// ParseLink reads term and page back out of a link or any url carrying q and page
// a missing or unparsable page is reported as 1
func ParseLink(link string) (term string, page int, err error) {
	raw := link
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[i+1:]
	}
	vals, err := url.ParseQuery(raw)
	if err != nil {
		return "", 0, err
	}
	page, perr := strconv.Atoi(vals.Get("page"))
	if perr != nil {
		page = 1
	}
	return vals.Get("q"), NormalizePage(page), nil
}

// PageLink is one rendered pagination anchor
type PageLink struct {
	Href    string
	Label   string
	Page    int
	Current bool
}

// Labels for the prev and next anchors
const (
	PrevLabel = "« 上一页"
	NextLabel = "下一页 »"
)

// Links returns prev, window pages and next in display order for term
// it is nil when the state is not Visible
func (s State) Links(term string) []PageLink {
	if !s.Visible() {
		return nil
	}
	var out []PageLink
	if s.HasPrev {
		out = append(out, PageLink{Href: Link(term, s.Current-1), Label: PrevLabel, Page: s.Current - 1})
	}
	for _, p := range s.Window.Pages() {
		out = append(out, PageLink{Href: Link(term, p), Label: strconv.Itoa(p), Page: p, Current: p == s.Current})
	}
	if s.HasNext {
		out = append(out, PageLink{Href: Link(term, s.Current+1), Label: NextLabel, Page: s.Current + 1})
	}
	return out
}
