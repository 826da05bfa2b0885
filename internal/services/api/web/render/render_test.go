package render

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"assetsearch/internal/core/paging"
	"assetsearch/internal/core/query"
	kit "assetsearch/internal/platform/testkit"
	"assetsearch/internal/services/api/search/domain"
)

func fragment(t *testing.T, v View) string {
	t.Helper()
	var b strings.Builder
	if err := v.Fragment(&b); err != nil {
		t.Fatalf("Fragment: %v", err)
	}
	return b.String()
}

func page(t *testing.T, v View) string {
	t.Helper()
	var b strings.Builder
	if err := v.Page(&b); err != nil {
		t.Fatalf("Page: %v", err)
	}
	return b.String()
}

func records(n int) []domain.AssetRecord {
	out := make([]domain.AssetRecord, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.AssetRecord{Name: "Cat", GUID: "avtr_x", Author: "yx", Description: "d", Source: query.SourceA, Label: "Avatar库1"})
	}
	return out
}

func TestEmptyState_DrawsNothing(t *testing.T) {
	out := fragment(t, FromResult(domain.Result{Outcome: domain.OutcomeEmpty}, nil))
	kit.MustNotContain(t, out, "empty-state")
	kit.MustNotContain(t, out, "class=\"card\"")
	kit.MustNotContain(t, out, "pagination")
	kit.MustNotContain(t, out, "notice")
}

func TestAdvisory_NoticeOnly(t *testing.T) {
	res := domain.Result{Term: "a", Outcome: domain.OutcomeAdvisory, Advisory: domain.Advisory(2)}
	out := fragment(t, FromResult(res, nil))
	kit.MustContain(t, out, "搜索词太短了呢")
	kit.MustNotContain(t, out, "notice-error")
	kit.MustNotContain(t, out, "empty-state")
}

func TestNoMatches_QuotesTheEscapedTerm(t *testing.T) {
	res := domain.Result{Term: `zzz_no_match<b>`, Outcome: domain.OutcomeNoMatches, Paging: paging.Compute(0, 1, 20)}
	out := fragment(t, FromResult(res, nil))
	kit.MustContain(t, out, `没有找到与 "zzz_no_match&lt;b&gt;" 相关的任何结果呢`)
	kit.MustNotContain(t, out, "pagination")
}

func TestResults_CardsInOrderAndEscaped(t *testing.T) {
	recs := []domain.AssetRecord{
		{Name: "First <script>", GUID: "avtr_1", Author: "a&b", Description: "one", Label: "Avatar库1"},
		{Name: "Second", GUID: "avtr_1", Author: "bob", Description: "bob", Label: "Avatar库2"},
	}
	res := domain.Result{Term: "cat", Outcome: domain.OutcomeResults, Records: recs, Paging: paging.Compute(2, 1, 20)}
	out := fragment(t, FromResult(res, nil))

	kit.MustCount(t, out, `class="card"`, 2)
	kit.MustContain(t, out, "First &lt;script&gt;")
	kit.MustContain(t, out, "👤 作者: a&amp;b")
	kit.MustContain(t, out, "🆔 GUID: avtr_1")
	kit.MustContain(t, out, "📝 描述: one")
	if strings.Index(out, "Avatar库1") > strings.Index(out, "Avatar库2") {
		t.Fatalf("record order changed")
	}
	kit.MustNotContain(t, out, "pagination")
}

func TestPagination_LinksAndSummary(t *testing.T) {
	res := domain.Result{Term: "猫 耳", Outcome: domain.OutcomeResults, Records: records(20), Paging: paging.Compute(45, 2, 20)}
	out := fragment(t, FromResult(res, nil))

	kit.MustContain(t, out, "总共找到 <strong>45</strong> 条结果，当前在第 <strong>2 / 3</strong> 页")
	kit.MustCount(t, out, `class="page-link`, 5)
	kit.MustCount(t, out, `class="page-link current"`, 1)
	kit.MustContain(t, out, `href="?q=%E7%8C%AB&#43;%E8%80%B3&amp;page=1"`)
	kit.MustContain(t, out, "« 上一页")
	kit.MustContain(t, out, "下一页 »")
}

func TestUnavailable_BannerAndNoRecords(t *testing.T) {
	res := domain.Result{Term: "cat", Outcome: domain.OutcomeUnavailable, Records: records(1)}
	v := FromResult(res, errors.New("driver: bad connection"))
	out := fragment(t, v)
	kit.MustContain(t, out, "notice notice-error")
	kit.MustContain(t, out, "连接错误："+UnavailableNotice)
	kit.MustNotContain(t, out, "bad connection")
	kit.MustNotContain(t, out, `class="card"`)

	full := page(t, v)
	kit.MustContain(t, full, `value="cat"`)
}

func TestPage_WrapsFragment(t *testing.T) {
	res := domain.Result{Term: `a"b`, Outcome: domain.OutcomeNoMatches}
	out := page(t, FromResult(res, nil))
	kit.MustContain(t, out, "<title>Yingxue的VRChat资源检索库</title>")
	kit.MustContain(t, out, `placeholder="输入模型名称、作者或ID..."`)
	kit.MustContain(t, out, `value="a&#34;b"`)
	kit.MustContain(t, out, `<button type="submit">搜 索</button>`)
	kit.MustContain(t, out, `id="results-wrapper"`)
	kit.MustContain(t, out, `class="results-container-inner"`)
	kit.MustContain(t, out, `src="/static/search.js"`)
	kit.MustCount(t, out, "empty-state", 1)
}

func TestStatic_Embedded(t *testing.T) {
	for _, name := range []string{"search.js", "search.css"} {
		b, err := fs.ReadFile(Static(), name)
		if err != nil || len(b) == 0 {
			t.Fatalf("%s: %v", name, err)
		}
	}
	js, _ := fs.ReadFile(Static(), "search.js")
	kit.MustContain(t, string(js), "mine !== seq")
	kit.MustContain(t, string(js), "popstate")
}
