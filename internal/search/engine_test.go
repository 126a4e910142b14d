package search

import (
	"strings"
	"testing"

	"github.com/sitedex/sitedex/internal/model"
)

// TestSearchJapanese verifies the single-character CJK query property.
func TestSearchJapanese(t *testing.T) {
	t.Parallel()

	e := NewEngine([]model.ScrapedRecord{
		{URL: "a", Content: "猫が好き"},
		{URL: "b", Content: "犬が好き"},
	})

	results := e.Search("猫")
	if len(results) != 1 {
		t.Fatalf("expected exactly 1 result, got %d", len(results))
	}
	if results[0].URL != "a" {
		t.Errorf("expected result 'a', got %q", results[0].URL)
	}

	// The shared word matches both documents.
	if got := len(e.Search("好き")); got != 2 {
		t.Errorf("expected 2 results for shared term, got %d", got)
	}
}

// TestSearchCaseInsensitive verifies case folding of query and content.
func TestSearchCaseInsensitive(t *testing.T) {
	t.Parallel()

	e := NewEngine([]model.ScrapedRecord{
		{URL: "a", Content: "Campus Guide for new students"},
		{URL: "b", Content: "nothing relevant"},
	})

	for _, q := range []string{"campus", "CAMPUS", "Campus"} {
		results := e.Search(q)
		if len(results) != 1 || results[0].URL != "a" {
			t.Errorf("query %q: expected only 'a', got %+v", q, results)
		}
	}
}

// TestSearchFullWidthNormalization verifies NFKC makes full-width and ASCII
// forms compare equal.
func TestSearchFullWidthNormalization(t *testing.T) {
	t.Parallel()

	e := NewEngine([]model.ScrapedRecord{
		{URL: "a", Content: "申請はｗｅｂで受付"},
	})

	if got := len(e.Search("web")); got != 1 {
		t.Errorf("expected full-width content to match ASCII query, got %d results", got)
	}
}

// TestSearchAllTermsRequired verifies multi-term queries intersect.
func TestSearchAllTermsRequired(t *testing.T) {
	t.Parallel()

	e := NewEngine([]model.ScrapedRecord{
		{URL: "a", Content: "library opening hours"},
		{URL: "b", Content: "library closed today"},
	})

	results := e.Search("library hours")
	if len(results) != 1 || results[0].URL != "a" {
		t.Errorf("expected only 'a' to match both terms, got %+v", results)
	}
}

// TestSearchRanking verifies results order by occurrence count.
func TestSearchRanking(t *testing.T) {
	t.Parallel()

	e := NewEngine([]model.ScrapedRecord{
		{URL: "once", Content: "fee schedule"},
		{URL: "thrice", Content: "fee fee fee waiver"},
	})

	results := e.Search("fee")
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].URL != "thrice" {
		t.Errorf("expected 'thrice' first, got %q", results[0].URL)
	}
	if results[0].Score != 3 || results[1].Score != 1 {
		t.Errorf("unexpected scores: %d, %d", results[0].Score, results[1].Score)
	}
}

// TestSearchEmptyQuery verifies queries with no indexable terms return nothing.
func TestSearchEmptyQuery(t *testing.T) {
	t.Parallel()

	e := NewEngine([]model.ScrapedRecord{{URL: "a", Content: "text"}})

	for _, q := range []string{"", "   ", "!!!"} {
		if got := e.Search(q); got != nil {
			t.Errorf("query %q: expected nil results, got %+v", q, got)
		}
	}
}

// TestSearchSubstringFallback verifies queries crossing segment boundaries
// still match via the substring fallback.
func TestSearchSubstringFallback(t *testing.T) {
	t.Parallel()

	e := NewEngine([]model.ScrapedRecord{
		{URL: "a", Content: "学生便覧の入学案内"},
		{URL: "b", Content: "無関係な文章"},
	})

	// "入学案内" folds to a single query term only if UAX #29 keeps it
	// together; either way the substring fallback must find document a.
	results := e.Search("入学案内")
	if len(results) != 1 || results[0].URL != "a" {
		t.Errorf("expected only 'a', got %+v", results)
	}
}

// TestHighlightSpans verifies span computation and merging.
func TestHighlightSpans(t *testing.T) {
	t.Parallel()

	spans := HighlightSpans("Cat and CATALOG", []string{"cat"})
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d: %+v", len(spans), spans)
	}
	if spans[0].Start != 0 || spans[0].End != 3 {
		t.Errorf("unexpected first span: %+v", spans[0])
	}
	if spans[1].Start != 8 || spans[1].End != 11 {
		t.Errorf("unexpected second span: %+v", spans[1])
	}
}

// TestHighlightSpansFoldExpansion verifies offsets stay valid when folding
// changes byte lengths: NFKC expands ㈱ (3 bytes) to (株) (5 bytes).
func TestHighlightSpansFoldExpansion(t *testing.T) {
	t.Parallel()

	content := "オリンパス㈱の猫"

	spans := HighlightSpans(content, []string{"株"})
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d: %+v", len(spans), spans)
	}
	if got := content[spans[0].Start:spans[0].End]; got != "㈱" {
		t.Errorf("span covers %q, want the original enclosed character", got)
	}

	for _, s := range spans {
		if s.Start < 0 || s.End > len(content) || s.Start > s.End {
			t.Errorf("span out of range: %+v (content length %d)", s, len(content))
		}
	}
}
func TestHighlightSpansMergesOverlaps(t *testing.T) {
	t.Parallel()

	spans := HighlightSpans("abcd", []string{"abc", "bcd"})
	if len(spans) != 1 {
		t.Fatalf("expected 1 merged span, got %d: %+v", len(spans), spans)
	}
	if spans[0].Start != 0 || spans[0].End != 4 {
		t.Errorf("unexpected merged span: %+v", spans[0])
	}
}

// TestSnippet verifies excerpt behavior around the first match.
func TestSnippet(t *testing.T) {
	t.Parallel()

	t.Run("short content returned whole", func(t *testing.T) {
		t.Parallel()

		if got := Snippet("short", []string{"s"}, 40); got != "short" {
			t.Errorf("expected unmodified content, got %q", got)
		}
	})

	t.Run("long content is truncated with ellipsis", func(t *testing.T) {
		t.Parallel()

		long := ""
		for range 20 {
			long += "padding "
		}
		long += "needle and more trailing text after the match"

		got := Snippet(long, []string{"needle"}, 40)
		if len([]rune(got)) > 42 { // width plus ellipses
			t.Errorf("snippet too long: %d runes", len([]rune(got)))
		}
		if got == long {
			t.Error("expected truncation")
		}
	})

	t.Run("width is measured in runes", func(t *testing.T) {
		t.Parallel()

		// 100 runes but 300 bytes; must not be truncated at width 120.
		content := strings.Repeat("あ", 100)
		if got := Snippet(content, []string{"あ"}, 120); got != content {
			t.Errorf("expected unmodified content, got %d runes", len([]rune(got)))
		}
	})

	t.Run("fold expansion beyond content length", func(t *testing.T) {
		t.Parallel()

		// Folding ㈱ to (株) grows the text, so the match offset in the
		// folded form lies past the end of the original string.
		content := strings.Repeat("㈱", 130) + "猫"
		got := Snippet(content, []string{"猫"}, 120)
		if !strings.Contains(got, "猫") {
			t.Errorf("snippet %q does not contain the match", got)
		}
		if len([]rune(got)) > 122 {
			t.Errorf("snippet too long: %d runes", len([]rune(got)))
		}
	})
}
