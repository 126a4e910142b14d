package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sitedex/sitedex/internal/model"
)

// Engine is an immutable in-memory full-text index over scraped records,
// keyed by URL. Build it once with NewEngine; Search is safe for concurrent
// use.
type Engine struct {
	// docs are the indexed records in load order.
	docs []model.ScrapedRecord

	// folded holds the folded content of each doc for substring matching
	// and highlighting.
	folded []string

	// postings maps a folded term to per-document occurrence counts.
	postings map[string]map[int]int
}

// Result is one search hit.
type Result struct {
	// URL identifies the matched document.
	URL string `json:"url"`

	// Content is the full extracted text of the document.
	// Highlighting is done by the consumer via case-insensitive substring
	// match against Terms.
	Content string `json:"content"`

	// Terms are the folded query terms that matched this document.
	Terms []string `json:"terms"`

	// Score is the total number of term occurrences in the document.
	// Matches are ordered by score descending, then URL.
	Score int `json:"score"`
}

// NewEngine builds the index over the given records.
func NewEngine(records []model.ScrapedRecord) *Engine {
	e := &Engine{
		docs:     records,
		folded:   make([]string, len(records)),
		postings: make(map[string]map[int]int),
	}

	for i, rec := range records {
		e.folded[i] = Fold(rec.Content)
		for _, term := range Tokenize(rec.Content) {
			docs := e.postings[term]
			if docs == nil {
				docs = make(map[int]int)
				e.postings[term] = docs
			}
			docs[i]++
		}
	}

	return e
}

// Len returns the number of indexed documents.
func (e *Engine) Len() int {
	return len(e.docs)
}

// Search returns the documents matching every term of the query.
//
// A term matches a document when it appears as a segmented word or, failing
// that, as a folded substring of the content. The substring fallback covers
// queries that cross UAX #29 segment boundaries, such as a Japanese
// compound typed as one string.
func (e *Engine) Search(query string) []Result {
	terms := uniqueTerms(Tokenize(query))
	if len(terms) == 0 {
		return nil
	}

	type hit struct {
		score int
	}
	hits := make(map[int]*hit)

	// Seed candidates from the first term, then intersect.
	for ti, term := range terms {
		matched := e.matchTerm(term)
		if ti == 0 {
			for doc, count := range matched {
				hits[doc] = &hit{score: count}
			}
			continue
		}
		for doc, h := range hits {
			count, ok := matched[doc]
			if !ok {
				delete(hits, doc)
				continue
			}
			h.score += count
		}
	}

	results := make([]Result, 0, len(hits))
	for doc, h := range hits {
		results = append(results, Result{
			URL:     e.docs[doc].URL,
			Content: e.docs[doc].Content,
			Terms:   terms,
			Score:   h.score,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].URL < results[j].URL
	})

	return results
}

// matchTerm returns per-document occurrence counts for one folded term.
func (e *Engine) matchTerm(term string) map[int]int {
	if docs, ok := e.postings[term]; ok {
		return docs
	}

	// Substring fallback
	matched := make(map[int]int)
	for i, content := range e.folded {
		if n := strings.Count(content, term); n > 0 {
			matched[i] = n
		}
	}
	return matched
}

// uniqueTerms removes duplicates while preserving order.
func uniqueTerms(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// Span is a byte range of content to highlight.
type Span struct {
	// Start is the byte offset of the first highlighted byte.
	Start int `json:"start"`

	// End is the byte offset just past the highlighted range.
	End int `json:"end"`
}

// HighlightSpans returns the byte ranges of content matching any of the
// terms, case-insensitively and normalization-aware, in ascending order
// with overlaps merged. Offsets are byte offsets into the original
// content: folding can change byte lengths (full-width forms, enclosed
// characters like ㈱), so matching runs on a rune-by-rune fold that
// records which original rune every folded byte came from.
func HighlightSpans(content string, terms []string) []Span {
	folded, starts, ends := foldWithOffsets(content)

	spans := make([]Span, 0)
	for _, term := range terms {
		if term == "" {
			continue
		}
		for from := 0; ; {
			i := strings.Index(folded[from:], term)
			if i < 0 {
				break
			}
			at := from + i
			spans = append(spans, Span{Start: starts[at], End: ends[at+len(term)-1]})
			from = at + len(term)
		}
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })

	// Merge overlapping and adjacent ranges
	merged := spans[:0]
	for _, s := range spans {
		if n := len(merged); n > 0 && s.Start <= merged[n-1].End {
			if s.End > merged[n-1].End {
				merged[n-1].End = s.End
			}
			continue
		}
		merged = append(merged, s)
	}

	return merged
}

// foldWithOffsets folds content one rune at a time and records, for every
// byte of the folded text, the byte range [start, end) of the original
// rune that produced it. Span ends use the range end so a highlight covers
// the whole original rune even when its folded form is longer or shorter.
func foldWithOffsets(content string) (string, []int, []int) {
	var b strings.Builder
	starts := make([]int, 0, len(content))
	ends := make([]int, 0, len(content))

	for i := 0; i < len(content); {
		_, size := utf8.DecodeRuneInString(content[i:])
		f := Fold(content[i : i+size])
		if f == "" {
			f = content[i : i+size]
		}
		b.WriteString(f)
		for k := 0; k < len(f); k++ {
			starts = append(starts, i)
			ends = append(ends, i+size)
		}
		i += size
	}

	return b.String(), starts, ends
}

// Snippet returns a short excerpt of content centered on the first term
// match, for one-line CLI output. Width is the maximum rune length of the
// excerpt; truncated ends get an ellipsis.
func Snippet(content string, terms []string, width int) string {
	runes := []rune(content)
	if width <= 0 || len(runes) <= width {
		return content
	}

	spans := HighlightSpans(content, terms)
	start := 0
	if len(spans) > 0 {
		start = spans[0].Start
	}

	// Spans are rune-aligned offsets into content, so this slice is safe.
	runeStart := len([]rune(content[:start]))

	from := runeStart - width/4
	if from < 0 {
		from = 0
	}
	to := from + width
	if to > len(runes) {
		to = len(runes)
		from = to - width
		if from < 0 {
			from = 0
		}
	}

	out := string(runes[from:to])
	if from > 0 {
		out = "…" + out
	}
	if to < len(runes) {
		out += "…"
	}
	return out
}
