package extract

import (
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultSelectors is the ordered list of CSS selectors tried when locating
// the main content region of a page. The first selector with a non-empty
// text match wins; when none match, the full body text is used.
var DefaultSelectors = []string{
	"main",
	"[role=main]",
	"article",
	"#content",
}

// Extractor parses HTML documents into text and links.
//
// Design decision: We use goquery rather than walking the x/net/html tree
// by hand because:
//  1. The main-content rule is naturally expressed as CSS selectors
//  2. It correctly handles malformed HTML common on the web
//  3. Text aggregation over a subtree comes for free
type Extractor struct {
	// selectors is the ordered main-content selector list.
	selectors []string
}

// Page is the result of extracting a single HTML document.
type Page struct {
	// Title is the page title from the <title> tag, trimmed.
	Title string

	// Text is the extracted main content text with whitespace collapsed.
	// Empty when the page has no extractable text.
	Text string

	// Links contains the absolute URLs of all anchor hrefs, resolved
	// against the page URL. Duplicates within one page are preserved;
	// deduplication happens at the crawl driver.
	Links []string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithSelectors overrides the main-content selector list.
func WithSelectors(selectors []string) Option {
	return func(e *Extractor) {
		if len(selectors) > 0 {
			e.selectors = selectors
		}
	}
}

// New creates an Extractor with the default selector list.
func New(opts ...Option) *Extractor {
	e := &Extractor{selectors: DefaultSelectors}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses the HTML body of pageURL and returns its text and links.
// The page URL is used as the base for resolving relative hrefs. A parse
// failure is returned as an error; the caller logs it and skips the page.
func (e *Extractor) Extract(pageURL string, body io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}

	page := &Page{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
		Text:  e.text(doc),
		Links: links(doc, base),
	}

	return page, nil
}

// text returns the main content text of the document.
// It tries each configured selector in order and falls back to the body.
func (e *Extractor) text(doc *goquery.Document) string {
	for _, sel := range e.selectors {
		if t := collapse(doc.Find(sel).First().Text()); t != "" {
			return t
		}
	}
	return collapse(doc.Find("body").Text())
}

// links enumerates anchor hrefs resolved against the base URL.
// Non-navigational schemes and bare fragments are skipped.
func links(doc *goquery.Document, base *url.URL) []string {
	out := make([]string, 0)

	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		if resolved := resolve(base, href); resolved != "" {
			out = append(out, resolved)
		}
	})

	return out
}

// resolve resolves an href against the base URL.
// It returns "" for hrefs that don't lead to a fetchable page.
func resolve(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || href == "#" ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:") {
		return ""
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}

	return base.ResolveReference(u).String()
}

// collapse trims the text and collapses runs of whitespace to single spaces.
// Rendered HTML collapses whitespace the same way, so this keeps extracted
// text stable across formatting-only changes in the source document.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
