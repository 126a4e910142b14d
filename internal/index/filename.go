package index

import (
	"net/url"
	"strings"
	"unicode"
)

// MaxFilenameLength is the maximum length in runes of a derived file name,
// not counting the ".txt" extension. Longer names keep their suffix because
// the trailing path segments are the most distinctive part of a URL.
const MaxFilenameLength = 100

// Filename derives a deterministic, filesystem-safe file name from a URL.
//
// The name is built from the URL's path, query, and fragment: every rune
// that is not a letter or digit becomes an underscore, leading underscores
// are trimmed, and names longer than MaxFilenameLength keep only their last
// MaxFilenameLength runes. An empty result (the site root) becomes "index".
//
// Two distinct URLs that agree on the trailing MaxFilenameLength runes of
// the mapped name collide; the later write wins. This is a known limitation
// carried over from the crawl output contract, detected and logged by the
// writer rather than avoided.
func Filename(pageURL string) string {
	raw := pageURL
	if u, err := url.Parse(pageURL); err == nil {
		raw = u.Path
		if u.RawQuery != "" {
			raw += "?" + u.RawQuery
		}
		if u.Fragment != "" {
			raw += "#" + u.Fragment
		}
	}

	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, raw)

	mapped = strings.TrimLeft(mapped, "_")
	if mapped == "" {
		return "index"
	}

	if runes := []rune(mapped); len(runes) > MaxFilenameLength {
		return string(runes[len(runes)-MaxFilenameLength:])
	}
	return mapped
}
