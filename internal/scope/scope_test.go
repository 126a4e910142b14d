package scope

import "testing"

// TestNormalize tests URL canonicalization.
func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips fragment",
			in:   "https://x/a#frag",
			want: "https://x/a",
		},
		{
			name: "lowercases scheme and host",
			in:   "HTTPS://Example.COM/Path",
			want: "https://example.com/Path",
		},
		{
			name: "empty path becomes root",
			in:   "http://example.com",
			want: "http://example.com/",
		},
		{
			name: "keeps query string",
			in:   "https://example.com/a?b=c#d",
			want: "https://example.com/a?b=c",
		},
		{
			name: "unparseable input returned unchanged",
			in:   "http://example.com/%zz\x7f",
			want: "http://example.com/%zz\x7f",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestNormalizeIdempotent verifies that normalizing twice equals normalizing once.
func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	urls := []string{
		"https://x/a#frag",
		"HTTP://Example.com",
		"https://sites.google.com/zen.ac.jp/zen-gakuseibinran/home?authuser=0",
		"not a url at all",
	}

	for _, raw := range urls {
		once := Normalize(raw)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize is not idempotent for %q: once=%q twice=%q", raw, once, twice)
		}
	}
}

// TestInScope tests scheme, host, and path-prefix checks.
func TestInScope(t *testing.T) {
	t.Parallel()

	s := New("https://sites.google.com/zen.ac.jp/zen-gakuseibinran/home",
		"/zen.ac.jp/zen-gakuseibinran/")

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{
			name: "same host same prefix",
			url:  "https://sites.google.com/zen.ac.jp/zen-gakuseibinran/guide",
			want: true,
		},
		{
			name: "cross-host with matching path",
			url:  "https://other.com/zen.ac.jp/zen-gakuseibinran/p",
			want: false,
		},
		{
			name: "same host outside prefix",
			url:  "https://sites.google.com/other-site/page",
			want: false,
		},
		{
			name: "http scheme allowed",
			url:  "http://sites.google.com/zen.ac.jp/zen-gakuseibinran/p",
			want: true,
		},
		{
			name: "non-http scheme rejected",
			url:  "ftp://sites.google.com/zen.ac.jp/zen-gakuseibinran/p",
			want: false,
		},
		{
			name: "mailto rejected",
			url:  "mailto:someone@example.com",
			want: false,
		},
		{
			name: "host case insensitive",
			url:  "https://SITES.GOOGLE.COM/zen.ac.jp/zen-gakuseibinran/p",
			want: true,
		},
		{
			name: "subdomain rejected",
			url:  "https://a.sites.google.com/zen.ac.jp/zen-gakuseibinran/p",
			want: false,
		},
		{
			name: "unparseable rejected",
			url:  "http://%zz\x7f",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := s.InScope(tt.url); got != tt.want {
				t.Errorf("InScope(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

// TestInScopeZeroValue verifies the zero Scope matches nothing.
func TestInScopeZeroValue(t *testing.T) {
	t.Parallel()

	var s Scope
	if s.InScope("https://example.com/") {
		t.Error("zero Scope should not match any URL")
	}
}

// TestNewWithBadStartURL verifies that an unparseable start URL yields a
// scope that matches nothing.
func TestNewWithBadStartURL(t *testing.T) {
	t.Parallel()

	s := New("http://%zz\x7f", "/prefix/")
	if s.InScope("https://example.com/prefix/page") {
		t.Error("scope from unparseable start URL should match nothing")
	}
}
