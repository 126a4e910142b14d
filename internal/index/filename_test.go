package index

import (
	"strings"
	"testing"
)

// TestFilename tests derivation of filesystem-safe names from URLs.
func TestFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "plain path",
			url:  "https://example.com/a/b/c",
			want: "a_b_c",
		},
		{
			name: "root defaults to index",
			url:  "https://example.com/",
			want: "index",
		},
		{
			name: "no path defaults to index",
			url:  "https://example.com",
			want: "index",
		},
		{
			name: "query included",
			url:  "https://example.com/p?q=1&r=2",
			want: "p_q_1_r_2",
		},
		{
			name: "fragment included",
			url:  "https://example.com/p#sec",
			want: "p_sec",
		},
		{
			name: "dots and dashes replaced",
			url:  "https://example.com/zen.ac.jp/zen-gakuseibinran/home",
			want: "zen_ac_jp_zen_gakuseibinran_home",
		},
		{
			name: "unicode letters kept",
			url:  "https://example.com/便覧/入学",
			want: "便覧_入学",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Filename(tt.url); got != tt.want {
				t.Errorf("Filename(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

// TestFilenameDeterministic verifies the same URL always maps to the same name.
func TestFilenameDeterministic(t *testing.T) {
	t.Parallel()

	url := "https://example.com/some/long/path?page=3"
	first := Filename(url)
	for range 5 {
		if got := Filename(url); got != first {
			t.Fatalf("Filename is not deterministic: %q vs %q", first, got)
		}
	}
}

// TestFilenameTruncation verifies long names keep their trailing runes.
func TestFilenameTruncation(t *testing.T) {
	t.Parallel()

	// A 150-character path: mapped name keeps only the last 100 runes.
	path := "/" + strings.Repeat("a", 49) + "/" + strings.Repeat("b", 99)
	got := Filename("https://example.com" + path)

	if len([]rune(got)) != MaxFilenameLength {
		t.Fatalf("expected %d runes, got %d", MaxFilenameLength, len([]rune(got)))
	}

	// The whole mapped name is a(49) + "_" + b(99); the last 100 runes are
	// "_" followed by 99 b's.
	want := "_" + strings.Repeat("b", 99)
	if got != want {
		t.Errorf("expected suffix-keeping truncation, got %q", got)
	}
}

// TestFilenameCollision documents that distinct URLs sharing a long suffix
// collide after truncation. The later write wins; this is intentional.
func TestFilenameCollision(t *testing.T) {
	t.Parallel()

	suffix := strings.Repeat("x", 120)
	a := Filename("https://example.com/first-" + suffix)
	b := Filename("https://example.com/second-" + suffix)

	if a != b {
		t.Errorf("expected truncation collision, got %q and %q", a, b)
	}
}
