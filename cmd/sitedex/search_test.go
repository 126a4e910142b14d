package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sitedex/sitedex/internal/index"
	"github.com/sitedex/sitedex/internal/model"
)

// writeTestIndex creates an index under root and returns the index path.
func writeTestIndex(t *testing.T, root string, records []model.ScrapedRecord) string {
	t.Helper()

	dir, err := index.Open(root, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), setupLogger(false))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	path, err := dir.WriteIndex(records)
	if err != nil {
		t.Fatalf("WriteIndex() error = %v", err)
	}
	return path
}

// TestNewSearchCmd tests the search command creation.
func TestNewSearchCmd(t *testing.T) {
	t.Parallel()

	cmd := NewSearchCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "search <query>..." {
			t.Errorf("expected use 'search <query>...', got %q", cmd.Use)
		}
	})

	t.Run("has index flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("index")
		if flag == nil {
			t.Fatal("expected index flag")
		}
		if flag.Shorthand != "i" {
			t.Errorf("expected shorthand 'i', got %q", flag.Shorthand)
		}
	})

	t.Run("has limit flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("limit")
		if flag == nil {
			t.Fatal("expected limit flag")
		}
		if flag.DefValue != "10" {
			t.Errorf("expected default '10', got %q", flag.DefValue)
		}
	})
}

// TestSearchCommand runs searches against a prepared index.
func TestSearchCommand(t *testing.T) {
	t.Parallel()

	records := []model.ScrapedRecord{
		{URL: "https://example.com/a", Content: "猫が好き"},
		{URL: "https://example.com/b", Content: "犬が好き"},
	}

	t.Run("finds matching page", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeTestIndex(t, root, records)

		var out bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"search", "-o", root, "猫"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		got := out.String()
		if !strings.Contains(got, "https://example.com/a") {
			t.Errorf("output missing matching URL:\n%s", got)
		}
		if strings.Contains(got, "https://example.com/b") {
			t.Errorf("output contains non-matching URL:\n%s", got)
		}
	})

	t.Run("explicit index file", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		path := writeTestIndex(t, root, records)

		var out bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"search", "-i", path, "好き"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !strings.Contains(out.String(), "2 page(s) matched") {
			t.Errorf("output missing match count:\n%s", out.String())
		}
	})

	t.Run("no results", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeTestIndex(t, root, records)

		var out bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"search", "-o", root, "zebra"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !strings.Contains(out.String(), "No pages matched") {
			t.Errorf("output missing no-match message:\n%s", out.String())
		}
	})

	t.Run("missing index errors", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetErr(new(bytes.Buffer))
		cmd.SetArgs([]string{"search", "-o", t.TempDir(), "anything"})

		if err := cmd.Execute(); err == nil {
			t.Error("expected error when no index exists")
		}
	})
}
