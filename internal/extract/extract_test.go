package extract

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const articlePage = `<!doctype html>
<html>
<head><title>Example</title><style>p { color: red; }</style></head>
<body>
<nav><p>Home | About | Contact</p></nav>
<article>
<p>Go is a statically typed, compiled programming language designed at Google.</p>
<p>It is syntactically similar to C, with memory safety and garbage collection.</p>
</article>
<script>console.log("tracking");</script>
<footer><p>Copyright 2026</p></footer>
</body>
</html>`

func TestSoleURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"bare url", "https://example.com/article", "https://example.com/article", true},
		{"url with whitespace", "  https://example.com/article \n", "https://example.com/article", true},
		{"url inside text", "read https://example.com/article today", "", false},
		{"plain text", "just some pasted text", "", false},
		{"http scheme", "http://example.com/article", "", false},
		{"empty", "   ", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := SoleURL(tc.in)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("SoleURL(%q) = (%q, %v), want (%q, %v)",
					tc.in, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestPageTextExtractsArticleParagraphs(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write([]byte(articlePage)); err != nil {
			t.Errorf("failed to write page: %v", err)
		}
	}))
	defer ts.Close()

	e := NewExtractor(slog.Default())

	text, err := e.PageText(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(text, "statically typed") {
		t.Fatalf("expected article text, got %q", text)
	}

	if strings.Contains(text, "tracking") {
		t.Fatalf("expected script content to be stripped, got %q", text)
	}

	if strings.Contains(text, "Home | About") {
		t.Fatalf("expected navigation to be stripped, got %q", text)
	}
}

func TestPageTextRejectsNonOKStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer ts.Close()

	e := NewExtractor(slog.Default())

	if _, err := e.PageText(context.Background(), ts.URL); err == nil {
		t.Fatalf("expected an error for status 404")
	}
}

func TestPageTextRejectsEmptyPage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write([]byte("<html><body></body></html>")); err != nil {
			t.Errorf("failed to write page: %v", err)
		}
	}))
	defer ts.Close()

	e := NewExtractor(slog.Default())

	if _, err := e.PageText(context.Background(), ts.URL); err == nil {
		t.Fatalf("expected an error for a page without text")
	}
}
