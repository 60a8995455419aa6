package extract

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"mvdan.cc/xurls/v2"
)

const (
	clientTimeout = 20 * time.Second

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"

	minPageTextChars = 40
)

var httpsURLRe = func() *regexp.Regexp {
	re, err := xurls.StrictMatchingScheme("https://")
	if err != nil {
		panic(fmt.Sprintf("compile https URL regexp: %v", err))
	}

	return re
}()

// SoleURL reports whether text consists of exactly one https URL and
// nothing else, returning that URL.
func SoleURL(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", false
	}

	match := httpsURLRe.FindString(trimmed)
	if match != trimmed {
		return "", false
	}

	return trimmed, true
}

// Extractor fetches a web page and pulls its readable text so it can be
// summarized like pasted input.
type Extractor struct {
	client *http.Client
	log    *slog.Logger
}

func NewExtractor(log *slog.Logger) *Extractor {
	return &Extractor{
		client: &http.Client{Timeout: clientTimeout},
		log:    log,
	}
}

// PageText downloads pageURL and returns its paragraph text. Markup that
// never carries article content (scripts, styles, navigation) is dropped.
func (e *Extractor) PageText(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			e.log.ErrorContext(ctx, "Failed to close response body",
				"error", closeErr,
				"pageURL", pageURL)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch page: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	doc.Find("script, style, noscript, nav, header, footer, aside").Remove()

	var parts []string
	doc.Find("article p, main p").Each(func(_ int, s *goquery.Selection) {
		if t := normalizeWhitespace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	if len(parts) == 0 {
		doc.Find("p").Each(func(_ int, s *goquery.Selection) {
			if t := normalizeWhitespace(s.Text()); t != "" {
				parts = append(parts, t)
			}
		})
	}

	text := strings.Join(parts, "\n\n")
	if len(text) < minPageTextChars {
		text = normalizeWhitespace(doc.Find("body").Text())
	}

	if len(text) < minPageTextChars {
		return "", fmt.Errorf("page has no readable text: %s", pageURL)
	}

	return text, nil
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
