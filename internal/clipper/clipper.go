// Package clipper fetches web pages and reduces them to plain text small
// enough to feed an agent prompt.
package clipper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// maxContentLen caps the extracted text so a huge page cannot blow the
// prompt budget.
const maxContentLen = 20000

// Fetcher downloads pages and extracts their readable text.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher with a sane request timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// PageText fetches the URL and returns its visible body text with
// scripts, styles, and navigation chrome removed.
func (f *Fetcher) PageText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse page: %w", err)
	}

	return CleanText(doc), nil
}

// CleanText strips noisy elements from a parsed page and normalizes the
// remaining body text.
func CleanText(doc *goquery.Document) string {
	// Remove noise to save agent tokens
	doc.Find("script, style, nav, footer, header, iframe, aside, .ads, #ads").Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})

	text := doc.Find("body").Text()
	text = collapseWhitespace(text)
	if len(text) > maxContentLen {
		text = text[:maxContentLen]
	}
	return text
}

// collapseWhitespace squeezes runs of blank lines and spaces left behind
// by removed markup.
func collapseWhitespace(s string) string {
	var sb strings.Builder
	lastBlank := false
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			lastBlank = true
			continue
		}
		if sb.Len() > 0 {
			if lastBlank {
				sb.WriteString("\n\n")
			} else {
				sb.WriteString("\n")
			}
		}
		sb.WriteString(strings.Join(strings.Fields(line), " "))
		lastBlank = false
	}
	return sb.String()
}
