// Copyright (C) 2026 textisbeautiful.net
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package wikitext turns a Wikipedia article URL into the plain text handed
// to the analytics service.
package wikitext

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ErrNotArticleURL rejects anything that isn't a wikipedia.org article link.
var ErrNotArticleURL = errors.New("not a wikipedia article URL")

const userAgent = "textisbeautiful.net/2.0"

// HTTPClient allows injecting mock HTTP clients for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Extractor fetches Wikipedia articles and strips them to plain text.
type Extractor struct {
	httpClient HTTPClient
}

// NewExtractor builds an Extractor. A nil httpClient gets a default with a
// 30s timeout.
func NewExtractor(httpClient HTTPClient) *Extractor {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Extractor{httpClient: httpClient}
}

// NormalizeArticleURL coerces user input into a fetchable article URL:
// https becomes http, a missing scheme gets one, and anything outside
// wikipedia.org/wiki/ is rejected.
func NormalizeArticleURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.Replace(raw, "https://", "http://", 1)
	if !strings.HasPrefix(raw, "http://") {
		raw = "http://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrNotArticleURL, raw)
	}
	if !strings.Contains(raw, "wikipedia.org/wiki/") {
		return "", fmt.Errorf("%w: %q", ErrNotArticleURL, raw)
	}
	return raw, nil
}

// ArticleText fetches the article and returns its body text: the paragraph
// content of the article container, or the whole document body when the
// container markup is missing.
func (e *Extractor) ArticleText(ctx context.Context, articleURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request for %s: %w", articleURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", articleURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch of %s returned status %d", articleURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse article HTML: %w", err)
	}

	var sb strings.Builder
	paragraphs := doc.Find("#mw-content-text p")
	if paragraphs.Length() == 0 {
		paragraphs = doc.Find("body p")
	}
	paragraphs.Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		sb.WriteString(text)
		sb.WriteString("\n\n")
	})
	return strings.TrimSpace(sb.String()), nil
}
