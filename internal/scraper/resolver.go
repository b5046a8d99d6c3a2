// Package scraper handles web scraping operations.
package scraper

import (
	"context"
	"fmt"
	"net/http/cookiejar"
	"strings"

	"audiorr/internal/parsing"
	"audiorr/internal/utils/logging"

	"github.com/gocolly/colly"
	"golang.org/x/net/publicsuffix"
)

// Resolver resolves channel handle and legacy URLs to canonical channel IDs
// by scraping the channel page.
type Resolver struct {
	cookieManager *CookieManager
}

// New returns a new Resolver instance.
func New() *Resolver {
	return &Resolver{
		cookieManager: NewCookieManager(),
	}
}

// ResolveChannelID returns the 'UC...' channel ID for a channel URL.
//
// URLs of the '/channel/UC...' form are answered without network access.
// Handle ('/@name'), '/c/' and '/user/' forms are resolved by fetching the
// channel page and reading its identifier metadata.
func (r *Resolver) ResolveChannelID(ctx context.Context, channelURL string) (string, error) {
	if id := parsing.ExtractChannelID(channelURL); id != "" {
		return id, nil
	}

	c := colly.NewCollector()

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err == nil {
		c.SetCookieJar(jar)
	}

	if cookies, err := r.cookieManager.GetCookies(ctx, channelURL); err == nil && len(cookies) > 0 {
		if err := c.SetCookies(channelURL, cookies); err != nil {
			logging.D(1, "Failed setting cookies for %q: %v", channelURL, err)
		}
	}

	var channelID string

	c.OnHTML(`meta[itemprop="identifier"]`, func(e *colly.HTMLElement) {
		if channelID == "" {
			channelID = e.Attr("content")
		}
	})
	c.OnHTML(`meta[itemprop="channelId"]`, func(e *colly.HTMLElement) {
		if channelID == "" {
			channelID = e.Attr("content")
		}
	})
	c.OnHTML(`link[rel="canonical"]`, func(e *colly.HTMLElement) {
		if channelID == "" {
			href := e.Attr("href")
			if strings.Contains(href, "/channel/") {
				channelID = parsing.ExtractChannelID(href)
			}
		}
	})

	if err := c.Visit(channelURL); err != nil {
		return "", fmt.Errorf("failed to fetch channel page %q: %w", channelURL, err)
	}
	c.Wait()

	if channelID == "" {
		return "", fmt.Errorf("no channel ID found on page %q", channelURL)
	}

	logging.D(1, "Resolved channel URL %q to ID %q", channelURL, channelID)
	return channelID, nil
}

// ExportCookieFile writes the browser cookies for targetURL into fpath in
// Netscape format. Returns an empty path when no cookies were found.
func (r *Resolver) ExportCookieFile(ctx context.Context, targetURL, fpath string) (string, error) {
	cookies, err := r.cookieManager.GetCookies(ctx, targetURL)
	if err != nil {
		return "", err
	}
	if len(cookies) == 0 {
		return "", nil
	}
	if err := SaveCookiesToFile(cookies, fpath); err != nil {
		return "", err
	}
	return fpath, nil
}
