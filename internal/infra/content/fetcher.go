// Package content acquires plain text from submitted URLs.
package content

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
)

const maxBodyBytes = 2 << 20

var (
	scriptRe = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	navRe    = regexp.MustCompile(`(?is)<nav[^>]*>.*?</nav>`)
	headerRe = regexp.MustCompile(`(?is)<header[^>]*>.*?</header>`)
	footerRe = regexp.MustCompile(`(?is)<footer[^>]*>.*?</footer>`)
	tagRe    = regexp.MustCompile(`<[^>]+>`)
	spaceRe  = regexp.MustCompile(`\s+`)
)

type Fetcher struct {
	client *http.Client
}

func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch downloads the page and extracts readable text. Readability handles
// article-shaped pages well; marketing landing pages often defeat it, so a
// regex strip of boilerplate sections serves as the fallback.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", "contentlens/1.0 (+marketing content analyzer)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", rawURL, err)
	}

	if parsed, perr := url.Parse(rawURL); perr == nil {
		if article, rerr := readability.FromReader(bytes.NewReader(body), parsed); rerr == nil {
			if text := collapse(article.TextContent); text != "" {
				return text, nil
			}
		}
	}

	text := StripHTML(string(body))
	if text == "" {
		return "", fmt.Errorf("no readable content at %s", rawURL)
	}
	return text, nil
}

// StripHTML removes boilerplate sections and tags, collapsing whitespace.
func StripHTML(html string) string {
	html = scriptRe.ReplaceAllString(html, " ")
	html = styleRe.ReplaceAllString(html, " ")
	html = navRe.ReplaceAllString(html, " ")
	html = headerRe.ReplaceAllString(html, " ")
	html = footerRe.ReplaceAllString(html, " ")
	html = tagRe.ReplaceAllString(html, " ")
	return collapse(html)
}

func collapse(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}
