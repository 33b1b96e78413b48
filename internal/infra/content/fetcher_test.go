package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Acme</title><style>body { color: red }</style></head>
<body>
<nav><a href="/">Home</a><a href="/pricing">Pricing</a></nav>
<script>console.log("tracking pixel");</script>
<main>
<h1>Grow your business with Acme</h1>
<p>Our cloud platform saves your team hours every week by automating the busywork that slows you down.</p>
<p>Trusted by thousands of companies to simplify operations and reduce costs.</p>
</main>
<footer>© Acme Inc. All rights reserved.</footer>
</body>
</html>`

func TestFetchExtractsReadableText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	text, err := NewFetcher(0).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Contains(t, text, "Grow your business with Acme")
	assert.Contains(t, text, "saves your team hours")
	assert.NotContains(t, text, "console.log")
	assert.NotContains(t, text, "color: red")
}

func TestFetchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewFetcher(0).Fetch(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "status 404")
}

func TestFetchConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := NewFetcher(0).Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestStripHTML(t *testing.T) {
	got := StripHTML(samplePage)

	assert.Contains(t, got, "Grow your business with Acme")
	assert.NotContains(t, got, "console.log")
	assert.NotContains(t, got, "Pricing")
	assert.NotContains(t, got, "All rights reserved")
	assert.NotContains(t, got, "<p>")
}

func TestStripHTMLCollapsesWhitespace(t *testing.T) {
	got := StripHTML("<p>one</p>\n\n\n<p>two</p>")
	assert.Equal(t, "one two", got)
}
