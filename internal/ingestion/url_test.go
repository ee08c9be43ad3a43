package ingestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jonathan/assessment-recommender/internal/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jobPageHTML = `
<html>
	<head><style>.x{}</style></head>
	<body>
		<nav><a href="/careers">Careers</a></nav>
		<div class="job-description">
			<h1>Senior Java Developer</h1>
			<p>Work closely   with business teams.</p>
			<a href="https://example.com/benefits">Benefits</a>
		</div>
		<form class="application-form">Apply now</form>
	</body>
</html>`

func TestFetchPage_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(jobPageHTML))
	}))
	defer server.Close()

	page, err := FetchPage(context.Background(), server.URL+"/jobs/1", PageOptions{Verbose: true})
	require.NoError(t, err)

	assert.Equal(t, server.URL+"/jobs/1", page.URL)
	assert.Equal(t, "Senior Java Developer\nWork closely with business teams.\nBenefits", page.Text)
	assert.Equal(t, []string{server.URL + "/careers", "https://example.com/benefits"}, page.Links)
	assert.Equal(t, string(fetch.PlatformUnknown), page.Platform)
}

func TestFetchPage_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := FetchPage(context.Background(), server.URL, PageOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)
	assert.Contains(t, err.Error(), "500")
}

func TestFetchPage_InvalidURL(t *testing.T) {
	_, err := FetchPage(context.Background(), "not a url", PageOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)

	var fetchErr *fetch.Error
	assert.ErrorAs(t, err, &fetchErr)
}

func TestFetchPage_BrowserFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div id="root"></div></body></html>`))
	}))
	defer server.Close()

	rendered := `<html><body><main><p>` + strings.Repeat("Rendered description. ", 40) + `</p><a href="/apply">Apply</a></main></body></html>`
	calls := 0
	render := func(_ context.Context, url string) (string, error) {
		calls++
		assert.Equal(t, server.URL, url)
		return rendered, nil
	}

	page, err := FetchPage(context.Background(), server.URL, PageOptions{Render: render})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Contains(t, page.Text, "Rendered description.")
	assert.Equal(t, []string{server.URL + "/apply"}, page.Links)
}

func TestFetchPage_BrowserFailureKeepsHTTPContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>Short static text</p></body></html>`))
	}))
	defer server.Close()

	render := func(context.Context, string) (string, error) {
		return "", errors.New("chrome not installed")
	}

	page, err := FetchPage(context.Background(), server.URL, PageOptions{Render: render})
	require.NoError(t, err)
	assert.Equal(t, "Short static text", page.Text)
}

func TestFetchPage_NoRenderForLongContent(t *testing.T) {
	long := strings.Repeat("Plenty of static content. ", 40)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><main>` + long + `</main></body></html>`))
	}))
	defer server.Close()

	render := func(context.Context, string) (string, error) {
		t.Fatal("renderer should not be called")
		return "", nil
	}

	_, err := FetchPage(context.Background(), server.URL, PageOptions{Render: render})
	require.NoError(t, err)
}
