package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const policyPage = `
<html>
	<head><title>SNAP | Department of Human Services</title></head>
	<body>
		<nav>Site navigation</nav>
		<main>
			<h1>SNAP Food Benefits</h1>
			<p>Gross monthly income must be at or below the program limit.</p>
			<a href="https://example.gov/snap/apply">Apply</a>
			<a href="https://example.gov/snap/apply">Apply again</a>
			<a href="/relative/link">Relative</a>
		</main>
	</body>
</html>`

func TestIngestPolicyPage_NoStore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(policyPage))
	}))
	defer srv.Close()

	ingester := NewIngester(nil, false, false)
	doc, err := ingester.IngestPolicyPage(context.Background(), "texas", srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "TX", doc.State)
	assert.Equal(t, "SNAP Food Benefits", doc.Title)
	assert.Contains(t, doc.Content, "Gross monthly income")
	assert.NotContains(t, doc.Content, "Site navigation")
}

func TestIngestPolicyPage_InvalidState(t *testing.T) {
	ingester := NewIngester(nil, false, false)
	_, err := ingester.IngestPolicyPage(context.Background(), "Atlantis", "https://example.gov")
	assert.Error(t, err)
}

func TestIngestPolicyPage_FetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ingester := NewIngester(nil, false, false)
	_, err := ingester.IngestPolicyPage(context.Background(), "TX", srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHTTPRequestFailed)
}

func TestExtractTitle_PrefersH1(t *testing.T) {
	assert.Equal(t, "SNAP Food Benefits", extractTitle(policyPage))

	noH1 := `<html><head><title>Fallback Title</title></head><body></body></html>`
	assert.Equal(t, "Fallback Title", extractTitle(noH1))
}

func TestExtractLinks_AbsoluteAndDeduplicated(t *testing.T) {
	links := extractLinks(policyPage, "https://example.gov/snap")
	assert.Equal(t, []string{"https://example.gov/snap/apply"}, links)
}

func TestCleanText(t *testing.T) {
	input := "Line one   with   spaces\r\n\n\n\n- bullet item\n   \n# Heading"
	cleaned := CleanText(input)
	assert.Contains(t, cleaned, "Line one with spaces")
	assert.Contains(t, cleaned, "- bullet item")
	assert.Contains(t, cleaned, "# Heading")
	assert.NotContains(t, cleaned, "\n\n\n")
}

func TestCleanText_Empty(t *testing.T) {
	assert.Equal(t, "", CleanText(""))
	assert.Equal(t, "", CleanText("   \n\t\n"))
}

func TestDefaultPolicyURLs_HasNationalPage(t *testing.T) {
	national, ok := DefaultPolicyURLs[""]
	require.True(t, ok)
	assert.Contains(t, national, "fns.usda.gov")
}
