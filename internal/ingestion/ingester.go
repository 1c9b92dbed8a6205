// Package ingestion fetches benefit-policy pages, extracts their text, and
// stores the result as searchable documents.
package ingestion

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/benefind/internal/fetch"
	"github.com/jonathan/benefind/internal/knowledge"
	"github.com/jonathan/benefind/internal/usstate"
)

var (
	// ErrInvalidURL is returned when URL is malformed
	ErrInvalidURL = fmt.Errorf("invalid URL")
	// ErrHTTPRequestFailed is returned when HTTP request fails
	ErrHTTPRequestFailed = fmt.Errorf("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = fmt.Errorf("content extraction failed")
)

// DefaultPolicyURLs maps state codes to their SNAP policy pages. The empty
// key is the national USDA overview, ingested for every state.
var DefaultPolicyURLs = map[string]string{
	"":   "https://www.fns.usda.gov/snap/recipient/eligibility",
	"CA": "https://www.cdss.ca.gov/food-nutrition/calfresh",
	"NY": "https://otda.ny.gov/programs/snap/",
	"TX": "https://www.hhs.texas.gov/services/food/snap-food-benefits",
	"FL": "https://www.myflfamilies.com/services/public-assistance/food-assistance",
	"IL": "https://www.dhs.state.il.us/page.aspx?item=30357",
	"PA": "https://www.dhs.pa.gov/Services/Assistance/Pages/SNAP.aspx",
	"OH": "https://jfs.ohio.gov/ofam/foodassistance.stm",
	"WA": "https://www.dshs.wa.gov/esa/community-services-offices/basic-food",
}

// Ingester fetches policy pages and persists them as documents. A nil
// store still extracts text but skips caching and persistence.
type Ingester struct {
	store      *knowledge.Store
	useBrowser bool
	verbose    bool
}

// NewIngester creates an Ingester.
func NewIngester(store *knowledge.Store, useBrowser, verbose bool) *Ingester {
	return &Ingester{store: store, useBrowser: useBrowser, verbose: verbose}
}

// IngestPolicyPage fetches one policy page and stores it for a state.
// Fresh cached documents short-circuit the fetch.
func (in *Ingester) IngestPolicyPage(ctx context.Context, state, urlStr string) (*knowledge.Document, error) {
	if state != "" {
		normalized, err := usstate.NormalizeState(state)
		if err != nil {
			return nil, err
		}
		state = normalized
	}

	if in.store != nil {
		cached, err := in.store.GetFreshDocument(ctx, urlStr)
		if err != nil {
			return nil, fmt.Errorf("failed to check document cache: %w", err)
		}
		if cached != nil {
			if in.verbose {
				log.Printf("[INGEST] Cache hit for %s (fetched %s)", urlStr, cached.FetchedAt.Format("2006-01-02"))
			}
			return cached, nil
		}
	}

	text, meta, err := extractFromURL(ctx, urlStr, in.useBrowser, in.verbose)
	if err != nil {
		return nil, err
	}

	doc := &knowledge.Document{
		State:   state,
		URL:     urlStr,
		Source:  meta.Source,
		Title:   meta.Title,
		Content: text,
	}

	if in.store != nil {
		if err := in.store.UpsertDocument(ctx, doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// IngestDefaults ingests the national page plus every state page in
// DefaultPolicyURLs. Individual failures are logged and skipped; the
// count of stored documents is returned.
func (in *Ingester) IngestDefaults(ctx context.Context) (int, error) {
	stored := 0
	for state, urlStr := range DefaultPolicyURLs {
		doc, err := in.IngestPolicyPage(ctx, state, urlStr)
		if err != nil {
			log.Printf("[INGEST] Failed %s (%s): %v", urlStr, state, err)
			continue
		}
		if in.verbose {
			log.Printf("[INGEST] Stored %q (%d chars) for state %q", doc.Title, len(doc.Content), state)
		}
		stored++
		if err := ctx.Err(); err != nil {
			return stored, err
		}
	}
	return stored, nil
}

// extractFromURL fetches a URL, applies publisher-specific selectors, and
// returns cleaned text with metadata. Falls back to browser rendering for
// script-heavy portals when enabled.
func extractFromURL(ctx context.Context, urlStr string, useBrowser, verbose bool) (string, *Metadata, error) {
	source := fetch.DetectSource(urlStr)
	if verbose {
		log.Printf("[VERBOSE] URL: %s", urlStr)
		log.Printf("[VERBOSE] Detected source: %s", source)
	}

	result, err := fetch.URL(ctx, urlStr, nil)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	if verbose {
		log.Printf("[VERBOSE] Fetched HTML: %d bytes", len(result.HTML))
	}

	contentSelectors := fetch.SourceContentSelectors(source)
	noiseSelectors := fetch.SourceNoiseSelectors(source)

	html := result.HTML
	textContent, err := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	if useBrowser && fetch.ShouldUseBrowser(textContent) {
		if verbose {
			log.Printf("[VERBOSE] Content too short (%d chars < %d), falling back to browser rendering...",
				len(textContent), fetch.MinContentLength)
		}
		browserHTML, browserErr := fetch.BrowserSimple(ctx, urlStr, verbose)
		if browserErr != nil {
			if verbose {
				log.Printf("[VERBOSE] Browser rendering failed: %v, using HTTP content", browserErr)
			}
		} else {
			rendered, extractErr := fetch.ExtractMainText(browserHTML, contentSelectors, noiseSelectors...)
			if extractErr == nil {
				html = browserHTML
				textContent = rendered
			}
		}
	}

	cleanedText := CleanText(textContent)

	metadata := NewMetadata(cleanedText, urlStr)
	metadata.Source = string(source)
	metadata.Title = extractTitle(html)
	metadata.ExtractedLinks = extractLinks(html, urlStr)

	return cleanedText, metadata, nil
}

// extractTitle pulls a display title from the page, preferring the first
// h1 over the title tag (agency title tags carry site-wide suffixes).
func extractTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// extractLinks collects same-page absolute links, used as seeds for
// follow-up ingestion.
func extractLinks(html, baseURL string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !strings.HasPrefix(href, "http") || href == baseURL {
			return
		}
		if _, dup := seen[href]; dup {
			return
		}
		seen[href] = struct{}{}
		links = append(links, href)
	})
	return links
}
