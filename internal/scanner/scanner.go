package scanner

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/cartsight/scanner/internal/httpclient"
)

// ErrInvalidTarget is returned when the target URL cannot be scanned at all.
// Every other failure degrades into the report's error list instead.
var ErrInvalidTarget = errors.New("invalid target URL")

// Scanner runs the full scan pipeline: page fetch, resource extraction,
// concurrent script retrieval, signature matching and aggregation.
type Scanner struct {
	client    *httpclient.Client
	retriever *ScriptRetriever
	catalog   []Signature
	strong    map[string]bool
}

// New creates a Scanner. A nil catalog uses the built-in one. maxScripts
// bounds how many external scripts are retrieved per scan.
func New(client *httpclient.Client, catalog []Signature, maxScripts int) *Scanner {
	if catalog == nil {
		catalog = DefaultCatalog
	}

	strong := make(map[string]bool, len(catalog))
	for _, sig := range catalog {
		if sig.Strong {
			strong[sig.Name] = true
		}
	}

	return &Scanner{
		client:    client,
		retriever: NewScriptRetriever(client, maxScripts),
		catalog:   catalog,
		strong:    strong,
	}
}

// Scan inspects the page at rawURL and returns a best-effort report. Only an
// unusable target URL produces an error; fetch failures are recorded in the
// report so the caller can tell "found nothing" from "could not analyze".
func (s *Scanner) Scan(ctx context.Context, rawURL string) (*ScanReport, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTarget, rawURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q: scheme must be http or https", ErrInvalidTarget, rawURL)
	}
	target := parsed.String()

	var scanErrors []string

	// Step 1: fetch the page. A failure does not abort the scan; extraction
	// and matching simply run against an empty document.
	pageHTML := ""
	finalURL := target
	if resp, err := s.client.FetchText(ctx, target, nil); err != nil {
		scanErrors = append(scanErrors, fmt.Sprintf("page fetch failed: %v", err))
	} else {
		pageHTML = resp.Body
		finalURL = resp.FinalURL
	}

	// Step 2: extract script resources, anchors and forms. Relative URLs
	// resolve against the final post-redirect URL.
	extracted := &ExtractResult{
		ScriptSrcs:    []string{},
		InlineScripts: []string{},
		Anchors:       []AnchorHit{},
		Forms:         []FormHit{},
	}
	if pageHTML != "" {
		extractor, err := NewResourceExtractor(finalURL)
		if err != nil {
			extractor, _ = NewResourceExtractor(target)
		}
		if res, err := extractor.Extract(strings.NewReader(pageHTML)); err == nil {
			extracted = res
		}
	}

	// Step 3: analyze inline scripts.
	inline := make([]ScriptFinding, 0, len(extracted.InlineScripts))
	for _, body := range extracted.InlineScripts {
		inline = append(inline, analyzeScript("inline", true, int64(len(body)), body, s.catalog))
	}

	// Step 4: retrieve external scripts concurrently and analyze each one.
	// A failed script keeps its slot with an empty match list.
	fetched := s.retriever.RetrieveAll(ctx, extracted.ScriptSrcs, finalURL)
	external := make([]ScriptFinding, 0, len(fetched))
	for _, sf := range fetched {
		if sf.Err != "" {
			scanErrors = append(scanErrors, fmt.Sprintf("script fetch failed: %s", sf.Err))
			external = append(external, ScriptFinding{
				Source:    sf.URL,
				SizeBytes: SizeUnknown,
				Matches:   []Match{},
			})
			continue
		}
		external = append(external, analyzeScript(sf.URL, false, sf.SizeBytes, sf.Content, s.catalog))
	}

	// Step 5: aggregate into the final report.
	report := Aggregate(target, inline, external, extracted.Anchors, extracted.Forms, scanErrors, s.strong)
	if pageHTML != "" {
		report.Page = ExtractPageInfo(pageHTML)
	}

	return report, nil
}
