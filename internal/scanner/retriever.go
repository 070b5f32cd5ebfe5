package scanner

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/cartsight/scanner/internal/httpclient"
)

// MaxExternalScripts caps how many external scripts one scan will retrieve.
// URLs beyond the cap are never fetched.
const MaxExternalScripts = 15

// ScriptFetchResult is the outcome of retrieving one external script.
type ScriptFetchResult struct {
	URL       string
	Content   string
	SizeBytes int64 // SizeUnknown when the fetch failed
	Err       string
}

// ScriptRetriever fetches external scripts concurrently.
type ScriptRetriever struct {
	client     *httpclient.Client
	maxScripts int
}

// NewScriptRetriever creates a retriever bounded at maxScripts concurrent
// in-flight fetches. Values <= 0 fall back to MaxExternalScripts.
func NewScriptRetriever(client *httpclient.Client, maxScripts int) *ScriptRetriever {
	if maxScripts <= 0 {
		maxScripts = MaxExternalScripts
	}
	return &ScriptRetriever{
		client:     client,
		maxScripts: maxScripts,
	}
}

// RetrieveAll fetches the given script URLs concurrently and returns one
// result per retained URL, in input order. The input is truncated to the
// script cap first. A failing URL records its error on its own entry; the
// batch itself never fails.
func (r *ScriptRetriever) RetrieveAll(ctx context.Context, urls []string, referer string) []ScriptFetchResult {
	if len(urls) > r.maxScripts {
		urls = urls[:r.maxScripts]
	}

	// Pre-allocated result slots keep input order regardless of which
	// fetch completes first.
	results := make([]ScriptFetchResult, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.maxScripts)

	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			results[i] = r.fetchOne(ctx, u, referer)
			return nil
		})
	}

	// Goroutines never return an error; Wait is only a join point.
	_ = g.Wait()

	return results
}

// fetchOne retrieves a single script with the page URL as referer.
func (r *ScriptRetriever) fetchOne(ctx context.Context, scriptURL, referer string) ScriptFetchResult {
	result := ScriptFetchResult{
		URL:       scriptURL,
		SizeBytes: SizeUnknown,
	}

	resp, err := r.client.FetchText(ctx, scriptURL, map[string]string{
		"Referer": referer,
		"Accept":  "*/*",
	})
	if err != nil {
		result.Err = err.Error()
		return result
	}

	result.Content = resp.Body
	result.SizeBytes = int64(len(resp.Body))

	// Prefer the declared content length when the server sent one.
	if cl := resp.Header.Get("Content-Length"); cl != "" {
		if size, err := strconv.ParseInt(cl, 10, 64); err == nil {
			result.SizeBytes = size
		}
	}

	return result
}
