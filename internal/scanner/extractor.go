package scanner

import (
	"io"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// checkoutHint matches hrefs and form actions that look checkout-related.
var checkoutHint = regexp.MustCompile(`(?i)(checkout|cart|bag|payment|order)`)

// ExtractResult holds the script resources and checkout-related page elements
// found in one document.
type ExtractResult struct {
	ScriptSrcs    []string // absolute URLs of external scripts
	InlineScripts []string // verbatim inline script bodies
	Anchors       []AnchorHit
	Forms         []FormHit
}

// ResourceExtractor walks parsed HTML and pulls out scripts, anchors and forms.
type ResourceExtractor struct {
	baseURL *url.URL
}

// NewResourceExtractor creates an extractor that resolves relative URLs
// against the page's final (post-redirect) URL.
func NewResourceExtractor(baseURL string) (*ResourceExtractor, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &ResourceExtractor{baseURL: u}, nil
}

// Extract parses HTML content and collects script resources plus anchors and
// forms whose targets look checkout-related, in document order.
func (e *ResourceExtractor) Extract(body io.Reader) (*ExtractResult, error) {
	doc, err := html.Parse(body)
	if err != nil {
		return nil, err
	}

	result := &ExtractResult{
		ScriptSrcs:    make([]string, 0),
		InlineScripts: make([]string, 0),
		Anchors:       make([]AnchorHit, 0),
		Forms:         make([]FormHit, 0),
	}

	e.traverse(doc, result)

	return result, nil
}

// traverse recursively walks the HTML tree.
func (e *ResourceExtractor) traverse(n *html.Node, result *ExtractResult) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script":
			e.extractScript(n, result)
		case "a":
			e.extractAnchor(n, result)
		case "form":
			e.extractForm(n, result)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		e.traverse(c, result)
	}
}

// extractScript records an external script's absolute URL or an inline
// script's verbatim text. External scripts whose src cannot be resolved are
// dropped silently since they are not fetchable anyway.
func (e *ResourceExtractor) extractScript(n *html.Node, result *ExtractResult) {
	src := attrValue(n, "src")
	if src != "" {
		if abs, ok := e.resolveStrict(src); ok {
			result.ScriptSrcs = append(result.ScriptSrcs, abs)
		}
		return
	}

	text := extractText(n)
	if strings.TrimSpace(text) != "" {
		result.InlineScripts = append(result.InlineScripts, text)
	}
}

// extractAnchor records anchors whose href looks checkout-related.
func (e *ResourceExtractor) extractAnchor(n *html.Node, result *ExtractResult) {
	href := attrValue(n, "href")
	if href == "" || !checkoutHint.MatchString(href) {
		return
	}

	result.Anchors = append(result.Anchors, AnchorHit{
		Href: e.resolve(href),
		Text: strings.TrimSpace(extractText(n)),
	})
}

// extractForm records forms whose action looks checkout-related. The method
// defaults to GET when absent, matching browser behavior.
func (e *ResourceExtractor) extractForm(n *html.Node, result *ExtractResult) {
	action := attrValue(n, "action")
	if action == "" || !checkoutHint.MatchString(action) {
		return
	}

	method := strings.ToUpper(attrValue(n, "method"))
	if method == "" {
		method = "GET"
	}

	result.Forms = append(result.Forms, FormHit{
		Action: e.resolve(action),
		Method: method,
	})
}

// resolve resolves a potentially relative URL to absolute, falling back to
// the raw string when it cannot be parsed.
func (e *ResourceExtractor) resolve(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	return e.baseURL.ResolveReference(u).String()
}

// resolveStrict resolves a URL to absolute, reporting failure instead of
// falling back.
func (e *ResourceExtractor) resolveStrict(href string) (string, bool) {
	u, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	return e.baseURL.ResolveReference(u).String(), true
}

// attrValue returns the value of the named attribute, or "".
func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// extractText recursively extracts text content from a node.
func extractText(n *html.Node) string {
	var text strings.Builder

	var extract func(*html.Node)
	extract = func(node *html.Node) {
		if node.Type == html.TextNode {
			text.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}

	extract(n)
	return text.String()
}
