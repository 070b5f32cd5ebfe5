package scanner

import "time"

// SizeUnknown marks a script whose content size could not be determined,
// typically because the fetch failed.
const SizeUnknown int64 = -1

// Match is the result of applying one signature to one script body.
// Count covers every non-overlapping occurrence in the full text; Snippets
// holds at most three context windows around the earliest matches.
type Match struct {
	Signature string   `json:"signature"`
	Count     int      `json:"count"`
	Snippets  []string `json:"snippets,omitempty"`
}

// ScriptFinding holds the matches for one analyzed script body.
// Source is "inline" for inline scripts, otherwise the absolute script URL.
type ScriptFinding struct {
	Source    string  `json:"source"`
	Inline    bool    `json:"inline"`
	SizeBytes int64   `json:"size_bytes"` // SizeUnknown (-1) when not determinable
	Matches   []Match `json:"matches"`
}

// AnchorHit is an anchor whose target looks checkout-related.
type AnchorHit struct {
	Href string `json:"href"`
	Text string `json:"text"`
}

// FormHit is a form whose action looks checkout-related.
type FormHit struct {
	Action string `json:"action"`
	Method string `json:"method"`
}

// Summary is the aggregated verdict block of a scan.
type Summary struct {
	TotalScripts       int      `json:"total_scripts"`
	ScriptsWithMatches int      `json:"scripts_with_matches"`
	TotalMatches       int      `json:"total_matches"`
	LikelyHasCheckout  bool     `json:"likely_has_checkout"`
	Indicators         []string `json:"indicators"`
}

// PageInfo holds basic metadata extracted from the page markup.
type PageInfo struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Generator   string `json:"generator,omitempty"`
	Canonical   string `json:"canonical,omitempty"`
}

// ScanReport is the terminal result of one scan invocation.
type ScanReport struct {
	URL               string          `json:"url"`
	ScannedAt         time.Time       `json:"scanned_at"`
	Summary           Summary         `json:"summary"`
	Findings          []ScriptFinding `json:"findings"`
	AnchorsToCheckout []AnchorHit     `json:"anchors_to_checkout"`
	FormsToCheckout   []FormHit       `json:"forms_to_checkout"`
	Page              *PageInfo       `json:"page,omitempty"`
	Errors            []string        `json:"errors,omitempty"`
}
