package scanner

import "time"

// Output caps keep report payloads bounded regardless of input volume.
// Caps truncate the tail in discovery order, never resample.
const (
	maxFindings = 60
	maxAnchors  = 50
	maxForms    = 50
)

// Indicator strings surfaced when structural page elements hint at checkout.
const (
	indicatorAnchors = "anchors to checkout/cart found"
	indicatorForms   = "forms posting to checkout/cart found"
)

// Aggregate combines per-script findings, page elements and collected errors
// into the final report. Inline findings without matches are dropped; external
// findings are kept regardless, including fetch failures.
func Aggregate(targetURL string, inline, external []ScriptFinding, anchors []AnchorHit, forms []FormHit, errs []string, strong map[string]bool) *ScanReport {
	findings := make([]ScriptFinding, 0, len(inline)+len(external))
	for _, f := range inline {
		if len(f.Matches) > 0 {
			findings = append(findings, f)
		}
	}
	findings = append(findings, external...)

	summary := Summary{
		TotalScripts: len(findings),
		Indicators:   []string{},
	}

	for _, f := range findings {
		if len(f.Matches) == 0 {
			continue
		}
		summary.ScriptsWithMatches++
		for _, m := range f.Matches {
			summary.TotalMatches += m.Count
			if strong[m.Signature] {
				summary.LikelyHasCheckout = true
			}
		}
	}

	// Deliberately permissive: any match anywhere flips the verdict.
	if summary.ScriptsWithMatches > 0 {
		summary.LikelyHasCheckout = true
	}

	if len(anchors) > 0 {
		summary.Indicators = append(summary.Indicators, indicatorAnchors)
	}
	if len(forms) > 0 {
		summary.Indicators = append(summary.Indicators, indicatorForms)
	}

	if len(findings) > maxFindings {
		findings = findings[:maxFindings]
	}
	if len(anchors) > maxAnchors {
		anchors = anchors[:maxAnchors]
	}
	if len(forms) > maxForms {
		forms = forms[:maxForms]
	}

	return &ScanReport{
		URL:               targetURL,
		ScannedAt:         time.Now().UTC(),
		Summary:           summary,
		Findings:          findings,
		AnchorsToCheckout: anchors,
		FormsToCheckout:   forms,
		Errors:            errs,
	}
}
