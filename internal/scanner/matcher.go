package scanner

const (
	// maxSnippets caps how many context snippets are kept per signature.
	// Counting is never truncated by this cap.
	maxSnippets = 3

	// snippetContext is how many characters around a match are retained.
	snippetContext = 80
)

// MatchSignature applies one signature to a script body. Count is the number
// of non-overlapping occurrences across the full text; up to maxSnippets
// context windows are extracted around the earliest matches.
func MatchSignature(text string, sig Signature) Match {
	m := Match{Signature: sig.Name}

	locs := sig.Pattern.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return m
	}
	m.Count = len(locs)

	for i, loc := range locs {
		if i >= maxSnippets {
			break
		}
		start := loc[0] - snippetContext
		if start < 0 {
			start = 0
		}
		end := loc[1] + snippetContext
		if end > len(text) {
			end = len(text)
		}
		m.Snippets = append(m.Snippets, text[start:end])
	}

	return m
}

// analyzeScript applies the whole catalog to one script body and builds its
// finding. Signatures with zero occurrences contribute no match entry.
func analyzeScript(source string, inline bool, size int64, content string, catalog []Signature) ScriptFinding {
	finding := ScriptFinding{
		Source:    source,
		Inline:    inline,
		SizeBytes: size,
		Matches:   []Match{},
	}

	for _, sig := range catalog {
		if m := MatchSignature(content, sig); m.Count > 0 {
			finding.Matches = append(finding.Matches, m)
		}
	}

	return finding
}
