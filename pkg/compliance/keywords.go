package compliance

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/procsafe/hazard-engine/pkg/hazop"
)

// keyTermMinLen: tokens this short ("of", "the", "and") carry no signal.
const keyTermMinLen = 4

// folder lowercases with full Unicode case folding so that catalog keywords
// match entry text regardless of locale casing.
var folder = cases.Fold()

// TermSet is a set of folded terms.
type TermSet map[string]struct{}

// Add folds and inserts a term. Blank terms are ignored.
func (t TermSet) Add(term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}
	t[folder.String(term)] = struct{}{}
}

// Contains reports an exact (folded) membership hit.
func (t TermSet) Contains(term string) bool {
	_, ok := t[folder.String(term)]
	return ok
}

// ContainsSubstring reports whether any term in the set contains needle as
// a substring. needle must already be folded.
func (t TermSet) ContainsSubstring(needle string) bool {
	for term := range t {
		if strings.Contains(term, needle) {
			return true
		}
	}
	return false
}

// KeywordSet holds the folded term sets extracted from analysis entries,
// one per matchable field.
type KeywordSet struct {
	Causes          TermSet
	Consequences    TermSet
	Safeguards      TermSet
	Recommendations TermSet
	Parameters      TermSet
	Deviations      TermSet
}

// NewKeywordSet returns an empty set collection.
func NewKeywordSet() KeywordSet {
	return KeywordSet{
		Causes:          make(TermSet),
		Consequences:    make(TermSet),
		Safeguards:      make(TermSet),
		Recommendations: make(TermSet),
		Parameters:      make(TermSet),
		Deviations:      make(TermSet),
	}
}

// ExtractKeywords builds the keyword sets for a collection of entries.
//
// Narrative list fields (causes, consequences, safeguards, recommendations)
// contribute both the full folded string and every key term within it.
// Parameter and deviation contribute the full folded value only.
func ExtractKeywords(entries []hazop.AnalysisEntry) KeywordSet {
	ks := NewKeywordSet()
	for i := range entries {
		e := &entries[i]
		addNarrative(ks.Causes, e.Causes)
		addNarrative(ks.Consequences, e.Consequences)
		addNarrative(ks.Safeguards, e.Safeguards)
		addNarrative(ks.Recommendations, e.Recommendations)
		ks.Parameters.Add(e.Parameter)
		ks.Deviations.Add(e.Deviation)
	}
	return ks
}

func addNarrative(set TermSet, values []string) {
	for _, v := range values {
		set.Add(v)
		for _, term := range keyTerms(v) {
			set.Add(term)
		}
	}
}

// keyTerms splits a phrase on whitespace, strips surrounding punctuation,
// and keeps tokens longer than three runes.
func keyTerms(phrase string) []string {
	var terms []string
	for _, tok := range strings.Fields(phrase) {
		tok = strings.TrimFunc(tok, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if len([]rune(tok)) >= keyTermMinLen {
			terms = append(terms, tok)
		}
	}
	return terms
}
