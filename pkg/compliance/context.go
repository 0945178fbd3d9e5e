package compliance

import "github.com/procsafe/hazard-engine/pkg/hazop"

// Context summarizes an entry collection for relevance decisions and gap
// extraction. Built fresh per validation call and read-only afterward.
type Context struct {
	Entries []hazop.AnalysisEntry

	NodeCount                  int
	GuideWordCount             int
	EntriesWithSafeguards      int
	EntriesWithRecommendations int
	HasRiskAssessment          bool
	HighRiskEntryCount         int
	HasLOPA                    bool
}

// BuildContext aggregates entries into a Context. An empty collection yields
// all-zero counts.
func BuildContext(entries []hazop.AnalysisEntry, opts Options) Context {
	ctx := Context{
		Entries: entries,
		HasLOPA: opts.HasLOPA,
	}

	nodes := make(map[string]struct{})
	guideWords := make(map[hazop.GuideWord]struct{})
	for i := range entries {
		e := &entries[i]
		nodes[e.NodeID] = struct{}{}
		guideWords[e.GuideWord] = struct{}{}
		if e.HasSafeguards() {
			ctx.EntriesWithSafeguards++
		}
		if e.HasRecommendations() {
			ctx.EntriesWithRecommendations++
		}
		if e.Risk != nil {
			ctx.HasRiskAssessment = true
			if e.Risk.Level == hazop.RiskHigh {
				ctx.HighRiskEntryCount++
			}
		}
	}
	ctx.NodeCount = len(nodes)
	ctx.GuideWordCount = len(guideWords)
	return ctx
}
