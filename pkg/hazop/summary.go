package hazop

import (
	"math"
	"sort"
)

// RiskSummary aggregates risk scores across a study for dashboard views.
type RiskSummary struct {
	EntryCount  int     `json:"entry_count"`
	RankedCount int     `json:"ranked_count"`
	MeanScore   float64 `json:"mean_score"`
	MaxScore    int     `json:"max_score"`
	P50Score    int     `json:"p50_score"`
	P90Score    int     `json:"p90_score"`

	ByLevel     map[RiskLevel]int `json:"by_level"`
	ByGuideWord map[GuideWord]int `json:"by_guide_word"` // high-risk entries per guide word
	ByNode      map[string]int    `json:"by_node"`       // max score per node
}

// Summarize computes the risk distribution over a set of entries.
// Entries without a ranking count toward EntryCount only.
func Summarize(entries []AnalysisEntry) RiskSummary {
	s := RiskSummary{
		EntryCount:  len(entries),
		ByLevel:     make(map[RiskLevel]int),
		ByGuideWord: make(map[GuideWord]int),
		ByNode:      make(map[string]int),
	}

	var scores []int
	sum := 0
	for _, e := range entries {
		if e.Risk == nil {
			continue
		}
		s.RankedCount++
		scores = append(scores, e.Risk.Score)
		sum += e.Risk.Score
		s.ByLevel[e.Risk.Level]++
		if e.Risk.Score > s.MaxScore {
			s.MaxScore = e.Risk.Score
		}
		if e.Risk.Level == RiskHigh {
			s.ByGuideWord[e.GuideWord]++
		}
		if e.Risk.Score > s.ByNode[e.NodeID] {
			s.ByNode[e.NodeID] = e.Risk.Score
		}
	}

	if s.RankedCount > 0 {
		s.MeanScore = float64(sum) / float64(s.RankedCount)
		sort.Ints(scores)
		s.P50Score = percentile(scores, 50)
		s.P90Score = percentile(scores, 90)
	}
	return s
}

// percentile uses nearest-rank on an already-sorted slice.
func percentile(sorted []int, p int) int {
	if len(sorted) == 0 {
		return 0
	}
	rank := int(math.Ceil(float64(p) / 100 * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}
