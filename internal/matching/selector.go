// internal/matching/selector.go
// Greedy pair selection under a per-user cap. Highest scores win; the
// result is a good conflict-free subset, not a maximum-weight matching.

package matching

import (
	"math"
	"sort"

	"github.com/yonah-prog/datedrop-app/internal/survey"
)

// Candidate is a scored unordered pair eligible for selection.
// User1ID < User2ID always.
type Candidate struct {
	User1ID        int64                       `json:"user1_id"`
	User2ID        int64                       `json:"user2_id"`
	Score          float64                     `json:"score"`
	CategoryScores map[survey.Category]float64 `json:"category_scores"`
}

// maxMatchesPerUser computes the per-drop cap: scarce candidates mean one
// match each, a dense candidate pool allows up to a few.
func maxMatchesPerUser(candidateCount, cohortSize int) int {
	if cohortSize == 0 {
		return 1
	}
	limit := int(math.Ceil(3 * float64(candidateCount) / float64(cohortSize*cohortSize)))
	if limit < 1 {
		return 1
	}
	return limit
}

// selectTopMatches picks a conflict-free subset of candidates. Candidates
// are taken in descending score order and accepted only while both members
// remain under the cap. The sort is stable, so equal scores keep their
// enumeration order (ascending pair ids) and selection is deterministic.
func selectTopMatches(candidates []Candidate, cohortSize int) []Candidate {
	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	limit := maxMatchesPerUser(len(candidates), cohortSize)

	counts := make(map[int64]int)
	selected := make([]Candidate, 0, len(sorted))
	for _, c := range sorted {
		if counts[c.User1ID] >= limit || counts[c.User2ID] >= limit {
			continue
		}
		counts[c.User1ID]++
		counts[c.User2ID]++
		selected = append(selected, c)
	}
	return selected
}
