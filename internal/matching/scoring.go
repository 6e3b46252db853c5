// internal/matching/scoring.go
// Pairwise compatibility scoring: per-question comparison, mutual-importance
// weighting within categories, and the weighted category rollup.

package matching

import (
	"encoding/json"
	"math"

	"github.com/yonah-prog/datedrop-app/internal/survey"
)

// importanceWeights maps a stated importance to its scoring weight.
// Unrecognized levels fall back to the somewhat weight.
var importanceWeights = map[survey.Importance]float64{
	survey.ImportanceNotImportant: 0.25,
	survey.ImportanceSomewhat:     0.5,
	survey.ImportanceImportant:    0.75,
	survey.ImportanceDealbreaker:  1.0,
}

const defaultImportanceWeight = 0.5

// neutralScore stands in for "unknown, assume average": text answers,
// unsupported types, and categories with no mutually answered questions.
const neutralScore = 0.5

// ScoreResult is a scored pair with its per-category breakdown.
type ScoreResult struct {
	Score          float64                     `json:"score"`
	CategoryScores map[survey.Category]float64 `json:"category_scores"`
	DealbreakerHit bool                        `json:"dealbreaker_hit"`
}

// Scorer computes compatibility between two users' survey answers.
// It is a pure function over already-loaded data and safe for
// concurrent use.
type Scorer struct {
	catalog *survey.Catalog
}

func NewScorer(catalog *survey.Catalog) *Scorer {
	return &Scorer{catalog: catalog}
}

// Score runs the dealbreaker gate and, if it passes, the weighted
// category rollup. A dealbreaker mismatch forces the score to 0 and
// skips scoring entirely.
func (s *Scorer) Score(a1, a2 survey.AnswerSet, p1, p2 *Profile) ScoreResult {
	if !s.passesDealbreakers(a1, a2, p1, p2) {
		return ScoreResult{Score: 0, DealbreakerHit: true}
	}

	categoryScores := make(map[survey.Category]float64, len(survey.Categories))
	var weightedSum, weightSum float64
	for _, cat := range survey.Categories {
		score := s.categoryScore(cat, a1, a2)
		categoryScores[cat] = score
		weight := survey.CategoryWeights[cat]
		weightedSum += score * weight
		weightSum += weight
	}

	return ScoreResult{
		Score:          weightedSum / weightSum,
		CategoryScores: categoryScores,
	}
}

// categoryScore aggregates the category's member questions with
// mutual-importance weighting. Questions either side left unanswered are
// skipped; a category with nothing mutually answered scores neutral rather
// than penalizing an incomplete survey.
func (s *Scorer) categoryScore(cat survey.Category, a1, a2 survey.AnswerSet) float64 {
	var compatSum, weightSum float64
	answered := 0

	for _, q := range s.catalog.CategoryQuestions(cat) {
		ans1, ok1 := a1[q.ID]
		ans2, ok2 := a2[q.ID]
		if !ok1 || !ok2 {
			continue
		}

		mutual := mutualImportance(ans1.Importance, ans2.Importance)
		compat := questionCompatibility(q, ans1.Value, ans2.Value)

		compatSum += compat * mutual
		weightSum += mutual
		answered++
	}

	if answered == 0 {
		return neutralScore
	}
	return compatSum / weightSum
}

// questionCompatibility compares two typed values for one question,
// returning a score in [0,1].
func questionCompatibility(q survey.Question, v1, v2 survey.Value) float64 {
	if v1 == nil || v2 == nil {
		return 0
	}

	switch q.Type {
	case survey.TypeLikert:
		l1, ok1 := v1.(survey.LikertValue)
		l2, ok2 := v2.(survey.LikertValue)
		if !ok1 || !ok2 {
			return 0
		}
		return likertCompatibility(int(l1), int(l2), q.LikertScale())

	case survey.TypeEnum:
		e1, ok1 := v1.(survey.EnumValue)
		e2, ok2 := v2.(survey.EnumValue)
		if !ok1 || !ok2 {
			return 0
		}
		if e1 == e2 {
			return 1
		}
		return 0

	case survey.TypeMultiSelect:
		m1, ok1 := v1.(survey.MultiSelectValue)
		m2, ok2 := v2.(survey.MultiSelectValue)
		if !ok1 || !ok2 {
			return 0
		}
		return jaccardSimilarity(m1, m2)

	case survey.TypeText:
		// Free-form text is not comparable algorithmically.
		return neutralScore
	}
	return neutralScore
}

// likertCompatibility is 1 for identical values, 0 at maximum scale
// distance, linear in between.
func likertCompatibility(v1, v2, scale int) float64 {
	distance := math.Abs(float64(v1 - v2))
	return 1 - distance/float64(scale-1)
}

// jaccardSimilarity is |intersection| / |union| over the two choice sets,
// 0 when both are empty.
func jaccardSimilarity(set1, set2 []string) float64 {
	members := make(map[string]bool, len(set1))
	for _, item := range set1 {
		members[item] = true
	}

	intersection := 0
	union := len(members)
	for _, item := range set2 {
		if members[item] {
			intersection++
		} else {
			union++
		}
	}

	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// mutualImportance is the geometric mean of the two users' importance
// weights for the same question. Either side marking a question
// unimportant pulls its weight down for both.
func mutualImportance(i1, i2 survey.Importance) float64 {
	return math.Sqrt(importanceWeight(i1) * importanceWeight(i2))
}

func importanceWeight(i survey.Importance) float64 {
	if w, ok := importanceWeights[i]; ok {
		return w
	}
	return defaultImportanceWeight
}

// encodeCategoryScores renders a breakdown for storage alongside the match.
func encodeCategoryScores(scores map[survey.Category]float64) (json.RawMessage, error) {
	return json.Marshal(scores)
}
