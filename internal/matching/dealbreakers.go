// internal/matching/dealbreakers.go
// Hard-exclusion rules evaluated before any scoring happens.

package matching

import "github.com/yonah-prog/datedrop-app/internal/survey"

// dealbreakerQuestions lists the question ids eligible for hard
// enforcement when a user marks them dealbreaker importance.
var dealbreakerQuestions = []int{
	9,  // kashrut standard at home
	10, // kashrut standard outside the home
	58, // wanting children
	99, // TODO: gender preference, pending its addition to the catalog
}

// passesDealbreakers reports whether the pair survives every hard rule.
// Only enum questions are enforceable today: a mismatched enum answer
// where either side marked dealbreaker rejects the pair outright. Likert,
// multiselect and text questions with a dealbreaker flag are not enforced
// (there is no agreed notion of "exact mismatch" for them yet). Missing
// answers on either side never veto.
func (s *Scorer) passesDealbreakers(a1, a2 survey.AnswerSet, p1, p2 *Profile) bool {
	// Location radius: profiles carry a radius but no distance check runs
	// yet. Both profiles existing is treated as compatible.
	_ = p1
	_ = p2

	for _, questionID := range dealbreakerQuestions {
		q, ok := s.catalog.Question(questionID)
		if !ok {
			continue
		}

		ans1, ok1 := a1[questionID]
		ans2, ok2 := a2[questionID]
		if !ok1 || !ok2 {
			continue
		}

		if ans1.Importance != survey.ImportanceDealbreaker && ans2.Importance != survey.ImportanceDealbreaker {
			continue
		}

		if q.Type != survey.TypeEnum {
			continue
		}

		v1, ok1 := ans1.Value.(survey.EnumValue)
		v2, ok2 := ans2.Value.(survey.EnumValue)
		if !ok1 || !ok2 {
			continue
		}
		if v1 != v2 {
			return false
		}
	}
	return true
}
