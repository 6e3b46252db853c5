// internal/survey/catalog.go
// The immutable survey question catalog and its category mapping.
// Loaded once at process start and validated before anything else runs.

package survey

import (
	"fmt"
	"math"
)

// QuestionType determines how an answer value is shaped and compared.
type QuestionType string

const (
	TypeEnum        QuestionType = "enum"
	TypeLikert      QuestionType = "likert"
	TypeMultiSelect QuestionType = "multiselect"
	TypeText        QuestionType = "text"
)

// Category groups questions for weighted compatibility scoring.
type Category string

const (
	CategoryReligiousPractice Category = "religious_practice"
	CategoryHashkafa          Category = "hashkafa"
	CategoryFamilyVision      Category = "family_vision"
	CategoryCommunication     Category = "communication"
	CategoryLifestyle         Category = "lifestyle"
	CategoryCareer            Category = "career"
)

// Categories lists all scoring categories in their display order.
var Categories = []Category{
	CategoryReligiousPractice,
	CategoryHashkafa,
	CategoryFamilyVision,
	CategoryCommunication,
	CategoryLifestyle,
	CategoryCareer,
}

// DefaultLikertScale is the scale bound used when a likert question
// doesn't declare one.
const DefaultLikertScale = 7

// SectionCount is the number of ordered survey sections.
const SectionCount = 6

// Question is one immutable catalog entry.
type Question struct {
	ID       int          `json:"id"`
	Section  int          `json:"section"`
	Type     QuestionType `json:"type"`
	Category Category     `json:"category"`
	Scale    int          `json:"scale,omitempty"` // likert only
	Prompt   string       `json:"prompt"`
	Options  []string     `json:"options,omitempty"` // enum and multiselect only
}

// SectionTitles maps section numbers to their display names.
var SectionTitles = map[int]string{
	1: "Religious Practice",
	2: "Hashkafa & Beliefs",
	3: "Career & Education",
	4: "Lifestyle",
	5: "Family & Future",
	6: "About You",
}

// Catalog indexes the full question set for lookup by id, section and category.
type Catalog struct {
	questions  []Question
	byID       map[int]Question
	bySection  map[int][]Question
	byCategory map[Category][]Question
}

// NewCatalog builds the lookup indexes over a question set.
func NewCatalog(questions []Question) *Catalog {
	c := &Catalog{
		questions:  questions,
		byID:       make(map[int]Question, len(questions)),
		bySection:  make(map[int][]Question),
		byCategory: make(map[Category][]Question),
	}
	for _, q := range questions {
		c.byID[q.ID] = q
		c.bySection[q.Section] = append(c.bySection[q.Section], q)
		c.byCategory[q.Category] = append(c.byCategory[q.Category], q)
	}
	return c
}

// DefaultCatalog returns the production question catalog.
func DefaultCatalog() *Catalog {
	return NewCatalog(defaultQuestions)
}

// Question looks up a catalog entry by id.
func (c *Catalog) Question(id int) (Question, bool) {
	q, ok := c.byID[id]
	return q, ok
}

// Section returns the questions of one section in catalog order.
func (c *Catalog) Section(section int) []Question {
	return c.bySection[section]
}

// CategoryQuestions returns the member questions of one category.
func (c *Catalog) CategoryQuestions(cat Category) []Question {
	return c.byCategory[cat]
}

// Questions returns every catalog entry in id order.
func (c *Catalog) Questions() []Question {
	return c.questions
}

// LikertScale returns the scale bound for a likert question.
func (q Question) LikertScale() int {
	if q.Scale > 0 {
		return q.Scale
	}
	return DefaultLikertScale
}

// CategoryWeights define the relative importance of each scoring category.
// They are data rather than branching logic so Validate can check them.
var CategoryWeights = map[Category]float64{
	CategoryReligiousPractice: 0.25,
	CategoryHashkafa:          0.25,
	CategoryFamilyVision:      0.20,
	CategoryCommunication:     0.15,
	CategoryLifestyle:         0.10,
	CategoryCareer:            0.05,
}

// Validate checks the catalog's structural invariants. It is called from
// process startup so a bad edit to the question data fails fast rather than
// skewing scores silently.
func (c *Catalog) Validate() error {
	var weightSum float64
	for _, cat := range Categories {
		w, ok := CategoryWeights[cat]
		if !ok {
			return fmt.Errorf("category %q has no weight", cat)
		}
		weightSum += w
	}
	if math.Abs(weightSum-1.0) > 1e-9 {
		return fmt.Errorf("category weights sum to %v, want 1.0", weightSum)
	}

	seen := make(map[int]bool, len(c.questions))
	for _, q := range c.questions {
		if seen[q.ID] {
			return fmt.Errorf("duplicate question id %d", q.ID)
		}
		seen[q.ID] = true

		if q.Section < 1 || q.Section > SectionCount {
			return fmt.Errorf("question %d: section %d out of range", q.ID, q.Section)
		}
		if _, ok := CategoryWeights[q.Category]; !ok {
			return fmt.Errorf("question %d: unknown category %q", q.ID, q.Category)
		}
		switch q.Type {
		case TypeEnum, TypeMultiSelect:
			if len(q.Options) == 0 {
				return fmt.Errorf("question %d: %s question has no options", q.ID, q.Type)
			}
		case TypeLikert:
			if q.LikertScale() < 2 {
				return fmt.Errorf("question %d: likert scale %d too small", q.ID, q.Scale)
			}
		case TypeText:
		default:
			return fmt.Errorf("question %d: unknown type %q", q.ID, q.Type)
		}
	}
	return nil
}
