package survey

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrInvalidSection = errors.New("invalid survey section")
	ErrInvalidAnswer  = errors.New("invalid answer payload")
)

type Service interface {
	GetCatalog(ctx context.Context) []SectionView
	GetSection(ctx context.Context, userID int64, section int) (*SectionResponses, error)
	GetAllResponses(ctx context.Context, userID int64) (map[int]map[int]StoredAnswer, error)
	SaveSection(ctx context.Context, userID int64, section int, responses map[int]RawAnswer) error
	GetProgress(ctx context.Context, userID int64) (map[int]SectionProgress, error)
	GetAnswers(ctx context.Context, userID int64) (AnswerSet, error)
}

// SectionView is one survey section as served to the client.
type SectionView struct {
	Section   int        `json:"section"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// SectionResponses pairs a section's questions with the user's saved answers.
type SectionResponses struct {
	Section   int                  `json:"section"`
	Questions []Question           `json:"questions"`
	Responses map[int]StoredAnswer `json:"responses"`
}

// StoredAnswer is a saved answer as returned to the client.
type StoredAnswer struct {
	Value      json.RawMessage `json:"value"`
	Importance string          `json:"importance_weight"`
	Confidence int             `json:"confidence"`
}

// RawAnswer is an incoming answer before type checking.
type RawAnswer struct {
	Value      json.RawMessage `json:"value"`
	Importance string          `json:"importance_weight"`
	Confidence *int            `json:"confidence,omitempty"`
}

type service struct {
	repo    Repository
	catalog *Catalog
}

func NewService(repo Repository, catalog *Catalog) Service {
	return &service{repo: repo, catalog: catalog}
}

func (s *service) GetCatalog(ctx context.Context) []SectionView {
	views := make([]SectionView, 0, SectionCount)
	for section := 1; section <= SectionCount; section++ {
		views = append(views, SectionView{
			Section:   section,
			Title:     SectionTitles[section],
			Questions: s.catalog.Section(section),
		})
	}
	return views
}

func (s *service) GetSection(ctx context.Context, userID int64, section int) (*SectionResponses, error) {
	if section < 1 || section > SectionCount {
		return nil, ErrInvalidSection
	}

	rows, err := s.repo.GetSectionResponses(ctx, userID, section)
	if err != nil {
		return nil, fmt.Errorf("load section responses: %w", err)
	}

	responses := make(map[int]StoredAnswer, len(rows))
	for _, row := range rows {
		responses[row.QuestionID] = StoredAnswer{
			Value:      row.Value,
			Importance: row.Importance,
			Confidence: row.Confidence,
		}
	}

	return &SectionResponses{
		Section:   section,
		Questions: s.catalog.Section(section),
		Responses: responses,
	}, nil
}

// GetAllResponses returns every saved answer of the user, grouped by
// section and keyed by question id.
func (s *service) GetAllResponses(ctx context.Context, userID int64) (map[int]map[int]StoredAnswer, error) {
	rows, err := s.repo.GetAllResponses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load responses: %w", err)
	}

	grouped := make(map[int]map[int]StoredAnswer, SectionCount)
	for _, row := range rows {
		if grouped[row.Section] == nil {
			grouped[row.Section] = make(map[int]StoredAnswer)
		}
		grouped[row.Section][row.QuestionID] = StoredAnswer{
			Value:      row.Value,
			Importance: row.Importance,
			Confidence: row.Confidence,
		}
	}
	return grouped, nil
}

func (s *service) SaveSection(ctx context.Context, userID int64, section int, responses map[int]RawAnswer) error {
	if section < 1 || section > SectionCount {
		return ErrInvalidSection
	}

	rows := make([]ResponseRow, 0, len(responses))
	for questionID, raw := range responses {
		if len(raw.Value) == 0 {
			continue // empty answers are not saved
		}

		q, ok := s.catalog.Question(questionID)
		if !ok || q.Section != section {
			return fmt.Errorf("%w: question %d not in section %d", ErrInvalidAnswer, questionID, section)
		}

		// Decode to prove the value fits the declared type, then store the
		// canonical encoding.
		value, err := DecodeValue(q, raw.Value)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidAnswer, err)
		}
		encoded, err := EncodeValue(value)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidAnswer, err)
		}

		importance := Importance(raw.Importance)
		if raw.Importance == "" {
			importance = ImportanceSomewhat
		} else if !ValidImportance(importance) {
			return fmt.Errorf("%w: unknown importance %q", ErrInvalidAnswer, raw.Importance)
		}

		confidence := 100
		if raw.Confidence != nil {
			confidence = *raw.Confidence
		}
		if confidence < 0 || confidence > 100 {
			return fmt.Errorf("%w: confidence %d outside 0-100", ErrInvalidAnswer, confidence)
		}

		rows = append(rows, ResponseRow{
			UserID:     userID,
			Section:    section,
			QuestionID: questionID,
			Value:      encoded,
			Importance: string(importance),
			Confidence: confidence,
		})
	}

	if err := s.repo.SaveResponses(ctx, rows); err != nil {
		return fmt.Errorf("save responses: %w", err)
	}
	return nil
}

func (s *service) GetProgress(ctx context.Context, userID int64) (map[int]SectionProgress, error) {
	answered, err := s.repo.GetProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}

	progress := make(map[int]SectionProgress, SectionCount)
	for section := 1; section <= SectionCount; section++ {
		progress[section] = SectionProgress{
			Answered: answered[section],
			Total:    len(s.catalog.Section(section)),
		}
	}
	return progress, nil
}

func (s *service) GetAnswers(ctx context.Context, userID int64) (AnswerSet, error) {
	return s.repo.GetAnswers(ctx, userID)
}
