package survey

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

type fakeRepo struct {
	saved    []ResponseRow
	answered map[int]int
}

func (f *fakeRepo) GetSectionResponses(ctx context.Context, userID int64, section int) ([]ResponseRow, error) {
	var rows []ResponseRow
	for _, row := range f.saved {
		if row.UserID == userID && row.Section == section {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (f *fakeRepo) GetAllResponses(ctx context.Context, userID int64) ([]ResponseRow, error) {
	var rows []ResponseRow
	for _, row := range f.saved {
		if row.UserID == userID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (f *fakeRepo) SaveResponses(ctx context.Context, rows []ResponseRow) error {
	f.saved = append(f.saved, rows...)
	return nil
}

func (f *fakeRepo) GetProgress(ctx context.Context, userID int64) (map[int]int, error) {
	return f.answered, nil
}

func (f *fakeRepo) GetAnswers(ctx context.Context, userID int64) (AnswerSet, error) {
	return nil, nil
}

func newTestSurveyService(t *testing.T) (Service, *fakeRepo) {
	t.Helper()
	catalog := DefaultCatalog()
	if err := catalog.Validate(); err != nil {
		t.Fatalf("catalog validation failed: %v", err)
	}
	repo := &fakeRepo{answered: make(map[int]int)}
	return NewService(repo, catalog), repo
}

func intPtr(n int) *int { return &n }

func TestSaveSection(t *testing.T) {
	svc, repo := newTestSurveyService(t)

	err := svc.SaveSection(context.Background(), 7, 1, map[int]RawAnswer{
		1: {Value: json.RawMessage(`"traditional"`), Importance: "important"},
		2: {Value: json.RawMessage(`5`), Confidence: intPtr(80)},
	})
	if err != nil {
		t.Fatalf("SaveSection() error: %v", err)
	}

	if len(repo.saved) != 2 {
		t.Fatalf("saved %d rows, want 2", len(repo.saved))
	}
	for _, row := range repo.saved {
		if row.UserID != 7 || row.Section != 1 {
			t.Errorf("row saved under user %d section %d", row.UserID, row.Section)
		}
		switch row.QuestionID {
		case 1:
			if row.Importance != "important" {
				t.Errorf("question 1 importance %q", row.Importance)
			}
			if row.Confidence != 100 {
				t.Errorf("question 1 confidence %d, want default 100", row.Confidence)
			}
		case 2:
			if row.Importance != string(ImportanceSomewhat) {
				t.Errorf("question 2 importance %q, want default somewhat", row.Importance)
			}
			if row.Confidence != 80 {
				t.Errorf("question 2 confidence %d, want 80", row.Confidence)
			}
		default:
			t.Errorf("unexpected question %d saved", row.QuestionID)
		}
	}
}

func TestSaveSectionSkipsEmptyValues(t *testing.T) {
	svc, repo := newTestSurveyService(t)

	err := svc.SaveSection(context.Background(), 7, 1, map[int]RawAnswer{
		1: {Value: nil},
		2: {Value: json.RawMessage(`5`)},
	})
	if err != nil {
		t.Fatalf("SaveSection() error: %v", err)
	}
	if len(repo.saved) != 1 || repo.saved[0].QuestionID != 2 {
		t.Errorf("saved rows %+v, want only question 2", repo.saved)
	}
}

func TestSaveSectionRejections(t *testing.T) {
	cases := []struct {
		name      string
		section   int
		responses map[int]RawAnswer
		wantErr   error
	}{
		{
			"section out of range",
			7,
			nil,
			ErrInvalidSection,
		},
		{
			"question from another section",
			1,
			map[int]RawAnswer{58: {Value: json.RawMessage(`"definitely"`)}},
			ErrInvalidAnswer,
		},
		{
			"unknown question",
			1,
			map[int]RawAnswer{9999: {Value: json.RawMessage(`1`)}},
			ErrInvalidAnswer,
		},
		{
			"value off the declared type",
			1,
			map[int]RawAnswer{2: {Value: json.RawMessage(`"agree"`)}},
			ErrInvalidAnswer,
		},
		{
			"unknown importance",
			1,
			map[int]RawAnswer{2: {Value: json.RawMessage(`5`), Importance: "critical"}},
			ErrInvalidAnswer,
		},
		{
			"confidence out of range",
			1,
			map[int]RawAnswer{2: {Value: json.RawMessage(`5`), Confidence: intPtr(120)}},
			ErrInvalidAnswer,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo := newTestSurveyService(t)
			err := svc.SaveSection(context.Background(), 7, tc.section, tc.responses)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, want %v", err, tc.wantErr)
			}
			if len(repo.saved) != 0 {
				t.Errorf("rejected save still wrote %d rows", len(repo.saved))
			}
		})
	}
}

func TestGetAllResponsesGroupedBySection(t *testing.T) {
	svc, _ := newTestSurveyService(t)
	ctx := context.Background()

	if err := svc.SaveSection(ctx, 7, 1, map[int]RawAnswer{
		1: {Value: json.RawMessage(`"traditional"`), Importance: "important"},
		2: {Value: json.RawMessage(`5`)},
	}); err != nil {
		t.Fatalf("SaveSection(1) error: %v", err)
	}
	if err := svc.SaveSection(ctx, 7, 5, map[int]RawAnswer{
		58: {Value: json.RawMessage(`"definitely"`), Importance: "dealbreaker", Confidence: intPtr(90)},
	}); err != nil {
		t.Fatalf("SaveSection(5) error: %v", err)
	}

	grouped, err := svc.GetAllResponses(ctx, 7)
	if err != nil {
		t.Fatalf("GetAllResponses() error: %v", err)
	}

	if len(grouped) != 2 {
		t.Fatalf("responses span %d sections, want 2", len(grouped))
	}
	if len(grouped[1]) != 2 {
		t.Errorf("section 1 holds %d answers, want 2", len(grouped[1]))
	}
	saved, ok := grouped[5][58]
	if !ok {
		t.Fatal("section 5 missing question 58")
	}
	if saved.Importance != "dealbreaker" {
		t.Errorf("question 58 importance %q, want dealbreaker", saved.Importance)
	}
	if saved.Confidence != 90 {
		t.Errorf("question 58 confidence %d, want 90", saved.Confidence)
	}
	if string(saved.Value) != `"definitely"` {
		t.Errorf("question 58 value %s", saved.Value)
	}
}

func TestGetAllResponsesEmpty(t *testing.T) {
	svc, _ := newTestSurveyService(t)

	grouped, err := svc.GetAllResponses(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetAllResponses() error: %v", err)
	}
	if len(grouped) != 0 {
		t.Errorf("expected empty grouping, got %v", grouped)
	}
}

func TestGetSectionValidatesRange(t *testing.T) {
	svc, _ := newTestSurveyService(t)
	if _, err := svc.GetSection(context.Background(), 7, 0); !errors.Is(err, ErrInvalidSection) {
		t.Errorf("err = %v, want ErrInvalidSection", err)
	}
}

func TestGetProgressCoversAllSections(t *testing.T) {
	svc, repo := newTestSurveyService(t)
	repo.answered[1] = 3

	progress, err := svc.GetProgress(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetProgress() error: %v", err)
	}
	if len(progress) != SectionCount {
		t.Fatalf("progress covers %d sections, want %d", len(progress), SectionCount)
	}
	if progress[1].Answered != 3 {
		t.Errorf("section 1 answered = %d, want 3", progress[1].Answered)
	}
	if progress[2].Answered != 0 {
		t.Errorf("section 2 answered = %d, want 0", progress[2].Answered)
	}
	for section, p := range progress {
		if p.Total == 0 {
			t.Errorf("section %d reports zero questions", section)
		}
	}
}
