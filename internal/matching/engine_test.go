package matching

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yonah-prog/datedrop-app/internal/survey"
)

// fakeStore is an in-memory Store keeping matches keyed by normalized
// pair, the way the SQL layer's unique constraint does.
type fakeStore struct {
	eventDate   time.Time
	eventStatus string

	optedIn  []int64
	profiles map[int64]*Profile
	answers  map[int64]survey.AnswerSet
	blocked  map[[2]int64]bool
	matches  map[[2]int64]*Match

	failUpserts bool
	upsertCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		profiles: make(map[int64]*Profile),
		answers:  make(map[int64]survey.AnswerSet),
		blocked:  make(map[[2]int64]bool),
		matches:  make(map[[2]int64]*Match),
	}
}

func (f *fakeStore) addUser(userID int64, answers survey.AnswerSet) {
	f.optedIn = append(f.optedIn, userID)
	f.profiles[userID] = &Profile{UserID: userID}
	f.answers[userID] = answers
}

func (f *fakeStore) ResolveDropEvent(ctx context.Context, eventDate time.Time) (int64, error) {
	f.eventDate = eventDate
	f.eventStatus = DropStatusPending
	return 1, nil
}

func (f *fakeStore) SetDropEventStatus(ctx context.Context, dropEventID int64, status string) error {
	f.eventStatus = status
	return nil
}

func (f *fakeStore) ListOptedIn(ctx context.Context, dropEventID int64) ([]int64, error) {
	return append([]int64(nil), f.optedIn...), nil
}

func (f *fakeStore) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	if p, ok := f.profiles[userID]; ok {
		return p, nil
	}
	return &Profile{UserID: userID}, nil
}

func (f *fakeStore) GetAnswers(ctx context.Context, userID int64) (survey.AnswerSet, error) {
	return f.answers[userID], nil
}

func (f *fakeStore) FindMatch(ctx context.Context, user1ID, user2ID int64) (*Match, error) {
	u1, u2 := NormalizePair(user1ID, user2ID)
	if m, ok := f.matches[[2]int64{u1, u2}]; ok {
		copied := *m
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeStore) IsBlocked(ctx context.Context, user1ID, user2ID int64) (bool, error) {
	u1, u2 := NormalizePair(user1ID, user2ID)
	return f.blocked[[2]int64{u1, u2}], nil
}

func (f *fakeStore) UpsertMatch(ctx context.Context, match *Match) error {
	f.upsertCalls++
	if f.failUpserts {
		return errors.New("storage unavailable")
	}
	u1, u2 := NormalizePair(match.User1ID, match.User2ID)
	copied := *match
	copied.User1ID, copied.User2ID = u1, u2
	f.matches[[2]int64{u1, u2}] = &copied
	return nil
}

func (f *fakeStore) ExpireStaleMatches(ctx context.Context, now time.Time) (int64, error) {
	var expired int64
	for _, m := range f.matches {
		if m.Status == StatusActive && m.ExpiresAt != nil && !m.ExpiresAt.After(now) {
			m.Status = StatusExpired
			expired++
		}
	}
	return expired, nil
}

func newTestEngine(t *testing.T, store *fakeStore) *Engine {
	t.Helper()
	catalog := survey.DefaultCatalog()
	if err := catalog.Validate(); err != nil {
		t.Fatalf("catalog validation failed: %v", err)
	}
	return NewEngine(store, NewScorer(catalog))
}

func compatibleAnswers() survey.AnswerSet {
	return survey.AnswerSet{
		2:  {QuestionID: 2, Value: survey.LikertValue(5), Importance: survey.ImportanceSomewhat},
		16: {QuestionID: 16, Value: survey.LikertValue(4), Importance: survey.ImportanceSomewhat},
	}
}

func TestRunDropCreatesMatches(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, compatibleAnswers())
	store.addUser(2, compatibleAnswers())
	engine := newTestEngine(t, store)

	eventDate := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	summary, err := engine.RunDrop(context.Background(), eventDate)
	if err != nil {
		t.Fatalf("RunDrop() error: %v", err)
	}

	if summary.EligibleUsers != 2 {
		t.Errorf("eligible users = %d, want 2", summary.EligibleUsers)
	}
	if len(summary.Matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(summary.Matches))
	}
	m := summary.Matches[0]
	if m.User1ID != 1 || m.User2ID != 2 {
		t.Errorf("match pair (%d,%d), want (1,2)", m.User1ID, m.User2ID)
	}
	if m.Status != StatusActive {
		t.Errorf("match status %q, want active", m.Status)
	}
	if m.CompatibilityScore == nil || *m.CompatibilityScore <= 0 {
		t.Error("match missing a positive compatibility score")
	}
	if m.ExpiresAt == nil {
		t.Fatal("match missing expiry")
	}
	if got := m.ExpiresAt.Sub(m.CreatedAt); got != MatchLifetime {
		t.Errorf("match lifetime %v, want %v", got, MatchLifetime)
	}
	if store.eventStatus != DropStatusCompleted {
		t.Errorf("drop event status %q, want completed", store.eventStatus)
	}
	if summary.RunID == "" {
		t.Error("summary missing run id")
	}
}

func TestRunDropFewerThanTwoUsersCompletesEmpty(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, compatibleAnswers())
	engine := newTestEngine(t, store)

	summary, err := engine.RunDrop(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("RunDrop() error: %v", err)
	}
	if len(summary.Matches) != 0 {
		t.Errorf("got %d matches, want 0", len(summary.Matches))
	}
	if store.eventStatus != DropStatusCompleted {
		t.Errorf("drop event status %q, want completed", store.eventStatus)
	}
}

func TestRunDropIdempotentRetry(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, compatibleAnswers())
	store.addUser(2, compatibleAnswers())
	engine := newTestEngine(t, store)

	eventDate := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	first, err := engine.RunDrop(context.Background(), eventDate)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if len(first.Matches) != 1 {
		t.Fatalf("first run made %d matches, want 1", len(first.Matches))
	}

	// The pair now holds an active match, so the retry finds no fresh
	// candidates and no duplicate rows appear.
	second, err := engine.RunDrop(context.Background(), eventDate)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(second.Matches) != 0 {
		t.Errorf("second run made %d matches, want 0", len(second.Matches))
	}
	if len(store.matches) != 1 {
		t.Errorf("store holds %d match rows, want 1", len(store.matches))
	}
	if store.eventStatus != DropStatusCompleted {
		t.Errorf("drop event status %q, want completed", store.eventStatus)
	}
}

func TestRunDropSkipsBlockedPairs(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, compatibleAnswers())
	store.addUser(2, compatibleAnswers())
	store.blocked[[2]int64{1, 2}] = true
	engine := newTestEngine(t, store)

	summary, err := engine.RunDrop(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("RunDrop() error: %v", err)
	}
	if len(summary.Matches) != 0 {
		t.Errorf("blocked pair matched: %v", summary.Matches)
	}
}

func TestRunDropSkipsDeniedPairs(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, compatibleAnswers())
	store.addUser(2, compatibleAnswers())
	store.matches[[2]int64{1, 2}] = &Match{
		ID: 7, User1ID: 1, User2ID: 2, Status: StatusDeniedByUser1,
	}
	engine := newTestEngine(t, store)

	summary, err := engine.RunDrop(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("RunDrop() error: %v", err)
	}
	if len(summary.Matches) != 0 {
		t.Errorf("denied pair re-matched: %v", summary.Matches)
	}
}

func TestRunDropExpiredPairBecomesCandidateAgain(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, compatibleAnswers())
	store.addUser(2, compatibleAnswers())
	store.matches[[2]int64{1, 2}] = &Match{
		ID: 7, User1ID: 1, User2ID: 2, Status: StatusExpired,
	}
	engine := newTestEngine(t, store)

	summary, err := engine.RunDrop(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("RunDrop() error: %v", err)
	}
	if len(summary.Matches) != 1 {
		t.Fatalf("expired pair not re-matched: got %d matches", len(summary.Matches))
	}
	if store.matches[[2]int64{1, 2}].Status != StatusActive {
		t.Errorf("pair row status %q after re-match, want active", store.matches[[2]int64{1, 2}].Status)
	}
}

func TestRunDropExpiresStaleMatches(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, compatibleAnswers())
	store.addUser(2, compatibleAnswers())
	past := time.Now().Add(-time.Hour)
	store.matches[[2]int64{8, 9}] = &Match{
		ID: 3, User1ID: 8, User2ID: 9, Status: StatusActive, ExpiresAt: &past,
	}
	engine := newTestEngine(t, store)

	summary, err := engine.RunDrop(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("RunDrop() error: %v", err)
	}
	if summary.Expired != 1 {
		t.Errorf("expired count = %d, want 1", summary.Expired)
	}
	if store.matches[[2]int64{8, 9}].Status != StatusExpired {
		t.Errorf("stale match status %q, want expired", store.matches[[2]int64{8, 9}].Status)
	}
}

func TestRunDropStorageFailureLeavesEventPending(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, compatibleAnswers())
	store.addUser(2, compatibleAnswers())
	store.failUpserts = true
	engine := newTestEngine(t, store)

	if _, err := engine.RunDrop(context.Background(), time.Now()); err == nil {
		t.Fatal("expected error when match writes fail")
	}
	if store.eventStatus != DropStatusPending {
		t.Errorf("drop event status %q after aborted run, want pending", store.eventStatus)
	}
}

func TestRunDropSkipsDealbreakerPairs(t *testing.T) {
	store := newFakeStore()
	a1 := compatibleAnswers()
	a1[58] = survey.Answer{QuestionID: 58, Value: survey.EnumValue("definitely"), Importance: survey.ImportanceDealbreaker}
	a2 := compatibleAnswers()
	a2[58] = survey.Answer{QuestionID: 58, Value: survey.EnumValue("no"), Importance: survey.ImportanceSomewhat}
	store.addUser(1, a1)
	store.addUser(2, a2)
	engine := newTestEngine(t, store)

	summary, err := engine.RunDrop(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("RunDrop() error: %v", err)
	}
	if len(summary.Matches) != 0 {
		t.Errorf("dealbreaker pair matched: %v", summary.Matches)
	}
	if summary.Candidates != 0 {
		t.Errorf("dealbreaker pair counted as candidate")
	}
}
