package matching

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeRepository extends the engine's fake store with the API-facing
// queries the service needs.
type fakeRepository struct {
	*fakeStore

	matchesByID map[int64]*Match
	nextEvent   *DropEvent
	lastEvent   *DropEvent
	optIns      map[[2]int64]bool
	emails      map[int64]string

	statusUpdates map[int64]string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		fakeStore:     newFakeStore(),
		matchesByID:   make(map[int64]*Match),
		optIns:        make(map[[2]int64]bool),
		emails:        make(map[int64]string),
		statusUpdates: make(map[int64]string),
	}
}

func (f *fakeRepository) GetMatchByID(ctx context.Context, matchID int64) (*Match, error) {
	if m, ok := f.matchesByID[matchID]; ok {
		copied := *m
		return &copied, nil
	}
	return nil, ErrMatchNotFound
}

func (f *fakeRepository) UpdateMatchStatus(ctx context.Context, matchID int64, status string) error {
	m, ok := f.matchesByID[matchID]
	if !ok {
		return ErrMatchNotFound
	}
	m.Status = status
	f.statusUpdates[matchID] = status
	return nil
}

func (f *fakeRepository) GetUserMatches(ctx context.Context, userID int64, active bool) ([]*MatchView, error) {
	return nil, nil
}

func (f *fakeRepository) GetNextDropEvent(ctx context.Context, after time.Time) (*DropEvent, error) {
	return f.nextEvent, nil
}

func (f *fakeRepository) GetLastDropEvent(ctx context.Context, before time.Time) (*DropEvent, error) {
	return f.lastEvent, nil
}

func (f *fakeRepository) CreateDropEvent(ctx context.Context, eventDate time.Time) (*DropEvent, error) {
	f.nextEvent = &DropEvent{ID: 42, EventDate: eventDate, Status: DropStatusPending}
	return f.nextEvent, nil
}

func (f *fakeRepository) GetOptIn(ctx context.Context, userID, dropEventID int64) (bool, error) {
	return f.optIns[[2]int64{userID, dropEventID}], nil
}

func (f *fakeRepository) UpsertOptIn(ctx context.Context, userID, dropEventID int64, optedIn bool) error {
	f.optIns[[2]int64{userID, dropEventID}] = optedIn
	return nil
}

func (f *fakeRepository) GetUserEmails(ctx context.Context, userIDs []int64) (map[int64]string, error) {
	out := make(map[int64]string, len(userIDs))
	for _, id := range userIDs {
		if email, ok := f.emails[id]; ok {
			out[id] = email
		}
	}
	return out, nil
}

func newTestService(t *testing.T, repo *fakeRepository) Service {
	t.Helper()
	return NewService(repo, newTestEngine(t, repo.fakeStore), nil, nil)
}

func TestRespondToMatchDeny(t *testing.T) {
	repo := newFakeRepository()
	repo.matchesByID[10] = &Match{ID: 10, User1ID: 1, User2ID: 2, Status: StatusActive}
	svc := newTestService(t, repo)

	if err := svc.RespondToMatch(context.Background(), 10, 2, "deny"); err != nil {
		t.Fatalf("RespondToMatch() error: %v", err)
	}
	if got := repo.statusUpdates[10]; got != StatusDeniedByUser2 {
		t.Errorf("status = %q, want denied_by_user2", got)
	}
}

func TestRespondToMatchDenyByUser1(t *testing.T) {
	repo := newFakeRepository()
	repo.matchesByID[10] = &Match{ID: 10, User1ID: 1, User2ID: 2, Status: StatusActive}
	svc := newTestService(t, repo)

	if err := svc.RespondToMatch(context.Background(), 10, 1, "deny"); err != nil {
		t.Fatalf("RespondToMatch() error: %v", err)
	}
	if got := repo.statusUpdates[10]; got != StatusDeniedByUser1 {
		t.Errorf("status = %q, want denied_by_user1", got)
	}
}

func TestRespondToMatchAcceptKeepsActive(t *testing.T) {
	repo := newFakeRepository()
	repo.matchesByID[10] = &Match{ID: 10, User1ID: 1, User2ID: 2, Status: StatusActive}
	svc := newTestService(t, repo)

	if err := svc.RespondToMatch(context.Background(), 10, 1, "accept"); err != nil {
		t.Fatalf("RespondToMatch() error: %v", err)
	}
	if _, updated := repo.statusUpdates[10]; updated {
		t.Error("accept must not change match status")
	}
	if repo.matchesByID[10].Status != StatusActive {
		t.Errorf("status = %q, want active", repo.matchesByID[10].Status)
	}
}

func TestRespondToMatchForwardOnly(t *testing.T) {
	for _, status := range []string{StatusExpired, StatusDeniedByUser1, StatusDeniedByUser2} {
		t.Run(status, func(t *testing.T) {
			repo := newFakeRepository()
			repo.matchesByID[10] = &Match{ID: 10, User1ID: 1, User2ID: 2, Status: status}
			svc := newTestService(t, repo)

			err := svc.RespondToMatch(context.Background(), 10, 1, "accept")
			if !errors.Is(err, ErrAlreadyResponded) {
				t.Errorf("responding to %s match: err = %v, want ErrAlreadyResponded", status, err)
			}
		})
	}
}

func TestRespondToMatchUnauthorized(t *testing.T) {
	repo := newFakeRepository()
	repo.matchesByID[10] = &Match{ID: 10, User1ID: 1, User2ID: 2, Status: StatusActive}
	svc := newTestService(t, repo)

	err := svc.RespondToMatch(context.Background(), 10, 99, "deny")
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestRespondToMatchInvalidAction(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(t, repo)

	err := svc.RespondToMatch(context.Background(), 10, 1, "maybe")
	if !errors.Is(err, ErrInvalidAction) {
		t.Errorf("err = %v, want ErrInvalidAction", err)
	}
}

func TestSetOptInCreatesEventLazily(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(t, repo)

	event, err := svc.SetOptIn(context.Background(), 5, true)
	if err != nil {
		t.Fatalf("SetOptIn() error: %v", err)
	}
	if event == nil || event.ID != 42 {
		t.Fatalf("expected lazily created event, got %+v", event)
	}
	if !repo.optIns[[2]int64{5, 42}] {
		t.Error("opt-in not recorded")
	}
	if event.EventDate.Weekday() != time.Sunday {
		t.Errorf("event date falls on %v, want Sunday", event.EventDate.Weekday())
	}
}

func TestSetOptInReusesExistingEvent(t *testing.T) {
	repo := newFakeRepository()
	repo.nextEvent = &DropEvent{ID: 7, EventDate: time.Now().Add(48 * time.Hour), Status: DropStatusPending}
	svc := newTestService(t, repo)

	event, err := svc.SetOptIn(context.Background(), 5, false)
	if err != nil {
		t.Fatalf("SetOptIn() error: %v", err)
	}
	if event.ID != 7 {
		t.Errorf("event id = %d, want existing 7", event.ID)
	}
	if repo.optIns[[2]int64{5, 7}] {
		t.Error("opt-out recorded as opt-in")
	}
}

func TestNextDropDate(t *testing.T) {
	loc := time.UTC
	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			"midweek",
			time.Date(2026, 3, 4, 15, 30, 0, 0, loc), // Wednesday
			time.Date(2026, 3, 8, 10, 0, 0, 0, loc),
		},
		{
			"sunday before drop hour",
			time.Date(2026, 3, 8, 9, 59, 0, 0, loc),
			time.Date(2026, 3, 8, 10, 0, 0, 0, loc),
		},
		{
			"sunday exactly at drop hour rolls a week",
			time.Date(2026, 3, 8, 10, 0, 0, 0, loc),
			time.Date(2026, 3, 15, 10, 0, 0, 0, loc),
		},
		{
			"sunday after drop hour rolls a week",
			time.Date(2026, 3, 8, 11, 0, 0, 0, loc),
			time.Date(2026, 3, 15, 10, 0, 0, 0, loc),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NextDropDate(tc.now)
			if !got.Equal(tc.want) {
				t.Errorf("NextDropDate(%v) = %v, want %v", tc.now, got, tc.want)
			}
		})
	}
}

func TestCurrentDropDate(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, loc) // Tuesday
	want := time.Date(2026, 3, 8, 10, 0, 0, 0, loc) // previous Sunday

	got := CurrentDropDate(now)
	if !got.Equal(want) {
		t.Errorf("CurrentDropDate(%v) = %v, want %v", now, got, want)
	}
}

func TestCurrentDropDateDuringDropHour(t *testing.T) {
	// A retry minutes after the scheduled fire resolves the same date the
	// scheduler ran with.
	loc := time.UTC
	fire := time.Date(2026, 3, 8, 10, 0, 0, 0, loc)
	retry := fire.Add(25 * time.Minute)

	if got := CurrentDropDate(retry); !got.Equal(fire) {
		t.Errorf("CurrentDropDate(%v) = %v, want %v", retry, got, fire)
	}
}
