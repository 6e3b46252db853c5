package matching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/yonah-prog/datedrop-app/internal/notification"
)

var (
	ErrMatchNotFound    = errors.New("match not found")
	ErrUnauthorized     = errors.New("unauthorized to perform this action")
	ErrAlreadyResponded = errors.New("match is no longer active")
	ErrInvalidAction    = errors.New("invalid match action")
)

// Drop schedule: Sundays at 10:00 local time.
const (
	dropWeekday = time.Sunday
	dropHour    = 10
)

const dropStatusCacheTTL = time.Minute

type Service interface {
	GetMatches(ctx context.Context, userID int64) ([]*MatchView, error)
	GetMatchHistory(ctx context.Context, userID int64) ([]*MatchView, error)
	RespondToMatch(ctx context.Context, matchID, userID int64, action string) error

	GetDropStatus(ctx context.Context, userID int64) (*DropStatus, error)
	SetOptIn(ctx context.Context, userID int64, optIn bool) (*DropEvent, error)

	// RunDrop executes the matching cycle for the drop scheduled at
	// eventDate and sends notifications for the published matches.
	RunDrop(ctx context.Context, eventDate time.Time) (*DropSummary, error)

	// RunDueDrop is the scheduler entry point: runs the drop scheduled
	// for the current week.
	RunDueDrop(ctx context.Context) (*DropSummary, error)
}

// DropStatus is the dashboard view of the drop cycle for one user.
type DropStatus struct {
	NextDrop *DropStatusEntry `json:"next_drop"`
	LastDrop *DropStatusEntry `json:"last_drop"`
}

type DropStatusEntry struct {
	ID        int64     `json:"id"`
	EventDate time.Time `json:"event_date"`
	Status    string    `json:"status"`
	OptedIn   *bool     `json:"opted_in,omitempty"`
}

type service struct {
	repo     Repository
	engine   *Engine
	cache    *redis.Client // optional; nil disables caching
	notifier notification.Notifier
	now      func() time.Time
}

func NewService(repo Repository, engine *Engine, cache *redis.Client, notifier notification.Notifier) Service {
	return &service{
		repo:     repo,
		engine:   engine,
		cache:    cache,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *service) GetMatches(ctx context.Context, userID int64) ([]*MatchView, error) {
	return s.repo.GetUserMatches(ctx, userID, true)
}

func (s *service) GetMatchHistory(ctx context.Context, userID int64) ([]*MatchView, error) {
	return s.repo.GetUserMatches(ctx, userID, false)
}

// RespondToMatch records a user's accept or deny. Denying marks the
// match with the denier's side and is terminal: the pair never re-enters
// candidate generation. Accepting is a no-op on status today (an active
// match simply stays active until it expires).
func (s *service) RespondToMatch(ctx context.Context, matchID, userID int64, action string) error {
	if action != "accept" && action != "deny" {
		return ErrInvalidAction
	}

	match, err := s.repo.GetMatchByID(ctx, matchID)
	if err != nil {
		return err
	}
	if !match.Involves(userID) {
		return ErrUnauthorized
	}
	// Forward-only: expired and denied matches cannot be responded to,
	// and in particular cannot be pushed back to active.
	if match.Status != StatusActive {
		return ErrAlreadyResponded
	}

	if action == "deny" {
		status := StatusDeniedByUser2
		if match.User1ID == userID {
			status = StatusDeniedByUser1
		}
		if err := s.repo.UpdateMatchStatus(ctx, matchID, status); err != nil {
			return fmt.Errorf("update match status: %w", err)
		}
	}

	recordMatchResponse(action)
	return nil
}

func (s *service) GetDropStatus(ctx context.Context, userID int64) (*DropStatus, error) {
	if cached := s.cachedDropStatus(ctx, userID); cached != nil {
		return cached, nil
	}

	now := s.now()
	status := &DropStatus{}

	next, err := s.repo.GetNextDropEvent(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("load next drop event: %w", err)
	}
	if next != nil {
		optedIn, err := s.repo.GetOptIn(ctx, userID, next.ID)
		if err != nil {
			return nil, fmt.Errorf("load opt-in: %w", err)
		}
		status.NextDrop = &DropStatusEntry{
			ID:        next.ID,
			EventDate: next.EventDate,
			Status:    next.Status,
			OptedIn:   &optedIn,
		}
	}

	last, err := s.repo.GetLastDropEvent(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("load last drop event: %w", err)
	}
	if last != nil {
		status.LastDrop = &DropStatusEntry{
			ID:        last.ID,
			EventDate: last.EventDate,
			Status:    last.Status,
		}
	}

	s.cacheDropStatus(ctx, userID, status)
	return status, nil
}

// SetOptIn records the user's opt-in for the next drop, creating the
// drop event lazily if none is scheduled yet. Opt-ins only ever affect
// future drops.
func (s *service) SetOptIn(ctx context.Context, userID int64, optIn bool) (*DropEvent, error) {
	now := s.now()

	event, err := s.repo.GetNextDropEvent(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("load next drop event: %w", err)
	}
	if event == nil {
		event, err = s.repo.CreateDropEvent(ctx, NextDropDate(now))
		if err != nil {
			return nil, fmt.Errorf("create drop event: %w", err)
		}
	}

	if err := s.repo.UpsertOptIn(ctx, userID, event.ID, optIn); err != nil {
		return nil, fmt.Errorf("save opt-in: %w", err)
	}

	s.invalidateDropStatus(ctx, userID)
	return event, nil
}

func (s *service) RunDrop(ctx context.Context, eventDate time.Time) (*DropSummary, error) {
	summary, err := s.engine.RunDrop(ctx, eventDate)
	if err != nil {
		return nil, err
	}

	s.notifyMatchedUsers(ctx, summary)
	return summary, nil
}

func (s *service) RunDueDrop(ctx context.Context) (*DropSummary, error) {
	return s.RunDrop(ctx, CurrentDropDate(s.now()))
}

// notifyMatchedUsers emails everyone who received at least one match in
// this drop. Notification failure never fails the drop; the matches are
// already published.
func (s *service) notifyMatchedUsers(ctx context.Context, summary *DropSummary) {
	if s.notifier == nil || len(summary.Matches) == 0 {
		return
	}

	matchCounts := make(map[int64]int)
	for _, m := range summary.Matches {
		matchCounts[m.User1ID]++
		matchCounts[m.User2ID]++
	}

	userIDs := make([]int64, 0, len(matchCounts))
	for userID := range matchCounts {
		userIDs = append(userIDs, userID)
	}

	emails, err := s.repo.GetUserEmails(ctx, userIDs)
	if err != nil {
		log.Printf("[Matching] run %s: loading emails for notifications failed: %v", summary.RunID, err)
		return
	}

	for userID, count := range matchCounts {
		email, ok := emails[userID]
		if !ok || email == "" {
			continue
		}
		if err := s.notifier.SendDropNotification(ctx, email, count); err != nil {
			log.Printf("[Matching] run %s: notify %s failed: %v", summary.RunID, email, err)
		}
	}
}

// Drop status cache (best effort; a missing or down Redis is ignored).

func dropStatusCacheKey(userID int64) string {
	return fmt.Sprintf("dropstatus:%d", userID)
}

func (s *service) cachedDropStatus(ctx context.Context, userID int64) *DropStatus {
	if s.cache == nil {
		return nil
	}
	payload, err := s.cache.Get(ctx, dropStatusCacheKey(userID)).Bytes()
	if err != nil {
		return nil
	}
	var status DropStatus
	if err := json.Unmarshal(payload, &status); err != nil {
		return nil
	}
	return &status
}

func (s *service) cacheDropStatus(ctx context.Context, userID int64, status *DropStatus) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(status)
	if err != nil {
		return
	}
	s.cache.Set(ctx, dropStatusCacheKey(userID), payload, dropStatusCacheTTL)
}

func (s *service) invalidateDropStatus(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	s.cache.Del(ctx, dropStatusCacheKey(userID))
}

// NextDropDate is the next Sunday 10:00 strictly after now.
func NextDropDate(now time.Time) time.Time {
	daysUntil := (int(dropWeekday) - int(now.Weekday()) + 7) % 7
	candidate := time.Date(now.Year(), now.Month(), now.Day(), dropHour, 0, 0, 0, now.Location()).
		AddDate(0, 0, daysUntil)
	if !candidate.After(now) {
		candidate = candidate.AddDate(0, 0, 7)
	}
	return candidate
}

// CurrentDropDate is the scheduled date of the drop the current moment
// belongs to: the most recent Sunday 10:00 at or before now. A retried
// run therefore resolves the same event row as the run it retries.
func CurrentDropDate(now time.Time) time.Time {
	return NextDropDate(now).AddDate(0, 0, -7)
}
