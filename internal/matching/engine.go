// internal/matching/engine.go
// The drop orchestrator: one end-to-end matching cycle over the opted-in
// cohort. The engine is stateless and safe to invoke repeatedly; an
// aborted run leaves its drop event pending and a retry resolves the
// same row.

package matching

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/yonah-prog/datedrop-app/internal/survey"
)

// Store is the data feed the engine runs against. Implementations must
// normalize unordered pairs (lower id first) on every match read and
// write, and ResolveDropEvent/UpsertMatch must be idempotent upserts.
type Store interface {
	ResolveDropEvent(ctx context.Context, eventDate time.Time) (int64, error)
	SetDropEventStatus(ctx context.Context, dropEventID int64, status string) error
	ListOptedIn(ctx context.Context, dropEventID int64) ([]int64, error)
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	GetAnswers(ctx context.Context, userID int64) (survey.AnswerSet, error)
	FindMatch(ctx context.Context, user1ID, user2ID int64) (*Match, error)
	IsBlocked(ctx context.Context, user1ID, user2ID int64) (bool, error)
	UpsertMatch(ctx context.Context, match *Match) error
	ExpireStaleMatches(ctx context.Context, now time.Time) (int64, error)
}

// DropSummary reports what one run did.
type DropSummary struct {
	RunID         string    `json:"run_id"`
	DropEventID   int64     `json:"drop_event_id"`
	EventDate     time.Time `json:"event_date"`
	EligibleUsers int       `json:"eligible_users"`
	Candidates    int       `json:"candidates"`
	Matches       []Match   `json:"matches"`
	Expired       int64     `json:"expired"`
}

// Engine drives one matching drop. It holds no per-run state.
type Engine struct {
	store  Store
	scorer *Scorer
	now    func() time.Time
}

func NewEngine(store Store, scorer *Scorer) *Engine {
	return &Engine{
		store:  store,
		scorer: scorer,
		now:    time.Now,
	}
}

type cohortMember struct {
	profile *Profile
	answers survey.AnswerSet
}

// RunDrop executes one full matching cycle for the drop scheduled at
// eventDate. Any data-access failure aborts the run with the drop event
// left pending; matches already written stay written and are confirmed
// by the retry's upserts.
func (e *Engine) RunDrop(ctx context.Context, eventDate time.Time) (*DropSummary, error) {
	runID := uuid.NewString()
	started := e.now()
	log.Printf("[Matching] run %s: starting drop for %s", runID, eventDate.Format(time.RFC3339))

	dropEventID, err := e.store.ResolveDropEvent(ctx, eventDate)
	if err != nil {
		return nil, fmt.Errorf("resolve drop event: %w", err)
	}
	recordDropStarted()

	summary := &DropSummary{
		RunID:       runID,
		DropEventID: dropEventID,
		EventDate:   eventDate,
	}

	userIDs, err := e.store.ListOptedIn(ctx, dropEventID)
	if err != nil {
		return nil, fmt.Errorf("list opted-in users: %w", err)
	}
	summary.EligibleUsers = len(userIDs)
	log.Printf("[Matching] run %s: %d opted-in users", runID, len(userIDs))

	if len(userIDs) < 2 {
		// Not an error: a drop nobody can match in still completes.
		if err := e.store.SetDropEventStatus(ctx, dropEventID, DropStatusCompleted); err != nil {
			return nil, fmt.Errorf("complete drop event: %w", err)
		}
		recordDropCompleted(e.now().Sub(started))
		log.Printf("[Matching] run %s: fewer than 2 eligible users, drop completed empty", runID)
		return summary, nil
	}

	// Ascending id order makes pair enumeration, and therefore tie-breaking
	// in selection, deterministic.
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	cohort := make(map[int64]cohortMember, len(userIDs))
	for _, userID := range userIDs {
		profile, err := e.store.GetProfile(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("load profile for user %d: %w", userID, err)
		}
		answers, err := e.store.GetAnswers(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("load answers for user %d: %w", userID, err)
		}
		cohort[userID] = cohortMember{profile: profile, answers: answers}
	}

	candidates, err := e.enumerateCandidates(ctx, userIDs, cohort)
	if err != nil {
		return nil, err
	}
	summary.Candidates = len(candidates)
	log.Printf("[Matching] run %s: %d scored candidate pairs", runID, len(candidates))

	selected := selectTopMatches(candidates, len(userIDs))

	now := e.now()
	expiresAt := now.Add(MatchLifetime)
	for _, c := range selected {
		match := &Match{
			User1ID:   c.User1ID,
			User2ID:   c.User2ID,
			Status:    StatusActive,
			CreatedAt: now,
			ExpiresAt: &expiresAt,
		}
		score := c.Score
		match.CompatibilityScore = &score
		if scores, err := encodeCategoryScores(c.CategoryScores); err == nil {
			match.CategoryScores = scores
		}

		if err := e.store.UpsertMatch(ctx, match); err != nil {
			return nil, fmt.Errorf("upsert match (%d,%d): %w", c.User1ID, c.User2ID, err)
		}
		recordMatchCreated()
		summary.Matches = append(summary.Matches, *match)
	}

	expired, err := e.store.ExpireStaleMatches(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("expire stale matches: %w", err)
	}
	summary.Expired = expired

	if err := e.store.SetDropEventStatus(ctx, dropEventID, DropStatusCompleted); err != nil {
		return nil, fmt.Errorf("complete drop event: %w", err)
	}

	recordDropCompleted(e.now().Sub(started))
	log.Printf("[Matching] run %s: completed with %d matches, %d expired", runID, len(summary.Matches), expired)
	return summary, nil
}

// enumerateCandidates walks every unordered pair of the cohort, skips
// pairs with a live relationship or a block, and scores the rest.
func (e *Engine) enumerateCandidates(ctx context.Context, userIDs []int64, cohort map[int64]cohortMember) ([]Candidate, error) {
	var candidates []Candidate
	for i := 0; i < len(userIDs); i++ {
		for j := i + 1; j < len(userIDs); j++ {
			user1, user2 := userIDs[i], userIDs[j]

			existing, err := e.store.FindMatch(ctx, user1, user2)
			if err != nil {
				return nil, fmt.Errorf("check existing match (%d,%d): %w", user1, user2, err)
			}
			if existing != nil && existing.Status != StatusExpired {
				// Active or denied: the pair is off the table. Only an
				// expired match frees the pair for a fresh attempt.
				continue
			}

			blocked, err := e.store.IsBlocked(ctx, user1, user2)
			if err != nil {
				return nil, fmt.Errorf("check block (%d,%d): %w", user1, user2, err)
			}
			if blocked {
				continue
			}

			m1, m2 := cohort[user1], cohort[user2]
			result := e.scorer.Score(m1.answers, m2.answers, m1.profile, m2.profile)
			recordPairScored(result)
			if result.Score <= 0 {
				continue
			}

			candidates = append(candidates, Candidate{
				User1ID:        user1,
				User2ID:        user2,
				Score:          result.Score,
				CategoryScores: result.CategoryScores,
			})
		}
	}
	return candidates, nil
}
