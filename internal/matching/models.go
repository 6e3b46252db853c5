package matching

import (
	"encoding/json"
	"time"
)

// Match statuses. A match only ever moves forward: the engine creates
// active matches, the expiry sweep retires them, and a user denial is
// terminal for the pair.
const (
	StatusActive        = "active"
	StatusExpired       = "expired"
	StatusDeniedByUser1 = "denied_by_user1"
	StatusDeniedByUser2 = "denied_by_user2"
)

// Drop event statuses. There is deliberately no failed state: an aborted
// run leaves the event pending so a retry resolves the same row.
const (
	DropStatusPending   = "pending"
	DropStatusCompleted = "completed"
)

// MatchLifetime is how long a dropped match stays active before the sweep
// expires it (until the next weekly drop).
const MatchLifetime = 7 * 24 * time.Hour

// Match is one relationship record over a normalized unordered user pair
// (User1ID < User2ID always).
type Match struct {
	ID                 int64           `json:"id" db:"id"`
	User1ID            int64           `json:"user1_id" db:"user1_id"`
	User2ID            int64           `json:"user2_id" db:"user2_id"`
	Status             string          `json:"status" db:"status"`
	CompatibilityScore *float64        `json:"compatibility_score,omitempty" db:"compatibility_score"`
	CategoryScores     json.RawMessage `json:"category_scores,omitempty" db:"category_scores"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`
	ExpiresAt          *time.Time      `json:"expires_at,omitempty" db:"expires_at"`
}

// Other returns the counterpart of userID within the pair.
func (m *Match) Other(userID int64) int64 {
	if m.User1ID == userID {
		return m.User2ID
	}
	return m.User1ID
}

// Involves reports whether userID is one side of the pair.
func (m *Match) Involves(userID int64) bool {
	return m.User1ID == userID || m.User2ID == userID
}

// Profile carries the location fields the dealbreaker gate looks at.
// Radius gating is not implemented yet; the fields ride along for when
// it is.
type Profile struct {
	UserID         int64   `json:"user_id" db:"user_id"`
	WhereFrom      *string `json:"where_from,omitempty" db:"where_from"`
	WhereLive      *string `json:"where_live,omitempty" db:"where_live"`
	City           *string `json:"city,omitempty" db:"city"`
	State          *string `json:"state,omitempty" db:"state"`
	LocationRadius *int    `json:"location_radius,omitempty" db:"location_radius"`
}

// DropEvent is one scheduled run of the matching engine.
type DropEvent struct {
	ID        int64     `json:"id" db:"id"`
	EventDate time.Time `json:"event_date" db:"event_date"`
	Status    string    `json:"status" db:"status"`
}

// MatchView is a match joined with the counterpart's public details, as
// served to the match's other member.
type MatchView struct {
	ID        int64      `json:"id" db:"id"`
	UserID    int64      `json:"user_id" db:"user_id"`
	FullName  string     `json:"full_name" db:"full_name"`
	City      *string    `json:"city,omitempty" db:"city"`
	State     *string    `json:"state,omitempty" db:"state"`
	AboutMe   *string    `json:"about_me,omitempty" db:"about_me"`
	Status    string     `json:"status" db:"status"`
	Score     *float64   `json:"compatibility_score,omitempty" db:"compatibility_score"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" db:"expires_at"`
}

// NormalizePair returns the unordered pair in its canonical order,
// lower id first. Every match read and write goes through this so a
// pair has exactly one row regardless of enumeration order.
func NormalizePair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}
