package matching

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/yonah-prog/datedrop-app/internal/survey"
)

// Repository is the matching package's full data surface: the engine's
// Store plus the queries the match API needs.
type Repository interface {
	Store

	GetMatchByID(ctx context.Context, matchID int64) (*Match, error)
	UpdateMatchStatus(ctx context.Context, matchID int64, status string) error
	GetUserMatches(ctx context.Context, userID int64, active bool) ([]*MatchView, error)

	GetNextDropEvent(ctx context.Context, after time.Time) (*DropEvent, error)
	GetLastDropEvent(ctx context.Context, before time.Time) (*DropEvent, error)
	CreateDropEvent(ctx context.Context, eventDate time.Time) (*DropEvent, error)
	GetOptIn(ctx context.Context, userID, dropEventID int64) (bool, error)
	UpsertOptIn(ctx context.Context, userID, dropEventID int64, optedIn bool) error

	GetUserEmails(ctx context.Context, userIDs []int64) (map[int64]string, error)
}

type postgresRepository struct {
	db         *sqlx.DB
	surveyRepo survey.Repository
}

func NewPostgresRepository(db *sqlx.DB, surveyRepo survey.Repository) Repository {
	return &postgresRepository{db: db, surveyRepo: surveyRepo}
}

// Store methods (engine data feed)

func (r *postgresRepository) ResolveDropEvent(ctx context.Context, eventDate time.Time) (int64, error) {
	// Forces status back to pending so a retried run resumes the same row.
	var id int64
	query := `
		INSERT INTO weekly_drop_events (event_date, status)
		VALUES ($1, 'pending')
		ON CONFLICT (event_date) DO UPDATE SET status = 'pending'
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query, eventDate).Scan(&id)
	return id, err
}

func (r *postgresRepository) SetDropEventStatus(ctx context.Context, dropEventID int64, status string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE weekly_drop_events SET status = $2 WHERE id = $1`,
		dropEventID, status,
	)
	return err
}

func (r *postgresRepository) ListOptedIn(ctx context.Context, dropEventID int64) ([]int64, error) {
	var userIDs []int64
	query := `
		SELECT DISTINCT user_id
		FROM drop_opt_ins
		WHERE drop_event_id = $1 AND opted_in = TRUE
		ORDER BY user_id
	`
	err := r.db.SelectContext(ctx, &userIDs, query, dropEventID)
	return userIDs, err
}

func (r *postgresRepository) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	var profile Profile
	query := `
		SELECT user_id, where_from, where_live, city, state, location_radius
		FROM profiles
		WHERE user_id = $1
	`
	err := r.db.GetContext(ctx, &profile, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		// A cohort member without a saved profile still matches; the
		// gate treats an absent profile as no location constraint.
		return &Profile{UserID: userID}, nil
	}
	return &profile, err
}

func (r *postgresRepository) GetAnswers(ctx context.Context, userID int64) (survey.AnswerSet, error) {
	return r.surveyRepo.GetAnswers(ctx, userID)
}

func (r *postgresRepository) FindMatch(ctx context.Context, user1ID, user2ID int64) (*Match, error) {
	user1ID, user2ID = NormalizePair(user1ID, user2ID)

	var match Match
	query := `
		SELECT id, user1_id, user2_id, status, compatibility_score, category_scores, created_at, expires_at
		FROM matches
		WHERE user1_id = $1 AND user2_id = $2
	`
	err := r.db.GetContext(ctx, &match, query, user1ID, user2ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *postgresRepository) IsBlocked(ctx context.Context, user1ID, user2ID int64) (bool, error) {
	var blocked bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM blocked_users
			WHERE (blocker_id = $1 AND blocked_id = $2)
			   OR (blocker_id = $2 AND blocked_id = $1)
		)
	`
	err := r.db.GetContext(ctx, &blocked, query, user1ID, user2ID)
	return blocked, err
}

func (r *postgresRepository) UpsertMatch(ctx context.Context, match *Match) error {
	match.User1ID, match.User2ID = NormalizePair(match.User1ID, match.User2ID)

	query := `
		INSERT INTO matches (user1_id, user2_id, status, compatibility_score, category_scores, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user1_id, user2_id)
		DO UPDATE SET status = $3, compatibility_score = $4, category_scores = $5, created_at = $6, expires_at = $7
		RETURNING id
	`
	return r.db.QueryRowxContext(ctx, query,
		match.User1ID, match.User2ID, match.Status,
		match.CompatibilityScore, []byte(match.CategoryScores),
		match.CreatedAt, match.ExpiresAt,
	).Scan(&match.ID)
}

func (r *postgresRepository) ExpireStaleMatches(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE matches SET status = 'expired' WHERE status = 'active' AND expires_at < $1`,
		now,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Match API methods

func (r *postgresRepository) GetMatchByID(ctx context.Context, matchID int64) (*Match, error) {
	var match Match
	query := `
		SELECT id, user1_id, user2_id, status, compatibility_score, category_scores, created_at, expires_at
		FROM matches
		WHERE id = $1
	`
	err := r.db.GetContext(ctx, &match, query, matchID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *postgresRepository) UpdateMatchStatus(ctx context.Context, matchID int64, status string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE matches SET status = $2 WHERE id = $1`,
		matchID, status,
	)
	return err
}

func (r *postgresRepository) GetUserMatches(ctx context.Context, userID int64, active bool) ([]*MatchView, error) {
	var views []*MatchView
	query := `
		SELECT m.id,
		       CASE WHEN m.user1_id = $1 THEN m.user2_id ELSE m.user1_id END AS user_id,
		       u.full_name, p.city, p.state, p.about_me,
		       m.status, m.compatibility_score, m.created_at, m.expires_at
		FROM matches m
		JOIN users u ON u.id = CASE WHEN m.user1_id = $1 THEN m.user2_id ELSE m.user1_id END
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE (m.user1_id = $1 OR m.user2_id = $1)
	`
	if active {
		query += ` AND m.status = 'active'`
	} else {
		query += ` AND m.status != 'active'`
	}
	query += ` ORDER BY m.created_at DESC LIMIT 50`

	err := r.db.SelectContext(ctx, &views, query, userID)
	return views, err
}

// Drop event / opt-in methods

func (r *postgresRepository) GetNextDropEvent(ctx context.Context, after time.Time) (*DropEvent, error) {
	var event DropEvent
	query := `
		SELECT id, event_date, status
		FROM weekly_drop_events
		WHERE event_date > $1
		ORDER BY event_date ASC
		LIMIT 1
	`
	err := r.db.GetContext(ctx, &event, query, after)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *postgresRepository) GetLastDropEvent(ctx context.Context, before time.Time) (*DropEvent, error) {
	var event DropEvent
	query := `
		SELECT id, event_date, status
		FROM weekly_drop_events
		WHERE event_date <= $1
		ORDER BY event_date DESC
		LIMIT 1
	`
	err := r.db.GetContext(ctx, &event, query, before)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *postgresRepository) CreateDropEvent(ctx context.Context, eventDate time.Time) (*DropEvent, error) {
	event := DropEvent{EventDate: eventDate, Status: DropStatusPending}
	query := `
		INSERT INTO weekly_drop_events (event_date, status)
		VALUES ($1, 'pending')
		ON CONFLICT (event_date) DO UPDATE SET event_date = EXCLUDED.event_date
		RETURNING id, event_date, status
	`
	err := r.db.QueryRowxContext(ctx, query, eventDate).Scan(&event.ID, &event.EventDate, &event.Status)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *postgresRepository) GetOptIn(ctx context.Context, userID, dropEventID int64) (bool, error) {
	var optedIn bool
	query := `
		SELECT opted_in FROM drop_opt_ins
		WHERE user_id = $1 AND drop_event_id = $2
	`
	err := r.db.GetContext(ctx, &optedIn, query, userID, dropEventID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return optedIn, err
}

func (r *postgresRepository) UpsertOptIn(ctx context.Context, userID, dropEventID int64, optedIn bool) error {
	query := `
		INSERT INTO drop_opt_ins (user_id, drop_event_id, opted_in)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, drop_event_id) DO UPDATE SET opted_in = $3
	`
	_, err := r.db.ExecContext(ctx, query, userID, dropEventID, optedIn)
	return err
}

func (r *postgresRepository) GetUserEmails(ctx context.Context, userIDs []int64) (map[int64]string, error) {
	if len(userIDs) == 0 {
		return map[int64]string{}, nil
	}

	query, args, err := sqlx.In(`SELECT id, email FROM users WHERE id IN (?)`, userIDs)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)

	var rows []struct {
		ID    int64  `db:"id"`
		Email string `db:"email"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	emails := make(map[int64]string, len(rows))
	for _, row := range rows {
		emails[row.ID] = row.Email
	}
	return emails, nil
}
