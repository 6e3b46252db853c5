package survey

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	GetSectionResponses(ctx context.Context, userID int64, section int) ([]ResponseRow, error)
	GetAllResponses(ctx context.Context, userID int64) ([]ResponseRow, error)
	SaveResponses(ctx context.Context, rows []ResponseRow) error
	GetProgress(ctx context.Context, userID int64) (map[int]int, error)

	// GetAnswers returns the user's full typed answer map, decoded against
	// the catalog. Rows that reference an unknown question or carry a value
	// that no longer fits the declared type are skipped, not fatal.
	GetAnswers(ctx context.Context, userID int64) (AnswerSet, error)
}

type postgresRepository struct {
	db      *sqlx.DB
	catalog *Catalog
}

func NewPostgresRepository(db *sqlx.DB, catalog *Catalog) Repository {
	return &postgresRepository{db: db, catalog: catalog}
}

func (r *postgresRepository) GetSectionResponses(ctx context.Context, userID int64, section int) ([]ResponseRow, error) {
	var rows []ResponseRow
	query := `
		SELECT user_id, section, question_id, value, importance_weight, confidence, updated_at
		FROM survey_responses
		WHERE user_id = $1 AND section = $2
		ORDER BY question_id
	`
	err := r.db.SelectContext(ctx, &rows, query, userID, section)
	return rows, err
}

func (r *postgresRepository) GetAllResponses(ctx context.Context, userID int64) ([]ResponseRow, error) {
	var rows []ResponseRow
	query := `
		SELECT user_id, section, question_id, value, importance_weight, confidence, updated_at
		FROM survey_responses
		WHERE user_id = $1
		ORDER BY section, question_id
	`
	err := r.db.SelectContext(ctx, &rows, query, userID)
	return rows, err
}

func (r *postgresRepository) SaveResponses(ctx context.Context, rows []ResponseRow) error {
	query := `
		INSERT INTO survey_responses (user_id, section, question_id, value, importance_weight, confidence)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, section, question_id)
		DO UPDATE SET value = $4, importance_weight = $5, confidence = $6, updated_at = NOW()
	`
	for _, row := range rows {
		_, err := r.db.ExecContext(ctx, query,
			row.UserID, row.Section, row.QuestionID,
			[]byte(row.Value), row.Importance, row.Confidence,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *postgresRepository) GetProgress(ctx context.Context, userID int64) (map[int]int, error) {
	var counts []struct {
		Section  int `db:"section"`
		Answered int `db:"answered"`
	}
	query := `
		SELECT section, COUNT(*) AS answered
		FROM survey_responses
		WHERE user_id = $1
		GROUP BY section
	`
	if err := r.db.SelectContext(ctx, &counts, query, userID); err != nil {
		return nil, err
	}

	progress := make(map[int]int, len(counts))
	for _, c := range counts {
		progress[c.Section] = c.Answered
	}
	return progress, nil
}

func (r *postgresRepository) GetAnswers(ctx context.Context, userID int64) (AnswerSet, error) {
	var rows []ResponseRow
	query := `
		SELECT user_id, section, question_id, value, importance_weight, confidence, updated_at
		FROM survey_responses
		WHERE user_id = $1
		ORDER BY section, question_id
	`
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, err
	}

	answers := make(AnswerSet, len(rows))
	for _, row := range rows {
		q, ok := r.catalog.Question(row.QuestionID)
		if !ok {
			// Stale row from a retired question; skip rather than fail.
			log.Printf("[Survey] user %d references unknown question %d, skipping", userID, row.QuestionID)
			continue
		}
		value, err := DecodeValue(q, row.Value)
		if err != nil {
			log.Printf("[Survey] user %d question %d: %v, skipping", userID, row.QuestionID, err)
			continue
		}
		importance := Importance(row.Importance)
		if !ValidImportance(importance) {
			importance = ImportanceSomewhat
		}
		answers[q.ID] = Answer{
			QuestionID: q.ID,
			Section:    q.Section,
			Value:      value,
			Importance: importance,
			Confidence: row.Confidence,
		}
	}
	return answers, nil
}
