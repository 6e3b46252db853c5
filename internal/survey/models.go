package survey

import (
	"encoding/json"
	"time"
)

// ResponseRow is the raw survey_responses row as stored.
type ResponseRow struct {
	UserID     int64           `json:"user_id" db:"user_id"`
	Section    int             `json:"section" db:"section"`
	QuestionID int             `json:"question_id" db:"question_id"`
	Value      json.RawMessage `json:"value" db:"value"`
	Importance string          `json:"importance_weight" db:"importance_weight"`
	Confidence int             `json:"confidence" db:"confidence"`
	UpdatedAt  time.Time       `json:"updated_at" db:"updated_at"`
}

// SectionProgress reports how much of one section a user has answered.
type SectionProgress struct {
	Answered int `json:"answered"`
	Total    int `json:"total"`
}
