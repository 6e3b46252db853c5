package matching

// DTOs for API requests.

type RespondMatchDTO struct {
	Action string `json:"action" validate:"required,oneof=accept deny"`
}

type OptInDTO struct {
	OptIn *bool `json:"opt_in" validate:"required"`
}

type RunDropDTO struct {
	// EventDate optionally pins the run to a specific scheduled drop
	// (RFC 3339). Defaults to the current week's drop.
	EventDate string `json:"event_date,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}
