package walk

import "time"

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusPaused     Status = "paused"
	StatusCompleted  Status = "completed"
)

// Walk is one recorded outdoor session from start to completion. Version is
// bumped on every persisted mutation and backs the optimistic concurrency
// check; it never leaves the server.
type Walk struct {
	ID                  string     `json:"id"`
	UserID              string     `json:"user_id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	StartTime           *time.Time `json:"start_time,omitempty"`
	EndTime             *time.Time `json:"end_time,omitempty"`
	TotalDistance       float64    `json:"total_distance"`
	TotalSteps          int        `json:"total_steps"`
	PolylineData        string     `json:"polyline_data,omitempty"`
	ThumbnailImageURL   string     `json:"thumbnail_image_url,omitempty"`
	Status              Status     `json:"status"`
	PausedAt            *time.Time `json:"paused_at,omitempty"`
	TotalPausedDuration float64    `json:"total_paused_duration"`
	Version             int64      `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// LocationSample is one GPS fix belonging to a walk. Sequence numbers start
// at 1 and define the canonical order; device timestamps are informational.
type LocationSample struct {
	ID                 int64     `json:"id"`
	WalkID             string    `json:"walk_id"`
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	Altitude           *float64  `json:"altitude,omitempty"`
	Speed              *float64  `json:"speed,omitempty"`
	Course             *float64  `json:"course,omitempty"`
	HorizontalAccuracy *float64  `json:"horizontal_accuracy,omitempty"`
	VerticalAccuracy   *float64  `json:"vertical_accuracy,omitempty"`
	CapturedAt         time.Time `json:"captured_at"`
	SequenceNumber     int64     `json:"sequence_number"`
	CreatedAt          time.Time `json:"created_at"`
}

// ValidateCoordinates rejects fixes outside WGS84 bounds.
func (s LocationSample) ValidateCoordinates() error {
	if s.Latitude < -90 || s.Latitude > 90 {
		return ErrOutOfRange
	}
	if s.Longitude < -180 || s.Longitude > 180 {
		return ErrOutOfRange
	}
	return nil
}
