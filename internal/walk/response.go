package walk

import "time"

// WalkResponse is the wire shape for a single walk. It mirrors the entity
// today but exists so the storage schema can evolve without breaking the
// contract.
type WalkResponse struct {
	ID                  string     `json:"id"`
	UserID              string     `json:"user_id"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	StartTime           *time.Time `json:"start_time"`
	EndTime             *time.Time `json:"end_time"`
	TotalDistance       float64    `json:"total_distance"`
	TotalSteps          int        `json:"total_steps"`
	PolylineData        string     `json:"polyline_data,omitempty"`
	ThumbnailImageURL   string     `json:"thumbnail_image_url,omitempty"`
	Status              string     `json:"status"`
	TotalPausedDuration float64    `json:"total_paused_duration"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

type ListResponse struct {
	Walks      []WalkResponse `json:"walks"`
	TotalCount int            `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

func ToResponse(w Walk) WalkResponse {
	return WalkResponse{
		ID:                  w.ID,
		UserID:              w.UserID,
		Title:               w.Title,
		Description:         w.Description,
		StartTime:           w.StartTime,
		EndTime:             w.EndTime,
		TotalDistance:       w.TotalDistance,
		TotalSteps:          w.TotalSteps,
		PolylineData:        w.PolylineData,
		ThumbnailImageURL:   w.ThumbnailImageURL,
		Status:              string(w.Status),
		TotalPausedDuration: w.TotalPausedDuration,
		CreatedAt:           w.CreatedAt,
		UpdatedAt:           w.UpdatedAt,
	}
}

func ToListResponse(walks []Walk, totalCount int, p Page) ListResponse {
	mapped := make([]WalkResponse, 0, len(walks))
	for _, w := range walks {
		mapped = append(mapped, ToResponse(w))
	}
	return ListResponse{
		Walks:      mapped,
		TotalCount: totalCount,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: TotalPages(totalCount, p.Limit),
	}
}
