package walk

import (
	"context"
	"errors"
	"time"

	"github.com/RRRRRRR-777/TokoToko-sub005/internal/db"
	"github.com/RRRRRRR-777/TokoToko-sub005/internal/shared/geo"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Service struct {
	db             db.Querier
	accuracyLimitM float64
}

func NewService(db db.Querier, accuracyLimitM float64) *Service {
	return &Service{db: db, accuracyLimitM: accuracyLimitM}
}

const walkColumns = `id, user_id, title, description, start_time, end_time,
	       total_distance, total_steps, COALESCE(polyline_data,''),
	       COALESCE(thumbnail_image_url,''), status, paused_at,
	       total_paused_duration, version, created_at, updated_at`

func (s *Service) CreateWalk(ctx context.Context, input Walk) (Walk, error) {
	input.ID = uuid.NewString()
	input.Status = StatusNotStarted

	row := s.db.QueryRow(ctx, `
		INSERT INTO walks (id, user_id, title, description)
		VALUES ($1,$2,$3,$4)
		RETURNING version, created_at, updated_at
	`, input.ID, input.UserID, input.Title, input.Description)
	if err := row.Scan(&input.Version, &input.CreatedAt, &input.UpdatedAt); err != nil {
		return Walk{}, err
	}
	return input, nil
}

func (s *Service) GetWalk(ctx context.Context, id string) (Walk, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+walkColumns+`
		FROM walks WHERE id=$1
	`, id)
	return scanWalk(row)
}

// ListWalks returns one page of the user's walks, newest first, with the
// total count for page metadata.
func (s *Service) ListWalks(ctx context.Context, userID string, p Page) ([]Walk, int, error) {
	var total int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM walks WHERE user_id=$1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT `+walkColumns+`
		FROM walks WHERE user_id=$1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var walks []Walk
	for rows.Next() {
		w, err := scanWalk(rows)
		if err != nil {
			return nil, 0, err
		}
		walks = append(walks, w)
	}
	return walks, total, rows.Err()
}

// UpdateWalk patches title and description. Metrics and lifecycle fields
// only change through transitions and sample ingestion, and a completed
// walk is frozen entirely.
func (s *Service) UpdateWalk(ctx context.Context, id string, patch Walk) (Walk, error) {
	w, err := s.GetWalk(ctx, id)
	if err != nil {
		return Walk{}, err
	}
	if w.Status == StatusCompleted {
		return Walk{}, ErrWalkCompleted
	}
	if patch.Title != "" {
		w.Title = patch.Title
	}
	if patch.Description != "" {
		w.Description = patch.Description
	}
	return s.saveWalk(ctx, w)
}

func (s *Service) StartWalk(ctx context.Context, id string) (Walk, error) {
	return s.transition(ctx, id, (*Walk).Start)
}

func (s *Service) PauseWalk(ctx context.Context, id string) (Walk, error) {
	return s.transition(ctx, id, (*Walk).Pause)
}

func (s *Service) ResumeWalk(ctx context.Context, id string) (Walk, error) {
	return s.transition(ctx, id, (*Walk).Resume)
}

// CompleteWalk finalizes the walk: it closes any open pause interval,
// recomputes the route distance from the stored samples, encodes the route
// polyline and records the client-reported step count.
func (s *Service) CompleteWalk(ctx context.Context, id string, totalSteps int) (Walk, error) {
	w, err := s.GetWalk(ctx, id)
	if err != nil {
		return Walk{}, err
	}
	samples, err := s.Locations(ctx, id)
	if err != nil {
		return Walk{}, err
	}

	if err := w.Complete(time.Now()); err != nil {
		return Walk{}, err
	}
	w.TotalDistance = RouteDistance(samples, s.accuracyLimitM)
	w.PolylineData = EncodeRoute(samples)
	if totalSteps > 0 {
		w.TotalSteps = totalSteps
	}
	return s.saveWalk(ctx, w)
}

// AppendLocation validates and stores one GPS fix. The next sequence number
// is assigned inside the insert; the unique (walk_id, sequence_number)
// constraint turns a racing append into ErrConflict instead of a corrupt
// order. Completed walks accept no samples: the insert re-checks the status
// in the same statement, so a completion committing after the status read
// still makes the append fail.
func (s *Service) AppendLocation(ctx context.Context, walkID string, input LocationSample) (LocationSample, error) {
	if err := input.ValidateCoordinates(); err != nil {
		return LocationSample{}, err
	}

	var status string
	err := s.db.QueryRow(ctx, `SELECT status FROM walks WHERE id=$1`, walkID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return LocationSample{}, ErrNotFound
	}
	if err != nil {
		return LocationSample{}, err
	}
	if Status(status) == StatusCompleted {
		return LocationSample{}, ErrWalkCompleted
	}

	if input.CapturedAt.IsZero() {
		input.CapturedAt = time.Now()
	}

	var prev LocationSample
	hasPrev := s.db.QueryRow(ctx, `
		SELECT latitude, longitude, horizontal_accuracy
		FROM walk_locations WHERE walk_id=$1
		ORDER BY sequence_number DESC
		LIMIT 1
	`, walkID).Scan(&prev.Latitude, &prev.Longitude, &prev.HorizontalAccuracy) == nil

	row := s.db.QueryRow(ctx, `
		INSERT INTO walk_locations
			(walk_id, latitude, longitude, altitude, speed, course,
			 horizontal_accuracy, vertical_accuracy, captured_at, sequence_number)
		SELECT id, $2,$3,$4,$5,$6,$7,$8,$9,
			(SELECT COALESCE(MAX(sequence_number),0)+1 FROM walk_locations WHERE walk_id=$1)
		FROM walks WHERE id=$1 AND status <> 'completed'
		RETURNING id, sequence_number, created_at
	`, walkID, input.Latitude, input.Longitude, input.Altitude, input.Speed, input.Course,
		input.HorizontalAccuracy, input.VerticalAccuracy, input.CapturedAt)
	if err := row.Scan(&input.ID, &input.SequenceNumber, &input.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The walk existed at the status read above, so zero rows means
			// a completion committed in between.
			return LocationSample{}, ErrWalkCompleted
		}
		return LocationSample{}, mapPgError(err)
	}
	input.WalkID = walkID

	// Running total so active walks show live distance; the authoritative
	// recompute happens on completion.
	if hasPrev && !noisy(prev, s.accuracyLimitM) && !noisy(input, s.accuracyLimitM) {
		deltaM := geo.HaversineM(prev.Latitude, prev.Longitude, input.Latitude, input.Longitude)
		if _, err := s.db.Exec(ctx, `
			UPDATE walks
			SET total_distance = total_distance + $2, updated_at = now()
			WHERE id=$1
		`, walkID, deltaM); err != nil {
			return LocationSample{}, err
		}
	}

	return input, nil
}

// Locations returns all samples of a walk in canonical sequence order.
func (s *Service) Locations(ctx context.Context, walkID string) ([]LocationSample, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, walk_id, latitude, longitude, altitude, speed, course,
		       horizontal_accuracy, vertical_accuracy, captured_at, sequence_number, created_at
		FROM walk_locations WHERE walk_id=$1
		ORDER BY sequence_number
	`, walkID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []LocationSample
	for rows.Next() {
		var l LocationSample
		if err := rows.Scan(&l.ID, &l.WalkID, &l.Latitude, &l.Longitude, &l.Altitude, &l.Speed,
			&l.Course, &l.HorizontalAccuracy, &l.VerticalAccuracy, &l.CapturedAt,
			&l.SequenceNumber, &l.CreatedAt); err != nil {
			return nil, err
		}
		samples = append(samples, l)
	}
	return samples, rows.Err()
}

// SetThumbnail records the walk's thumbnail URL. The thumbnail is rendered
// from the finished route and attached after completion, so this write is
// allowed on completed walks; route, metrics and lifecycle stay frozen.
func (s *Service) SetThumbnail(ctx context.Context, walkID, url string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE walks SET thumbnail_image_url=$2, updated_at=now() WHERE id=$1
	`, walkID, url)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) transition(ctx context.Context, id string, apply func(*Walk, time.Time) error) (Walk, error) {
	w, err := s.GetWalk(ctx, id)
	if err != nil {
		return Walk{}, err
	}
	if err := apply(&w, time.Now()); err != nil {
		return Walk{}, err
	}
	return s.saveWalk(ctx, w)
}

// saveWalk persists the whole walk under an optimistic version check. Zero
// rows means another writer advanced the version after our read.
func (s *Service) saveWalk(ctx context.Context, w Walk) (Walk, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE walks
		SET title=$3, description=$4, start_time=$5, end_time=$6,
		    total_distance=$7, total_steps=$8, polyline_data=NULLIF($9,''),
		    thumbnail_image_url=NULLIF($10,''), status=$11, paused_at=$12,
		    total_paused_duration=$13, version=version+1, updated_at=now()
		WHERE id=$1 AND version=$2
		RETURNING version, updated_at
	`, w.ID, w.Version, w.Title, w.Description, w.StartTime, w.EndTime,
		w.TotalDistance, w.TotalSteps, w.PolylineData, w.ThumbnailImageURL,
		string(w.Status), w.PausedAt, w.TotalPausedDuration)
	if err := row.Scan(&w.Version, &w.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Walk{}, ErrConflict
		}
		return Walk{}, err
	}
	return w, nil
}

func scanWalk(row pgx.Row) (Walk, error) {
	var w Walk
	var status string
	err := row.Scan(&w.ID, &w.UserID, &w.Title, &w.Description, &w.StartTime, &w.EndTime,
		&w.TotalDistance, &w.TotalSteps, &w.PolylineData, &w.ThumbnailImageURL,
		&status, &w.PausedAt, &w.TotalPausedDuration, &w.Version, &w.CreatedAt, &w.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Walk{}, ErrNotFound
	}
	if err != nil {
		return Walk{}, err
	}
	w.Status = Status(status)
	return w, nil
}

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation on (walk_id, sequence_number)
			return ErrConflict
		case "23514": // check_violation on coordinate bounds
			return ErrOutOfRange
		}
	}
	return err
}
