package storage

import (
	"context"

	"github.com/RRRRRRR-777/TokoToko-sub005/internal/db"

	"github.com/google/uuid"
)

// ThumbnailSetter is the slice of the walk service this package needs.
type ThumbnailSetter interface {
	SetThumbnail(ctx context.Context, walkID, url string) error
}

type Service struct {
	db    db.Querier
	store ObjectStore
	walks ThumbnailSetter
}

func NewService(db db.Querier, store ObjectStore, walks ThumbnailSetter) *Service {
	return &Service{db: db, store: store, walks: walks}
}

// SaveObject records an uploaded object for bookkeeping and cleanup.
func (s *Service) SaveObject(ctx context.Context, userID, url, kind string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(ctx, `
		INSERT INTO storage_objects (id, user_id, url, kind)
		VALUES ($1,$2,$3,$4)
	`, id, userID, url, kind)
	if err != nil {
		return "", err
	}
	return id, nil
}

// AttachThumbnail uploads the image, records it and points the walk at the
// resulting URL.
func (s *Service) AttachThumbnail(ctx context.Context, walkID, userID, fileName, contentType string, data []byte) (string, error) {
	path := "walks/" + walkID + "/thumbnail/" + fileName
	url, err := s.store.Upload(ctx, path, contentType, data)
	if err != nil {
		return "", err
	}
	if _, err := s.SaveObject(ctx, userID, url, "thumbnail"); err != nil {
		return "", err
	}
	if err := s.walks.SetThumbnail(ctx, walkID, url); err != nil {
		return "", err
	}
	return url, nil
}
