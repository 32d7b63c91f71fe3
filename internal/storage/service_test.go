package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/RRRRRRR-777/TokoToko-sub005/internal/walk"

	"github.com/pashagolub/pgxmock/v3"
)

type fakeWalks struct {
	walkID string
	url    string
	err    error
}

func (f *fakeWalks) SetThumbnail(_ context.Context, walkID, url string) error {
	if f.err != nil {
		return f.err
	}
	f.walkID = walkID
	f.url = url
	return nil
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestSaveObject(t *testing.T) {
	mock := newMock(t)

	mock.ExpectExec(`INSERT INTO storage_objects`).
		WithArgs(pgxmock.AnyArg(), "user-1", "https://storage.example/file", "thumbnail").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	svc := NewService(mock, NewMemoryStore(""), &fakeWalks{})
	id, err := svc.SaveObject(context.Background(), "user-1", "https://storage.example/file", "thumbnail")
	if err != nil {
		t.Fatalf("save object: %v", err)
	}
	if id == "" {
		t.Fatalf("expected id")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAttachThumbnail(t *testing.T) {
	mock := newMock(t)

	mock.ExpectExec(`INSERT INTO storage_objects`).
		WithArgs(pgxmock.AnyArg(), "user-1", pgxmock.AnyArg(), "thumbnail").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	store := NewMemoryStore("")
	walks := &fakeWalks{}
	svc := NewService(mock, store, walks)

	url, err := svc.AttachThumbnail(context.Background(), "walk-1", "user-1", "t.jpg", "image/jpeg", []byte("img"))
	if err != nil {
		t.Fatalf("attach thumbnail: %v", err)
	}
	if url != "https://storage.example/walks/walk-1/thumbnail/t.jpg" {
		t.Fatalf("unexpected url: %s", url)
	}
	if walks.walkID != "walk-1" || walks.url != url {
		t.Fatalf("walk not updated: %+v", walks)
	}

	data, err := store.Download(context.Background(), "walks/walk-1/thumbnail/t.jpg")
	if err != nil || string(data) != "img" {
		t.Fatalf("object not stored: %v", err)
	}
}

func TestAttachThumbnailUnknownWalk(t *testing.T) {
	mock := newMock(t)

	mock.ExpectExec(`INSERT INTO storage_objects`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	svc := NewService(mock, NewMemoryStore(""), &fakeWalks{err: walk.ErrNotFound})
	_, err := svc.AttachThumbnail(context.Background(), "missing", "user-1", "t.jpg", "image/jpeg", nil)
	if !errors.Is(err, walk.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemoryStore("https://cdn.example/")
	ctx := context.Background()

	url, err := store.Upload(ctx, "a/b.jpg", "image/jpeg", []byte("x"))
	if err != nil || url != "https://cdn.example/a/b.jpg" {
		t.Fatalf("upload: %v %s", err, url)
	}

	got, err := store.GetURL(ctx, "a/b.jpg")
	if err != nil || got != url {
		t.Fatalf("get url: %v %s", err, got)
	}

	if err := store.Delete(ctx, "a/b.jpg"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Download(ctx, "a/b.jpg"); !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
	if err := store.Delete(ctx, "a/b.jpg"); !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound on double delete, got %v", err)
	}
}
