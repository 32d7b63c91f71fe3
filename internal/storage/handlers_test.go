package storage

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RRRRRRR-777/TokoToko-sub005/internal/walk"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func testApp(svc *Service) *fiber.App {
	app := fiber.New()
	fakeAuth := func(c *fiber.Ctx) error {
		c.Locals("user_id", "user-1")
		return c.Next()
	}
	RegisterRoutes(app.Group("/storage"), svc, fakeAuth)
	return app
}

func TestThumbnailHandler(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`INSERT INTO storage_objects`).
		WithArgs(pgxmock.AnyArg(), "user-1", pgxmock.AnyArg(), "thumbnail").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	walks := &fakeWalks{}
	app := testApp(NewService(mock, NewMemoryStore(""), walks))

	body, _ := json.Marshal(map[string]any{
		"file_name":    "t.jpg",
		"content_type": "image/jpeg",
		"data":         []byte("img"),
	})
	req := httptest.NewRequest(http.MethodPost, "/storage/walks/walk-1/thumbnail", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("thumbnail status: %v %v", resp.StatusCode, err)
	}

	var result map[string]string
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result["thumbnail_image_url"] == "" {
		t.Fatalf("expected thumbnail url in response")
	}
	if walks.walkID != "walk-1" {
		t.Fatalf("walk not updated")
	}
}

func TestThumbnailHandlerUnknownWalk(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`INSERT INTO storage_objects`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	app := testApp(NewService(mock, NewMemoryStore(""), &fakeWalks{err: walk.ErrNotFound}))

	req := httptest.NewRequest(http.MethodPost, "/storage/walks/missing/thumbnail", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
