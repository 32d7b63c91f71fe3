package server

import (
	"github.com/RRRRRRR-777/TokoToko-sub005/internal/auth"
	"github.com/RRRRRRR-777/TokoToko-sub005/internal/config"
	"github.com/RRRRRRR-777/TokoToko-sub005/internal/ingest"
	"github.com/RRRRRRR-777/TokoToko-sub005/internal/storage"
	"github.com/RRRRRRR-777/TokoToko-sub005/internal/walk"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	DB    *pgxpool.Pool
	Redis *redis.Client
	Queue *ingest.Queue
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	walkSvc := walk.NewService(db, cfg.AccuracyLimitM)

	s := &Server{
		App:   app,
		Cfg:   cfg,
		DB:    db,
		Redis: redisClient,
		Queue: ingest.NewQueue(walkSvc, redisClient, cfg.IngestBuffer),
	}

	registerRoutes(s, walkSvc)
	return s
}

func registerRoutes(s *Server, walkSvc *walk.Service) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	walk.RegisterRoutes(s.App.Group("/walks"), walkSvc, jwtMiddleware)
	ingest.RegisterRoutes(s.App.Group("/ingest"), s.Queue, jwtMiddleware)
	storage.RegisterRoutes(s.App.Group("/storage"),
		storage.NewService(s.DB, storage.NewMemoryStore(""), walkSvc), jwtMiddleware)
}

// Close drains the ingest queue; call after the HTTP listener stops.
func (s *Server) Close() {
	if s.Queue != nil {
		s.Queue.Close()
	}
}
