package server

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"

	"sahayak/app/api"
	"sahayak/app/middleware"
	"sahayak/model"
	"sahayak/qa"
	"sahayak/store"

	"github.com/gofiber/fiber/v2"
)

var config = fiber.Config{
	ErrorHandler: api.ErrorHandler,
	BodyLimit:    20 * 1024 * 1024, // recorded audio uploads
}

type Server struct {
	listenAddr string
	logger     *slog.Logger
}

func NewServer(addr string) *Server {
	return &Server{
		listenAddr: addr,
		logger:     slog.Default(),
	}
}

func (s *Server) Stop() {
	s.logger.Info("server stopped")
}

func (s *Server) Run() {
	ctx := context.Background()
	port, _ := strconv.Atoi(os.Getenv("PG_PORT"))
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", os.Getenv("PG_HOST"), port, os.Getenv("PG_USER"), os.Getenv("PG_PASS"), os.Getenv("PG_DB_NAME"))
	pool, err := store.NewPostgresStore(ctx, connStr)
	if err != nil {
		log.Fatal("error to connect to Postgres database", err)
		return
	}

	if err := pool.Init(ctx); err != nil {
		log.Fatal("error to create tables", err)
		return
	}

	registry, err := qa.BuildRegistry(os.Getenv("PACKS_DIR"))
	if err != nil {
		log.Fatal("error to scan offline packs directory", err)
		return
	}

	var (
		app               = fiber.New(config)
		streamClient      = model.NewStreamClient(os.Getenv("CHAT_API_URL"), os.Getenv("CHAT_API_TOKEN"))
		transcribeClient  = model.NewTranscribeClient(os.Getenv("TRANSCRIBE_API_URL"), os.Getenv("TRANSCRIBE_API_KEY"))
		checkHandler      = api.NewCheckHandler()
		askHandler        = api.NewAskHandler(registry, qa.NewCache(), pool)
		chatHandler       = api.NewChatHandler(streamClient)
		transcribeHandler = api.NewTranscribeHandler(transcribeClient)
		profileHandler    = api.NewProfileHandler(pool)
		catalogHandler    = api.NewCatalogHandler(pool)
		check             = app.Group("/check")
		apiv1             = app.Group("/api/v1", middleware.RequestLogger())
	)

	check.Get("/healthy", checkHandler.HandleHealthy)

	apiv1.Post("/ask", askHandler.HandleAsk)
	apiv1.Post("/chat", chatHandler.HandleChat)
	apiv1.Post("/transcribe", transcribeHandler.HandleTranscribe)
	apiv1.Put("/profile", profileHandler.HandleUpsertProfile)
	apiv1.Put("/onboarding", profileHandler.HandleUpsertOnboarding)
	apiv1.Get("/onboarding/:userID", profileHandler.HandleGetOnboarding)
	apiv1.Get("/catalog/classes", catalogHandler.HandleClasses)
	apiv1.Get("/catalog/classes/:classID/subjects", catalogHandler.HandleSubjectsForClass)
	apiv1.Get("/downloads", catalogHandler.HandleDownloads)

	err = app.Listen(s.listenAddr)
	if err != nil {
		s.logger.Error("error to start server", "error", err.Error())
		return
	}
}
