package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sharma-alok1/RailMate/backend/internal/handler/chat"
	"github.com/sharma-alok1/RailMate/backend/internal/handler/train"
	middlewarePkg "github.com/sharma-alok1/RailMate/backend/internal/middleware"
	chatService "github.com/sharma-alok1/RailMate/backend/internal/service/chat"
	trainService "github.com/sharma-alok1/RailMate/backend/internal/service/train"
	"github.com/sharma-alok1/RailMate/backend/pkg/utils"
)

type healthResponse struct {
	Success   bool   `json:"success"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewRouter wires HTTP routes to core services.
func NewRouter(chatSvc *chatService.Service, completer chat.Completer, trainSvc *trainService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	chatHandler := chat.New(chatSvc, completer)
	trainHandler := train.New(trainSvc)

	r.Route("/api", func(api chi.Router) {
		api.Route("/chat", chatHandler.RegisterRoutes)
		api.Route("/trains", trainHandler.RegisterRoutes)

		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			utils.RespondJSON(w, http.StatusOK, healthResponse{
				Success:   true,
				Status:    "ok",
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			})
		})
	})

	return r
}
