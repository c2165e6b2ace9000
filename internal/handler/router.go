package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chatHandler "github.com/feelbetterai/backend/internal/handler/chat"
	crisisHandler "github.com/feelbetterai/backend/internal/handler/crisis"
	moodHandler "github.com/feelbetterai/backend/internal/handler/mood"
	wsHandler "github.com/feelbetterai/backend/internal/handler/ws"
	middlewarePkg "github.com/feelbetterai/backend/internal/middleware"
	chatService "github.com/feelbetterai/backend/internal/service/chat"
	"github.com/feelbetterai/backend/internal/service/dashboard"
	"github.com/feelbetterai/backend/internal/store"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(st store.Store, chatSvc *chatService.Service, dashboardSvc *dashboard.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		chatHandler.New(chatSvc).RegisterRoutes(api)
		moodHandler.New(st, dashboardSvc).RegisterRoutes(api)
		crisisHandler.New(st).RegisterRoutes(api)
		wsHandler.New(chatSvc).RegisterRoutes(api)
	})

	return r
}
