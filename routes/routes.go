package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/metrix-gg/metrix-server/handlers"
	"github.com/metrix-gg/metrix-server/middleware"
)

// SetupRoutes mounts the whole HTTP surface onto the router. Reads are
// public; everything that touches a bracket session or mutates a
// tournament sits behind admin auth.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret []byte,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	participantHandler *handlers.ParticipantHandler,
	bracketHandler *handlers.BracketHandler,
	userHandler *handlers.UserHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Post("/auth/login", authHandler.Login)

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.ListHandler)
		r.Get("/{tournamentID}", tournamentHandler.GetByIDHandler)
		r.Get("/{tournamentID}/bracket", tournamentHandler.GetBracketViewHandler)
		r.Get("/{tournamentID}/participants", participantHandler.ListHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.Authorize("admin"))

			r.Post("/", tournamentHandler.CreateHandler)
			r.Put("/{tournamentID}/banner", tournamentHandler.UploadBannerHandler)
			r.Post("/{tournamentID}/participants", participantHandler.RegisterHandler)
			r.Post("/{tournamentID}/bracket/sessions", bracketHandler.StartSessionHandler)
		})
	})

	router.Route("/bracket/sessions/{sessionID}", func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))
		r.Use(middleware.Authorize("admin"))

		r.Get("/", bracketHandler.GetSessionHandler)
		r.Delete("/", bracketHandler.DiscardSessionHandler)
		r.Post("/validate", bracketHandler.ValidateHandler)
		r.Post("/save", bracketHandler.SaveHandler)

		r.Route("/matches/{matchIndex}", func(r chi.Router) {
			r.Patch("/", bracketHandler.UpdateMatchHandler)
			r.Delete("/", bracketHandler.DeleteMatchHandler)
			r.Put("/players", bracketHandler.SwapPlayerHandler)
			r.Get("/available", bracketHandler.AvailableParticipantsHandler)
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))
		r.Use(middleware.Authorize("admin"))

		r.Get("/users/spectators", userHandler.ListSpectatorsHandler)
		r.Delete("/participants/{participantID}", participantHandler.RemoveHandler)
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)
}
