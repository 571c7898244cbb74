package routes

import (
	"github.com/Adilkhan05/cup-system/handlers"
	"github.com/Adilkhan05/cup-system/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes wires the HTTP surface. Reads are public; every mutation sits
// behind the admin token middleware.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret []byte,
	authHandler *handlers.AuthHandler,
	teamHandler *handlers.TeamHandler,
	matchHandler *handlers.MatchHandler,
	bracketHandler *handlers.BracketHandler,
	settingsHandler *handlers.SettingsHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	adminOnly := middleware.Authenticate(jwtSecret)

	router.Post("/auth/login", authHandler.LoginHandler)

	router.Route("/teams", func(r chi.Router) {
		r.Get("/", teamHandler.ListTeamsHandler)
		r.Get("/{teamID}", teamHandler.GetTeamHandler)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/", teamHandler.CreateTeamHandler)
			r.Patch("/{teamID}", teamHandler.UpdateTeamHandler)
			r.Delete("/{teamID}", teamHandler.DeleteTeamHandler)
			r.Post("/{teamID}/crest", teamHandler.UploadCrestHandler)
			r.Delete("/{teamID}/crest", teamHandler.DeleteCrestHandler)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/", matchHandler.ListMatchesHandler)
		r.Get("/{matchID}", matchHandler.GetMatchHandler)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/", matchHandler.CreateMatchHandler)
			r.Put("/{matchID}/result", matchHandler.SubmitResultHandler)
			r.Delete("/{matchID}", matchHandler.DeleteMatchHandler)
		})
	})

	router.Get("/rankings", bracketHandler.GetRankingsHandler)

	router.Route("/bracket", func(r chi.Router) {
		r.Get("/", bracketHandler.GetBracketHandler)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Post("/generate", bracketHandler.GenerateBracketHandler)
			r.Put("/slots", bracketHandler.SaveSlotsHandler)
		})
	})

	router.Route("/settings", func(r chi.Router) {
		r.Get("/", settingsHandler.GetSettingsHandler)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Put("/phase", settingsHandler.SetPhaseHandler)
			r.Put("/qualified", settingsHandler.SetQualifiedTeamsHandler)
		})
	})

	router.Route("/reset", func(r chi.Router) {
		r.Use(adminOnly)
		r.Post("/group-stage", settingsHandler.ResetGroupStageHandler)
		r.Post("/knockout", settingsHandler.ResetKnockoutHandler)
		r.Post("/all", settingsHandler.ResetAllHandler)
	})
}
