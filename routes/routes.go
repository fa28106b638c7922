package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/scorebet/prediction-league/docs"
	"github.com/scorebet/prediction-league/handlers"
	"github.com/scorebet/prediction-league/middleware"
	"github.com/scorebet/prediction-league/models"
)

// SetupRoutes mounts every route of the API onto the given router.
//
// Public routes need no token. Routes under the authenticated group require
// a valid bearer token; routes under the admin group additionally require
// the admin role.
func SetupRoutes(
	router *chi.Mux,
	auth *middleware.Authenticator,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	teamHandler *handlers.TeamHandler,
	playerHandler *handlers.PlayerHandler,
	matchHandler *handlers.MatchHandler,
	predictionHandler *handlers.PredictionHandler,
	standingsHandler *handlers.StandingsHandler,
	leaderboardHandler *handlers.LeaderboardHandler,
	healthHandler *handlers.HealthHandler,
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

	router.Get("/healthz", healthHandler.Healthz)

	router.Get("/swagger/*", httpSwagger.Handler())

	// Public
	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Get("/teams", teamHandler.List)
	router.Get("/teams/{teamID}", teamHandler.GetByID)
	router.Get("/teams/{teamID}/players", teamHandler.ListPlayers)
	router.Get("/players/{playerID}", playerHandler.GetByID)

	router.Get("/matches", matchHandler.List)
	router.Get("/matches/{matchID}", matchHandler.GetByID)

	router.Get("/standings/{group}", standingsHandler.GetGroup)
	router.Get("/leaderboard", leaderboardHandler.Leaderboard)
	router.Get("/leaderboard/worst-value", leaderboardHandler.WorstValue)

	// Authenticated
	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Get("/users/me", userHandler.GetMe)
		r.Put("/users/me", userHandler.UpdateMe)

		r.Post("/predictions", predictionHandler.Submit)
		r.Get("/predictions/mine", predictionHandler.ListMine)
		r.Get("/predictions/potential", predictionHandler.PotentialPoints)
	})

	// Admin
	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Use(middleware.RequireRole(models.RoleAdmin))

		r.Get("/users", userHandler.List)
		r.Get("/users/{userID}", userHandler.GetByID)
		r.Put("/users/{userID}", userHandler.Update)
		r.Delete("/users/{userID}", userHandler.Delete)

		r.Post("/teams", teamHandler.Create)
		r.Put("/teams/{teamID}", teamHandler.Update)
		r.Delete("/teams/{teamID}", teamHandler.Delete)
		r.Post("/teams/{teamID}/crest", teamHandler.UploadCrest)

		r.Post("/players", playerHandler.Create)
		r.Put("/players/{playerID}", playerHandler.Update)
		r.Delete("/players/{playerID}", playerHandler.Delete)
		r.Post("/players/{playerID}/photo", playerHandler.UploadPhoto)

		r.Post("/matches", matchHandler.Create)
		r.Put("/matches/{matchID}", matchHandler.Update)
		r.Delete("/matches/{matchID}", matchHandler.Delete)
		r.Put("/matches/{matchID}/result", matchHandler.SetResult)
		r.Get("/matches/{matchID}/predictions", predictionHandler.ListByMatch)
		r.Post("/recalculate", matchHandler.Recalculate)

		r.Post("/standings/{group}/rebuild", standingsHandler.RebuildGroup)
		r.Put("/standings", standingsHandler.Override)
	})
}
