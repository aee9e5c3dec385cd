package main

import (
	"context"
	"net/http"

	"github.com/AdamBeresnev/clubdesk/internal/api"
	"github.com/AdamBeresnev/clubdesk/internal/config"
	"github.com/AdamBeresnev/clubdesk/internal/httputil"
	"github.com/AdamBeresnev/clubdesk/internal/live"
	"github.com/AdamBeresnev/clubdesk/internal/middleware"
	"github.com/AdamBeresnev/clubdesk/internal/service"
	"github.com/AdamBeresnev/clubdesk/internal/store"
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"github.com/markbates/goth/gothic"
)

func newRouter(cfg config.Config, database *sqlx.DB, sessionManager *scs.SessionManager, hub *live.Hub) http.Handler {
	tournamentStore := store.NewTournamentStore(database)
	courtStore := store.NewCourtStore(database)
	userStore := store.NewUserStore(database)

	userService := service.NewUserService(userStore)
	handler := api.NewHandler(
		service.NewTournamentService(database, tournamentStore),
		service.NewDrawService(database, tournamentStore, hub),
		service.NewMatchService(database, tournamentStore, courtStore, hub),
		courtStore,
		hub,
		cfg.CORSAllowedOrigins,
	)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(sessionManager.LoadAndSave)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := database.PingContext(r.Context()); err != nil {
			httputil.InternalServerError(w, "Database unavailable", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/auth/{provider}", func(w http.ResponseWriter, r *http.Request) {
		provider := chi.URLParam(r, "provider")
		r = r.WithContext(context.WithValue(r.Context(), gothic.ProviderParamKey, provider))

		gothic.BeginAuthHandler(w, r)
	})

	r.Get("/auth/{provider}/callback", func(w http.ResponseWriter, r *http.Request) {
		provider := chi.URLParam(r, "provider")
		r = r.WithContext(context.WithValue(r.Context(), gothic.ProviderParamKey, provider))

		gothUser, err := gothic.CompleteUserAuth(w, r)
		if err != nil {
			httputil.BadRequest(w, "Authentication failure", err)
			return
		}

		user, err := userService.FindOrCreateUserByProvider(r.Context(), gothUser)
		if err != nil {
			httputil.InternalServerError(w, "Failed to find or create user", err)
			return
		}

		sessionManager.Put(r.Context(), middleware.SessionUserKey, user.ID.String())
		httputil.WriteJSON(w, http.StatusOK, user)
	})

	r.Post("/auth/guest", func(w http.ResponseWriter, r *http.Request) {
		user, err := userService.EnsureGuestUser(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to login as guest", err)
			return
		}

		sessionManager.Put(r.Context(), middleware.SessionUserKey, user.ID.String())
		httputil.WriteJSON(w, http.StatusOK, user)
	})

	r.Post("/logout", func(w http.ResponseWriter, r *http.Request) {
		if err := sessionManager.Destroy(r.Context()); err != nil {
			httputil.InternalServerError(w, "Failed to log out", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(sessionManager, userStore))
		r.Mount("/", handler.Routes())
	})

	return r
}
