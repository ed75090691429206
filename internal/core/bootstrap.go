package core

import (
	"fmt"
	"net/http"
	"time"

	"sessiond/internal/activity"
	"sessiond/internal/effects"
	m "sessiond/internal/middlewares"
	"sessiond/internal/models"
	"sessiond/internal/services"
	"sessiond/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// StartHTTPServer serves the control surface: the flow endpoints a UI drives
// and the session inspection projection. Blocks until the listener fails.
func StartHTTPServer(
	config models.Configuration,
	sessionStore *store.Store,
	coordinator *effects.Coordinator,
	journal activity.IJournal,
) {
	r := chi.NewRouter()

	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(m.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   config.App.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(apiRouter chi.Router) {
		apiRouter.Mount("/v1/auth", services.AuthService{
			Store:   sessionStore,
			Effects: coordinator,
		}.Routes())

		apiRouter.Mount("/v1/register", services.RegisterService{
			Store:   sessionStore,
			Effects: coordinator,
		}.Routes())

		apiRouter.Mount("/v1/forgot-password", services.ForgotPasswordService{
			Store:   sessionStore,
			Effects: coordinator,
		}.Routes())

		apiRouter.Mount("/v1/verify-email", services.VerifyEmailService{
			Store:   sessionStore,
			Effects: coordinator,
		}.Routes())

		apiRouter.Mount("/v1/first-login", services.FirstLoginService{
			Store:   sessionStore,
			Effects: coordinator,
		}.Routes())

		apiRouter.Mount("/v1/session", services.SessionService{
			Store:   sessionStore,
			Effects: coordinator,
		}.Routes())

		if journal != nil {
			apiRouter.Mount("/v1/journal", services.JournalService{
				Journal: journal,
			}.Routes())
		}
	})

	zap.L().Info("HTTP server starting", zap.Int("port", config.App.Port))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.App.Port),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	err := server.ListenAndServe()
	if err != nil {
		zap.L().Error("Failed to start the app", zap.Error(err))
	}
}
