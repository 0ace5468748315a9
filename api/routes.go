package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/warwickallen/allen-app-challenge-2026/internal/access"
	"github.com/warwickallen/allen-app-challenge-2026/internal/auth"
	"github.com/warwickallen/allen-app-challenge-2026/internal/config"
	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/httperr"
	v1app "github.com/warwickallen/allen-app-challenge-2026/internal/handlers/v1/app"
	v1auth "github.com/warwickallen/allen-app-challenge-2026/internal/handlers/v1/auth"
	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/v1/changelog"
	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/v1/leaderboard"
	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/v1/monthlywinner"
	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/v1/participant"
	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/v1/status"
	"github.com/warwickallen/allen-app-challenge-2026/internal/handlers/v1/transaction"
	"github.com/warwickallen/allen-app-challenge-2026/internal/logging"
	"github.com/warwickallen/allen-app-challenge-2026/internal/metrics"
	"github.com/warwickallen/allen-app-challenge-2026/internal/middleware"
	"github.com/warwickallen/allen-app-challenge-2026/internal/service"
)

const shutdownTimeout = 10 * time.Second

type Rest struct {
	Logger        *logrus.Logger
	Config        *config.Config
	Service       *service.Service
	Authenticator *auth.Authenticator
	DB            status.Pinger
}

// Router builds the full HTTP handler. ctx bounds background work such as
// the rate limiter sweep.
func (r *Rest) Router(ctx context.Context) http.Handler {
	router := chi.NewRouter()
	// CORS sits on the root router so preflight requests are answered even
	// though no OPTIONS routes are registered.
	router.Use(
		chimiddleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		cors.Handler(corsOptions(r.Config.CORSAllowedOrigins)),
	)

	statusHandler := status.NewHandler(r.DB)
	router.Handle("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))
	router.Handle("/metrics", metrics.Handler())

	router.Group(func(group chi.Router) {
		group.Use(logging.Middleware(r.Logger), metrics.InstrumentHandler)

		httperr.UseBadRequestForValidation()
		api := humachi.New(group, huma.DefaultConfig("App Challenge", "1.0.0"))
		api.UseMiddleware(access.Middleware(r.Authenticator, r.Logger))

		signInLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
			RequestsPerSecond: r.Config.SignInRateLimitRPS,
			Burst:             r.Config.SignInRateLimitBurst,
		})
		go signInLimiter.Cleanup(ctx)

		handlers := []interface{ Register(huma.API) }{
			v1auth.NewSignInHandler(r.Authenticator, r.Config.SecureCookies, signInLimiter.Huma(api)),
			v1auth.NewSignOutHandler(r.Authenticator),
			v1auth.NewSessionHandler(),
			v1app.NewListAppsHandler(r.Service.App),
			v1app.NewCreateAppHandler(r.Service.App),
			v1app.NewAppByIDHandler(r.Service.App),
			transaction.NewListTransactionsHandler(r.Service.Transaction),
			transaction.NewCreateTransactionHandler(r.Service.Transaction),
			transaction.NewTransactionByIDHandler(r.Service.Transaction),
			leaderboard.NewLeaderboardHandler(r.Service.Leaderboard),
			leaderboard.NewProfitHistoryHandler(r.Service.Leaderboard),
			leaderboard.NewAppProfitHandler(r.Service.Leaderboard),
			monthlywinner.NewListWinnersHandler(r.Service.Winner),
			monthlywinner.NewCalculateWinnersHandler(r.Service.Winner),
			changelog.NewListChangesHandler(r.Service.ChangeLog),
			participant.NewListParticipantsHandler(r.Service.Participant),
		}
		for _, h := range handlers {
			h.Register(api)
		}
	})

	return router
}

func corsOptions(origins []string) cors.Options {
	wildcard := len(origins) == 1 && origins[0] == "*"
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: !wildcard,
		MaxAge:           300,
	}
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Config.HTTPPort,
		Handler:           r.Router(ctx),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		r.Logger.Info("HttpServer.Serve.shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		}
	}()

	r.Logger.WithField("port", r.Config.HTTPPort).Info("HttpServer.Serve.listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	// ListenAndServe returns as soon as Shutdown starts; wait for handlers to drain.
	<-shutdownDone
	return nil
}
