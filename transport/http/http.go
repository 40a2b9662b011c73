package http

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"reserva/config"
	"reserva/infras/postgres"
	"reserva/shared/constant"
	"reserva/transport/http/middleware"
	"reserva/transport/http/response"
	"reserva/transport/http/router"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

type ServerState int

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

type HTTP struct {
	Config   *config.Config
	Router   router.Router
	State    ServerState
	appMW    middleware.AppMiddleware
	authRole middleware.AuthRole
	db       *postgres.Connection
	server   *http.Server
}

func New(cfg *config.Config, r router.Router, appMW middleware.AppMiddleware, authRole middleware.AuthRole, db *postgres.Connection) *HTTP {
	return &HTTP{
		Config:   cfg,
		Router:   r,
		appMW:    appMW,
		authRole: authRole,
		db:       db,
	}
}

func (h *HTTP) Serve() {
	mux := h.setup()

	h.server = &http.Server{
		Addr:              net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port),
		Handler:           mux,
		ReadHeaderTimeout: 20 * time.Second,
	}

	log.Info().Str("port", h.Config.Server.Port).Msg("Starting up HTTP server.")

	if err := h.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

// Handler exposes the fully built mux, used by httptest in handler tests.
func (h *HTTP) Handler() http.Handler {
	return h.setup()
}

func (h *HTTP) setup() chi.Router {
	mux := h.setupRoutes()
	h.setupGracefulShutdown()
	h.State = ServerStateReady

	return mux
}

func (h *HTTP) setupRoutes() chi.Router {
	mux := chi.NewRouter()

	if h.Config.App.CORS.Enable {
		mux.Use(cors.Handler(cors.Options{
			AllowCredentials: h.Config.App.CORS.AllowCredentials,
			AllowedHeaders:   h.Config.App.CORS.AllowedHeaders,
			AllowedMethods:   h.Config.App.CORS.AllowedMethods,
			AllowedOrigins:   h.Config.App.CORS.AllowedOrigins,
			MaxAge:           h.Config.App.CORS.MaxAgeSeconds,
		}))
	}

	mux.Use(h.appMW.Tracing)
	mux.Use(h.appMW.RateLimit())

	mux.Get("/health", h.healthCheck)

	if h.Config.Storage.Driver == constant.StorageDriverLocal {
		h.setupUploadsServer(mux)
	}

	mux.Group(func(routerGroup chi.Router) {
		routerGroup.Use(h.authRole.Auth)
		routerGroup.Use(h.authRole.RBAC)

		h.Router.SetupRoutes(routerGroup)
	})

	return mux
}

// setupUploadsServer serves locally stored files under /uploads when the
// local storage driver is active.
func (h *HTTP) setupUploadsServer(mux chi.Router) {
	dir, err := filepath.Abs(h.Config.Storage.LocalDir)
	if err != nil {
		log.Error().Err(err).Msg("Failed to resolve uploads directory")

		return
	}

	fileServer := http.StripPrefix(constant.UploadsPublicPath, http.FileServer(http.Dir(dir)))

	mux.Get(constant.UploadsPublicPath+"/*", func(w http.ResponseWriter, r *http.Request) {
		fileServer.ServeHTTP(w, r)
	})
}

func (h *HTTP) healthCheck(writer http.ResponseWriter, request *http.Request) {
	if h.State != ServerStateReady {
		response.WithPreparingShutdown(writer)

		return
	}

	if err := h.db.Read.PingContext(request.Context()); err != nil {
		log.Error().Err(err).Msg("Health check failed to ping database")
		response.WithUnhealthy(writer)

		return
	}

	response.WithMessage(writer, http.StatusOK, "OK")
}

func (h *HTTP) setupGracefulShutdown() {
	serverStateCh := make(chan os.Signal, 1)

	signal.Notify(serverStateCh, os.Interrupt, syscall.SIGTERM)

	go h.respondToSigterm(serverStateCh)
}

func (h *HTTP) respondToSigterm(done chan os.Signal) {
	<-done

	defer os.Exit(0)

	shutdownConfig := h.Config.Server.Shutdown

	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")
		h.shutdownServer()

		return
	}

	log.Info().Msg("Received SIGTERM.")
	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

	h.State = ServerStateInGracePeriod

	time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.State = ServerStateInCleanupPeriod

	h.shutdownServer()

	time.Sleep(time.Duration(shutdownConfig.CleanupPeriodSeconds) * time.Second)

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}

func (h *HTTP) shutdownServer() {
	if h.server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to shut down HTTP server cleanly")
	}
}
