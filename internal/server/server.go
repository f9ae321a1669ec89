// Package server assembles the application: configuration, database,
// image store, services, controllers and the HTTP listener.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/akxton/app/controllers"
	appmw "github.com/shashiranjanraj/akxton/app/middleware"
	"github.com/shashiranjanraj/akxton/app/models"
	"github.com/shashiranjanraj/akxton/app/repositories"
	"github.com/shashiranjanraj/akxton/app/routes"
	"github.com/shashiranjanraj/akxton/app/services"
	"github.com/shashiranjanraj/akxton/config"
	"github.com/shashiranjanraj/akxton/pkg/database"
	"github.com/shashiranjanraj/akxton/pkg/imagestore"
	"github.com/shashiranjanraj/akxton/pkg/logger"
	"github.com/shashiranjanraj/akxton/pkg/metrics"
	"github.com/shashiranjanraj/akxton/pkg/middleware"
	"github.com/shashiranjanraj/akxton/pkg/reqid"
	"github.com/shashiranjanraj/akxton/pkg/router"
)

// Server is the assembled application.
type Server struct {
	http *http.Server
	db   *mongo.Database
}

// New connects the collaborators and builds the HTTP server.
func New(ctx context.Context) (*Server, error) {
	_ = config.Load()

	db, err := database.Connect(ctx, config.MongoURI(), config.MongoDB())
	if err != nil {
		return nil, err
	}
	if err := models.EnsureIndexes(ctx, db); err != nil {
		_ = database.Disconnect(context.Background(), db)
		return nil, err
	}

	images, err := imagestore.NewS3Store(ctx)
	if err != nil {
		_ = database.Disconnect(context.Background(), db)
		return nil, err
	}

	r := buildRouter(db, images)

	return &Server{
		db: db,
		http: &http.Server{
			Addr:              ":" + config.AppPort(),
			Handler:           r.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       2 * time.Minute,
		},
	}, nil
}

func buildRouter(db *mongo.Database, images imagestore.Store) *router.Router {
	users := repositories.NewUserRepository(db)
	admins := repositories.NewAdminRepository(db)
	properties := repositories.NewPropertyRepository(db)
	saved := repositories.NewSavedRepository(db)
	requests := repositories.NewRequestRepository(db)
	messages := repositories.NewMessageRepository(db)

	cascade := services.NewCascade(users, properties, saved, requests, images)
	authSvc := services.NewAuthService(users, admins)
	userSvc := services.NewUserService(users, properties, saved, requests)
	propertySvc := services.NewPropertyService(properties, images, cascade)
	savedSvc := services.NewSavedService(saved, properties)
	requestSvc := services.NewRequestService(requests, properties)
	messageSvc := services.NewMessageService(messages)
	adminSvc := services.NewAdminService(users, properties, requests, messages, cascade)

	r := router.New()
	r.Use(
		metrics.Middleware(),
		reqid.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(corsOptions()),
	)

	routes.Register(r, routes.Deps{
		Users:        controllers.NewUserController(authSvc, userSvc),
		Properties:   controllers.NewPropertyController(propertySvc),
		Saved:        controllers.NewSavedController(savedSvc),
		Requests:     controllers.NewRequestController(requestSvc),
		Messages:     controllers.NewMessageController(messageSvc),
		Admin:        controllers.NewAdminController(authSvc, adminSvc),
		RequireUser:  appmw.RequireUser(users),
		RequireAdmin: appmw.RequireAdmin(admins),
	})
	return r
}

func corsOptions() middleware.CORSOptions {
	opts := middleware.DefaultCORSOptions()
	if config.IsProduction() {
		opts.AllowedOrigins = []string{config.FrontendURL()}
	}
	return opts
}

// Run serves until SIGINT/SIGTERM, then drains in-flight requests and
// closes the database connection.
func (s *Server) Run() error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", s.http.Addr, "env", config.AppEnv())
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		_ = database.Disconnect(context.Background(), s.db)
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	return database.Disconnect(context.Background(), s.db)
}

// RouteTable builds the route list without touching the database or the
// image store, for the route:list command.
func RouteTable() []router.RouteInfo {
	passthrough := func(next http.Handler) http.Handler { return next }

	r := router.New()
	routes.Register(r, routes.Deps{
		Users:        controllers.NewUserController(nil, nil),
		Properties:   controllers.NewPropertyController(nil),
		Saved:        controllers.NewSavedController(nil),
		Requests:     controllers.NewRequestController(nil),
		Messages:     controllers.NewMessageController(nil),
		Admin:        controllers.NewAdminController(nil, nil),
		RequireUser:  passthrough,
		RequireAdmin: passthrough,
	})
	return r.Routes()
}
