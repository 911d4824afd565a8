// Package server exposes the directory over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net"
	"time"

	"incubator/internal/cache"
	"incubator/internal/config"
	"incubator/internal/directory"
	"incubator/internal/editor"
	"incubator/internal/featureflags"
	"incubator/internal/middleware"
	"incubator/internal/models"
	"incubator/internal/observability"
	"incubator/internal/seed"
	"incubator/internal/view"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	store          *directory.Store
	nav            *view.Navigator
	editor         *editor.Editor
	listings       *cache.Listings
	redis          *redis.Client
	featureFlags   *featureflags.Manager
	promMiddleware *fiberprometheus.FiberPrometheus
	app            *fiber.App

	// baseCtx outlives individual requests; background saves hang off it.
	baseCtx    context.Context
	shutdownFn context.CancelFunc
}

// NewServer seeds a fresh directory from cfg and connects to Redis when a URL
// is configured. Without Redis the listings are always read from the store.
func NewServer(cfg *config.Config) (*Server, error) {
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		client, err := cache.Connect(context.Background(), cfg.RedisURL)
		if err != nil {
			observability.GlobalLogger.Warn("redis unavailable, continuing without cache", "error", err)
		} else {
			rdb = client
		}
	}

	initial := seed.Build(seed.Options{
		Demo:      cfg.SeedDemo,
		FakeCount: cfg.SeedFakeCount,
		FakeSeed:  cfg.SeedFakeSeed,
	})
	return NewServerWithDeps(cfg, initial, rdb)
}

// NewServerWithDeps builds a Server around an initial directory state and an
// optional Redis client.
func NewServerWithDeps(cfg *config.Config, initial directory.State, rdb *redis.Client) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server: nil config")
	}

	flags := featureflags.NewManager(cfg.FeatureFlags)
	store := directory.NewStore(directory.Options{
		Cohort:  cfg.CohortLabel,
		Initial: initial,
		ProfileUpsert: func(u models.User) bool {
			return flags.Enabled(featureflags.ProfileUpsert, u.Email)
		},
	})

	var listings *cache.Listings
	if rdb != nil {
		listings = cache.NewListings(rdb, cfg.CacheTTL)
		store.OnChange(func(ctx context.Context, _ string) {
			listings.Invalidate(ctx)
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		config:         cfg,
		store:          store,
		nav:            view.NewNavigator(),
		editor:         editor.New(editor.StoreSaver{Store: store}, cfg.EditorSaveDelay),
		listings:       listings,
		redis:          rdb,
		featureFlags:   flags,
		promMiddleware: middleware.InitMetrics("incubator-api"),
		baseCtx:        ctx,
		shutdownFn:     cancel,
	}, nil
}

// Store exposes the directory the server mutates.
func (s *Server) Store() *directory.Store {
	return s.store
}

// NewApp returns a Fiber app with middleware and routes installed.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Guelph Incubator API",
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: errorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app
	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return models.RespondWithError(c, fe.Code, &models.AppError{Code: statusCode(fe.Code), Message: fe.Message})
	}
	observability.GlobalLogger.ErrorContext(c.UserContext(), "unhandled error", "error", err)
	return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
}

func statusCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return models.CodeNotFound
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return models.CodeValidation
	case fiber.StatusUnauthorized:
		return models.CodeUnauthorized
	case fiber.StatusForbidden:
		return models.CodeForbidden
	}
	return ""
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before the limiter so throttled responses still carry headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions || middleware.Exempt(s.config.Env)
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")
	api.Get("/feature-flags", s.GetFeatureFlags)
	api.Get("/snapshot", s.GetSnapshot)
	api.Get("/dashboard", s.GetDashboard)

	session := api.Group("/session")
	session.Get("/", s.GetSession)
	session.Post("/login", middleware.RateLimit(s.config.Env, s.redis, 20, time.Minute, "login"), s.Login)
	session.Post("/logout", s.Logout)
	session.Post("/screen", s.Navigate)

	profiles := api.Group("/profiles")
	profiles.Get("/", s.ListProfiles)
	profiles.Post("/", s.CreateProfile)
	profiles.Get("/me", s.GetMyProfile)
	profiles.Put("/me", s.UpdateMyProfile)
	profiles.Get("/me/form", s.GetMyProfileForm)
	profiles.Get("/me/save", s.GetSaveStatus)

	research := api.Group("/research")
	research.Get("/", s.ListResearch)
	research.Post("/", middleware.RateLimitWithPolicy(s.config.Env, s.redis, 10, time.Minute, middleware.WritePolicy(s.redis), "post_research"), s.PostResearch)
	research.Get("/:id", s.GetResearch)
	research.Post("/:id/applications", s.ApplyToResearch)

	startups := api.Group("/startups")
	startups.Get("/", s.ListStartups)
	startups.Post("/", middleware.RateLimitWithPolicy(s.config.Env, s.redis, 10, time.Minute, middleware.WritePolicy(s.redis), "post_startup"), s.PostStartup)
	startups.Get("/:id", s.GetStartup)
	startups.Post("/:id/interests", s.ExpressInterest)
	startups.Post("/:id/incubator-applications", s.ApplyToIncubator)
}

// Shutdown cancels pending background saves, waits for them to settle and
// releases Redis.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			observability.GlobalLogger.Error("error shutting down HTTP server", "error", err)
		}
	}

	done := make(chan struct{})
	go func() {
		s.editor.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		observability.GlobalLogger.Warn("profile saves still pending at shutdown")
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			observability.GlobalLogger.Error("error closing redis", "error", err)
		}
	}

	observability.GlobalLogger.Info("server shutdown complete")
	return nil
}

// ShutdownTimeout bounds how long Run waits for saves and stop hooks.
const ShutdownTimeout = 10 * time.Second

// Run serves on ln until ctx is done, then shuts the server down and runs
// onStop in order. It returns only after all of that has finished.
func (s *Server) Run(ctx context.Context, ln net.Listener, onStop ...func(context.Context) error) error {
	if s.app == nil {
		s.NewApp()
	}

	served := make(chan error, 1)
	go func() { served <- s.app.Listener(ln) }()

	select {
	case err := <-served:
		return err
	case <-ctx.Done():
	}

	observability.GlobalLogger.Info("shutting down server")
	stopCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := s.Shutdown(stopCtx); err != nil {
		errs = append(errs, err)
	}
	for _, stop := range onStop {
		if err := stop(stopCtx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := <-served; err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
