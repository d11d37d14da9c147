package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/schoolhub/internal/app/controllers"
	appMigrations "github.com/yigit/schoolhub/internal/app/migrations"
	appRepos "github.com/yigit/schoolhub/internal/app/repositories"
	"github.com/yigit/schoolhub/internal/app/repositories/memory"
	appRoutes "github.com/yigit/schoolhub/internal/app/routes"
	appServices "github.com/yigit/schoolhub/internal/app/services"
	"github.com/yigit/schoolhub/internal/config"
	"github.com/yigit/schoolhub/internal/db"
	appMiddleware "github.com/yigit/schoolhub/internal/middleware"
	pkgAuth "github.com/yigit/schoolhub/internal/pkg/auth"
	"github.com/yigit/schoolhub/internal/pkg/helpers"
	"github.com/yigit/schoolhub/internal/pkg/logger"
	"github.com/yigit/schoolhub/internal/pkg/metrics"
	"github.com/yigit/schoolhub/internal/pkg/ratelimit"
	"github.com/yigit/schoolhub/internal/pkg/websocket"
	"github.com/yigit/schoolhub/internal/seed"
)

// Store is the opened persistence layer
type Store struct {
	Name     string
	Repos    *appRepos.Repositories
	Postgres *db.PostgresDB
	Mongo    *db.MongoDB
	// Ping is nil for the memory store
	Ping   func(ctx context.Context) error
	closed bool
}

// Close releases every connection held by the store
func (s *Store) Close(ctx context.Context) error {
	if s.closed {
		return nil
	}
	s.closed = true

	var err error
	if s.Mongo != nil {
		err = errors.Join(err, s.Mongo.Close(ctx))
	}
	if s.Postgres != nil {
		s.Postgres.Close()
	}
	return err
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	Config         *config.Config
	Logger         zerolog.Logger
	Store          *Store
	JWTService     *pkgAuth.JWTService
	Services       *appServices.Services
	Hub            *websocket.Hub
	MessageHandler *websocket.MessageHandler
	SocketHandler  *websocket.Handler
	Limiter        ratelimit.Limiter
	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    *appRoutes.Controllers

	closers []func(ctx context.Context) error
}

// Close releases the limiter backend and the store
func (d *Dependencies) Close(ctx context.Context) error {
	var err error
	for i := len(d.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, d.closers[i](ctx))
	}
	return errors.Join(err, d.Store.Close(ctx))
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	format := strings.ToLower(cfg.Logging.Format)

	logger.Configure(logger.Config{
		Level:   logLevel,
		Pretty:  format == "text" || format == "console",
		Service: "schoolhub",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore opens the configured store. With migrate set, pending PostgreSQL migrations are applied first.
func SetupStore(ctx context.Context, cfg *config.Config, migrate bool, lgr zerolog.Logger) (*Store, error) {
	store := &Store{Name: cfg.Database.Driver}

	activityLogs, err := setupActivityLog(ctx, cfg, store, lgr)
	if err != nil {
		return nil, err
	}

	switch cfg.Database.Driver {
	case config.DriverMemory:
		lgr.Warn().Msg("Using the in-memory store, data is lost on restart")
		repos := memory.Open().Repositories()
		if activityLogs != nil {
			repos.ActivityLogs = activityLogs
		}
		store.Repos = repos
		return store, nil

	case config.DriverPostgres:
		lgr.Info().Msg("Establishing database connection...")
		pg, err := db.NewPostgresDB(cfg)
		if err != nil {
			_ = store.Close(ctx)
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, err
		}
		store.Postgres = pg
		store.Ping = pg.Ping
		lgr.Info().Msg("Database connection successfully established.")

		if migrate {
			if _, err := RunMigrations(ctx, pg, cfg.Database.MigrationsDir, lgr); err != nil {
				_ = store.Close(ctx)
				return nil, err
			}
		}

		if activityLogs == nil {
			// no audit database: the activity_logs table holds entries, mirrored to the log stream
			lgr.Info().Msg("Activity log stored in PostgreSQL")
			activityLogs = appRepos.NewLoggingActivityLogRepository(appRepos.NewPostgresActivityLogRepository(pg))
		}
		store.Repos = appRepos.NewPostgresRepositories(pg, activityLogs)
		return store, nil
	}

	_ = store.Close(ctx)
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
}

func setupActivityLog(ctx context.Context, cfg *config.Config, store *Store, lgr zerolog.Logger) (appRepos.IActivityLogRepository, error) {
	if cfg.Mongo.URI == "" {
		return nil, nil
	}

	mongoDB, err := db.NewMongoDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to MongoDB")
		return nil, err
	}
	store.Mongo = mongoDB

	repo, err := appRepos.NewMongoActivityLogRepository(ctx, mongoDB.Database)
	if err != nil {
		_ = mongoDB.Close(ctx)
		return nil, fmt.Errorf("failed to prepare activity log collection: %w", err)
	}
	lgr.Info().Str("database", cfg.Mongo.Database).Msg("Activity log stored in MongoDB")
	return repo, nil
}

// RunMigrations applies pending SQL migrations from dir and returns the applied file names
func RunMigrations(ctx context.Context, pg *db.PostgresDB, dir string, lgr zerolog.Logger) ([]string, error) {
	lgr.Info().Str("dir", dir).Msg("Running database migrations...")
	applied, err := appMigrations.NewMigrator(pg.Pool).MigrateFromDirectory(ctx, dir)
	if err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return applied, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Int("applied", len(applied)).Msg("Database migrations successfully applied.")
	return applied, nil
}

// NewJWTService builds the token service from configuration
func NewJWTService(cfg *config.Config) *pkgAuth.JWTService {
	return pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 15*time.Minute),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 168*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})
}

// SeedOptions maps the seed section of the configuration
func SeedOptions(cfg *config.Config) seed.Options {
	return seed.Options{
		AdminEmail:    cfg.Seed.AdminEmail,
		AdminPassword: cfg.Seed.AdminPassword,
		AcademicYear:  cfg.Seed.AcademicYear,
	}
}

// BuildDependencies initializes services, the notification hub and controllers over an opened store.
func BuildDependencies(cfg *config.Config, store *Store, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Config: cfg, Logger: lgr, Store: store}

	deps.JWTService = NewJWTService(cfg)
	deps.Hub = websocket.NewHub(logger.Component("websocket"))
	deps.Services = appServices.New(store.Repos, deps.JWTService, deps.Hub)
	deps.MessageHandler = websocket.NewMessageHandler(deps.Services.Notifications, deps.Hub, logger.Component("websocket"))
	deps.SocketHandler = websocket.NewHandler(deps.Hub, cfg.Server.AllowedOrigins, logger.Component("websocket"))

	window := helpers.ParseDuration(cfg.RateLimit.Window, 15*time.Minute)
	if cfg.Redis.Addr != "" {
		client, err := db.NewRedisClient(cfg)
		if err != nil {
			lgr.Error().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to connect to Redis")
			return nil, err
		}
		deps.closers = append(deps.closers, func(context.Context) error { return client.Close() })
		deps.Limiter = ratelimit.NewRedis(client, window)
		lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Rate limiting backed by Redis")
	} else {
		deps.Limiter = ratelimit.NewMemory(window)
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.Services.Auth)

	deps.Controllers = &appRoutes.Controllers{
		Auth:          appControllers.NewAuthController(deps.Services.Auth, cfg.IsProduction(), logger.Component("auth")),
		Users:         appControllers.NewUserController(deps.Services.Users, logger.Component("users")),
		Students:      appControllers.NewStudentController(deps.Services.Students, logger.Component("students")),
		Lifecycle:     appControllers.NewLifecycleController(deps.Services.Lifecycle, logger.Component("lifecycle")),
		Classes:       appControllers.NewClassController(deps.Services.Classes, logger.Component("classes")),
		AcademicYears: appControllers.NewAcademicYearController(deps.Services.AcademicYears, logger.Component("academic_years")),
		Notifications: appControllers.NewNotificationController(deps.Services.Notifications, logger.Component("notifications")),
		ActivityLogs:  appControllers.NewActivityLogController(deps.Services.Activity, logger.Component("activity_logs")),
		Health:        appControllers.NewHealthController(store.Name, store.Ping, logger.Component("health")),
	}

	return deps, nil
}

// Start launches the background workers; they stop when ctx is done
func (d *Dependencies) Start(ctx context.Context) {
	go d.Hub.Run(ctx)
	d.MessageHandler.Start(ctx)
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}
	appMiddleware.ConfigureValidator()

	router := gin.New()
	router.Use(
		appMiddleware.Recovery(),
		appMiddleware.RequestLogger(),
		metrics.Middleware(),
		appMiddleware.CORS(allowedOrigins(cfg)),
	)
	if cfg.RateLimit.Enabled {
		router.Use(appMiddleware.RateLimit(deps.Limiter, deps.JWTService,
			cfg.RateLimit.Requests, cfg.RateLimit.AuthenticatedRequests))
	}

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, deps.SocketHandler.HandleConnection)

	return router
}

// allowedOrigins opens CORS to any origin outside production
func allowedOrigins(cfg *config.Config) []string {
	if !cfg.IsProduction() {
		return nil
	}
	return cfg.Server.AllowedOrigins
}
