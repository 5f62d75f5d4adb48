package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/kursverwaltung/internal/app/controllers"
	appMigrations "github.com/yigit/kursverwaltung/internal/app/migrations"
	appRepos "github.com/yigit/kursverwaltung/internal/app/repositories"
	appRoutes "github.com/yigit/kursverwaltung/internal/app/routes"
	appServices "github.com/yigit/kursverwaltung/internal/app/services"
	"github.com/yigit/kursverwaltung/internal/app/views"
	"github.com/yigit/kursverwaltung/internal/config"
	"github.com/yigit/kursverwaltung/internal/db"
	appMiddleware "github.com/yigit/kursverwaltung/internal/middleware"
	"github.com/yigit/kursverwaltung/internal/pkg/helpers"
	"github.com/yigit/kursverwaltung/internal/pkg/livingapps"
	"github.com/yigit/kursverwaltung/internal/pkg/logger"
	"github.com/yigit/kursverwaltung/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store       appRepos.RecordStore
	Database    *db.PostgresDB // nil unless the postgres driver is used
	Repos       *appRepos.Repositories
	Services    *appServices.Services
	Controllers appRoutes.Controllers
	Logger      zerolog.Logger
}

// Close releases resources held by the dependencies
func (d *Dependencies) Close() {
	if d.Database != nil {
		d.Logger.Info().Msg("Closing database connection pool...")
		d.Database.Close()
	}
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:   logLevel,
		Pretty:  prettyLog,
		Service: "kursverwaltung",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore creates the record store for the configured driver. For the
// postgres driver the connection is opened and migrations are applied.
func SetupStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (appRepos.RecordStore, *db.PostgresDB, appRepos.AppIDs, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		lgr.Warn().Msg("Using in-memory record store, data is lost on restart")
		return appRepos.NewMemoryRecordStore(cfg.LivingApps.BaseURL), nil, appIDsFromConfig(cfg).WithDefaults(), nil

	case config.DriverPostgres:
		database, err := SetupDatabase(ctx, cfg, lgr)
		if err != nil {
			return nil, nil, appRepos.AppIDs{}, err
		}
		store := appRepos.NewPostgresRecordStore(database.Pool, cfg.LivingApps.BaseURL)
		return store, database, appIDsFromConfig(cfg).WithDefaults(), nil

	default:
		client, err := livingapps.NewClient(livingapps.Config{
			BaseURL: cfg.LivingApps.BaseURL,
			APIKey:  cfg.LivingApps.APIKey,
			Timeout: helpers.ParseDuration(cfg.LivingApps.Timeout, 10*time.Second),
		}, lgr)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to create LivingApps client")
			return nil, nil, appRepos.AppIDs{}, err
		}
		if cfg.LivingApps.APIKey == "" {
			lgr.Warn().Msg("LIVINGAPPS_API_KEY is empty, requests will likely be rejected")
		}
		lgr.Info().Str("baseURL", client.BaseURL()).Msg("Using LivingApps record store")
		return client, nil, appIDsFromConfig(cfg), nil
	}
}

func appIDsFromConfig(cfg *config.Config) appRepos.AppIDs {
	apps := cfg.LivingApps.Apps
	return appRepos.AppIDs{
		Dozenten:    apps.Dozenten,
		Raeume:      apps.Raeume,
		Teilnehmer:  apps.Teilnehmer,
		Kurse:       apps.Kurse,
		Anmeldungen: apps.Anmeldungen,
	}
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// BuildDependencies initializes the store, repositories, services and controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Dependencies, error) {
	store, database, apps, err := SetupStore(ctx, cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup record store: %w", err)
	}

	deps := &Dependencies{
		Store:    store,
		Database: database,
		Logger:   lgr,
	}
	deps.Repos = appRepos.NewRepositories(store, apps)
	deps.Services = appServices.NewServices(deps.Repos, nil)

	if cfg.Storage.SeedDemoData {
		if cfg.Storage.Driver == config.DriverLivingApps {
			lgr.Warn().Msg("Demo data is only seeded into memory or postgres stores")
		} else if err := seed.CreateDemoData(ctx, deps.Services, lgr); err != nil {
			// Log the error but don't fail the startup
			lgr.Error().Err(err).Msg("Failed to create demo data, proceeding anyway...")
		}
	}

	deps.Controllers = appRoutes.Controllers{
		Dashboard:   appControllers.NewDashboardController(deps.Services),
		Dozenten:    appControllers.NewDozentController(deps.Services.Dozenten),
		Raeume:      appControllers.NewRaumController(deps.Services.Raeume),
		Teilnehmer:  appControllers.NewTeilnehmerController(deps.Services.Teilnehmer),
		Kurse:       appControllers.NewKursController(deps.Services.Kurse),
		Anmeldungen: appControllers.NewAnmeldungController(deps.Services.Anmeldungen),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware, templates and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.Recovery(), appMiddleware.RequestLogger())

	tmpl, err := views.Templates()
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to parse templates")
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	appRoutes.SetupRouter(router, deps.Controllers)

	return router, nil
}
