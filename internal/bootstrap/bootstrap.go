package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	appControllers "github.com/alimon808/ContosoUniversity2017/internal/app/controllers"
	appMigrations "github.com/alimon808/ContosoUniversity2017/internal/app/migrations"
	appModels "github.com/alimon808/ContosoUniversity2017/internal/app/models"
	appRepos "github.com/alimon808/ContosoUniversity2017/internal/app/repositories"
	"github.com/alimon808/ContosoUniversity2017/internal/app/repositories/memory"
	appRoutes "github.com/alimon808/ContosoUniversity2017/internal/app/routes"
	appServices "github.com/alimon808/ContosoUniversity2017/internal/app/services"
	"github.com/alimon808/ContosoUniversity2017/internal/config"
	"github.com/alimon808/ContosoUniversity2017/internal/db"
	appMiddleware "github.com/alimon808/ContosoUniversity2017/internal/middleware"
	"github.com/alimon808/ContosoUniversity2017/internal/pkg/binding"
	"github.com/alimon808/ContosoUniversity2017/internal/pkg/logger"
	"github.com/alimon808/ContosoUniversity2017/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	CourseService    appServices.CourseService // Interface type
	CourseController *appControllers.CourseController
	Binder           *binding.GinModelBinder
	HealthCheck      appRoutes.HealthCheck
	Logger           zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects to PostgreSQL, applies the embedded migrations and seeds
// default data. It returns nil when the memory driver is configured.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	if cfg.Database.Driver == config.DriverMemory {
		lgr.Warn().Msg("Using in-memory storage, data is lost on restart")
		return nil, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	lgr.Info().Msg("Running database migrations...")
	applied, err := appMigrations.NewMigrator(database.Pool, lgr).Migrate(ctx, appMigrations.Files())
	if err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Int("applied", applied).Msg("Database migrations successfully applied.")

	if cfg.Seed.Enabled {
		err := database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
			repos := appRepos.NewRepositories(tx)
			return seed.CreateDefaultData(ctx, repos.DepartmentRepository, repos.CourseRepository, lgr)
		})
		if err != nil {
			// Log the error but don't fail the startup
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
// A nil database selects the in-memory repositories.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	var (
		courseRepo     appRepos.Repository[appModels.Course]
		departmentRepo appRepos.DepartmentFinder
	)
	if database != nil {
		repos := appRepos.NewRepositories(database.Pool)
		courseRepo, departmentRepo = repos.CourseRepository, repos.DepartmentRepository
		deps.HealthCheck = database.Ping
	} else {
		departments := memory.NewDepartmentStore()
		courseRepo, departmentRepo = memory.NewCourseStore(departments), departments
		if cfg.Seed.Enabled {
			if err := seed.CreateDefaultData(context.Background(), departmentRepo, courseRepo, lgr); err != nil {
				return nil, fmt.Errorf("failed to seed in-memory storage: %w", err)
			}
		}
	}

	deps.CourseService = appServices.NewCourseService(courseRepo, departmentRepo, lgr)
	deps.Binder = binding.NewModelBinder()
	deps.CourseController = appControllers.NewCourseController(deps.CourseService, deps.Binder, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	switch strings.ToLower(cfg.Server.Mode) {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	lgr.Info().Str("mode", gin.Mode()).Msg("Gin mode set")

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(cors.New(corsConfig(cfg)))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.CourseController, deps.HealthCheck)

	return router
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", appMiddleware.RequestIDHeader},
		ExposeHeaders: []string{"Location", appMiddleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	origins := cfg.AllowedOrigins()
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}
