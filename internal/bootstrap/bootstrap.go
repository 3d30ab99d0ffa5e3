package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/cfcpretoriaeast/churchhub/internal/app/controllers"
	appMigrations "github.com/cfcpretoriaeast/churchhub/internal/app/migrations"
	appRepos "github.com/cfcpretoriaeast/churchhub/internal/app/repositories"
	appRoutes "github.com/cfcpretoriaeast/churchhub/internal/app/routes"
	appServices "github.com/cfcpretoriaeast/churchhub/internal/app/services"
	"github.com/cfcpretoriaeast/churchhub/internal/config"
	"github.com/cfcpretoriaeast/churchhub/internal/db"
	appMiddleware "github.com/cfcpretoriaeast/churchhub/internal/middleware"
	"github.com/cfcpretoriaeast/churchhub/internal/pkg/logger"
	"github.com/cfcpretoriaeast/churchhub/internal/pkg/mq"
	"github.com/cfcpretoriaeast/churchhub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos       *appRepos.Repositories
	Publisher   *mq.Publisher // nil when messaging is not configured
	Controllers appRoutes.Controllers
	Logger      zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("CONFIG_PATH", filepath.Join("configs", "config.yaml"))
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds default data.
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
	migrator := appMigrations.NewMigrator(database.Pool, logger.Component("migrator"))
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if cfg.Database.Seed {
		repos := appRepos.NewRepositories(database.Pool)
		if err := seed.CreateDefaultData(ctx, repos.DepartmentRepository, repos.UserRepository, lgr); err != nil {
			// Log the error but don't fail the startup
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return database, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, pool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}
	deps.Repos = appRepos.NewRepositories(pool)

	var notifier appServices.AttendanceNotifier = mq.NopNotifier{}
	if cfg.Messaging.AMQPURL != "" {
		pub, err := mq.NewPublisher(cfg.Messaging.AMQPURL, cfg.Messaging.Exchange)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to message broker")
			return nil, fmt.Errorf("failed to connect to message broker: %w", err)
		}
		deps.Publisher = pub
		notifier = mq.NewAttendanceNotifier(pub)
		lgr.Info().Str("exchange", cfg.Messaging.Exchange).Msg("Attendance events will be published")
	}

	loc := cfg.Location()
	r := deps.Repos

	memberService := appServices.NewMemberService(r.UserRepository, logger.Component("members"))
	eventService := appServices.NewEventService(r.EventRepository, r.ParticipantRepository, r.AttendanceRepository, logger.Component("events"))
	attendanceService := appServices.NewAttendanceService(
		r.AttendanceRepository,
		r.UserRepository,
		r.EventRepository,
		notifier,
		cfg.Attendance.BulkConcurrency,
		logger.Component("attendance"),
	)
	growthService := appServices.NewGrowthService(r.UserRepository, r.AttendanceRepository, r.EventRepository, loc, logger.Component("growth"))
	departmentService := appServices.NewDepartmentService(
		r.DepartmentRepository,
		r.ChecklistRepository,
		r.UserRepository,
		r.EventRepository,
		logger.Component("departments"),
	)
	callService := appServices.NewCallService(r.FirstTimerCallRepository, r.UserRepository, loc, logger.Component("calls"))

	deps.Controllers = appRoutes.Controllers{
		Member:     appControllers.NewMemberController(memberService),
		Event:      appControllers.NewEventController(eventService),
		Attendance: appControllers.NewAttendanceController(attendanceService),
		Growth:     appControllers.NewGrowthController(growthService),
		Department: appControllers.NewDepartmentController(departmentService),
		Call:       appControllers.NewCallController(callService),
		Health:     appControllers.NewHealthController(pool),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	// handlers pass *gin.Context to services as their context.Context
	router.ContextWithFallback = true
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(logger.Component("http")))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
