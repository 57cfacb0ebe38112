package main

import (
	"context"
	"fmt"
	"log"

	common_api "go-bizops/internal/common/api"
	"go-bizops/internal/apiclient"
	"go-bizops/internal/config"
	"go-bizops/internal/connectors"
	"go-bizops/internal/database"
	"go-bizops/internal/features/auth"
	"go-bizops/internal/features/business"
	"go-bizops/internal/features/homedash"
	"go-bizops/internal/features/project"
	"go-bizops/internal/features/settings"
	"go-bizops/internal/features/snapshot"
	"go-bizops/internal/features/system"
	"go-bizops/internal/features/task"
	"go-bizops/internal/features/user"
	"go-bizops/internal/features/widget"
	"go-bizops/internal/logger"
	"go-bizops/internal/middleware"
	"go-bizops/pkg/utils"

	_ "go-bizops/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Use custom CORS middleware
	app.Use(middleware.CORSMiddleware())

	// Extract the X-Bizops-Division header for division-scoped queries
	app.Use(middleware.DivisionMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),    // Cast to Interface
		fx.ResultTags(`group:"routes"`), // Add to Group
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
	log.Printf("Registered %d routes\n", len(routes))
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			utils.SetSecret(cfg.JWTSecret)
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// NewDivisionStatsConnector opens the external Postgres divisions source when
// a DSN is configured; without one the business service falls back to its
// Mongo aggregation.
func NewDivisionStatsConnector(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (*connectors.DivisionStatsConnector, error) {
	if cfg.DivisionsDSN == "" {
		return nil, nil
	}

	connector, err := connectors.NewDivisionStatsConnector(cfg.DivisionsDSN)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := connector.Ping(ctx); err != nil {
				logger.Warn("divisions source unreachable at startup", zap.Error(err))
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return connector.Close()
		},
	})
	return connector, nil
}

// serviceSession authenticates outbound calls to a remote business API with
// a static service token.
type serviceSession struct {
	token string
}

func (s *serviceSession) Token() string { return s.token }

func (s *serviceSession) OnUnauthorized() {}

// NewWidgetDataSource picks where widget data comes from: a remote business
// API when one is configured, the in-process services otherwise.
func NewWidgetDataSource(cfg *config.Config, local *widget.LocalDataSource, zapLogger *zap.Logger) widget.DataSource {
	if cfg.BusinessAPIURL == "" {
		return local
	}
	client := apiclient.NewClient(cfg.BusinessAPIURL, &serviceSession{token: cfg.BusinessAPIToken}, zapLogger)
	return apiclient.NewRemoteSource(client)
}

// @title           Business Operations API
// @version         1.0
// @description     Dashboard and business stats service built on Fiber and Uber Fx.

// @host            localhost:8080
// @BasePath        /
func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database & external sources
			database.NewDatabase,
			NewDivisionStatsConnector,

			// Initialize Repository
			user.NewUserRepository,
			settings.NewSettingsRepository,
			project.NewProjectRepository,
			task.NewTaskRepository,
			homedash.NewDashboardRepository,
			snapshot.NewSnapshotRepository,

			// Initialize Service
			auth.NewAuthService,
			user.NewUserService,
			settings.NewSettingsService,
			project.NewProjectService,
			task.NewTaskService,
			business.NewBusinessService,
			snapshot.NewSnapshotService,
			homedash.NewDashboardService,

			// Widget rendering pipeline
			widget.NewLocalDataSource,
			NewWidgetDataSource,
			widget.NewRegistry,

			// Websocket hub doubles as the dashboard-saved notifier
			system.NewHub,
			func(h *system.Hub) homedash.Notifier { return h },

			// Initialize Controller
			auth.NewAuthController,
			user.NewUserController,
			settings.NewSettingsController,
			project.NewProjectController,
			task.NewTaskController,
			business.NewBusinessController,
			snapshot.NewSnapshotController,
			homedash.NewDashboardController,

			// Initialize API Routes
			AsRoute(auth.NewAuthApi),
			AsRoute(user.NewUserApi),
			AsRoute(settings.NewSettingsApi),
			AsRoute(project.NewProjectApi),
			AsRoute(task.NewTaskApi),
			AsRoute(business.NewBusinessApi),
			AsRoute(snapshot.NewSnapshotApi),
			AsRoute(homedash.NewDashboardApi),
			AsRoute(system.NewSystemApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			func(lc fx.Lifecycle, snapshotService snapshot.SnapshotService) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return snapshotService.StartScheduler()
					},
					OnStop: func(ctx context.Context) error {
						snapshotService.StopScheduler()
						return nil
					},
				})
			},
		),
	)

	app.Run()
}
