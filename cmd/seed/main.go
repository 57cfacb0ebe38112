package main

import (
	"context"
	"fmt"
	"time"

	"go-bizops/internal/common/models"
	"go-bizops/internal/config"
	"go-bizops/internal/database"
	"go-bizops/internal/features/project"
	"go-bizops/internal/features/settings"
	"go-bizops/internal/features/task"
	"go-bizops/internal/features/user"
	"go-bizops/internal/logger"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Seed fills an empty database with a demo user, default settings and a
// spread of projects, opportunities and tasks so the dashboards have
// something to show.
func Seed(
	lc fx.Lifecycle,
	userRepo user.UserRepository,
	settingsRepo settings.SettingsRepository,
	projectRepo project.ProjectRepository,
	taskRepo task.TaskRepository,
	logger *zap.Logger,
	shutdowner fx.Shutdowner,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						logger.Error("Failed to shutdown", zap.Error(err))
					}
				}()

				logger.Info("Seeding demo data...")

				seedCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
				defer cancel()

				if err := seed(seedCtx, userRepo, settingsRepo, projectRepo, taskRepo); err != nil {
					logger.Error("Seeding failed", zap.Error(err))
					return
				}
				logger.Info("Seeding complete")
			}()
			return nil
		},
	})
}

func seed(
	ctx context.Context,
	userRepo user.UserRepository,
	settingsRepo settings.SettingsRepository,
	projectRepo project.ProjectRepository,
	taskRepo task.TaskRepository,
) error {
	if existing, _ := userRepo.FindByUsername(ctx, "demo"); existing == nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if err := userRepo.Create(ctx, &models.User{
			Username: "demo",
			Password: string(hashed),
			Email:    "demo@example.com",
			Status:   "active",
			Roles:    []string{"admin"},
		}); err != nil {
			return err
		}
	}

	if err := settingsRepo.Upsert(ctx, settings.DefaultSettings()); err != nil {
		return err
	}

	divisions := []models.Division{
		{ID: "civil", Name: "Civil"},
		{ID: "electrical", Name: "Electrical"},
		{ID: "plumbing", Name: "Plumbing"},
	}
	projectStatuses := []string{"Active", "On Hold", "Completed"}
	opportunityStatuses := []string{"Quoted", "Won", "Lost"}

	now := time.Now()
	for i := 0; i < 24; i++ {
		division := divisions[i%len(divisions)]
		isOpportunity := i%3 == 0

		status := projectStatuses[i%len(projectStatuses)]
		if isOpportunity {
			status = opportunityStatuses[i%len(opportunityStatuses)]
		}

		p := project.Project{
			Name:              fmt.Sprintf("Demo Project %02d", i+1),
			ClientName:        fmt.Sprintf("Client %c", 'A'+i%6),
			Status:            status,
			DivisionID:        division.ID,
			DivisionName:      division.Name,
			IsOpportunity:     isOpportunity,
			FinalTotalWithGST: float64(5000 + i*1750),
			Profit:            float64(800 + i*230),
			StartDate:         now.AddDate(0, -(i % 12), -(i * 3 % 28)),
		}
		if err := projectRepo.Create(ctx, &p); err != nil {
			return err
		}

		if !isOpportunity && i%2 == 0 {
			due := now.AddDate(0, 0, i%14)
			t := task.Task{
				Subject:   fmt.Sprintf("Follow up on %s", p.Name),
				Status:    "open",
				ProjectID: p.ID.Hex(),
				DueDate:   &due,
			}
			if err := taskRepo.Create(ctx, &t); err != nil {
				return err
			}
		}
	}
	return nil
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewDatabase,
			user.NewUserRepository,
			settings.NewSettingsRepository,
			project.NewProjectRepository,
			task.NewTaskRepository,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	)

	app.Run()
}
