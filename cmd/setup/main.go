// Команда setup подготавливает базу данных: прогоняет миграции, создает
// учётную запись администратора по умолчанию и заполняет справочник секций.
// Повторный запуск безопасен: существующие данные не перезаписываются.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/yaicess/conference-registration/internal/config"
	"github.com/yaicess/conference-registration/internal/lib/password"
	"github.com/yaicess/conference-registration/internal/lib/sl"
	"github.com/yaicess/conference-registration/internal/migrations"
	"github.com/yaicess/conference-registration/internal/models"
	"github.com/yaicess/conference-registration/internal/storage/repository"
	"github.com/yaicess/conference-registration/internal/validation"
)

// defaultAdmin — учётная запись, создаваемая при первичной установке.
var defaultAdmin = models.DummyAdmin{
	Username: "admin",
	Password: "admin123",
	Email:    "admin@yaicess.com",
	FullName: "YAICESS Admin",
	Role:     "admin",
}

// defaultSessions — справочник секций конференции.
var defaultSessions = []models.ConferenceSession{
	{
		Name:        "AI and Machine Learning Trends",
		Speaker:     "Dr. Sarah Chen",
		SessionTime: "09:00:00",
		SessionDate: time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC),
		Description: "Exploring the latest trends in AI and ML technology",
	},
	{
		Name:        "Cloud Computing Strategies",
		Speaker:     "Mark Johnson",
		SessionTime: "11:00:00",
		SessionDate: time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC),
		Description: "Best practices for cloud migration and optimization",
	},
	{
		Name:        "Cybersecurity in Modern Apps",
		Speaker:     "Lisa Rodriguez",
		SessionTime: "14:00:00",
		SessionDate: time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC),
		Description: "Security protocols for web and mobile applications",
	},
	{
		Name:        "DevOps and Automation",
		Speaker:     "Alex Kumar",
		SessionTime: "16:00:00",
		SessionDate: time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC),
		Description: "Streamlining development with DevOps practices",
	},
}

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("starting setup", slog.String("env", cfg.Env))
	ctx := context.Background()

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		logger.Error("failed to connect to database", sl.Err(err))
		os.Exit(1)
	}
	defer func() {
		_ = db.DB.Close()
	}()

	if err := migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		logger.Error("failed to run migrations", sl.Err(err))
		os.Exit(1)
	}
	logger.Info("migrations applied")

	if err := seedAdmin(ctx, db, logger); err != nil {
		logger.Error("failed to seed admin user", sl.Err(err))
		os.Exit(1)
	}

	if err := seedSessions(ctx, db, logger); err != nil {
		logger.Error("failed to seed conference sessions", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("setup completed successfully")
}

func seedAdmin(ctx context.Context, db *repository.Storage, logger *slog.Logger) error {
	validate := validation.New()
	if msgs := validate.Admin(defaultAdmin); len(msgs) > 0 {
		logger.Error("default admin is invalid", slog.Any("errors", msgs))
		os.Exit(1)
	}

	exists, err := db.AdminUsernameExists(ctx, defaultAdmin.Username)
	if err != nil {
		return err
	}
	if exists {
		logger.Info("admin user already exists, skipping", slog.String("username", defaultAdmin.Username))
		return nil
	}

	hash, err := password.GetHash(defaultAdmin.Password)
	if err != nil {
		return err
	}

	id, err := db.CreateAdmin(ctx, models.Admin{
		Username:     defaultAdmin.Username,
		PasswordHash: hash,
		Email:        defaultAdmin.Email,
		FullName:     defaultAdmin.FullName,
		Role:         defaultAdmin.Role,
		Status:       "active",
	})
	if err != nil {
		return err
	}

	logger.Info("default admin user created",
		slog.Int("id", id),
		slog.String("username", defaultAdmin.Username))
	return nil
}

func seedSessions(ctx context.Context, db *repository.Storage, logger *slog.Logger) error {
	for _, session := range defaultSessions {
		if err := db.SeedConferenceSession(ctx, session); err != nil {
			return err
		}
		logger.Info("conference session seeded", slog.String("name", session.Name))
	}
	return nil
}
