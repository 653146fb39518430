package app

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"bollwerkBot/config"
	"bollwerkBot/internal/pkg/database"
	"bollwerkBot/internal/repository"
	reportservice "bollwerkBot/internal/service/report"
	registrationservice "bollwerkBot/internal/service/registration"
	shiftservice "bollwerkBot/internal/service/shift"
	"bollwerkBot/internal/session"
	"bollwerkBot/internal/telegram"
)

type App struct {
	config  *config.Config
	handler *telegram.Handler
	log     *slog.Logger
}

func New(log *slog.Logger, cfg *config.Config) (*App, error) {
	// Подключаемся к PostgreSQL
	db, err := database.NewPostgresConnection(database.PostgresConfig{
		Host:           cfg.Postgres.Host,
		Port:           cfg.Postgres.Port,
		DatabaseName:   cfg.Postgres.DatabaseName,
		Username:       cfg.Postgres.Username,
		Password:       cfg.Postgres.Password,
		MaxConnections: cfg.Postgres.MaxConnections,
		AutoMigrate:    cfg.Postgres.AutoMigrate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info("connected to PostgreSQL")

	repo := repository.NewPostgresRepository(log, db)

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	sessions := session.NewStore()
	notifier := telegram.NewNotifier(log, bot, cfg.Telegram.AdminIDs)

	registration := registrationservice.New(log, repo, sessions, cfg.Bot.DefaultLang())
	shift := shiftservice.New(log, repo, sessions, notifier)

	weekStart, err := reportservice.ParseWeekday(cfg.Bot.WeekStart)
	if err != nil {
		log.Warn("invalid week_start in config, falling back to Monday", slog.String("value", cfg.Bot.WeekStart))
	}
	report := reportservice.New(log, repo, weekStart)

	handler := telegram.NewHandler(
		log,
		bot,
		registration,
		shift,
		report,
		repo,
		sessions,
		telegram.NewKeyboardManager(cfg.Bot.Tasks),
		cfg.Telegram.AdminIDs,
		cfg.Bot.HistoryLimit,
	)

	return &App{
		config:  cfg,
		handler: handler,
		log:     log,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting telegram bot")
	return a.handler.Start(ctx)
}
