package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aadvantures228-boop/Weather-Main/internal/config"
	"github.com/aadvantures228-boop/Weather-Main/internal/notify"
	"github.com/aadvantures228-boop/Weather-Main/internal/scheduler"
	"github.com/aadvantures228-boop/Weather-Main/internal/store"
	"github.com/aadvantures228-boop/Weather-Main/internal/telegram"
	"github.com/aadvantures228-boop/Weather-Main/internal/users"
	"github.com/aadvantures228-boop/Weather-Main/internal/weather"
)

type App struct {
	cfg     config.Config
	log     *zap.Logger
	bot     *tgbotapi.BotAPI
	httpSrv *http.Server

	repo     store.Repo
	sched    *scheduler.Scheduler
	registry *notify.Registry
	router   *telegram.Router
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	return &App{cfg: cfg, log: log, bot: bot, httpSrv: srv}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting weather-bot",
		zap.String("bot", a.bot.Self.UserName),
		zap.String("http", a.cfg.HTTPAddr),
	)

	repo, err := store.OpenSQLite(ctx, a.cfg.DBPath)
	if err != nil {
		a.log.Error("open sqlite failed", zap.Error(err))
		return err
	}
	a.repo = repo
	a.log.Info("sqlite ready", zap.String("path", a.cfg.DBPath))

	a.sched = scheduler.New(a.log)

	profiles := users.New(repo, a.log)
	a.registry = notify.NewRegistry(repo, a.sched, profiles, a.log)
	// Region edits must reach the cached copies inside notification records.
	profiles.OnRegionChange(a.registry)

	weatherClient := weather.NewClient(a.cfg.WeatherToken, a.log)
	a.router = telegram.NewRouter(a.bot, profiles, a.registry, weatherClient, repo, a.log)

	dispatcher := notify.NewDispatcher(a.registry, profiles, weatherClient, a.router, a.log)
	a.registry.Bind(dispatcher.Fire)

	// Re-arm persisted notifications before consuming updates, so nothing is
	// missed between restart and the first message.
	if err := a.registry.Restore(ctx); err != nil {
		a.log.Error("restore notifications failed", zap.Error(err))
		return err
	}

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updCh := a.bot.GetUpdatesChan(u)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			a.log.Info("shutdown signal received")
			a.shutdown()
			return nil

		case upd := <-updCh:
			a.router.HandleUpdate(ctx, upd)
		}
	}
}

func (a *App) shutdown() {
	a.bot.StopReceivingUpdates()
	a.sched.Stop()

	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.httpSrv.Shutdown(shCtx); err != nil {
		a.log.Warn("http server shutdown error", zap.Error(err))
	}
	if a.repo != nil {
		_ = a.repo.Close()
	}
}
