package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	adapthttp "github.com/Samandarcodee/Yurlo-sub000/internal/adapter/http"
	"github.com/Samandarcodee/Yurlo-sub000/internal/adapter/memory"
	"github.com/Samandarcodee/Yurlo-sub000/internal/adapter/notify"
	"github.com/Samandarcodee/Yurlo-sub000/internal/adapter/postgres"
	"github.com/Samandarcodee/Yurlo-sub000/internal/app"
	"github.com/Samandarcodee/Yurlo-sub000/internal/config"
	"github.com/Samandarcodee/Yurlo-sub000/internal/domain"
	"github.com/Samandarcodee/Yurlo-sub000/internal/engine"
	"github.com/Samandarcodee/Yurlo-sub000/internal/logger"
)

// ServeCmd runs the HTTP server.
type ServeCmd struct {
	config.Server `embed:""`
}

// store is everything a storage backend provides.
type store interface {
	domain.DailyLogStore
	domain.ProfileRepository
	domain.GoalRepository
	domain.AchievementRepository
	domain.UserRepository
}

func (c *ServeCmd) Run() error {
	lg, err := logger.New(logger.Config{Level: c.LogLevel, File: c.LogFile, Prefix: "healthd"})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		db       store
		sessions domain.SessionRepository
	)
	if c.DatabaseURL == "" {
		lg.Warn("DATABASE_URL not set, using in-memory store")
		mem := memory.New()
		db, sessions = mem, mem.NewSessionRepo()
	} else {
		pg, err := postgres.Open(c.DatabaseURL)
		if err != nil {
			return err
		}
		defer func() { _ = pg.Close() }()
		db, sessions = pg, postgres.NewSessionRepo(pg)
	}

	notifiers := notify.Multi{notify.NewLogNotifier(lg)}
	if c.NotifyWebhook != "" {
		notifiers = append(notifiers, notify.NewWebhookNotifier(c.NotifyWebhook))
	}

	sso, err := c.OIDC.Provider(ctx)
	if err != nil {
		return err
	}

	profiles := app.NewProfileService(db, engine.MacroSplit{})
	authSvc := app.NewAuthService(db, sessions)
	svc := adapthttp.Services{
		Auth:         authSvc,
		Profiles:     profiles,
		Goals:        app.NewGoalService(db),
		Logs:         app.NewLogService(db, db, db, notifiers, lg),
		Insights:     app.NewInsightsService(db, db, c.InsightsWindow),
		History:      app.NewHistoryService(db, db),
		Nutrition:    app.NewNutritionService(db, profiles),
		Achievements: app.NewAchievementService(db, db, db, notifiers, lg),
	}

	srv := adapthttp.New(svc, sso, c.WebDir, lg)
	if c.DisableAuth {
		lg.Warn("authentication disabled")
		srv = srv.WithoutAuth()
	}
	if c.TrustForwardAuth {
		lg.Info("trusting forward auth header")
		srv = srv.WithForwardAuth()
	}

	go purgeSessions(ctx, authSvc, lg)

	httpSrv := &http.Server{
		Addr:              c.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	lg.Info("listening", "addr", c.Addr, "sso", sso.Enabled)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func purgeSessions(ctx context.Context, auth *app.AuthService, lg *log.Logger) {
	t := time.NewTicker(time.Hour)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := auth.PurgeExpired(ctx); err != nil {
				lg.Warn("purge expired sessions", "error", err)
			}
		}
	}
}
