// Package ui launches the full-screen writing interface.
package ui

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"tableflip.dev/freewrite/pkg/app"
	"tableflip.dev/freewrite/pkg/logging"
	"tableflip.dev/freewrite/pkg/prefs"
	"tableflip.dev/freewrite/pkg/share"
	"tableflip.dev/freewrite/pkg/store"
	teaui "tableflip.dev/freewrite/pkg/tui/app"
)

// UI wires a session to the Bubble Tea program.
type UI struct {
	Config store.Config
	Debug  bool
	// Timer overrides the configured timer length when positive.
	Timer time.Duration

	// Program runs the interface. Defaults to teaui.Run.
	Program func(ctx context.Context, s *app.Session, log *zap.Logger) error
}

// Do loads the journal, bootstraps a session and runs the interface until
// the user quits.
func (u *UI) Do(ctx context.Context) error {
	cfg := u.Config
	if cfg == nil {
		var err error
		if cfg, err = store.LoadConfig(); err != nil {
			return err
		}
	}

	log := logging.NewOrNop(cfg.LogPath(), u.Debug)
	defer func() { _ = log.Sync() }()

	p, err := store.Load(cfg, store.WithLogger(log.Named("store")))
	if err != nil {
		return err
	}

	session := app.NewSession(p,
		prefs.NewFileStore(cfg.PrefsPath()),
		share.Clipboard{},
		log.Named("session"),
		app.WithTimerDuration(timerLength(u.Timer, cfg.TimerDuration())),
		app.WithDefaults(prefs.Defaults(prefs.DetectColorScheme())),
	)
	if err := session.Bootstrap(ctx); err != nil {
		return err
	}

	run := u.Program
	if run == nil {
		var opts []teaui.Option
		if u.Debug {
			opts = append(opts, teaui.WithEventLog())
		}
		run = func(ctx context.Context, s *app.Session, log *zap.Logger) error {
			return teaui.Run(ctx, s, log, opts...)
		}
	}
	err = run(ctx, session, log.Named("tui"))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func timerLength(override, configured time.Duration) time.Duration {
	if override > 0 {
		return override
	}
	return configured
}
