package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/shershen08/playsync/internal/app"
	"github.com/shershen08/playsync/internal/config"
	"github.com/shershen08/playsync/internal/errmsg"
	"github.com/shershen08/playsync/internal/mpris"
	"github.com/shershen08/playsync/internal/notify"
	"github.com/shershen08/playsync/internal/playback"
	"github.com/shershen08/playsync/internal/wire"
)

type clientFlags struct {
	baseURL string
	userID  string
	queueID string
	random  bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	root := rootCmd()
	root.AddCommand(serveCmd())
	ran, err := root.ExecuteContextC(ctx)
	stop()
	if err != nil {
		op := errmsg.OpInitialize
		if ran != nil && ran.Name() == "serve" {
			op = errmsg.OpServe
		}
		fmt.Fprintln(os.Stderr, errmsg.Format(op, err))
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var flags clientFlags
	cmd := &cobra.Command{
		Use:   "playsync",
		Short: "Terminal playback client that keeps its position in sync with a server",
		Long: `playsync plays through a queue of tracks and keeps the current position in
sync with a server, so a restarted client resumes where the last one stopped.

Settings come from ~/.config/playsync/config.toml, ./config.toml and
PLAYSYNC_* environment variables; flags override all of them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			applyClientFlags(cmd, cfg, flags)
			if !cfg.HasSession() {
				return errors.New("user and queue are required (set user_id and queue_id, or pass --user and --queue)")
			}
			return runClient(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&flags.baseURL, "base-url", "", "server root URL")
	cmd.Flags().StringVarP(&flags.userID, "user", "u", "", "user id")
	cmd.Flags().StringVarP(&flags.queueID, "queue", "q", "", "queue (playlist) id")
	cmd.Flags().BoolVar(&flags.random, "random", false, "load a random selection of the queue")
	return cmd
}

func applyClientFlags(cmd *cobra.Command, cfg *config.Config, flags clientFlags) {
	if cmd.Flags().Changed("base-url") {
		cfg.BaseURL = flags.baseURL
	}
	if cmd.Flags().Changed("user") {
		cfg.UserID = flags.userID
	}
	if cmd.Flags().Changed("queue") {
		cfg.QueueID = flags.queueID
	}
	if cmd.Flags().Changed("random") {
		cfg.RandomOrder = flags.random
	}
}

func runClient(ctx context.Context, cfg *config.Config) error {
	// The TUI owns the terminal, so logs go to a file.
	logPath, err := cfg.GetLogFile()
	if err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: cfg.GetLogLevel()}))
	slog.SetDefault(logger)

	ctrl := playback.Start(ctx, playback.Config{
		UserID:            cfg.UserID,
		QueueID:           wire.QueueID(cfg.QueueID),
		BaseURL:           cfg.GetBaseURL(),
		TickInterval:      cfg.TickInterval,
		HeartbeatInterval: cfg.HeartbeatInterval,
		RandomOrder:       cfg.RandomOrder,
	}, logger)
	defer ctrl.Close()

	bridge, err := mpris.New(ctrl, logger)
	if err != nil {
		logger.Warn("media controls unavailable", "error", err)
	} else {
		defer bridge.Close()
	}

	if cfg.Notifications {
		notifier, err := notify.New()
		if err != nil {
			logger.Warn("notifications unavailable", "error", err)
		} else {
			watcher := notify.Watch(ctrl, notifier, logger)
			defer watcher.Close()
		}
	}

	logger.Info("starting client", "base_url", cfg.GetBaseURL(), "queue_id", cfg.QueueID)
	p := tea.NewProgram(app.New(ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
