package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shershen08/playsync/internal/config"
	"github.com/shershen08/playsync/internal/server"
	"github.com/shershen08/playsync/internal/store"
)

type serveFlags struct {
	listen    string
	dbPath    string
	noPersist bool
}

func serveCmd() *cobra.Command {
	var flags serveFlags
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the reference sync server",
		Long: `Run the reference backend: the track catalog, the playback snapshot endpoint
and the websocket that stores every playback update in sqlite.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			srvCfg, err := cfg.GetServerConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("listen") {
				srvCfg.Listen = flags.listen
			}
			if cmd.Flags().Changed("db") {
				srvCfg.DBPath = flags.dbPath
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.GetLogLevel()}))
			slog.SetDefault(logger)

			return runServer(cmd.Context(), logger, srvCfg, flags.noPersist)
		},
	}
	cmd.Flags().StringVarP(&flags.listen, "listen", "l", "", "listen address (default :8000)")
	cmd.Flags().StringVar(&flags.dbPath, "db", "", "sqlite database path")
	cmd.Flags().BoolVar(&flags.noPersist, "no-persist", false, "acknowledge updates without storing them")
	return cmd
}

func runServer(ctx context.Context, logger *slog.Logger, cfg config.ServerConfig, noPersist bool) error {
	dbPath := cfg.DBPath
	if noPersist {
		dbPath = ":memory:"
	}
	st, err := store.Open(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	opts := []server.Option{
		server.WithLogger(logger),
		server.WithCORSOrigins(cfg.CORSOrigins),
	}
	if noPersist {
		logger.Warn("persistence disabled, playback state will not be stored")
	} else {
		opts = append(opts, server.WithPlaybackStore(st))
		logger.Info("using database", "path", dbPath)
	}
	return server.New(st, opts...).Run(ctx, cfg.Listen)
}
