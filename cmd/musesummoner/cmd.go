package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mokiat/gog"
	"github.com/musebox/musesummoner"
	"github.com/musebox/musesummoner/config"
	"github.com/musebox/musesummoner/internal/mylog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "musesummoner [muse-file OR muse-files-dir ...]",
		Short: "Start the muse summoner server",
		RunE: func(cmd *cobra.Command, args []string) error {
			var museFiles []string
			for _, filename := range args {
				if stat, err := os.Stat(filename); os.IsNotExist(err) {
					return errors.Wrapf(err, "muse-file or muse-files-dir does not exist")
				} else if stat.IsDir() {
					files, err := os.ReadDir(filename)
					if err != nil {
						return errors.Wrapf(err, "failed to read muse-files-dir")
					}
					for _, file := range files {
						if file.IsDir() ||
							(!strings.HasSuffix(file.Name(), ".yaml") && !strings.HasSuffix(file.Name(), ".yml")) {
							continue
						}
						museFiles = append(museFiles, fmt.Sprintf("%s/%s", filename, file.Name()))
					}
				} else {
					museFiles = append(museFiles, filename)
				}
			}

			ctx := cmd.Context()

			cfg, err := config.NewRuntimeConfig(false)
			if err != nil {
				return errors.Wrapf(err, "failed to load config")
			}
			logger := mylog.NewLogger(cfg.LogLevel, cfg.LogHandler)

			logger.Debug("start muse summoner", "config", cfg)

			ms, err := musesummoner.NewMuseSummoner(
				ctx,
				musesummoner.WithLogger(logger),
				musesummoner.WithRuntimeConfig(cfg),
			)
			if err != nil {
				return err
			}
			defer func() {
				if err := ms.Close(); err != nil {
					logger.Warn("failed to close", mylog.Err(err))
				}
			}()

			// load muse config files
			museConfigs, err := config.LoadMusesFromFiles(museFiles)
			if err != nil {
				return errors.Wrapf(err, "failed to load muse config")
			}

			if err := ms.RegisterMusesFromConfigs(ctx, museConfigs); err != nil {
				return err
			}

			museNames := gog.Map(museConfigs, func(mc config.MuseConfig) string {
				return mc.Name
			})
			logger.Info("Muses loaded", "names", museNames)

			handler, err := ms.Handler()
			if err != nil {
				return err
			}

			server := &http.Server{
				Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
				Handler: handler,
			}

			closeCh := make(chan os.Signal, 3)
			defer close(closeCh)
			signal.Notify(closeCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGABRT)

			go func() {
				<-closeCh
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					logger.Warn("failed to shutdown server", mylog.Err(err))
				}
			}()

			logger.Info("Starting server", "host", cfg.Host, "port", cfg.Port)

			if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return errors.Wrapf(err, "server stopped")
			}
			return nil
		},
	}

	return cmd
}
