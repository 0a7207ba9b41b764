package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"namereg/app"
	"namereg/server/api"
)

const shutdownTimeout = 10 * time.Second

func newStartCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Run the node: produce blocks on a timer and serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.config()
			if err != nil {
				return err
			}
			logger, err := app.NewLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			doc, err := app.LoadGenesisDoc(cfg.GenesisPath())
			if err != nil {
				return err
			}

			node, err := app.NewFromConfig(logger, cfg)
			if err != nil {
				return err
			}
			defer node.Close()

			if err := node.Start(doc); err != nil {
				return err
			}

			srv := api.NewServer(node, logger).NewHTTPServer(cfg.API.Address)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			g, gctx := errgroup.WithContext(ctx)

			g.Go(func() error {
				logger.Info("serving api", "addr", cfg.API.Address)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})

			g.Go(func() error {
				ticker := time.NewTicker(cfg.BlockInterval)
				defer ticker.Stop()
				for {
					select {
					case <-gctx.Done():
						return nil
					case <-ticker.C:
						if _, err := node.Commit(); err != nil {
							return err
						}
					}
				}
			})

			g.Go(func() error {
				<-gctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})

			runErr := g.Wait()

			// flush transactions accepted since the last tick
			if _, err := node.Commit(); err != nil && runErr == nil {
				runErr = err
			}
			logger.Info("node stopped", "height", node.LastHeight())
			return runErr
		},
	}
}

func newExportCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export the committed state of a stopped node as a genesis document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.config()
			if err != nil {
				return err
			}
			logger, err := app.NewLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			doc, err := app.LoadGenesisDoc(cfg.GenesisPath())
			if err != nil {
				return err
			}
			node, err := app.NewFromConfig(logger, cfg)
			if err != nil {
				return err
			}
			defer node.Close()

			if err := node.Resume(doc); err != nil {
				return err
			}
			exported, err := node.ExportGenesis()
			if err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), o.output(), exported)
		},
	}
}
