package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"employee-stats/api"
	"employee-stats/config"
	"employee-stats/services"
	"employee-stats/storage"
	"employee-stats/utils"
)

// cliSession is the session id used for runs started from the terminal.
const cliSession = "cli"

func main() {
	root := &cobra.Command{
		Use:           "employee-stats",
		Short:         "Cross-reference pasted leaderboards against the employee directory",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newProcessCmd(), newServeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app holds everything both commands share.
type app struct {
	cfg     *config.Config
	logger  *utils.Logger
	store   *storage.PostgresStore
	results storage.ResultStore
}

func setup(ctx context.Context, strict bool) (*app, *services.SessionService, error) {
	cfg := config.Load()
	if strict {
		cfg.ParseMode = "strict"
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	logger := utils.NewLoggerWithLevel(utils.ParseLevel(cfg.LogLevel))

	rules, err := config.LoadRules(cfg.RulesFile)
	if err != nil {
		return nil, nil, err
	}

	store, err := storage.NewPostgresStore(ctx, cfg.DSN(), cfg.StoreConnectRetries, cfg.StoreHasGrouping, logger)
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		return nil, nil, err
	}

	var results storage.ResultStore = storage.NewMemoryResultStore()
	if cfg.RedisAddr != "" {
		ttl := time.Duration(cfg.RunLockTTLSecs) * time.Second
		rs, err := storage.NewRedisResultStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, ttl)
		if err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		results = rs
		logger.Info("Session results stored in Redis at %s", cfg.RedisAddr)
	}

	mode := services.Lenient
	if cfg.StrictParse() {
		mode = services.Strict
	}
	normalizer := services.NewNormalizer(rules)
	processor := services.NewStatsProcessor(
		services.NewParser(mode, logger),
		services.NewResolver(store, cfg.KeyColumn, cfg.NameColumn, logger),
		services.NewAggregator(normalizer, logger),
		logger,
	)

	a := &app{cfg: cfg, logger: logger, store: store, results: results}
	return a, services.NewSessionService(processor, results, logger), nil
}

func (a *app) close() {
	if err := a.results.Close(); err != nil {
		a.logger.Warn("closing result store: %v", err)
	}
	if err := a.store.Close(); err != nil {
		a.logger.Warn("closing record store: %v", err)
	}
}

func newProcessCmd() *cobra.Command {
	var (
		strict   bool
		csvPath  string
		xlsxPath string
	)

	cmd := &cobra.Command{
		Use:   "process [file|-]",
		Short: "Process pasted tab-separated text from a file or stdin and print the statistics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			a, sessions, err := setup(cmd.Context(), strict)
			if err != nil {
				return err
			}
			defer a.close()

			result, err := sessions.Run(cmd.Context(), cliSession, text)
			if err != nil {
				return err
			}
			services.PrintReport(cmd.OutOrStdout(), result.Result)

			if csvPath != "" {
				if err := exportCSV(csvPath, result, a.logger); err != nil {
					return err
				}
			}
			if xlsxPath != "" {
				if err := exportXLSX(xlsxPath, result, a.logger); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail on rows whose cell count differs from the header")
	cmd.Flags().StringVar(&csvPath, "csv", "", "write the resolved employee records to this CSV file")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write the full result to this XLSX workbook")
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the stats API over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, sessions, err := setup(ctx, false)
			if err != nil {
				return err
			}
			defer a.close()

			if n, err := a.store.Count(ctx); err != nil {
				a.logger.Warn("Could not count employees: %v", err)
			} else {
				a.logger.Info("Record store reachable, %d employees with a uid", n)
			}

			srv := &http.Server{
				Addr:              a.cfg.HTTPAddr,
				Handler:           api.NewServer(sessions, a.store, a.logger).Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("=== Employee stats API listening on %s ===", a.cfg.HTTPAddr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			a.logger.Info("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}
