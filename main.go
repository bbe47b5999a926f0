package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/spf13/cobra"

	"github.com/pivolan/survey_dashboard/config"
	"github.com/pivolan/survey_dashboard/domain/models"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "survey_dashboard",
		Short: "Auto-refreshing analytics dashboard for survey spreadsheets",
	}
	root.AddCommand(serveCmd(), analyzeCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard and keep refreshing survey data",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetConfig()
			if cfg.SheetURL == "" {
				return fmt.Errorf("SHEET_URL is not set")
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			refresher := NewRefresher(cfg)
			go refresher.Run(ctx)

			if cfg.TgToken != "" {
				bot, err := tgbotapi.NewBotAPI(cfg.TgToken)
				if err != nil {
					return fmt.Errorf("telegram init: %w", err)
				}
				go func() {
					if err := RunBot(bot, cfg, refresher); err != nil {
						logger.Error().Err(err).Msg("telegram bot stopped")
					}
				}()
			}

			mux := http.NewServeMux()
			NewWebHandlers(cfg, refresher).Register(mux)

			server := &http.Server{Addr: cfg.ListenAddr, Handler: mux}
			go func() {
				<-ctx.Done()
				server.Shutdown(context.Background())
			}()

			logger.Info().
				Str("addr", cfg.ListenAddr).
				Str("interval", cfg.RefreshInterval.String()).
				Msg("dashboard started")
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}
}

func analyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze a local CSV file once and print the summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetConfig()

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			data, err := Decompress(args[0], raw)
			if err != nil {
				return err
			}
			snapshot, err := BuildSnapshot(data, cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, GenerateOverview(snapshot.Summary))
			fmt.Fprintln(out, GenerateSummaryTable(snapshot.Summary))
			for _, t := range GenerateFrequencyTables(snapshot.Summary) {
				fmt.Fprintln(out)
				fmt.Fprintln(out, t)
			}
			for _, spec := range snapshot.Charts {
				if spec.Kind == models.ChartHeatmap {
					fmt.Fprintln(out)
					fmt.Fprintln(out, GenerateCrosstabTable(spec))
				}
			}
			return nil
		},
	}
}
