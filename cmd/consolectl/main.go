// Package main provides consolectl, the admin CLI for the staging console.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"staging-console-backend/internal/bootstrap"
	"staging-console-backend/internal/config"
	"staging-console-backend/internal/database"
	"staging-console-backend/internal/models"
	"staging-console-backend/internal/services"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "consolectl",
		Short: "Admin tools for the staging console",
		Long: `Admin tools for the staging console.

Configuration is read from the environment (and .env) like the server.

Examples:
  consolectl migrate            # Apply pending migrations
  consolectl migrate --status   # List pending migrations
  consolectl queue              # Print the review queue
  consolectl export --out /tmp  # Write the review queue as xlsx
`,
		SilenceUsage: true,
	}

	cmd.AddCommand(migrateCmd(), queueCmd(), exportCmd())
	return cmd
}

func loadConfig() (*config.Config, *zap.Logger, error) {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		return nil, nil, err
	}
	logger, err := bootstrap.InitLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func migrateCmd() *cobra.Command {
	var statusOnly bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Sync()
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL is required")
			}

			ctx, stop := signalContext()
			defer stop()

			migrator, err := database.NewMigrator(cfg.DatabaseURL, logger)
			if err != nil {
				return err
			}
			defer migrator.Close()

			out := cmd.OutOrStdout()
			if statusOnly {
				pending, err := migrator.Pending(ctx)
				if err != nil {
					return err
				}
				printList(out, "pending", pending)
				return nil
			}

			applied, err := migrator.Run(ctx)
			if err != nil {
				return err
			}
			printList(out, "applied", applied)
			return nil
		},
	}

	cmd.Flags().BoolVar(&statusOnly, "status", false, "List pending migrations without applying them")
	return cmd
}

func printList(w io.Writer, label string, names []string) {
	if len(names) == 0 {
		fmt.Fprintf(w, "no migrations %s\n", label)
		return
	}
	for _, name := range names {
		fmt.Fprintf(w, "%s %s\n", label, name)
	}
}

func openServices(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*services.Services, func() error, error) {
	st, closeStore, err := bootstrap.OpenStore(cfg, logger)
	if err != nil {
		return nil, closeStore, err
	}
	markers, closeMarkers := bootstrap.OpenMarkers(ctx, cfg, logger)

	svc := services.New(services.Deps{
		Store:   st,
		Markers: markers,
		Logger:  logger,
	})
	return svc, func() error {
		closeMarkers()
		return closeStore()
	}, nil
}

func queueCmd() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Print the review queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signalContext()
			defer stop()

			svc, closeAll, err := openServices(ctx, cfg, logger)
			defer closeAll()
			if err != nil {
				return err
			}

			queue, err := svc.Review.Queue(ctx)
			if err != nil {
				return err
			}
			views := make([]models.SubmissionView, len(queue))
			for i := range queue {
				views[i] = services.NewView(&queue[i], models.ChatBadge{})
			}
			return printQueue(cmd.OutOrStdout(), views, outputJSON)
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output the queue as JSON")
	return cmd
}

func printQueue(w io.Writer, views []models.SubmissionView, outputJSON bool) error {
	if outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPLAN\tSTATUS\tPAYMENT\tEDITOR\tDUE")
	for _, v := range views {
		editor := v.AssignedEditorID
		if editor == "" {
			editor = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			v.ID, v.PlanTitle, v.DisplayStatus, v.PaymentStatus, editor, v.DueDate.Format(time.RFC3339))
	}
	return tw.Flush()
}

func exportCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the review queue as an xlsx workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signalContext()
			defer stop()

			svc, closeAll, err := openServices(ctx, cfg, logger)
			defer closeAll()
			if err != nil {
				return err
			}

			f, filename, err := svc.Export.ExportQueue(ctx, time.Now())
			if err != nil {
				return err
			}
			defer f.Close()

			path := filepath.Join(outDir, filename)
			if err := f.SaveAs(path); err != nil {
				return fmt.Errorf("failed to save %s: %w", path, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", ".", "Directory to write the workbook to")
	return cmd
}
