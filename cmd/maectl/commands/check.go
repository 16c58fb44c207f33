package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/maeartistry/internal/service"
	"github.com/spf13/cobra"
)

var errUnhealthy = errors.New("store check failed")

func newCheckCommand() *cobra.Command {
	var pingDB bool
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Count rows per table and inspect the media bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, repo, bucket, err := openStore()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			report := service.NewHealthService(repo, bucket).Check(ctx)
			printHealthReport(cmd.OutOrStdout(), report)

			if pingDB {
				if err := pingDatabase(ctx, cfg.DatabaseURL); err != nil {
					return fmt.Errorf("database ping: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "database: reachable")
			}
			if !report.OK {
				return errUnhealthy
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&pingDB, "db", false, "also connect to SUPABASE_DB_URL with pgx")
	cmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "overall timeout")
	return cmd
}

func printHealthReport(w io.Writer, report service.HealthReport) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Table", "Rows", "Error"})
	for _, t := range report.Tables {
		tw.AppendRow(table.Row{t.Table, t.Rows, t.Error})
	}
	if b := report.Bucket; b != nil {
		tw.AppendSeparator()
		tw.AppendRow(table.Row{"bucket:" + b.Name, b.Objects, b.Error})
	}
	tw.SetStyle(table.StyleLight)
	tw.Render()
}

func pingDatabase(ctx context.Context, dsn string) error {
	if dsn == "" {
		return errors.New("SUPABASE_DB_URL is not set")
	}
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)
	return conn.Ping(ctx)
}
