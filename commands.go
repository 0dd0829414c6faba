package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/locvowork/orderdash/internal/bootstrap"
	"github.com/locvowork/orderdash/internal/config"
	"github.com/locvowork/orderdash/internal/logger"
	"github.com/locvowork/orderdash/internal/query"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	envFile  string
	input    string
	logLevel string
}

type filterFlags struct {
	from, to    string
	salesperson string
	customer    string
	statuses    []string
	sources     []string
	policies    []string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "first order day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "last order day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.salesperson, "salesperson", "", "responsible user")
	cmd.Flags().StringVar(&f.customer, "customer", "", "customer name")
	cmd.Flags().StringSliceVar(&f.statuses, "status", nil, "order status (repeatable)")
	cmd.Flags().StringSliceVar(&f.sources, "source", nil, "order source (repeatable)")
	cmd.Flags().StringSliceVar(&f.policies, "policy", nil, "commercial policy (repeatable)")
}

func (f *filterFlags) spec() (query.FilterSpec, error) {
	var opts []query.FilterOption
	if f.from != "" {
		from, err := time.Parse("2006-01-02", f.from)
		if err != nil {
			return query.FilterSpec{}, fmt.Errorf("invalid --from: %w", err)
		}
		opts = append(opts, query.WithDateFrom(from))
	}
	if f.to != "" {
		to, err := time.Parse("2006-01-02", f.to)
		if err != nil {
			return query.FilterSpec{}, fmt.Errorf("invalid --to: %w", err)
		}
		opts = append(opts, query.WithDateTo(to))
	}
	opts = append(opts,
		query.WithSalesperson(f.salesperson),
		query.WithCustomer(f.customer),
		query.WithStatuses(f.statuses...),
		query.WithSources(f.sources...),
		query.WithPolicies(f.policies...),
	)
	return query.NewFilterSpec(opts...)
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "orderdash",
		Short:         "Order status dashboard over a multi-sheet order workbook",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var files []string
			if flags.envFile != "" {
				files = append(files, flags.envFile)
			}
			if err := config.LoadEnvConfig(files...); err != nil {
				return fmt.Errorf("failed to load env config: %w", err)
			}
			if flags.input != "" {
				config.DefaultEnvConfig.INPUT_PATH = flags.input
			}
			if flags.logLevel != "" {
				config.DefaultEnvConfig.LOG_LEVEL = flags.logLevel
			}
			logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH, config.DefaultEnvConfig.LOG_LEVEL)
			logger.DebugLog(cmd.Context(), "Environment variables loaded successfully")
			return nil
		},
	}
	root.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "dotenv file to load (default .env)")
	root.PersistentFlags().StringVarP(&flags.input, "input", "i", "", "order workbook (overrides INPUT_PATH)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	root.AddCommand(newServeCmd(), newSummaryCmd(), newExportCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				config.DefaultEnvConfig.APP_PORT = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app := bootstrap.NewApp()
			if err := app.Initialize(ctx); err != nil {
				return err
			}

			errCh := make(chan error, 1)
			go func() {
				logger.InfoLog(ctx, "Listening on :%s", config.DefaultEnvConfig.APP_PORT)
				errCh <- app.Run()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				logger.InfoLog(shutdownCtx, "Shutting down")
				return app.Shutdown(shutdownCtx)
			}
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides APP_PORT)")
	return cmd
}

func newSummaryCmd() *cobra.Command {
	filters := &filterFlags{}
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print headline metrics and rankings for the filtered orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := filters.spec()
			if err != nil {
				return err
			}
			svc, err := bootstrap.NewDashboardService(cmd.Context())
			if err != nil {
				return err
			}
			summary, err := svc.Summary(cmd.Context(), spec)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}

			printSummary(out, summary)
			for _, dim := range []query.Dimension{query.DimStatus, query.DimSalesperson} {
				rows, err := svc.Aggregate(cmd.Context(), spec, dim, query.WithLimit(5))
				if err != nil {
					return err
				}
				printAggregate(out, dim, rows)
			}
			return nil
		},
	}
	filters.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

func newExportCmd() *cobra.Command {
	filters := &filterFlags{}
	var format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered orders as CSV or an xlsx report",
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != "csv" && format != "xlsx" {
				return fmt.Errorf("unsupported format %q (csv or xlsx)", format)
			}
			spec, err := filters.spec()
			if err != nil {
				return err
			}
			svc, err := bootstrap.NewDashboardService(cmd.Context())
			if err != nil {
				return err
			}
			if out == "" {
				out = "pedidos_filtrados." + format
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if format == "csv" {
				err = svc.ExportCSV(cmd.Context(), f, spec)
			} else {
				err = svc.ExportXLSX(cmd.Context(), f, spec)
			}
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	filters.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "csv or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default pedidos_filtrados.<format>)")
	return cmd
}

func printSummary(w io.Writer, s query.Summary) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	pct := "N/A"
	if s.InvoicedPct != nil {
		pct = fmt.Sprintf("%.1f%%", *s.InvoicedPct)
	}
	fmt.Fprintf(tw, "Total orders\t%d\n", s.TotalOrders)
	fmt.Fprintf(tw, "Total value\t%s\n", s.TotalValue.StringFixed(2))
	fmt.Fprintf(tw, "Invoiced\t%s\n", pct)
	fmt.Fprintf(tw, "Active salespeople\t%d\n", s.ActiveSalespeople)
	fmt.Fprintf(tw, "Active customers\t%d\n", s.ActiveCustomers)
	tw.Flush()
}

func printAggregate(w io.Writer, dim query.Dimension, rows []query.AggregateRow) {
	fmt.Fprintf(w, "\nBy %s\n", dim)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, r := range rows {
		key := r.Key
		if r.Missing {
			key = "(missing)"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", key, r.Orders, r.Value.StringFixed(2))
	}
	tw.Flush()
}
