package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/corray333/backend-labs/payreport/internal/app"
	"github.com/corray333/backend-labs/payreport/internal/config"
	"github.com/corray333/backend-labs/payreport/internal/dal/interfaces/iexportrepo"
	"github.com/corray333/backend-labs/payreport/internal/dal/rabbitmq"
	csvrepo "github.com/corray333/backend-labs/payreport/internal/dal/repositories/dataset/csv"
	amqprepo "github.com/corray333/backend-labs/payreport/internal/dal/repositories/export/amqp"
	"github.com/corray333/backend-labs/payreport/internal/service/models/report"
	"github.com/corray333/backend-labs/payreport/internal/service/services/datasetsvc"
	"github.com/corray333/backend-labs/payreport/internal/transport/cli/render"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const formatAMQP = "amqp"

// NewRootCommand builds the payreport command tree.
func NewRootCommand() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "payreport",
		Short:         "Successful payments report over the e-commerce store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.MustInit(configFile)
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: ./config.yaml)")
	root.PersistentFlags().String("driver", "", "store driver: sqlite or postgres")
	root.PersistentFlags().String("db", "", "sqlite database path")
	_ = viper.BindPFlag("store.driver", root.PersistentFlags().Lookup("driver"))
	_ = viper.BindPFlag("store.sqlite.path", root.PersistentFlags().Lookup("db"))

	root.AddCommand(
		newGenerateCommand(),
		newIngestCommand(),
		newMigrateCommand(),
		newReportCommand(),
	)

	return root
}

func newGenerateCommand() *cobra.Command {
	var (
		rows int
		seed uint64
		out  string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate synthetic e-commerce CSV files",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, _, err := datasetsvc.MustNewDatasetService().Generate(rows, seed)
			if err != nil {
				return err
			}

			repo := csvrepo.NewDatasetRepository(out)
			if err := repo.Write(ds); err != nil {
				return err
			}
			slog.Info("Data generation complete", "dir", repo.Dir())

			return nil
		},
	}
	cmd.Flags().IntVar(&rows, "rows", 300, "approximate number of orders to generate")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for reproducibility (0 picks one)")
	cmd.Flags().StringVar(&out, "out", "data", "output directory")

	return cmd
}

func newIngestCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Recreate the schema and load the CSV files into the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := csvrepo.NewDatasetRepository(dir).Read()
			if err != nil {
				return err
			}

			a := app.MustNewApp(cmd.Context())
			defer a.Shutdown()

			counts, err := a.IngestService().Ingest(cmd.Context(), ds)
			if err != nil {
				return err
			}
			slog.Info("Ingestion completed successfully", "rows", counts)

			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "data", "data", "directory holding the CSV files")

	return cmd
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app.MustNewApp(cmd.Context())
			defer a.Shutdown()

			return a.Store().Migrate(cmd.Context())
		},
	}
}

func newReportCommand() *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print successful payments with order, product and customer details",
		RunE: func(cmd *cobra.Command, args []string) error {
			var f render.Format
			if format != formatAMQP {
				parsed, err := render.ParseFormat(format)
				if err != nil {
					return err
				}
				f = parsed
			}

			a := app.MustNewApp(cmd.Context())
			defer a.Shutdown()

			rows, err := a.ReportService().Run(cmd.Context())
			if err != nil {
				return err
			}

			if format == formatAMQP {
				return publishAMQP(cmd.Context(), rows)
			}

			w, closeFn, err := output(cmd.OutOrStdout(), out)
			if err != nil {
				return err
			}
			defer closeFn()

			return render.Rows(w, f, rows)
		},
	}
	cmd.Flags().StringVar(&format, "format", string(render.FormatTable), "output format: table, csv, json or amqp")
	cmd.Flags().StringVar(&out, "out", "", "output file (default: stdout)")

	return cmd
}

func publishAMQP(ctx context.Context, rows []report.Row) error {
	client := rabbitmq.MustNewClient()
	defer func() {
		if err := client.Close(); err != nil {
			slog.Error("RabbitMQ connection close error", "error", err)
		}
	}()

	repo, err := amqprepo.NewExportRabbitMQRepository(
		client,
		viper.GetString("rabbitmq.queue"),
		viper.GetInt("rabbitmq.publish_concurrency"),
	)
	if err != nil {
		return err
	}

	return publish(ctx, repo, rows)
}

func publish(ctx context.Context, exporter iexportrepo.IExportRepository, rows []report.Row) error {
	if err := exporter.PublishRows(ctx, rows); err != nil {
		return fmt.Errorf("failed to publish report rows: %w", err)
	}
	slog.Info("Report rows published", "rows", len(rows))

	return nil
}

func output(stdout io.Writer, path string) (io.Writer, func(), error) {
	if path == "" {
		return stdout, func() {}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return f, func() {
		if err := f.Close(); err != nil {
			slog.Error("Output file close error", "error", err)
		}
	}, nil
}
