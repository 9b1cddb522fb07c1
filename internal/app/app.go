package app

import (
	"context"
	"log/slog"
	"time"

	reportrepo "github.com/corray333/backend-labs/payreport/internal/dal/repositories/report/sql"
	"github.com/corray333/backend-labs/payreport/internal/dal/store"
	"github.com/corray333/backend-labs/payreport/internal/metrics"
	"github.com/corray333/backend-labs/payreport/internal/otel"
	"github.com/corray333/backend-labs/payreport/internal/service/services/ingestsvc"
	"github.com/corray333/backend-labs/payreport/internal/service/services/reportsvc"
	"github.com/spf13/viper"
)

// App holds the store-backed services of one command run.
type App struct {
	storeClient    *store.Client
	reportSvc      *reportsvc.ReportService
	ingestSvc      *ingestsvc.IngestService
	metrics        *metrics.Metrics
	otelController *otel.OtelController
}

// MustNewApp connects to the store and wires the services.
func MustNewApp(ctx context.Context) *App {
	var otelController *otel.OtelController
	if viper.GetBool("tracing.enabled") {
		otelController = otel.MustInitOtel(viper.GetString("tracing.jaeger_endpoint"))
	}

	storeClient := store.MustNewClient(ctx)
	m := metrics.New()

	reportSvc := reportsvc.MustNewReportService(
		reportsvc.WithReportRepository(reportrepo.NewReportRepository(storeClient.DB(), storeClient.Placeholder())),
		reportsvc.WithMetrics(m),
	)

	ingestSvc := ingestsvc.MustNewIngestService(
		ingestsvc.WithStoreClient(storeClient),
		ingestsvc.WithMetrics(m),
	)

	return &App{
		storeClient:    storeClient,
		reportSvc:      reportSvc,
		ingestSvc:      ingestSvc,
		metrics:        m,
		otelController: otelController,
	}
}

func (a *App) Store() *store.Client {
	return a.storeClient
}

func (a *App) ReportService() *reportsvc.ReportService {
	return a.reportSvc
}

func (a *App) IngestService() *ingestsvc.IngestService {
	return a.ingestSvc
}

// Shutdown pushes metrics, closes the store and flushes traces.
func (a *App) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if url := viper.GetString("metrics.pushgateway_url"); url != "" {
		if err := a.metrics.Push(ctx, url, viper.GetString("metrics.job")); err != nil {
			slog.Error("Metrics push error", "error", err)
		} else {
			slog.Info("Metrics pushed", "url", url)
		}
	}

	if err := a.storeClient.Close(); err != nil {
		slog.Error("Database connection close error", "error", err)
	} else {
		slog.Debug("Database connection closed gracefully")
	}

	if err := a.otelController.Shutdown(ctx); err != nil {
		slog.Error("Otel trace provider shutdown error", "error", err)
	}
}
