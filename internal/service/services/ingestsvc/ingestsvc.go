package ingestsvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/corray333/backend-labs/payreport/internal/dal/interfaces/idatasetrepo"
	"github.com/corray333/backend-labs/payreport/internal/dal/store"
	"github.com/corray333/backend-labs/payreport/internal/dal/uow"
	"github.com/corray333/backend-labs/payreport/internal/metrics"
	"github.com/corray333/backend-labs/payreport/internal/service/models/dataset"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// IngestService replaces the store content with a dataset.
type IngestService struct {
	storeClient *store.Client
	metrics     *metrics.Metrics
}

func (s *IngestService) newUOW() unitOfWork {
	return uow.NewUnitOfWork(s.storeClient)
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DatasetRepository() idatasetrepo.IDatasetRepository
}

// option is a function that configures the IngestService.
type option func(*IngestService)

// MustNewIngestService creates a new IngestService.
func MustNewIngestService(opts ...option) *IngestService {
	s := &IngestService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.storeClient == nil {
		panic("ingest service requires a store client")
	}

	return s
}

// WithStoreClient sets the store client for the IngestService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithStoreClient(client *store.Client) option {
	return func(s *IngestService) {
		s.storeClient = client
	}
}

// WithMetrics sets the metrics the IngestService records into.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithMetrics(m *metrics.Metrics) option {
	return func(s *IngestService) {
		s.metrics = m
	}
}

// Ingest drops and recreates the schema, then loads every table in one transaction.
func (s *IngestService) Ingest(ctx context.Context, ds *dataset.Dataset) (dataset.Counts, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "IngestService.Ingest",
		trace.WithAttributes(attribute.String("store.driver", string(s.storeClient.Driver()))),
	)
	defer span.End()

	slog.Info("Dropping and recreating tables", "driver", s.storeClient.Driver())
	if err := s.storeClient.Reset(ctx); err != nil {
		span.RecordError(err)

		return nil, err
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin ingest transaction: %w", err)
	}
	defer func() {
		if err := work.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Error("Failed to roll back ingest transaction", "error", err)
		}
	}()

	repo := work.DatasetRepository()
	steps := []struct {
		table  string
		rows   int
		insert func() error
	}{
		{dataset.TableUsers, len(ds.Users), func() error { return repo.InsertUsers(ctx, ds.Users) }},
		{dataset.TableProducts, len(ds.Products), func() error { return repo.InsertProducts(ctx, ds.Products) }},
		{dataset.TableOrders, len(ds.Orders), func() error { return repo.InsertOrders(ctx, ds.Orders) }},
		{dataset.TableOrderItems, len(ds.OrderItems), func() error { return repo.InsertOrderItems(ctx, ds.OrderItems) }},
		{dataset.TablePayments, len(ds.Payments), func() error { return repo.InsertPayments(ctx, ds.Payments) }},
	}

	for _, step := range steps {
		if err := step.insert(); err != nil {
			span.RecordError(err)

			return nil, err
		}
		slog.Info("Inserted rows", "table", step.table, "rows", step.rows)
	}

	if err := work.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit ingest transaction: %w", err)
	}

	counts := ds.Counts()
	for table, n := range counts {
		s.metrics.AddIngested(table, n)
	}

	return counts, nil
}
