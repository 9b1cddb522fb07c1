package iexportrepo

import (
	"context"

	"github.com/corray333/backend-labs/payreport/internal/service/models/report"
)

// IExportRepository publishes report rows to an external sink.
type IExportRepository interface {
	PublishRows(ctx context.Context, rows []report.Row) error
}
