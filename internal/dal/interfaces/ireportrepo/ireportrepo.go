package ireportrepo

import (
	"context"

	"github.com/corray333/backend-labs/payreport/internal/service/models/report"
)

// IReportRepository is an interface for the payment report repository.
type IReportRepository interface {
	Query(ctx context.Context) ([]report.Row, error)
}
