package reportsvc_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/corray333/backend-labs/payreport/internal/metrics"
	"github.com/corray333/backend-labs/payreport/internal/service/models/report"
	"github.com/corray333/backend-labs/payreport/internal/service/services/reportsvc"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	rows  []report.Row
	err   error
	calls int
}

func (r *stubRepo) Query(context.Context) ([]report.Row, error) {
	r.calls++

	return r.rows, r.err
}

func TestMustNewReportService_RequiresRepository(t *testing.T) {
	assert.Panics(t, func() { reportsvc.MustNewReportService() })
}

func TestRun(t *testing.T) {
	repo := &stubRepo{rows: []report.Row{{OrderID: 6}, {OrderID: 1}}}
	m := metrics.New()
	svc := reportsvc.MustNewReportService(reportsvc.WithReportRepository(repo), reportsvc.WithMetrics(m))

	rows, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, repo.rows, rows)
	assert.Equal(t, 1, repo.calls)

	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(`
# HELP payreport_report_rows Number of rows returned by the last payment report run
# TYPE payreport_report_rows gauge
payreport_report_rows 2
`), "payreport_report_rows"))
}

func TestRun_ReturnsStoreErrorUnchanged(t *testing.T) {
	storeErr := fmt.Errorf("failed to query payment report: %w", &pgconn.PgError{Code: "42P01"})
	repo := &stubRepo{err: storeErr}
	svc := reportsvc.MustNewReportService(reportsvc.WithReportRepository(repo))

	rows, err := svc.Run(context.Background())
	assert.Nil(t, rows)
	assert.Same(t, storeErr, err)
	assert.Equal(t, 1, repo.calls)

	var pgErr *pgconn.PgError
	assert.True(t, errors.As(err, &pgErr))
}
