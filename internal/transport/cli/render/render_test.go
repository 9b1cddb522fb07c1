package render_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/corray333/backend-labs/payreport/internal/service/models/date"
	"github.com/corray333/backend-labs/payreport/internal/service/models/payment"
	"github.com/corray333/backend-labs/payreport/internal/service/models/report"
	"github.com/corray333/backend-labs/payreport/internal/transport/cli/render"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rows = []report.Row{
	{
		FullName:      "Alice Smith",
		Email:         "alice@example.com",
		OrderID:       1,
		OrderDate:     date.New(2024, 1, 10),
		ProductName:   "Widget",
		Quantity:      2,
		UnitPrice:     decimal.RequireFromString("19.99"),
		LineTotal:     decimal.RequireFromString("39.98"),
		TotalAmount:   decimal.RequireFromString("59.98"),
		PaymentMethod: payment.MethodCreditCard,
		PaymentStatus: payment.StatusSuccessful,
		PaymentDate:   date.New(2024, 1, 11),
	},
	{
		FullName:      "Alice Smith",
		Email:         "alice@example.com",
		OrderID:       1,
		OrderDate:     date.New(2024, 1, 10),
		ProductName:   "Gadget",
		Quantity:      1,
		UnitPrice:     decimal.RequireFromString("20"),
		LineTotal:     decimal.RequireFromString("20"),
		TotalAmount:   decimal.RequireFromString("59.98"),
		PaymentMethod: payment.MethodCreditCard,
		PaymentStatus: payment.StatusSuccessful,
		PaymentDate:   date.New(2024, 1, 11),
	},
}

func TestParseFormat(t *testing.T) {
	f, err := render.ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, render.FormatCSV, f)

	_, err = render.ParseFormat("xml")
	assert.ErrorIs(t, err, render.ErrUnknownFormat)
}

func TestRows_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.Rows(&buf, render.FormatCSV, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, report.Columns, records[0])
	assert.Equal(t, []string{
		"Alice Smith", "alice@example.com", "1", "2024-01-10", "Widget", "2",
		"19.99", "39.98", "59.98", "credit_card", "successful", "2024-01-11",
	}, records[1])
	assert.Equal(t, "Gadget", records[2][4])
}

func TestRows_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.Rows(&buf, render.FormatTable, rows))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, report.Columns, strings.Fields(lines[0]))
	assert.Contains(t, lines[1], "Widget")
	assert.Contains(t, lines[2], "Gadget")
}

func TestRows_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.Rows(&buf, render.FormatJSON, rows))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "2024-01-10", got[0]["order_date"])
	assert.Equal(t, "successful", got[0]["payment_status"])
	assert.Len(t, got[0], len(report.Columns))
}

func TestRows_JSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.Rows(&buf, render.FormatJSON, nil))
	assert.JSONEq(t, "[]", buf.String())
}
