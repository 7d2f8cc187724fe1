package commands

import (
	"bytes"
	"testing"
	"time"

	"github.com/paymentrails/paymentrails-go/internal/constants"
	"github.com/paymentrails/paymentrails-go/pkg/paymentrails"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaymentSpec(t *testing.T) {
	t.Parallel()

	payment, err := parsePaymentSpec(" R-1 = 10.50 ")
	require.NoError(t, err)
	assert.Equal(t, "R-1", payment.Recipient.ID)
	require.NotNil(t, payment.SourceAmount)
	assert.True(t, decimal.RequireFromString("10.5").Equal(*payment.SourceAmount))

	_, err = parsePaymentSpec("R-1=")
	require.ErrorIs(t, err, constants.ErrAmountRequired)
	require.ErrorIs(t, err, ErrInvalidPayment)

	for _, entry := range []string{"R-1", "=10", " =10"} {
		_, err = parsePaymentSpec(entry)
		require.ErrorIs(t, err, ErrInvalidPayment, entry)
	}

	_, err = parsePaymentSpec("R-1=abc")
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestPaginationFlags_Params(t *testing.T) {
	t.Parallel()

	flags := paginationFlags{page: 2, pageSize: 5000, search: "acme", filters: []string{"status=active,blocked", "type=business"}}

	params, err := flags.params()
	require.NoError(t, err)
	assert.Equal(t, 2, params.Page)
	assert.Equal(t, constants.MaxPageSize, params.PageSize)
	assert.Equal(t, "acme", params.Search)
	assert.Equal(t, []string{"active", "blocked"}, params.Filters["status"])
	assert.Equal(t, []string{"business"}, params.Filters["type"])

	for _, filter := range []string{"=x", "status"} {
		flags.filters = []string{filter}
		_, err = flags.params()
		require.ErrorIs(t, err, ErrInvalidFilter, filter)
	}

	flags = paginationFlags{page: 3, pageSize: 10, filters: []string{"page=1", "status=active"}}

	params, err = flags.params()
	require.NoError(t, err)

	values := params.ToValues()
	assert.Equal(t, "3", values.Get("page"))
	assert.Equal(t, "active", values.Get("status"))
}

func TestFormatting(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "10.00 USD", formatAmount(decimal.NewFromInt(10), "USD"))
	assert.Equal(t, "0.50", formatAmount(decimal.RequireFromString("0.5"), ""))
	assert.Equal(t, constants.NotAvailable, formatTime(paymentrails.Timestamp{}))
	assert.NotEqual(t, constants.NotAvailable, formatTime(paymentrails.NewTimestamp(time.Now())))
	assert.Equal(t, "Acme", recipientName(paymentrails.Recipient{Name: "Acme", FirstName: "Tom"}))
	assert.Equal(t, "Tom", recipientName(paymentrails.Recipient{FirstName: "Tom"}))
	assert.Equal(t, constants.NotAvailable, recipientName(paymentrails.Recipient{}))
}

func TestPrintPageHint(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	printPageHint(&out, paymentrails.Meta{Page: 1, Pages: 1, Records: 3}, false)
	assert.Empty(t, out.String())

	printPageHint(&out, paymentrails.Meta{Page: 1, Pages: 2, Records: 60}, true)
	assert.Empty(t, out.String())

	printPageHint(&out, paymentrails.Meta{Page: 1, Pages: 2, Records: 60}, false)
	assert.Contains(t, out.String(), "Showing page 1 of 2 (60 records)")
}

func TestLogger(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	logger := newLoggerTo(&out, "", true)
	logger.Debug("HTTP Request", map[string]interface{}{"method": "GET", "path": "/v1/batches"})
	assert.Contains(t, out.String(), "HTTP Request")
	assert.Contains(t, out.String(), "method=GET")

	out.Reset()

	quiet := newLoggerTo(&out, "warn", true)
	quiet.Info("ignored", nil)
	quiet.Debug("ignored", nil)
	assert.Empty(t, out.String())

	quiet.Error("request failed", map[string]interface{}{"status": 500})
	assert.Contains(t, out.String(), "request failed")
	assert.Contains(t, out.String(), "status=500")
}

func TestLogger_JSONFormat(t *testing.T) {
	t.Setenv("PAYMENTRAILS_LOG_FORMAT", "json")

	var out bytes.Buffer

	logger := newLoggerTo(&out, "info", false)
	logger.Warn("slow response", map[string]interface{}{"duration_ms": 1200})
	assert.Contains(t, out.String(), `"message":"slow response"`)
	assert.Contains(t, out.String(), `"level":"warning"`)
	assert.Contains(t, out.String(), `"duration_ms":1200`)
}
