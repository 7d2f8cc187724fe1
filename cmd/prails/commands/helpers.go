package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/paymentrails/paymentrails-go/internal/constants"
	"github.com/paymentrails/paymentrails-go/pkg/paymentrails"
	"github.com/paymentrails/paymentrails-go/pkg/prclient"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"

	defaultJSONIndent = 2
	dateTimeLayout    = "2006-01-02 15:04:05"
)

// Viper keys shared by flags, environment variables and the config file.
const (
	KeyAPIKey      = "api_key"
	KeyAPISecret   = "api_secret"
	KeyEnvironment = "environment"
	KeyBaseURL     = "base_url"
	KeyOutput      = "output"
	KeyVerbose     = "verbose"
	KeyLogLevel    = "log_level"
	KeyConfig      = "config"
)

// Common static errors used throughout the commands package.
var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrUpdateRejected  = errors.New("the API did not confirm the update")
	ErrDeleteRejected  = errors.New("the API did not confirm the deletion")
	ErrInvalidFlagPair = errors.New("--target-currency is required with --target-amount")
	ErrInvalidFilter   = errors.New("invalid filter")
	ErrInvalidPayment  = errors.New("invalid payment")
)

// clientFactory builds the API client used by every resource command.
var clientFactory = CreateClient

// CreateClient builds a client from flags, environment variables and the config file.
func CreateClient(ctx context.Context) (paymentrails.Client, error) {
	apiKey := viper.GetString(KeyAPIKey)
	apiSecret := viper.GetString(KeyAPISecret)

	if apiKey == "" || apiSecret == "" {
		return nil, constants.ErrNoCredentials
	}

	config := &paymentrails.Config{
		APIKey:      apiKey,
		APISecret:   apiSecret,
		Environment: viper.GetString(KeyEnvironment),
		BaseURL:     viper.GetString(KeyBaseURL),
		HTTPTimeout: constants.DefaultHTTPTimeout,
		UserAgent:   constants.DefaultUserAgent + "-cli",
	}

	if viper.GetBool(KeyVerbose) {
		config.Debug = true
		config.Logger = NewLogger(viper.GetString(KeyLogLevel), true)
	}

	client, err := prclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// outputFormat returns the requested format, rejecting unknown values.
func outputFormat() (string, error) {
	output := strings.ToLower(viper.GetString(KeyOutput))

	switch output {
	case "", OutputFormatTable:
		return OutputFormatTable, nil
	case OutputFormatJSON, OutputFormatYAML:
		return output, nil
	default:
		return "", fmt.Errorf("%w: %q (expected table, json or yaml)", constants.ErrInvalidOutputFormat, output)
	}
}

// renderStructured writes value as JSON or YAML and reports whether it did.
// For table output it writes nothing and returns false.
func renderStructured(w io.Writer, value interface{}) (bool, error) {
	format, err := outputFormat()
	if err != nil {
		return false, err
	}

	switch format {
	case OutputFormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", strings.Repeat(" ", defaultJSONIndent))

		return true, encoder.Encode(value)
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(w)
		defer func() { _ = encoder.Close() }()

		return true, encoder.Encode(value)
	default:
		return false, nil
	}
}

func newTable(w io.Writer, headers ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.Header(toAny(headers)...)

	return table
}

func renderTable(table *tablewriter.Table) error {
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderDetails prints property/value pairs as a two column table.
func renderDetails(w io.Writer, rows [][2]string) error {
	table := newTable(w, "Property", "Value")

	for _, row := range rows {
		if row[1] == "" {
			continue
		}

		_ = table.Append(row[0], row[1])
	}

	return renderTable(table)
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}

	return out
}

func formatTime(t paymentrails.Timestamp) string {
	if t.IsZero() {
		return constants.NotAvailable
	}

	return t.Local().Format(dateTimeLayout)
}

func formatAmount(amount decimal.Decimal, currency string) string {
	formatted := amount.StringFixed(2)
	if currency == "" {
		return formatted
	}

	return formatted + " " + currency
}

// parseAmount parses a decimal flag value; empty input yields nil.
func parseAmount(flag, value string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}

	amount, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("%w for --%s: %q", ErrInvalidAmount, flag, value)
	}

	return &amount, nil
}

// stringFlag returns a pointer to the flag value only when the user set it.
func stringFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}

	value, _ := cmd.Flags().GetString(name)

	return &value
}

// paginationFlags are shared by every list command.
type paginationFlags struct {
	page     int
	pageSize int
	search   string
	filters  []string
	all      bool
}

func (p *paginationFlags) register(cmd *cobra.Command, withSearch bool) {
	cmd.Flags().IntVar(&p.page, "page", 1, "page number")
	cmd.Flags().IntVar(&p.pageSize, "page-size", constants.StandardPageSize, "results per page")
	cmd.Flags().BoolVar(&p.all, "all", false, "fetch all pages")

	if withSearch {
		cmd.Flags().StringVar(&p.search, "search", "", "free text search")
		cmd.Flags().StringArrayVar(&p.filters, "filter", nil, "filter as KEY=VALUE (repeatable)")
	}
}

func (p *paginationFlags) params() (*paymentrails.QueryParams, error) {
	params := paymentrails.NewQueryParams().
		WithPage(p.page).
		WithPageSize(min(p.pageSize, constants.MaxPageSize)).
		WithSearch(p.search)

	for _, filter := range p.filters {
		key, value, ok := strings.Cut(filter, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w %q: expected KEY=VALUE", ErrInvalidFilter, filter)
		}

		params.WithFilter(key, strings.Split(value, ",")...)
	}

	return params, nil
}

// listPages fetches one page, or every page from the requested one when all is set.
func listPages[T any](ctx context.Context, fetch paymentrails.PageFunc[T], flags *paginationFlags) ([]T, paymentrails.Meta, error) {
	params, err := flags.params()
	if err != nil {
		return nil, paymentrails.Meta{}, err
	}

	if flags.all {
		items, err := paymentrails.FetchAllPages(ctx, fetch, params, nil)

		return items, paymentrails.Meta{Page: 1, Pages: 1, Records: len(items)}, err
	}

	page, err := fetch(ctx, params)
	if err != nil {
		return nil, paymentrails.Meta{}, err
	}

	return page.Items(), page.Meta(), nil
}

func printPageHint(w io.Writer, meta paymentrails.Meta, all bool) {
	if !all && meta.Pages > meta.Page {
		_, _ = fmt.Fprintf(w, "\nShowing page %d of %d (%d records). Use --all to fetch all pages.\n", meta.Page, meta.Pages, meta.Records)
	}
}

func confirmed(ok bool, rejected error) error {
	if !ok {
		return rejected
	}

	return nil
}
