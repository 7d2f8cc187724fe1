package commands

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/paymentrails/paymentrails-go/internal/constants"
	"github.com/paymentrails/paymentrails-go/pkg/paymentrails"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// NewBatchesCommand creates the batches command group.
func NewBatchesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "batches",
		Aliases: []string{"batch", "b"},
		Short:   "Manage payment batches",
		Long:    "Create batches, manage their payments, quote and start processing",
	}

	cmd.AddCommand(newBatchesListCommand())
	cmd.AddCommand(newBatchesGetCommand())
	cmd.AddCommand(newBatchesCreateCommand())
	cmd.AddCommand(newBatchesUpdateCommand())
	cmd.AddCommand(newBatchesDeleteCommand())
	cmd.AddCommand(newBatchesPaymentsCommand())
	cmd.AddCommand(newBatchesAddPaymentCommand())
	cmd.AddCommand(newBatchesGetPaymentCommand())
	cmd.AddCommand(newBatchesUpdatePaymentCommand())
	cmd.AddCommand(newBatchesDeletePaymentCommand())
	cmd.AddCommand(newBatchesSummaryCommand())
	cmd.AddCommand(newBatchesQuoteCommand())
	cmd.AddCommand(newBatchesStartCommand())

	return cmd
}

func newBatchesListCommand() *cobra.Command {
	var flags paginationFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List batches",
		Long:  "List payment batches, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFactory(cmd.Context())
			if err != nil {
				return err
			}

			batches, meta, err := listPages(cmd.Context(), client.Batches().All, &flags)
			if err != nil {
				return fmt.Errorf("failed to list batches: %w", err)
			}

			out := cmd.OutOrStdout()

			if ok, err := renderStructured(out, batches); ok || err != nil {
				return err
			}

			if len(batches) == 0 {
				_, _ = fmt.Fprintln(out, "No batches found")

				return nil
			}

			table := newTable(out, "ID", "Description", "Status", "Payments", "Amount", "Created")
			for _, batch := range batches {
				_ = table.Append(batch.ID, batch.Description, string(batch.Status), strconv.Itoa(batch.TotalPayments),
					formatAmount(batch.Amount, batchCurrency(batch)), formatTime(batch.CreatedAt))
			}

			if err := renderTable(table); err != nil {
				return err
			}

			printPageHint(out, meta, flags.all)

			return nil
		},
	}

	flags.register(cmd, true)

	return cmd
}

func newBatchesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get BATCH_ID",
		Short: "Get batch details",
		Long:  "Display a single payment batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFactory(cmd.Context())
			if err != nil {
				return err
			}

			batch, err := client.Batches().Find(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get batch: %w", err)
			}

			return displayBatch(cmd.OutOrStdout(), batch)
		},
	}
}

func newBatchesCreateCommand() *cobra.Command {
	var (
		sourceCurrency string
		description    string
		payments       []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a batch",
		Long: `Create a payment batch, optionally with its first payments.

Each --payment takes RECIPIENT_ID=AMOUNT, where AMOUNT is in the source currency.`,
		Example: `  prails batches create --source-currency USD --description "May payroll" \
    --payment R-91XQ0PJH39U54=10.00 --payment R-2P8F4XQSD7UE2=20.00`,
		RunE: func(cmd *cobra.Command, args []string) error {
			request := &paymentrails.BatchCreateRequest{
				SourceCurrency: strings.ToUpper(sourceCurrency),
				Description:    description,
			}

			for _, spec := range payments {
				payment, err := parsePaymentSpec(spec)
				if err != nil {
					return err
				}

				request.Payments = append(request.Payments, payment)
			}

			client, err := clientFactory(cmd.Context())
			if err != nil {
				return err
			}

			batch, err := client.Batches().Create(cmd.Context(), request)
			if err != nil {
				return fmt.Errorf("failed to create batch: %w", err)
			}

			out := cmd.OutOrStdout()

			if ok, err := renderStructured(out, batch); ok || err != nil {
				return err
			}

			_, _ = fmt.Fprintf(out, "Created batch %s with %d payment(s)\n", batch.ID, batch.TotalPayments)

			return nil
		},
	}

	cmd.Flags().StringVar(&sourceCurrency, "source-currency", "USD", "currency the batch is funded in")
	cmd.Flags().StringVar(&description, "description", "", "batch description")
	cmd.Flags().StringArrayVar(&payments, "payment", nil, "payment as RECIPIENT_ID=AMOUNT (repeatable)")

	return cmd
}

func newBatchesUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update BATCH_ID",
		Short: "Update a batch",
		Long:  "Update the description or source currency of an open batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request := &paymentrails.BatchUpdateRequest{
				Description:    stringFlag(cmd, "description"),
				SourceCurrency: stringFlag(cmd, "source-currency"),
			}

			if *request == (paymentrails.BatchUpdateRequest{}) {
				return constants.ErrNothingToUpdate
			}

			client, err := clientFactory(cmd.Context())
			if err != nil {
				return err
			}

			ok, err := client.Batches().Update(cmd.Context(), args[0], request)
			if err != nil {
				return fmt.Errorf("failed to update batch: %w", err)
			}

			if err := confirmed(ok, ErrUpdateRejected); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated batch %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().String("description", "", "batch description")
	cmd.Flags().String("source-currency", "", "currency the batch is funded in")

	return cmd
}

func newBatchesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete BATCH_ID",
		Short: "Delete a batch",
		Long:  "Delete a batch that has not started processing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFactory(cmd.Context())
			if err != nil {
				return err
			}

			ok, err := client.Batches().Delete(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete batch: %w", err)
			}

			if err := confirmed(ok, ErrDeleteRejected); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted batch %s\n", args[0])

			return nil
		},
	}
}

func newBatchesPaymentsCommand() *cobra.Command {
	var flags paginationFlags

	cmd := &cobra.Command{
		Use:   "payments BATCH_ID",
		Short: "List payments of a batch",
		Long:  "List the payments contained in a batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFactory(cmd.Context())
			if err != nil {
				return err
			}

			batchID := args[0]
			fetch := func(ctx context.Context, params *paymentrails.QueryParams) (*paymentrails.Collection[paymentrails.Payment], error) {
				return client.Batches().Payments(ctx, batchID, params)
			}

			payments, meta, err := listPages(cmd.Context(), fetch, &flags)
			if err != nil {
				return fmt.Errorf("failed to list batch payments: %w", err)
			}

			return displayPayments(cmd.OutOrStdout(), payments, meta, flags.all)
		},
	}

	flags.register(cmd, false)

	return cmd
}

// paymentFlags holds the amount flags shared by add-payment and update-payment.
type paymentFlags struct {
	sourceAmount   string
	targetAmount   string
	targetCurrency string
	memo           string
	externalID     string
}

func (f *paymentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.sourceAmount, "source-amount", "", "amount in the batch source currency")
	cmd.Flags().StringVar(&f.targetAmount, "target-amount", "", "amount the recipient receives")
	cmd.Flags().StringVar(&f.targetCurrency, "target-currency", "", "currency of --target-amount")
	cmd.Flags().StringVar(&f.memo, "memo", "", "memo shown to the recipient")
	cmd.Flags().StringVar(&f.externalID, "external-id", "", "your own identifier for the payment")
}

func (f *paymentFlags) amounts() (source, target *decimal.Decimal, err error) {
	source, err = parseAmount("source-amount", f.sourceAmount)
	if err != nil {
		return nil, nil, err
	}

	target, err = parseAmount("target-amount", f.targetAmount)
	if err != nil {
		return nil, nil, err
	}

	if target != nil && f.targetCurrency == "" {
		return nil, nil, ErrInvalidFlagPair
	}

	return source, target, nil
}

func newBatchesAddPaymentCommand() *cobra.Command {
	var (
		recipientID string
		flags       paymentFlags
	)

	cmd := &cobra.Command{
		Use:   "add-payment BATCH_ID",
		Short: "Add a payment to a batch",
		Long:  "Add a payment for a recipient to an open batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if recipientID == "" {
				return constants.ErrRecipientRequired
			}

			source, target, err := flags.amounts()
			if err != nil {
				return err
			}

			if source == nil && target == nil {
				return constants.ErrAmountRequired
			}

			request := &paymentrails.PaymentCreateRequest{
				Recipient:      paymentrails.Reference{ID: recipientID},
				SourceAmount:   source,
				TargetAmount:   target,
				TargetCurrency: strings.ToUpper(flags.targetCurrency),
				Memo:           flags.memo,
				ExternalID:     flags.externalID,
			}

			client, err := clientFactory(cmd.Context())
			if err != nil {
				return err
			}

			payment, err := client.Batches().CreatePayment(cmd.Context(), args[0], request)
			if err != nil {
				return fmt.Errorf("failed to add payment: %w", err)
			}

			out := cmd.OutOrStdout()

			if ok, err := renderStructured(out, payment); ok || err != nil {
				return err
			}

			_, _ = fmt.Fprintf(out, "Added payment %s (%s) to batch %s\n", payment.ID, payment.Status, args[0])

			return nil
		},
	}

	cmd.Flags().StringVar(&recipientID, "recipient", "", "id of the recipient to pay")
	flags.register(cmd)

	return cmd
}

func newBatchesGetPaymentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get-payment BATCH_ID PAYMENT_ID",
		Short: "Get payment details",
		Long:  "Display a single payment of a batch",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFactory(cmd.Context())
			if err != nil {
				return err
			}

			payment, err := client.Batches().FindPayment(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to get payment: %w", err)
			}

			out := cmd.OutOrStdout()

			if ok, err := renderStructured(out, payment); ok || err != nil {
				return err
			}

			return renderDetails(out, [][2]string{
				{"ID", payment.ID},
				{"Batch", payment.BatchID()},
				{"Recipient", payment.Recipient.ID},
				{"Status", string(payment.Status)},
				{"Source Amount", formatAmount(payment.SourceAmount, payment.SourceCurrency)},
				{"Target Amount", formatAmount(payment.TargetAmount, payment.TargetCurrency)},
				{"Exchange Rate", payment.ExchangeRate.String()},
				{"Fees", payment.Fees.StringFixed(2)},
				{"Memo", payment.Memo},
				{"External ID", payment.ExternalID},
				{"Processed", formatTime(payment.ProcessedAt)},
				{"Created", formatTime(payment.CreatedAt)},
			})
		},
	}
}

func newBatchesUpdatePaymentCommand() *cobra.Command {
	var flags paymentFlags

	cmd := &cobra.Command{
		Use:   "update-payment BATCH_ID PAYMENT_ID",
		Short: "Update a payment",
		Long:  "Update the amount, memo or external id of a payment; only flags you pass are sent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, target, err := flags.amounts()
			if err != nil {
				return err
			}

			request := &paymentrails.PaymentUpdateRequest{
				SourceAmount: source,
				TargetAmount: target,
				Memo:         stringFlag(cmd, "memo"),
				ExternalID:   stringFlag(cmd, "external-id"),
			}

			if currency := stringFlag(cmd, "target-currency"); currency != nil {
				upper := strings.ToUpper(*currency)
				request.TargetCurrency = &upper
			}

			if *request == (paymentrails.PaymentUpdateRequest{}) {
				return constants.ErrNothingToUpdate
			}

			client, err := clientFactory(cmd.Context())
			if err != nil {
				return err
			}

			ok, err := client.Batches().UpdatePayment(cmd.Context(), args[0], args[1], request)
			if err != nil {
				return fmt.Errorf("failed to update payment: %w", err)
			}

			if err := confirmed(ok, ErrUpdateRejected); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated payment %s\n", args[1])

			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func newBatchesDeletePaymentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-payment BATCH_ID PAYMENT_ID",
		Short: "Remove a payment from a batch",
		Long:  "Remove a payment from a batch that has not started processing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFactory(cmd.Context())
			if err != nil {
				return err
			}

			ok, err := client.Batches().DeletePayment(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to delete payment: %w", err)
			}

			if err := confirmed(ok, ErrDeleteRejected); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted payment %s\n", args[1])

			return nil
		},
	}
}

func newBatchesSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary BATCH_ID",
		Short: "Summarize a batch",
		Long:  "Show payment counts and amounts of a batch grouped by payout method",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFactory(cmd.Context())
			if err != nil {
				return err
			}

			summary, err := client.Batches().Summary(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get batch summary: %w", err)
			}

			out := cmd.OutOrStdout()

			if ok, err := renderStructured(out, summary); ok || err != nil {
				return err
			}

			methods := make([]string, 0, len(summary.Methods))
			for method := range summary.Methods {
				methods = append(methods, method)
			}

			sort.Strings(methods)

			table := newTable(out, "Method", "Count", "Value", "Fees", "Net")
			for _, method := range methods {
				m := summary.Methods[method]
				_ = table.Append(method, strconv.Itoa(m.Count), m.Value.StringFixed(2), m.Fees.StringFixed(2), m.Net.StringFixed(2))
			}

			if total := summary.Total; total != nil {
				_ = table.Append("total", strconv.Itoa(total.Count), total.Value.StringFixed(2), total.Fees.StringFixed(2), total.Net.StringFixed(2))
			}

			return renderTable(table)
		},
	}
}

func newBatchesQuoteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "quote BATCH_ID",
		Short: "Generate a quote for a batch",
		Long:  "Lock exchange rates and fees for every payment of a batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFactory(cmd.Context())
			if err != nil {
				return err
			}

			quote, err := client.Batches().GenerateQuote(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to generate quote: %w", err)
			}

			return displayBatch(cmd.OutOrStdout(), &quote.Batch)
		},
	}
}

func newBatchesStartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start BATCH_ID",
		Short: "Start processing a batch",
		Long:  "Send a quoted batch for processing. This moves money and cannot be undone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFactory(cmd.Context())
			if err != nil {
				return err
			}

			result, err := client.Batches().StartProcessing(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to start processing: %w", err)
			}

			return displayBatch(cmd.OutOrStdout(), &result.Batch)
		},
	}
}

// parsePaymentSpec parses RECIPIENT_ID=AMOUNT.
func parsePaymentSpec(spec string) (paymentrails.PaymentCreateRequest, error) {
	recipientID, value, ok := strings.Cut(spec, "=")
	if !ok || strings.TrimSpace(recipientID) == "" {
		return paymentrails.PaymentCreateRequest{}, fmt.Errorf("%w %q: expected RECIPIENT_ID=AMOUNT", ErrInvalidPayment, spec)
	}

	amount, err := parseAmount("payment", strings.TrimSpace(value))
	if err != nil {
		return paymentrails.PaymentCreateRequest{}, err
	}

	if amount == nil {
		return paymentrails.PaymentCreateRequest{}, fmt.Errorf("%w %q: %w", ErrInvalidPayment, spec, constants.ErrAmountRequired)
	}

	return paymentrails.PaymentCreateRequest{
		Recipient:    paymentrails.Reference{ID: strings.TrimSpace(recipientID)},
		SourceAmount: amount,
	}, nil
}

func batchCurrency(batch paymentrails.Batch) string {
	if batch.Currency != "" {
		return batch.Currency
	}

	return batch.SourceCurrency
}

func displayBatch(out io.Writer, batch *paymentrails.Batch) error {
	if ok, err := renderStructured(out, batch); ok || err != nil {
		return err
	}

	return renderDetails(out, [][2]string{
		{"ID", batch.ID},
		{"Description", batch.Description},
		{"Status", string(batch.Status)},
		{"Payments", strconv.Itoa(batch.TotalPayments)},
		{"Amount", formatAmount(batch.Amount, batchCurrency(*batch))},
		{"Quote Expires", formatTime(batch.QuoteExpiredAt)},
		{"Sent", formatTime(batch.SentAt)},
		{"Completed", formatTime(batch.CompletedAt)},
		{"Created", formatTime(batch.CreatedAt)},
		{"Updated", formatTime(batch.UpdatedAt)},
	})
}

func displayPayments(out io.Writer, payments []paymentrails.Payment, meta paymentrails.Meta, all bool) error {
	if ok, err := renderStructured(out, payments); ok || err != nil {
		return err
	}

	if len(payments) == 0 {
		_, _ = fmt.Fprintln(out, "No payments found")

		return nil
	}

	table := newTable(out, "ID", "Batch", "Recipient", "Status", "Source", "Target", "Memo")
	for _, payment := range payments {
		_ = table.Append(payment.ID, payment.BatchID(), payment.Recipient.ID, string(payment.Status),
			formatAmount(payment.SourceAmount, payment.SourceCurrency),
			formatAmount(payment.TargetAmount, payment.TargetCurrency), payment.Memo)
	}

	if err := renderTable(table); err != nil {
		return err
	}

	printPageHint(out, meta, all)

	return nil
}
