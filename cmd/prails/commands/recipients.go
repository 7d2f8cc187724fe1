package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/paymentrails/paymentrails-go/internal/constants"
	"github.com/paymentrails/paymentrails-go/pkg/paymentrails"
	"github.com/spf13/cobra"
)

// NewRecipientsCommand creates the recipients command group.
func NewRecipientsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "recipients",
		Aliases: []string{"recipient", "r"},
		Short:   "Manage recipients",
		Long:    "List, create, update and delete PaymentRails recipients",
	}

	cmd.AddCommand(newRecipientsListCommand())
	cmd.AddCommand(newRecipientsGetCommand())
	cmd.AddCommand(newRecipientsCreateCommand())
	cmd.AddCommand(newRecipientsUpdateCommand())
	cmd.AddCommand(newRecipientsDeleteCommand())
	cmd.AddCommand(newRecipientsPaymentsCommand())

	return cmd
}

func newRecipientsListCommand() *cobra.Command {
	var flags paginationFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recipients",
		Long:  "List recipients, optionally filtered by a search term or attribute filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFactory(cmd.Context())
			if err != nil {
				return err
			}

			recipients, meta, err := listPages(cmd.Context(), client.Recipients().All, &flags)
			if err != nil {
				return fmt.Errorf("failed to list recipients: %w", err)
			}

			out := cmd.OutOrStdout()

			if ok, err := renderStructured(out, recipients); ok || err != nil {
				return err
			}

			if len(recipients) == 0 {
				_, _ = fmt.Fprintln(out, "No recipients found")

				return nil
			}

			table := newTable(out, "ID", "Name", "Email", "Type", "Status", "Created")
			for _, recipient := range recipients {
				_ = table.Append(recipient.ID, recipientName(recipient), recipient.Email,
					string(recipient.Type), string(recipient.Status), formatTime(recipient.CreatedAt))
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

func newRecipientsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get RECIPIENT_ID",
		Short: "Get recipient details",
		Long:  "Display a recipient together with its payout accounts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFactory(cmd.Context())
			if err != nil {
				return err
			}

			recipient, err := client.Recipients().Find(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get recipient: %w", err)
			}

			out := cmd.OutOrStdout()

			if ok, err := renderStructured(out, recipient); ok || err != nil {
				return err
			}

			return displayRecipient(out, recipient)
		},
	}
}

// recipientFlags holds the attribute flags shared by create and update.
type recipientFlags struct {
	recipientType string
	firstName     string
	lastName      string
	name          string
	email         string
	referenceID   string
	language      string
	street1       string
	street2       string
	city          string
	postalCode    string
	country       string
	region        string
	phone         string
}

func (f *recipientFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.recipientType, "type", string(paymentrails.RecipientTypeIndividual), "recipient type (individual or business)")
	cmd.Flags().StringVar(&f.firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&f.lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&f.name, "name", "", "business name")
	cmd.Flags().StringVar(&f.email, "email", "", "email address")
	cmd.Flags().StringVar(&f.referenceID, "reference-id", "", "your own identifier for the recipient")
	cmd.Flags().StringVar(&f.language, "language", "", "preferred language (e.g. en)")
	cmd.Flags().StringVar(&f.street1, "street1", "", "address line 1")
	cmd.Flags().StringVar(&f.street2, "street2", "", "address line 2")
	cmd.Flags().StringVar(&f.city, "city", "", "city")
	cmd.Flags().StringVar(&f.postalCode, "postal-code", "", "postal code")
	cmd.Flags().StringVar(&f.country, "country", "", "ISO 3166 country code")
	cmd.Flags().StringVar(&f.region, "region", "", "region or state code")
	cmd.Flags().StringVar(&f.phone, "phone", "", "phone number")
}

// address collects the address flags the user actually set.
func (f *recipientFlags) address(cmd *cobra.Command) *paymentrails.AddressRequest {
	address := &paymentrails.AddressRequest{
		Street1:    stringFlag(cmd, "street1"),
		Street2:    stringFlag(cmd, "street2"),
		City:       stringFlag(cmd, "city"),
		PostalCode: stringFlag(cmd, "postal-code"),
		Country:    stringFlag(cmd, "country"),
		Region:     stringFlag(cmd, "region"),
		Phone:      stringFlag(cmd, "phone"),
	}

	if *address == (paymentrails.AddressRequest{}) {
		return nil
	}

	return address
}

func newRecipientsCreateCommand() *cobra.Command {
	var flags recipientFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a recipient",
		Long:  "Create a new individual or business recipient",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFactory(cmd.Context())
			if err != nil {
				return err
			}

			request := &paymentrails.RecipientCreateRequest{
				Type:        paymentrails.RecipientType(strings.ToLower(flags.recipientType)),
				FirstName:   flags.firstName,
				LastName:    flags.lastName,
				Name:        flags.name,
				Email:       flags.email,
				ReferenceID: flags.referenceID,
				Language:    flags.language,
				Address:     flags.address(cmd),
			}

			recipient, err := client.Recipients().Create(cmd.Context(), request)
			if err != nil {
				return fmt.Errorf("failed to create recipient: %w", err)
			}

			out := cmd.OutOrStdout()

			if ok, err := renderStructured(out, recipient); ok || err != nil {
				return err
			}

			_, _ = fmt.Fprintf(out, "Created recipient %s (%s)\n", recipient.ID, recipient.Status)

			return nil
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newRecipientsUpdateCommand() *cobra.Command {
	var flags recipientFlags

	cmd := &cobra.Command{
		Use:   "update RECIPIENT_ID",
		Short: "Update a recipient",
		Long:  "Update the attributes of a recipient; only flags you pass are sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request := &paymentrails.RecipientUpdateRequest{
				FirstName:   stringFlag(cmd, "first-name"),
				LastName:    stringFlag(cmd, "last-name"),
				Name:        stringFlag(cmd, "name"),
				Email:       stringFlag(cmd, "email"),
				ReferenceID: stringFlag(cmd, "reference-id"),
				Language:    stringFlag(cmd, "language"),
				Address:     flags.address(cmd),
			}

			if cmd.Flags().Changed("type") {
				recipientType := paymentrails.RecipientType(strings.ToLower(flags.recipientType))
				request.Type = &recipientType
			}

			if *request == (paymentrails.RecipientUpdateRequest{}) {
				return constants.ErrNothingToUpdate
			}

			client, err := clientFactory(cmd.Context())
			if err != nil {
				return err
			}

			ok, err := client.Recipients().Update(cmd.Context(), args[0], request)
			if err != nil {
				return fmt.Errorf("failed to update recipient: %w", err)
			}

			if err := confirmed(ok, ErrUpdateRejected); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated recipient %s\n", args[0])

			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func newRecipientsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete RECIPIENT_ID",
		Short: "Delete a recipient",
		Long:  "Delete a recipient; the API archives it rather than removing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFactory(cmd.Context())
			if err != nil {
				return err
			}

			ok, err := client.Recipients().Delete(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete recipient: %w", err)
			}

			if err := confirmed(ok, ErrDeleteRejected); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted recipient %s\n", args[0])

			return nil
		},
	}
}

func newRecipientsPaymentsCommand() *cobra.Command {
	var flags paginationFlags

	cmd := &cobra.Command{
		Use:   "payments RECIPIENT_ID",
		Short: "List payments of a recipient",
		Long:  "List every payment made to a recipient across batches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFactory(cmd.Context())
			if err != nil {
				return err
			}

			recipientID := args[0]
			fetch := func(ctx context.Context, params *paymentrails.QueryParams) (*paymentrails.Collection[paymentrails.Payment], error) {
				return client.Recipients().Payments(ctx, recipientID, params)
			}

			payments, meta, err := listPages(cmd.Context(), fetch, &flags)
			if err != nil {
				return fmt.Errorf("failed to list recipient payments: %w", err)
			}

			return displayPayments(cmd.OutOrStdout(), payments, meta, flags.all)
		},
	}

	flags.register(cmd, false)

	return cmd
}

func recipientName(recipient paymentrails.Recipient) string {
	if recipient.Name != "" {
		return recipient.Name
	}

	name := strings.TrimSpace(recipient.FirstName + " " + recipient.LastName)
	if name == "" {
		return constants.NotAvailable
	}

	return name
}

func displayRecipient(out io.Writer, recipient *paymentrails.Recipient) error {
	rows := [][2]string{
		{"ID", recipient.ID},
		{"Name", recipientName(*recipient)},
		{"Email", recipient.Email},
		{"Type", string(recipient.Type)},
		{"Status", string(recipient.Status)},
		{"Reference ID", recipient.ReferenceID},
		{"Compliance", recipient.ComplianceStatus},
		{"Route Type", recipient.RouteType},
		{"Created", formatTime(recipient.CreatedAt)},
		{"Updated", formatTime(recipient.UpdatedAt)},
	}

	if address := recipient.Address; address != nil {
		parts := []string{}
		for _, part := range []string{address.Street1, address.Street2, address.City, address.Region, address.PostalCode, address.Country} {
			if part != "" {
				parts = append(parts, part)
			}
		}

		rows = append(rows, [2]string{"Address", strings.Join(parts, ", ")}, [2]string{"Phone", address.Phone})
	}

	if err := renderDetails(out, rows); err != nil {
		return err
	}

	if len(recipient.Accounts) == 0 {
		return nil
	}

	_, _ = fmt.Fprintln(out, "\nAccounts:")

	return displayAccounts(out, recipient.Accounts)
}
