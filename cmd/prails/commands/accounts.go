package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/paymentrails/paymentrails-go/internal/constants"
	"github.com/paymentrails/paymentrails-go/pkg/paymentrails"
	"github.com/spf13/cobra"
)

// NewAccountsCommand creates the recipient accounts command group.
func NewAccountsCommand() *cobra.Command {
	var recipientID string

	cmd := &cobra.Command{
		Use:     "accounts",
		Aliases: []string{"account"},
		Short:   "Manage recipient payout accounts",
		Long:    "List, create, update and delete the payout accounts of a recipient",
	}

	cmd.PersistentFlags().StringVar(&recipientID, "recipient", "", "id of the recipient owning the accounts")

	cmd.AddCommand(newAccountsListCommand(&recipientID))
	cmd.AddCommand(newAccountsGetCommand(&recipientID))
	cmd.AddCommand(newAccountsCreateCommand(&recipientID))
	cmd.AddCommand(newAccountsUpdateCommand(&recipientID))
	cmd.AddCommand(newAccountsDeleteCommand(&recipientID))

	return cmd
}

func newAccountsListCommand(recipientID *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts of a recipient",
		Long:  "List every payout account of a recipient in creation order",
		RunE: func(cmd *cobra.Command, args []string) error {
			if *recipientID == "" {
				return constants.ErrRecipientRequired
			}

			client, err := clientFactory(cmd.Context())
			if err != nil {
				return err
			}

			accounts, err := client.RecipientAccounts().All(cmd.Context(), *recipientID)
			if err != nil {
				return fmt.Errorf("failed to list accounts: %w", err)
			}

			out := cmd.OutOrStdout()

			if ok, err := renderStructured(out, accounts.Items()); ok || err != nil {
				return err
			}

			if accounts.Len() == 0 {
				_, _ = fmt.Fprintln(out, "No accounts found")

				return nil
			}

			return displayAccounts(out, accounts.Items())
		},
	}
}

func newAccountsGetCommand(recipientID *string) *cobra.Command {
	return &cobra.Command{
		Use:   "get ACCOUNT_ID",
		Short: "Get account details",
		Long:  "Display a single payout account of a recipient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if *recipientID == "" {
				return constants.ErrRecipientRequired
			}

			client, err := clientFactory(cmd.Context())
			if err != nil {
				return err
			}

			account, err := client.RecipientAccounts().Find(cmd.Context(), *recipientID, args[0])
			if err != nil {
				return fmt.Errorf("failed to get account: %w", err)
			}

			out := cmd.OutOrStdout()

			if ok, err := renderStructured(out, account); ok || err != nil {
				return err
			}

			return renderDetails(out, [][2]string{
				{"ID", account.ID},
				{"Recipient", *recipientID},
				{"Primary", strconv.FormatBool(account.Primary)},
				{"Type", account.Type},
				{"Currency", account.Currency},
				{"Country", account.Country},
				{"Bank", account.BankName},
				{"IBAN", account.IBAN},
				{"Account Number", account.AccountNum},
				{"Bank ID", account.BankID},
				{"Branch ID", account.BranchID},
				{"SWIFT/BIC", account.SwiftBIC},
				{"Holder", account.AccountHolderName},
				{"Email", account.EmailAddress},
			})
		},
	}
}

func newAccountsCreateCommand(recipientID *string) *cobra.Command {
	var (
		request paymentrails.RecipientAccountCreateRequest
		primary bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add an account to a recipient",
		Long:  "Add a bank transfer or PayPal payout account to a recipient",
		RunE: func(cmd *cobra.Command, args []string) error {
			if *recipientID == "" {
				return constants.ErrRecipientRequired
			}

			client, err := clientFactory(cmd.Context())
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("primary") {
				request.Primary = &primary
			}

			account, err := client.RecipientAccounts().Create(cmd.Context(), *recipientID, &request)
			if err != nil {
				return fmt.Errorf("failed to create account: %w", err)
			}

			out := cmd.OutOrStdout()

			if ok, err := renderStructured(out, account); ok || err != nil {
				return err
			}

			_, _ = fmt.Fprintf(out, "Created account %s for recipient %s\n", account.ID, *recipientID)

			return nil
		},
	}

	cmd.Flags().StringVar(&request.Type, "type", "bank-transfer", "account type (bank-transfer or paypal)")
	cmd.Flags().StringVar(&request.Currency, "currency", "", "payout currency")
	cmd.Flags().BoolVar(&primary, "primary", false, "make this the primary account")
	cmd.Flags().StringVar(&request.Country, "country", "", "bank country")
	cmd.Flags().StringVar(&request.IBAN, "iban", "", "IBAN")
	cmd.Flags().StringVar(&request.AccountNum, "account-num", "", "bank account number")
	cmd.Flags().StringVar(&request.BankID, "bank-id", "", "bank identifier (routing number)")
	cmd.Flags().StringVar(&request.BranchID, "branch-id", "", "branch identifier")
	cmd.Flags().StringVar(&request.SwiftBIC, "swift-bic", "", "SWIFT/BIC code")
	cmd.Flags().StringVar(&request.AccountHolderName, "holder", "", "account holder name")
	cmd.Flags().StringVar(&request.EmailAddress, "paypal-email", "", "PayPal email address")
	_ = cmd.MarkFlagRequired("currency")

	return cmd
}

func newAccountsUpdateCommand(recipientID *string) *cobra.Command {
	var primary bool

	cmd := &cobra.Command{
		Use:   "update ACCOUNT_ID",
		Short: "Update an account",
		Long:  "Update a payout account; only flags you pass are sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if *recipientID == "" {
				return constants.ErrRecipientRequired
			}

			request := &paymentrails.RecipientAccountUpdateRequest{
				Currency:          stringFlag(cmd, "currency"),
				IBAN:              stringFlag(cmd, "iban"),
				AccountNum:        stringFlag(cmd, "account-num"),
				BankID:            stringFlag(cmd, "bank-id"),
				BranchID:          stringFlag(cmd, "branch-id"),
				SwiftBIC:          stringFlag(cmd, "swift-bic"),
				AccountHolderName: stringFlag(cmd, "holder"),
				EmailAddress:      stringFlag(cmd, "paypal-email"),
			}

			if cmd.Flags().Changed("primary") {
				request.Primary = &primary
			}

			if *request == (paymentrails.RecipientAccountUpdateRequest{}) {
				return constants.ErrNothingToUpdate
			}

			client, err := clientFactory(cmd.Context())
			if err != nil {
				return err
			}

			ok, err := client.RecipientAccounts().Update(cmd.Context(), *recipientID, args[0], request)
			if err != nil {
				return fmt.Errorf("failed to update account: %w", err)
			}

			if err := confirmed(ok, ErrUpdateRejected); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated account %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().String("currency", "", "payout currency")
	cmd.Flags().BoolVar(&primary, "primary", false, "make this the primary account")
	cmd.Flags().String("iban", "", "IBAN")
	cmd.Flags().String("account-num", "", "bank account number")
	cmd.Flags().String("bank-id", "", "bank identifier (routing number)")
	cmd.Flags().String("branch-id", "", "branch identifier")
	cmd.Flags().String("swift-bic", "", "SWIFT/BIC code")
	cmd.Flags().String("holder", "", "account holder name")
	cmd.Flags().String("paypal-email", "", "PayPal email address")

	return cmd
}

func newAccountsDeleteCommand(recipientID *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ACCOUNT_ID",
		Short: "Delete an account",
		Long:  "Remove a payout account from a recipient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if *recipientID == "" {
				return constants.ErrRecipientRequired
			}

			client, err := clientFactory(cmd.Context())
			if err != nil {
				return err
			}

			ok, err := client.RecipientAccounts().Delete(cmd.Context(), *recipientID, args[0])
			if err != nil {
				return fmt.Errorf("failed to delete account: %w", err)
			}

			if err := confirmed(ok, ErrDeleteRejected); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted account %s\n", args[0])

			return nil
		},
	}
}

func displayAccounts(out io.Writer, accounts []paymentrails.RecipientAccount) error {
	table := newTable(out, "ID", "Primary", "Type", "Currency", "Country", "Destination")

	for _, account := range accounts {
		destination := account.EmailAddress
		switch {
		case account.IBAN != "":
			destination = account.IBAN
		case account.AccountNum != "":
			destination = account.AccountNum
		}

		if destination == "" {
			destination = constants.NotAvailable
		}

		_ = table.Append(account.ID, strconv.FormatBool(account.Primary), account.Type, account.Currency, account.Country, destination)
	}

	return renderTable(table)
}
