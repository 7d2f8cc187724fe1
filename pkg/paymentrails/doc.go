// Package paymentrails provides types, interfaces, and helpers for working with
// the PaymentRails payouts API.
//
// # Overview
//
// The paymentrails package defines the domain types (Recipient,
// RecipientAccount, Batch, Payment, BatchSummary) and the interfaces for the
// resource clients (RecipientsClient, RecipientAccountsClient, BatchesClient).
// A concrete implementation is provided by the prclient package, which wires
// configuration, request signing, and the HTTP transport.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/paymentrails/paymentrails-go/pkg/paymentrails"
//	  "github.com/paymentrails/paymentrails-go/pkg/prclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := prclient.New(ctx, &paymentrails.Config{
//	    APIKey:      "pk_...",
//	    APISecret:   "sk_...",
//	    Environment: "sandbox",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  recipients, err := cli.Recipients().All(ctx, paymentrails.NewQueryParams().WithPageSize(50))
//	  if err != nil { log.Fatal(err) }
//	  _ = recipients
//	}
//
// # Collections and pagination
//
// List operations return a *Collection holding one page of items together with
// the server's page metadata. Collections never fetch on their own; use
// NextPageParams, a PageIterator, or FetchAllPages to walk further pages:
//
//	all, err := paymentrails.FetchAllPages(ctx, cli.Batches().All, nil, paymentrails.DefaultPaginationOptions())
//
// # Errors
//
// Every non-2xx response is a *ResponseError carrying an ErrorKind and the
// field-level errors reported by the server. Use errors.Is with the sentinel
// errors (ErrNotFound, ErrValidation, ...) or the IsNotFound-style helpers to
// branch on them.
//
// # Money
//
// Amounts are decimal.Decimal values from github.com/shopspring/decimal and are
// sent and received as JSON strings.
package paymentrails
