// Package prclient provides the primary entry point for constructing a
// PaymentRails API client that implements the paymentrails.Client interface.
//
// It validates configuration, resolves the API host for the selected
// environment and wires request signing, the HTTP transport and optional
// Prometheus metrics on top of the resource interfaces and types defined in
// the paymentrails package.
//
// Quick start
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
//
//	  cli, err := prclient.New(ctx, &paymentrails.Config{
//	    APIKey:      "YOUR-API-KEY",
//	    APISecret:   "YOUR-API-SECRET",
//	    Environment: "sandbox",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  recipient, err := cli.Recipients().Find(ctx, "R-4625iLug2GKqKZG2WzAf3e")
//	  if err != nil { log.Fatal(err) }
//	  log.Println(recipient.Email)
//	}
//
// Shortcuts
//
// NewWithKeys and NewSandbox build a client from a key pair for the production
// and sandbox environments respectively. Use New with Config.BaseURL to point
// the client at any other host, such as a local stub server in tests.
//
// Validation
//
// New rejects a config without an API key or secret, with an environment other
// than "production" or "sandbox", or with a BaseURL that is not an absolute URL.
// Such errors wrap ErrInvalidConfig.
package prclient
