// Copyright (c) 2025 The Lexe developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package node

import (
	"context"

	"github.com/lexe-app/lexe-public-sub005/types"
)

// Client is the capability this core requires from the remote signing and
// settlement backend. Every call is asynchronous and fallible. All reads and
// preflights are safe to retry; the three Pay* submit calls are at-most-once
// and are only idempotent through the attached ClientPaymentId — this core
// never auto-retries them.
type Client interface {
	PreflightPayOnchain(ctx context.Context, req PreflightPayOnchainRequest) (*PreflightPayOnchainResponse, error)
	PreflightPayInvoice(ctx context.Context, req PreflightPayInvoiceRequest) (*PreflightPayInvoiceResponse, error)
	PreflightPayOffer(ctx context.Context, req PreflightPayOfferRequest) (*PreflightPayOfferResponse, error)

	PayOnchain(ctx context.Context, req PayOnchainRequest) (*PayOnchainResponse, error)
	PayInvoice(ctx context.Context, req PayInvoiceRequest) (*PayInvoiceResponse, error)
	PayOffer(ctx context.Context, req PayOfferRequest) (*PayOfferResponse, error)

	ResolveLnurlPay(ctx context.Context, req ResolveLnurlPayRequest) (*ResolveLnurlPayResponse, error)

	GetBalance(ctx context.Context) (types.Balance, error)
	SyncPayments(ctx context.Context) (bool, error)
	ListPayments(ctx context.Context) ([]types.Payment, error)
	FiatRates(ctx context.Context) (types.FiatRates, error)
}

type PreflightPayOnchainRequest struct {
	Cid       types.ClientPaymentId
	Address   string
	AmountSat uint64
}

type PreflightPayOnchainResponse struct {
	Estimates types.FeeEstimates
}

type PreflightPayInvoiceRequest struct {
	Cid types.ClientPaymentId
	// The BOLT11 invoice we want to pay.
	Invoice string
	// The amount we will pay if the invoice is amountless. Ignored when the
	// invoice carries its own amount.
	FallbackAmountSat uint64
}

type PreflightPayInvoiceResponse struct {
	// The routable amount, excluding fees. May exceed the requested amount
	// if intermediate hops forced us up to their htlc minimum.
	AmountSat uint64
	FeesSat   uint64
}

type PreflightPayOfferRequest struct {
	Cid               types.ClientPaymentId
	Offer             string
	FallbackAmountSat uint64
	// An optional payer-supplied note forwarded to the offer's recipient.
	// Distinct from the payer's display name configured at the node.
	PayerNote string
}

type PreflightPayOfferResponse struct {
	AmountSat uint64
	FeesSat   uint64
}

type PayOnchainRequest struct {
	Cid       types.ClientPaymentId
	Address   string
	AmountSat uint64
	Priority  types.ConfirmationPriority
	Note      string
}

type PayOnchainResponse struct {
	Index types.PaymentIndex
	Txid  string
}

type PayInvoiceRequest struct {
	Cid               types.ClientPaymentId
	Invoice           string
	FallbackAmountSat uint64
	Note              string
}

type PayInvoiceResponse struct {
	Index types.PaymentIndex
}

type PayOfferRequest struct {
	Cid               types.ClientPaymentId
	Offer             string
	FallbackAmountSat uint64
	Note              string
	PayerNote         string
}

type PayOfferResponse struct {
	Index types.PaymentIndex
}

type ResolveLnurlPayRequest struct {
	// The LNURL-pay endpoint, raw bech32 form or lightning-address form.
	Lnurl string
	// The amount to request an invoice for. Zero lets the node pick the
	// endpoint's fixed amount if min == max, or return an amountless
	// description otherwise.
	AmountMsat uint64
}

type ResolveLnurlPayResponse struct {
	// The invoice minted by the endpoint's callback. Already validated
	// against the active network by the node.
	Invoice     string
	AmountSat   uint64
	Description string
}
