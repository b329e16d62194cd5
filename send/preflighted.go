// Copyright (c) 2025 The Lexe developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package send

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lexe-app/lexe-public-sub005/metrics"
	"github.com/lexe-app/lexe-public-sub005/node"
	"github.com/lexe-app/lexe-public-sub005/payuri"
	"github.com/lexe-app/lexe-public-sub005/types"
)

// PreflightedPayment mirrors the PaymentMethod union, each variant carrying
// the original method payload, the user-chosen amount, and the node's fee
// estimate. Immutable once constructed; a different amount means re-running
// preflight.
type PreflightedPayment interface {
	isPreflightedPayment()
	AmountSats() uint64
}

type PreflightedOnchain struct {
	Onchain   payuri.Onchain
	Amount    types.Amount
	Estimates types.FeeEstimates
}

func (PreflightedOnchain) isPreflightedPayment() {}
func (p PreflightedOnchain) AmountSats() uint64  { return p.Amount.Sats() }

type PreflightedInvoice struct {
	Invoice payuri.Invoice
	Amount  types.Amount
	FeesSat uint64
}

func (PreflightedInvoice) isPreflightedPayment() {}
func (p PreflightedInvoice) AmountSats() uint64  { return p.Amount.Sats() }

type PreflightedOffer struct {
	Offer     payuri.Offer
	Amount    types.Amount
	FeesSat   uint64
	PayerNote string
}

func (PreflightedOffer) isPreflightedPayment() {}
func (p PreflightedOffer) AmountSats() uint64  { return p.Amount.Sats() }

// Preflighted is the only state authorized to submit. Pay may be re-invoked
// on the same state after a submit failure: the unchanged ClientPaymentId
// makes the node-side call idempotent. This core never performs that retry
// itself — an unattended automatic retry of a money-movement call is a
// design hazard.
type Preflighted struct {
	cid     types.ClientPaymentId
	client  node.Client
	logger  zerolog.Logger
	payment PreflightedPayment
}

func (s *Preflighted) Payment() PreflightedPayment            { return s.payment }
func (s *Preflighted) ClientPaymentId() types.ClientPaymentId { return s.cid }

// Result is the terminal state: a locally-synthesized pending Payment for
// immediate display plus the node-confirmed canonical index. The caller
// typically follows up with a burst refresh to converge on node state.
type Result struct {
	Payment types.Payment
	Index   types.PaymentIndex
}

// Pay submits the preflighted payment. priority selects the on-chain fee
// tier and is ignored for lightning rails; the fee it selects is a display
// convenience, the authoritative fee is whatever the node actually pays and
// is reconciled by a later sync.
func (s *Preflighted) Pay(ctx context.Context, note string, priority types.ConfirmationPriority) (*Result, error) {
	now := time.Now()

	switch p := s.payment.(type) {
	case PreflightedOnchain:
		resp, err := s.client.PayOnchain(ctx, node.PayOnchainRequest{
			Cid:       s.cid,
			Address:   p.Onchain.Address,
			AmountSat: p.Amount.Sats(),
			Priority:  priority,
			Note:      note,
		})
		if err != nil {
			s.logger.Warn().Err(err).Str("cid", s.cid.String()).Msg("onchain send failed")
			return nil, err
		}
		s.logger.Info().Str("cid", s.cid.String()).Str("txid", resp.Txid).Msg("onchain send submitted")
		metrics.PaymentsSubmitted.WithLabelValues(string(types.PaymentKindOnchain)).Inc()
		return &Result{
			Index: resp.Index,
			Payment: types.Payment{
				Index:     resp.Index,
				Kind:      types.PaymentKindOnchain,
				Status:    types.PaymentStatusPending,
				Direction: types.PaymentDirectionOutbound,
				Txid:      resp.Txid,
				AmountSat: p.Amount.Sats(),
				FeesSat:   p.Estimates.ByPriority(priority).AmountSat,
				Note:      note,
				CreatedAt: now,
			},
		}, nil

	case PreflightedInvoice:
		resp, err := s.client.PayInvoice(ctx, node.PayInvoiceRequest{
			Cid:               s.cid,
			Invoice:           p.Invoice.Bolt11,
			FallbackAmountSat: p.Amount.Sats(),
			Note:              note,
		})
		if err != nil {
			s.logger.Warn().Err(err).Str("cid", s.cid.String()).Msg("invoice send failed")
			return nil, err
		}
		s.logger.Info().Str("cid", s.cid.String()).Str("index", string(resp.Index)).Msg("invoice send submitted")
		metrics.PaymentsSubmitted.WithLabelValues(string(types.PaymentKindInvoice)).Inc()
		return &Result{
			Index: resp.Index,
			Payment: types.Payment{
				Index:     resp.Index,
				Kind:      types.PaymentKindInvoice,
				Status:    types.PaymentStatusPending,
				Direction: types.PaymentDirectionOutbound,
				AmountSat: p.Amount.Sats(),
				FeesSat:   p.FeesSat,
				Note:      note,
				CreatedAt: now,
			},
		}, nil

	case PreflightedOffer:
		resp, err := s.client.PayOffer(ctx, node.PayOfferRequest{
			Cid:               s.cid,
			Offer:             p.Offer.Bolt12,
			FallbackAmountSat: p.Amount.Sats(),
			Note:              note,
			PayerNote:         p.PayerNote,
		})
		if err != nil {
			s.logger.Warn().Err(err).Str("cid", s.cid.String()).Msg("offer send failed")
			return nil, err
		}
		s.logger.Info().Str("cid", s.cid.String()).Str("index", string(resp.Index)).Msg("offer send submitted")
		metrics.PaymentsSubmitted.WithLabelValues(string(types.PaymentKindOffer)).Inc()
		return &Result{
			Index: resp.Index,
			Payment: types.Payment{
				Index:     resp.Index,
				Kind:      types.PaymentKindOffer,
				Status:    types.PaymentStatusPending,
				Direction: types.PaymentDirectionOutbound,
				AmountSat: p.Amount.Sats(),
				FeesSat:   p.FeesSat,
				Note:      note,
				CreatedAt: now,
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown preflighted payment %T", s.payment)
	}
}
