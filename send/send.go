// Copyright (c) 2025 The Lexe developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

// Package send drives one outbound payment through the sequence
// NeedUri → NeedAmount → Preflighted → Result. Each state owns everything it
// needs to compute the next state and hands ownership forward; transitions
// within a session are strictly sequential and sessions share nothing, so
// concurrent sessions cannot interfere.
package send

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/rs/zerolog"

	"github.com/lexe-app/lexe-public-sub005/node"
	"github.com/lexe-app/lexe-public-sub005/payuri"
	"github.com/lexe-app/lexe-public-sub005/types"
)

// NeedUri is the initial state: the user has opened the send flow but not yet
// supplied a payment string. The session's ClientPaymentId is generated here,
// exactly once, and rides along unchanged through every preflight and submit
// request of this session.
type NeedUri struct {
	network *chaincfg.Params
	balance types.Balance
	cid     types.ClientPaymentId
	client  node.Client
	logger  zerolog.Logger
}

// NewSession opens a fresh send flow over the given balance snapshot.
func NewSession(network *chaincfg.Params, balance types.Balance, client node.Client, logger zerolog.Logger) (*NeedUri, error) {
	cid, err := types.NewClientPaymentId()
	if err != nil {
		return nil, err
	}
	return &NeedUri{
		network: network,
		balance: balance,
		cid:     cid,
		client:  client,
		logger:  logger,
	}, nil
}

func (s *NeedUri) ClientPaymentId() types.ClientPaymentId { return s.cid }
func (s *NeedUri) Balance() types.Balance                 { return s.balance }

// Resolve parses and resolves the raw payment string. On success exactly one
// of the returned states is non-nil: NeedAmount when the user still has to
// choose an amount, or Preflighted when the method embedded a fixed amount
// and the immediate preflight succeeded. Parse and network-mismatch failures
// leave the flow conceptually in NeedUri; no state object is produced.
func (s *NeedUri) Resolve(ctx context.Context, uriStr string) (*NeedAmount, *Preflighted, error) {
	method, err := payuri.ResolveBest(ctx, s.client, s.network, uriStr)
	if err != nil {
		s.logger.Debug().Err(err).Msg("failed to resolve payment code")
		return nil, nil, err
	}

	next := &NeedAmount{
		network: s.network,
		balance: s.balance,
		cid:     s.cid,
		client:  s.client,
		logger:  s.logger,
		method:  method,
	}

	if amount, ok := next.EmbeddedAmount(); ok {
		preflighted, err := next.Preflight(ctx, amount, "")
		if err != nil {
			return nil, nil, err
		}
		return nil, preflighted, nil
	}
	return next, nil, nil
}

// NeedAmount holds a resolved payment method waiting for the user to choose
// an amount. Preflight may be called repeatedly with different amounts; each
// failure leaves this state untouched.
type NeedAmount struct {
	network *chaincfg.Params
	balance types.Balance
	cid     types.ClientPaymentId
	client  node.Client
	logger  zerolog.Logger
	method  payuri.PaymentMethod
}

func (s *NeedAmount) Method() payuri.PaymentMethod           { return s.method }
func (s *NeedAmount) ClientPaymentId() types.ClientPaymentId { return s.cid }
func (s *NeedAmount) Balance() types.Balance                 { return s.balance }

// EmbeddedAmount returns the amount fixed inside the payment method, if any
// (e.g. an invoice with an embedded amount). NeedUri uses this to shortcut
// straight to preflight.
func (s *NeedAmount) EmbeddedAmount() (types.Amount, bool) {
	if a := payuri.MethodAmount(s.method); a != nil {
		return *a, true
	}
	return 0, false
}

// Preflight asks the node to validate affordability and routability for the
// chosen amount and returns an immutable ready-to-pay snapshot. payerNote is
// only meaningful for offers; it is forwarded to the recipient and is
// distinct from the payer's display name.
func (s *NeedAmount) Preflight(ctx context.Context, amount types.Amount, payerNote string) (*Preflighted, error) {
	var payment PreflightedPayment

	switch m := s.method.(type) {
	case payuri.Onchain:
		resp, err := s.client.PreflightPayOnchain(ctx, node.PreflightPayOnchainRequest{
			Cid:       s.cid,
			Address:   m.Address,
			AmountSat: amount.Sats(),
		})
		if err != nil {
			s.logger.Debug().Err(err).Msg("onchain preflight failed")
			return nil, err
		}
		payment = PreflightedOnchain{
			Onchain:   m,
			Amount:    amount,
			Estimates: resp.Estimates,
		}

	case payuri.Invoice:
		resp, err := s.client.PreflightPayInvoice(ctx, node.PreflightPayInvoiceRequest{
			Cid:               s.cid,
			Invoice:           m.Bolt11,
			FallbackAmountSat: amount.Sats(),
		})
		if err != nil {
			s.logger.Debug().Err(err).Msg("invoice preflight failed")
			return nil, err
		}
		payment = PreflightedInvoice{
			Invoice: m,
			Amount:  amount,
			FeesSat: resp.FeesSat,
		}

	case payuri.Offer:
		resp, err := s.client.PreflightPayOffer(ctx, node.PreflightPayOfferRequest{
			Cid:               s.cid,
			Offer:             m.Bolt12,
			FallbackAmountSat: amount.Sats(),
			PayerNote:         payerNote,
		})
		if err != nil {
			s.logger.Debug().Err(err).Msg("offer preflight failed")
			return nil, err
		}
		payment = PreflightedOffer{
			Offer:     m,
			Amount:    amount,
			FeesSat:   resp.FeesSat,
			PayerNote: payerNote,
		}

	default:
		return nil, fmt.Errorf("unknown payment method %T", s.method)
	}

	s.logger.Info().
		Str("cid", s.cid.String()).
		Uint64("amount_sat", amount.Sats()).
		Str("kind", string(payuri.MethodKind(s.method))).
		Msg("preflight ok")

	return &Preflighted{
		cid:     s.cid,
		client:  s.client,
		logger:  s.logger,
		payment: payment,
	}, nil
}
