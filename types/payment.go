// Copyright (c) 2025 The Lexe developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package types

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// ClientPaymentId is a 32-byte client-generated idempotency token. It is
// created exactly once per send session and attached to every preflight and
// submit request in that session so the backend can deduplicate retried
// submissions.
type ClientPaymentId [32]byte

// NewClientPaymentId generates a fresh random idempotency token.
func NewClientPaymentId() (ClientPaymentId, error) {
	var cid ClientPaymentId
	if _, err := rand.Read(cid[:]); err != nil {
		return ClientPaymentId{}, fmt.Errorf("failed to generate client payment id: %w", err)
	}
	return cid, nil
}

func (c ClientPaymentId) String() string {
	return hex.EncodeToString(c[:])
}

// PaymentIndex is the backend-assigned canonical payment identifier. It is
// opaque to the client but orders payments by creation time.
type PaymentIndex string

type PaymentKind string

const (
	PaymentKindOnchain PaymentKind = "onchain"
	PaymentKindInvoice PaymentKind = "invoice"
	PaymentKindOffer   PaymentKind = "offer"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type PaymentDirection string

const (
	PaymentDirectionInbound  PaymentDirection = "inbound"
	PaymentDirectionOutbound PaymentDirection = "outbound"
)

// Payment is one entry in the wallet's payment history. Payments synthesized
// locally right after a submit carry best-effort amount/fee fields until the
// next sync reconciles them with the backend's authoritative record.
type Payment struct {
	Index     PaymentIndex
	Kind      PaymentKind
	Status    PaymentStatus
	Direction PaymentDirection
	Txid      string
	AmountSat uint64
	FeesSat   uint64
	Note      string
	CreatedAt time.Time
}

// ConfirmationPriority selects an on-chain fee tier, trading cost for
// confirmation speed.
type ConfirmationPriority string

const (
	PriorityHigh       ConfirmationPriority = "high"
	PriorityNormal     ConfirmationPriority = "normal"
	PriorityBackground ConfirmationPriority = "background"
)

type FeeEstimate struct {
	AmountSat uint64
}

// FeeEstimates holds the backend's three on-chain fee tiers. High is optional;
// the fee market may have no urgent tier, and we don't want to block the user
// from sending if they only have enough for a normal tx fee.
type FeeEstimates struct {
	High       *FeeEstimate
	Normal     FeeEstimate
	Background FeeEstimate
}

// ByPriority returns the estimate for the given tier, with a missing High
// tier falling back to Normal.
func (f FeeEstimates) ByPriority(p ConfirmationPriority) FeeEstimate {
	switch p {
	case PriorityHigh:
		if f.High != nil {
			return *f.High
		}
		return f.Normal
	case PriorityBackground:
		return f.Background
	default:
		return f.Normal
	}
}

// Balance is a snapshot of the wallet's funds as reported by the node.
type Balance struct {
	LightningSat uint64
	OnchainSat   uint64
}

// SpendableSat is the top-level user-visible balance: lightning plus on-chain.
func (b Balance) SpendableSat() uint64 {
	return b.LightningSat + b.OnchainSat
}

// FiatRates is a table of BTC prices keyed by fiat currency code.
type FiatRates struct {
	Timestamp time.Time
	Rates     map[string]float64
}

func (r FiatRates) Get(code string) (float64, bool) {
	rate, ok := r.Rates[code]
	return rate, ok
}
