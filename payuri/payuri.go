// Copyright (c) 2025 The Lexe developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

// Package payuri parses and resolves raw user payment strings (scanned QR
// codes, pasted codes, tapped bitcoin:/lightning: links) into the payment
// methods the send flow knows how to pay.
package payuri

import (
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/lightningnetwork/lnd/zpay32"

	"github.com/lexe-app/lexe-public-sub005/types"
)

// Refuse to parse any input longer than this many KiB.
const maxInputLenKiB = 8

// PaymentMethod is a closed union over the supported payment rails. Exactly
// one variant is active; dispatch is via exhaustive type switch so a new rail
// is a compile-time-visible change.
type PaymentMethod interface {
	isPaymentMethod()
}

// Onchain is a network-validated Bitcoin address plus optional BIP321 extras.
type Onchain struct {
	Address string
	Amount  *types.Amount
	Label   string
	Message string
}

func (Onchain) isPaymentMethod() {}

// Invoice is a decoded BOLT11 invoice. The raw Bolt11 string is what gets
// sent to the node; the decoded fields are for display and amount shortcuts.
type Invoice struct {
	Bolt11      string
	Amount      *types.Amount
	Description string
	PaymentHash string
	PayeePubkey string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

func (Invoice) isPaymentMethod() {}

// Offer is a BOLT12 offer. Offers are opaque to this client beyond a syntax
// check; their amount and chain are decoded and validated by the node at
// preflight, so the user is always asked for an amount first.
type Offer struct {
	Bolt12 string
}

func (Offer) isPaymentMethod() {}

// MethodKind maps a payment method variant to its payment-record kind.
func MethodKind(m PaymentMethod) types.PaymentKind {
	switch m.(type) {
	case Onchain:
		return types.PaymentKindOnchain
	case Invoice:
		return types.PaymentKindInvoice
	case Offer:
		return types.PaymentKindOffer
	default:
		panic(fmt.Sprintf("unknown payment method %T", m))
	}
}

// MethodAmount returns the amount embedded in the method, if any.
func MethodAmount(m PaymentMethod) *types.Amount {
	switch v := m.(type) {
	case Onchain:
		return v.Amount
	case Invoice:
		return v.Amount
	case Offer:
		// Opaque until the node decodes it at preflight.
		return nil
	default:
		panic(fmt.Sprintf("unknown payment method %T", m))
	}
}

// ParsedUri is the decoded form of a raw payment string. A single string may
// carry several ways to pay: BIP321 URIs can bundle an onchain address with a
// lightning invoice and/or offer. An Lnurl entry means the string needs a
// further network exchange before it becomes payable.
type ParsedUri struct {
	Onchain *Onchain
	Invoice *Invoice
	Offer   *Offer
	Lnurl   string
}

// Parse decodes a raw payment string against the active network. All
// client-side validation (syntax, network match) happens here; anything in
// the returned ParsedUri is safe to hand to the send flow.
func Parse(network *chaincfg.Params, s string) (*ParsedUri, error) {
	if len(s) > maxInputLenKiB<<10 {
		return nil, fmt.Errorf("payment code is too long to parse (>%d KiB)", maxInputLenKiB)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty payment code")
	}

	// QR codes often encode in all-caps for the smaller alphanumeric mode.
	if s == strings.ToUpper(s) {
		s = strings.ToLower(s)
	}
	lower := strings.ToLower(s)

	switch {
	case strings.HasPrefix(lower, "bitcoin:"):
		return parseBip321(network, s[len("bitcoin:"):])

	case strings.HasPrefix(lower, "lightning:"):
		body := s[len("lightning:"):]
		if strings.HasPrefix(strings.ToLower(body), "lnurl1") {
			return &ParsedUri{Lnurl: body}, nil
		}
		return parseLightningBody(network, body)

	case strings.HasPrefix(lower, "lnurlp://"):
		return &ParsedUri{Lnurl: s}, nil

	case strings.HasPrefix(lower, "lnurl1"):
		return &ParsedUri{Lnurl: s}, nil

	case looksLikeLightningAddress(s):
		return &ParsedUri{Lnurl: s}, nil

	case strings.HasPrefix(lower, "lno1"):
		offer, err := parseOffer(s)
		if err != nil {
			return nil, err
		}
		return &ParsedUri{Offer: offer}, nil

	case invoiceHrpPrefix(lower):
		invoice, err := decodeInvoice(network, s)
		if err != nil {
			return nil, err
		}
		return &ParsedUri{Invoice: invoice}, nil
	}

	// Last resort: try it as a bare address. Legacy base58 addresses have no
	// recognizable prefix, so we just attempt the decode.
	onchain, err := parseAddress(network, s)
	if err != nil {
		return nil, fmt.Errorf("unrecognized payment code")
	}
	return &ParsedUri{Onchain: onchain}, nil
}

// parseBip321 handles the body of a "bitcoin:" URI: an optional address plus
// query params (amount, label, message, and the lightning/lno payment rails).
func parseBip321(network *chaincfg.Params, body string) (*ParsedUri, error) {
	addrPart := body
	var query string
	if i := strings.IndexByte(body, '?'); i >= 0 {
		addrPart, query = body[:i], body[i+1:]
	}

	params, err := url.ParseQuery(query)
	if err != nil {
		return nil, fmt.Errorf("malformed bitcoin: URI query")
	}

	parsed := &ParsedUri{}

	if addrPart != "" {
		onchain, err := parseAddress(network, addrPart)
		if err != nil {
			return nil, err
		}
		onchain.Label = params.Get("label")
		onchain.Message = params.Get("message")
		if amtStr := params.Get("amount"); amtStr != "" {
			amount, err := parseBtcAmount(amtStr)
			if err != nil {
				return nil, err
			}
			onchain.Amount = &amount
		}
		parsed.Onchain = onchain
	}

	if bolt11 := params.Get("lightning"); bolt11 != "" {
		invoice, err := decodeInvoice(network, bolt11)
		if err != nil {
			return nil, err
		}
		parsed.Invoice = invoice
	}
	if bolt12 := params.Get("lno"); bolt12 != "" {
		offer, err := parseOffer(bolt12)
		if err != nil {
			return nil, err
		}
		parsed.Offer = offer
	}

	if parsed.Onchain == nil && parsed.Invoice == nil && parsed.Offer == nil {
		return nil, fmt.Errorf("bitcoin: URI contains nothing payable")
	}
	return parsed, nil
}

func parseLightningBody(network *chaincfg.Params, body string) (*ParsedUri, error) {
	lower := strings.ToLower(body)
	if strings.HasPrefix(lower, "lno1") {
		offer, err := parseOffer(body)
		if err != nil {
			return nil, err
		}
		return &ParsedUri{Offer: offer}, nil
	}
	invoice, err := decodeInvoice(network, body)
	if err != nil {
		return nil, err
	}
	return &ParsedUri{Invoice: invoice}, nil
}

func parseAddress(network *chaincfg.Params, s string) (*Onchain, error) {
	addr, err := btcutil.DecodeAddress(s, network)
	if err != nil {
		return nil, fmt.Errorf("invalid bitcoin address: %v", err)
	}
	if !addr.IsForNet(network) {
		return nil, fmt.Errorf("bitcoin address is for a different network than %s", network.Name)
	}
	return &Onchain{Address: addr.EncodeAddress()}, nil
}

func decodeInvoice(network *chaincfg.Params, bolt11 string) (*Invoice, error) {
	inv, err := zpay32.Decode(bolt11, network)
	if err != nil {
		return nil, fmt.Errorf("invalid lightning invoice: %v", err)
	}

	invoice := &Invoice{
		Bolt11:    bolt11,
		CreatedAt: inv.Timestamp,
		ExpiresAt: inv.Timestamp.Add(inv.Expiry()),
	}
	if inv.MilliSat != nil {
		amount := types.Msats(uint64(*inv.MilliSat))
		invoice.Amount = &amount
	}
	if inv.Description != nil {
		invoice.Description = *inv.Description
	}
	if inv.PaymentHash != nil {
		invoice.PaymentHash = hex.EncodeToString(inv.PaymentHash[:])
	}
	if inv.Destination != nil {
		invoice.PayeePubkey = hex.EncodeToString(inv.Destination.SerializeCompressed())
	}
	return invoice, nil
}

const bech32Charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// parseOffer syntax-checks a BOLT12 offer. Full TLV decoding (and the chain
// check) happens node-side at preflight; rejecting obvious garbage here keeps
// the error near the input.
func parseOffer(s string) (*Offer, error) {
	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "lno1") || len(lower) < 16 {
		return nil, fmt.Errorf("invalid lightning offer")
	}
	for _, c := range lower[len("lno1"):] {
		if !strings.ContainsRune(bech32Charset, c) {
			return nil, fmt.Errorf("invalid lightning offer")
		}
	}
	return &Offer{Bolt12: lower}, nil
}

func invoiceHrpPrefix(lower string) bool {
	for _, hrp := range []string{"lnbc", "lntb", "lntbs", "lnbcrt", "lnsb"} {
		if strings.HasPrefix(lower, hrp) {
			return true
		}
	}
	return false
}

// looksLikeLightningAddress matches the email-like "user@domain.tld" form
// (LUD-16), which resolves through the same LNURL-pay exchange.
func looksLikeLightningAddress(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	user, domain := s[:at], s[at+1:]
	if strings.ContainsAny(user, " \t") || strings.ContainsAny(domain, " \t@") {
		return false
	}
	return strings.Contains(domain, ".")
}

func parseBtcAmount(s string) (types.Amount, error) {
	btc, err := strconv.ParseFloat(s, 64)
	if err != nil || btc < 0 {
		return 0, fmt.Errorf("invalid amount %q in bitcoin: URI", s)
	}
	amt, err := btcutil.NewAmount(btc)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q in bitcoin: URI", s)
	}
	return types.Sats(uint64(amt)), nil
}
