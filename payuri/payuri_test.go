// Copyright (c) 2025 The Lexe developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package payuri

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightningnetwork/lnd/lnwire"
	"github.com/lightningnetwork/lnd/zpay32"
	"github.com/stretchr/testify/require"

	"github.com/lexe-app/lexe-public-sub005/node"
	"github.com/lexe-app/lexe-public-sub005/types"
)

// BIP173 example P2WPKH address.
const mainnetAddr = "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4"

// testInvoice mints and signs a real BOLT11 invoice for the given network.
// A nil msat produces an amountless invoice.
func testInvoice(t *testing.T, net *chaincfg.Params, msat *lnwire.MilliSatoshi, desc string) string {
	t.Helper()

	privKey, err := btcec.NewPrivateKey()
	require.NoError(t, err)

	var paymentHash [32]byte
	copy(paymentHash[:], "lexe-test-payment-hash-00000001")

	opts := []func(*zpay32.Invoice){zpay32.Description(desc)}
	if msat != nil {
		opts = append(opts, zpay32.Amount(*msat))
	}
	inv, err := zpay32.NewInvoice(net, paymentHash, time.Unix(1700000000, 0), opts...)
	require.NoError(t, err)

	encoded, err := inv.Encode(zpay32.MessageSigner{
		SignCompact: func(msg []byte) ([]byte, error) {
			return ecdsa.SignCompact(privKey, chainhash.HashB(msg), true)
		},
	})
	require.NoError(t, err)
	return encoded
}

func msats(v uint64) *lnwire.MilliSatoshi {
	m := lnwire.MilliSatoshi(v)
	return &m
}

func testnetAddress(t *testing.T) string {
	t.Helper()
	hash := make([]byte, 20)
	for i := range hash {
		hash[i] = byte(i + 1)
	}
	addr, err := btcutil.NewAddressWitnessPubKeyHash(hash, &chaincfg.TestNet3Params)
	require.NoError(t, err)
	return addr.EncodeAddress()
}

func TestParseBareAddress(t *testing.T) {
	parsed, err := Parse(&chaincfg.MainNetParams, mainnetAddr)
	require.NoError(t, err)
	require.NotNil(t, parsed.Onchain)
	require.Nil(t, parsed.Invoice)
	require.Nil(t, parsed.Offer)
	require.Empty(t, parsed.Lnurl)
	require.Equal(t, mainnetAddr, parsed.Onchain.Address)
	require.Nil(t, parsed.Onchain.Amount)
}

func TestParseUppercaseQrForm(t *testing.T) {
	parsed, err := Parse(&chaincfg.MainNetParams, strings.ToUpper(mainnetAddr))
	require.NoError(t, err)
	require.NotNil(t, parsed.Onchain)
	require.Equal(t, mainnetAddr, parsed.Onchain.Address)
}

func TestParseAddressWrongNetwork(t *testing.T) {
	_, err := Parse(&chaincfg.MainNetParams, testnetAddress(t))
	require.Error(t, err)
}

func TestParseBip321(t *testing.T) {
	uri := "bitcoin:" + mainnetAddr + "?amount=0.001&label=coffee&message=thank%20you"
	parsed, err := Parse(&chaincfg.MainNetParams, uri)
	require.NoError(t, err)
	require.NotNil(t, parsed.Onchain)
	require.Equal(t, mainnetAddr, parsed.Onchain.Address)
	require.NotNil(t, parsed.Onchain.Amount)
	require.Equal(t, uint64(100_000), parsed.Onchain.Amount.Sats())
	require.Equal(t, "coffee", parsed.Onchain.Label)
	require.Equal(t, "thank you", parsed.Onchain.Message)
}

func TestParseBip321BadAmount(t *testing.T) {
	for _, amt := range []string{"abc", "-1"} {
		_, err := Parse(&chaincfg.MainNetParams, "bitcoin:"+mainnetAddr+"?amount="+amt)
		require.Error(t, err, "amount=%s", amt)
	}
}

func TestParseBip321WithLightning(t *testing.T) {
	bolt11 := testInvoice(t, &chaincfg.MainNetParams, msats(250_000_000), "coffee")
	uri := "bitcoin:" + mainnetAddr + "?lightning=" + bolt11
	parsed, err := Parse(&chaincfg.MainNetParams, uri)
	require.NoError(t, err)
	require.NotNil(t, parsed.Onchain)
	require.NotNil(t, parsed.Invoice)
	require.Equal(t, bolt11, parsed.Invoice.Bolt11)
	require.NotNil(t, parsed.Invoice.Amount)
	require.Equal(t, uint64(250_000), parsed.Invoice.Amount.Sats())
}

func TestParseBip321NothingPayable(t *testing.T) {
	_, err := Parse(&chaincfg.MainNetParams, "bitcoin:?label=hello")
	require.Error(t, err)
}

func TestParseInvoice(t *testing.T) {
	bolt11 := testInvoice(t, &chaincfg.MainNetParams, msats(250_000_000), "one cappuccino")
	parsed, err := Parse(&chaincfg.MainNetParams, bolt11)
	require.NoError(t, err)
	require.NotNil(t, parsed.Invoice)
	require.Nil(t, parsed.Onchain)

	inv := parsed.Invoice
	require.Equal(t, bolt11, inv.Bolt11)
	require.NotNil(t, inv.Amount)
	require.Equal(t, uint64(250_000), inv.Amount.Sats())
	require.Equal(t, "one cappuccino", inv.Description)
	require.NotEmpty(t, inv.PaymentHash)
	require.NotEmpty(t, inv.PayeePubkey)
	require.Equal(t, time.Unix(1700000000, 0).UTC(), inv.CreatedAt.UTC())
	require.Equal(t, inv.CreatedAt.Add(time.Hour), inv.ExpiresAt)
}

func TestParseAmountlessInvoice(t *testing.T) {
	bolt11 := testInvoice(t, &chaincfg.MainNetParams, nil, "tip jar")
	parsed, err := Parse(&chaincfg.MainNetParams, bolt11)
	require.NoError(t, err)
	require.NotNil(t, parsed.Invoice)
	require.Nil(t, parsed.Invoice.Amount)
}

func TestParseInvoiceWrongNetwork(t *testing.T) {
	bolt11 := testInvoice(t, &chaincfg.TestNet3Params, msats(1_000), "wrong net")
	_, err := Parse(&chaincfg.MainNetParams, bolt11)
	require.Error(t, err)
}

func TestParseLightningScheme(t *testing.T) {
	bolt11 := testInvoice(t, &chaincfg.MainNetParams, msats(1_000_000), "via scheme")
	parsed, err := Parse(&chaincfg.MainNetParams, "lightning:"+bolt11)
	require.NoError(t, err)
	require.NotNil(t, parsed.Invoice)
	require.Equal(t, bolt11, parsed.Invoice.Bolt11)
}

func TestParseOffer(t *testing.T) {
	offer := "lno1" + strings.Repeat("qpzry9x8gf2tvdw0s3jn54khce6mua7l", 2)

	for _, in := range []string{offer, "lightning:" + offer} {
		parsed, err := Parse(&chaincfg.MainNetParams, in)
		require.NoError(t, err, "input %q", in)
		require.NotNil(t, parsed.Offer)
		require.Equal(t, offer, parsed.Offer.Bolt12)
		// No client-side amount: offers always go through amount entry.
		require.Nil(t, MethodAmount(*parsed.Offer))
	}

	// 'b' is not in the bech32 charset.
	_, err := Parse(&chaincfg.MainNetParams, "lno1bbbbbbbbbbbbbbbb")
	require.Error(t, err)
	_, err = Parse(&chaincfg.MainNetParams, "lno1qq")
	require.Error(t, err)
}

func TestParseLnurlForms(t *testing.T) {
	for _, in := range []string{
		"lnurl1dp68gurn8ghj7um9wfmxjcm99e5k7tmvde6hymrs9akxuatjd3cz7atnv4erqgfawu5",
		"LNURL1DP68GURN8GHJ7UM9WFMXJCM99E5K7TMVDE6HYMRS9AKXUATJD3CZ7ATNV4ERQGFAWU5",
		"lightning:lnurl1dp68gurn8ghj7um9wfmxjcm99e5k7tmvde6hymrs9akxuatjd3cz7atnv4erqgfawu5",
		"lnurlp://example.com/.well-known/lnurlp/satoshi",
		"satoshi@example.com",
	} {
		parsed, err := Parse(&chaincfg.MainNetParams, in)
		require.NoError(t, err, "input %q", in)
		require.NotEmpty(t, parsed.Lnurl, "input %q", in)
	}
}

func TestParseNotLightningAddress(t *testing.T) {
	for _, in := range []string{"satoshi@nakamoto", "@example.com", "satoshi@"} {
		_, err := Parse(&chaincfg.MainNetParams, in)
		require.Error(t, err, "input %q", in)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "hello world", strings.Repeat("a", 9<<10)} {
		_, err := Parse(&chaincfg.MainNetParams, in)
		require.Error(t, err, "input %q", in)
	}
}

func TestResolveBestPrefersLightning(t *testing.T) {
	bolt11 := testInvoice(t, &chaincfg.MainNetParams, msats(5_000_000), "bundled")
	uri := "bitcoin:" + mainnetAddr + "?lightning=" + bolt11

	method, err := ResolveBest(context.Background(), nil, &chaincfg.MainNetParams, uri)
	require.NoError(t, err)
	require.IsType(t, Invoice{}, method)
	require.Equal(t, types.PaymentKindInvoice, MethodKind(method))
}

func TestResolveBestOnchainOnly(t *testing.T) {
	method, err := ResolveBest(context.Background(), nil, &chaincfg.MainNetParams, mainnetAddr)
	require.NoError(t, err)
	require.IsType(t, Onchain{}, method)
	require.Nil(t, MethodAmount(method))
}

func TestResolveLnurl(t *testing.T) {
	bolt11 := testInvoice(t, &chaincfg.MainNetParams, nil, "")

	client := &node.FakeClient{
		ResolveLnurlPayFunc: func(ctx context.Context, req node.ResolveLnurlPayRequest) (*node.ResolveLnurlPayResponse, error) {
			require.Equal(t, "satoshi@example.com", req.Lnurl)
			return &node.ResolveLnurlPayResponse{
				Invoice:     bolt11,
				AmountSat:   1234,
				Description: "a tip for satoshi",
			}, nil
		},
	}

	method, err := ResolveBest(context.Background(), client, &chaincfg.MainNetParams, "satoshi@example.com")
	require.NoError(t, err)
	inv, ok := method.(Invoice)
	require.True(t, ok)
	require.Equal(t, bolt11, inv.Bolt11)
	require.NotNil(t, inv.Amount)
	require.Equal(t, uint64(1234), inv.Amount.Sats())
	require.Equal(t, "a tip for satoshi", inv.Description)
}
