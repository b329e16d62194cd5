package payuri

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"

	"github.com/lexe-app/lexe-public-sub005/node"
	"github.com/lexe-app/lexe-public-sub005/types"
)

// ResolveBest turns a raw payment string into the single best PaymentMethod
// for us to pay. Parsing and network validation are purely local; only LNURL
// forms reach out through the node, since minting their invoice is a remote
// exchange.
//
// When a URI bundles several rails, lightning is preferred over onchain
// (cheaper, faster, better privacy), and an offer over an invoice (reusable,
// refundable).
func ResolveBest(ctx context.Context, client node.Client, network *chaincfg.Params, uriStr string) (PaymentMethod, error) {
	parsed, err := Parse(network, uriStr)
	if err != nil {
		return nil, err
	}

	if parsed.Lnurl != "" {
		return resolveLnurl(ctx, client, network, parsed.Lnurl)
	}

	switch {
	case parsed.Offer != nil:
		return *parsed.Offer, nil
	case parsed.Invoice != nil:
		return *parsed.Invoice, nil
	case parsed.Onchain != nil:
		return *parsed.Onchain, nil
	default:
		return nil, fmt.Errorf("unrecognized payment code")
	}
}

func resolveLnurl(ctx context.Context, client node.Client, network *chaincfg.Params, lnurl string) (PaymentMethod, error) {
	resp, err := client.ResolveLnurlPay(ctx, node.ResolveLnurlPayRequest{Lnurl: lnurl})
	if err != nil {
		return nil, err
	}

	invoice, err := decodeInvoice(network, resp.Invoice)
	if err != nil {
		return nil, fmt.Errorf("LNURL endpoint returned a bad invoice: %v", err)
	}
	if invoice.Amount == nil && resp.AmountSat > 0 {
		amount := types.Sats(resp.AmountSat)
		invoice.Amount = &amount
	}
	if invoice.Description == "" {
		invoice.Description = resp.Description
	}
	return *invoice, nil
}
