package node

import (
	"context"
	"time"

	"github.com/go-zoox/jsonrpc"
	zoojc "github.com/go-zoox/jsonrpc/client"
	"github.com/rs/zerolog"
	"github.com/spf13/cast"

	"github.com/lexe-app/lexe-public-sub005/types"
)

// RpcClient talks to the node over JSON-RPC. The wire format is an internal
// detail of this transport; everything above it sees only the Client
// interface.
type RpcClient struct {
	c      zoojc.Client
	logger zerolog.Logger
}

var _ Client = (*RpcClient)(nil)

func NewRpcClient(url string, logger zerolog.Logger) *RpcClient {
	return &RpcClient{
		c:      zoojc.New(url),
		logger: logger,
	}
}

func (r *RpcClient) call(ctx context.Context, method string, params jsonrpc.Params) (jsonrpc.Result, error) {
	res, err := r.c.Call(ctx, method, params)
	if err != nil {
		r.logger.Debug().Err(err).Str("method", method).Msg("node rpc call failed")
		return nil, classifyErr(err)
	}
	return res, nil
}

func (r *RpcClient) PreflightPayOnchain(ctx context.Context, req PreflightPayOnchainRequest) (*PreflightPayOnchainResponse, error) {
	res, err := r.call(ctx, "preflight_pay_onchain", jsonrpc.Params{
		"cid":        req.Cid.String(),
		"address":    req.Address,
		"amount_sat": req.AmountSat,
	})
	if err != nil {
		return nil, err
	}
	resp := &PreflightPayOnchainResponse{
		Estimates: types.FeeEstimates{
			Normal:     types.FeeEstimate{AmountSat: cast.ToUint64(res.Get("normal_sat"))},
			Background: types.FeeEstimate{AmountSat: cast.ToUint64(res.Get("background_sat"))},
		},
	}
	if high := res.Get("high_sat"); high != nil {
		resp.Estimates.High = &types.FeeEstimate{AmountSat: cast.ToUint64(high)}
	}
	return resp, nil
}

func (r *RpcClient) PreflightPayInvoice(ctx context.Context, req PreflightPayInvoiceRequest) (*PreflightPayInvoiceResponse, error) {
	res, err := r.call(ctx, "preflight_pay_invoice", jsonrpc.Params{
		"cid":                 req.Cid.String(),
		"invoice":             req.Invoice,
		"fallback_amount_sat": req.FallbackAmountSat,
	})
	if err != nil {
		return nil, err
	}
	return &PreflightPayInvoiceResponse{
		AmountSat: cast.ToUint64(res.Get("amount_sat")),
		FeesSat:   cast.ToUint64(res.Get("fees_sat")),
	}, nil
}

func (r *RpcClient) PreflightPayOffer(ctx context.Context, req PreflightPayOfferRequest) (*PreflightPayOfferResponse, error) {
	res, err := r.call(ctx, "preflight_pay_offer", jsonrpc.Params{
		"cid":                 req.Cid.String(),
		"offer":               req.Offer,
		"fallback_amount_sat": req.FallbackAmountSat,
		"payer_note":          req.PayerNote,
	})
	if err != nil {
		return nil, err
	}
	return &PreflightPayOfferResponse{
		AmountSat: cast.ToUint64(res.Get("amount_sat")),
		FeesSat:   cast.ToUint64(res.Get("fees_sat")),
	}, nil
}

func (r *RpcClient) PayOnchain(ctx context.Context, req PayOnchainRequest) (*PayOnchainResponse, error) {
	res, err := r.call(ctx, "pay_onchain", jsonrpc.Params{
		"cid":        req.Cid.String(),
		"address":    req.Address,
		"amount_sat": req.AmountSat,
		"priority":   string(req.Priority),
		"note":       req.Note,
	})
	if err != nil {
		return nil, err
	}
	return &PayOnchainResponse{
		Index: types.PaymentIndex(cast.ToString(res.Get("index"))),
		Txid:  cast.ToString(res.Get("txid")),
	}, nil
}

func (r *RpcClient) PayInvoice(ctx context.Context, req PayInvoiceRequest) (*PayInvoiceResponse, error) {
	res, err := r.call(ctx, "pay_invoice", jsonrpc.Params{
		"cid":                 req.Cid.String(),
		"invoice":             req.Invoice,
		"fallback_amount_sat": req.FallbackAmountSat,
		"note":                req.Note,
	})
	if err != nil {
		return nil, err
	}
	return &PayInvoiceResponse{
		Index: types.PaymentIndex(cast.ToString(res.Get("index"))),
	}, nil
}

func (r *RpcClient) PayOffer(ctx context.Context, req PayOfferRequest) (*PayOfferResponse, error) {
	res, err := r.call(ctx, "pay_offer", jsonrpc.Params{
		"cid":                 req.Cid.String(),
		"offer":               req.Offer,
		"fallback_amount_sat": req.FallbackAmountSat,
		"note":                req.Note,
		"payer_note":          req.PayerNote,
	})
	if err != nil {
		return nil, err
	}
	return &PayOfferResponse{
		Index: types.PaymentIndex(cast.ToString(res.Get("index"))),
	}, nil
}

func (r *RpcClient) ResolveLnurlPay(ctx context.Context, req ResolveLnurlPayRequest) (*ResolveLnurlPayResponse, error) {
	res, err := r.call(ctx, "resolve_lnurl_pay", jsonrpc.Params{
		"lnurl":       req.Lnurl,
		"amount_msat": req.AmountMsat,
	})
	if err != nil {
		return nil, err
	}
	return &ResolveLnurlPayResponse{
		Invoice:     cast.ToString(res.Get("invoice")),
		AmountSat:   cast.ToUint64(res.Get("amount_sat")),
		Description: cast.ToString(res.Get("description")),
	}, nil
}

func (r *RpcClient) GetBalance(ctx context.Context) (types.Balance, error) {
	res, err := r.call(ctx, "get_balance", jsonrpc.Params{})
	if err != nil {
		return types.Balance{}, err
	}
	return types.Balance{
		LightningSat: cast.ToUint64(res.Get("lightning_sat")),
		OnchainSat:   cast.ToUint64(res.Get("onchain_sat")),
	}, nil
}

func (r *RpcClient) SyncPayments(ctx context.Context) (bool, error) {
	res, err := r.call(ctx, "sync_payments", jsonrpc.Params{})
	if err != nil {
		return false, err
	}
	return cast.ToBool(res.Get("any_changed")), nil
}

func (r *RpcClient) ListPayments(ctx context.Context) ([]types.Payment, error) {
	res, err := r.call(ctx, "list_payments", jsonrpc.Params{})
	if err != nil {
		return nil, err
	}
	raw := cast.ToSlice(res.Get("payments"))
	payments := make([]types.Payment, 0, len(raw))
	for _, entry := range raw {
		m := cast.ToStringMap(entry)
		payments = append(payments, types.Payment{
			Index:     types.PaymentIndex(cast.ToString(m["index"])),
			Kind:      types.PaymentKind(cast.ToString(m["kind"])),
			Status:    types.PaymentStatus(cast.ToString(m["status"])),
			Direction: types.PaymentDirection(cast.ToString(m["direction"])),
			Txid:      cast.ToString(m["txid"]),
			AmountSat: cast.ToUint64(m["amount_sat"]),
			FeesSat:   cast.ToUint64(m["fees_sat"]),
			Note:      cast.ToString(m["note"]),
			CreatedAt: time.UnixMilli(cast.ToInt64(m["created_at_ms"])),
		})
	}
	return payments, nil
}

func (r *RpcClient) FiatRates(ctx context.Context) (types.FiatRates, error) {
	res, err := r.call(ctx, "fiat_rates", jsonrpc.Params{})
	if err != nil {
		return types.FiatRates{}, err
	}
	rates := make(map[string]float64)
	for code, v := range cast.ToStringMap(res.Get("rates")) {
		rates[code] = cast.ToFloat64(v)
	}
	return types.FiatRates{
		Timestamp: time.UnixMilli(cast.ToInt64(res.Get("timestamp_ms"))),
		Rates:     rates,
	}, nil
}
