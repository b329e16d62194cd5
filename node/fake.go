package node

import (
	"context"
	"errors"

	"github.com/lexe-app/lexe-public-sub005/types"
)

// FakeClient is a configurable test double for Client. Each method delegates
// to its hook when set and fails otherwise, so tests only wire the calls they
// expect.
type FakeClient struct {
	PreflightPayOnchainFunc func(ctx context.Context, req PreflightPayOnchainRequest) (*PreflightPayOnchainResponse, error)
	PreflightPayInvoiceFunc func(ctx context.Context, req PreflightPayInvoiceRequest) (*PreflightPayInvoiceResponse, error)
	PreflightPayOfferFunc   func(ctx context.Context, req PreflightPayOfferRequest) (*PreflightPayOfferResponse, error)
	PayOnchainFunc          func(ctx context.Context, req PayOnchainRequest) (*PayOnchainResponse, error)
	PayInvoiceFunc          func(ctx context.Context, req PayInvoiceRequest) (*PayInvoiceResponse, error)
	PayOfferFunc            func(ctx context.Context, req PayOfferRequest) (*PayOfferResponse, error)
	ResolveLnurlPayFunc     func(ctx context.Context, req ResolveLnurlPayRequest) (*ResolveLnurlPayResponse, error)
	GetBalanceFunc          func(ctx context.Context) (types.Balance, error)
	SyncPaymentsFunc        func(ctx context.Context) (bool, error)
	ListPaymentsFunc        func(ctx context.Context) ([]types.Payment, error)
	FiatRatesFunc           func(ctx context.Context) (types.FiatRates, error)
}

var _ Client = (*FakeClient)(nil)

var errFakeNotWired = errors.New("fake client method not wired")

func (f *FakeClient) PreflightPayOnchain(ctx context.Context, req PreflightPayOnchainRequest) (*PreflightPayOnchainResponse, error) {
	if f.PreflightPayOnchainFunc == nil {
		return nil, errFakeNotWired
	}
	return f.PreflightPayOnchainFunc(ctx, req)
}

func (f *FakeClient) PreflightPayInvoice(ctx context.Context, req PreflightPayInvoiceRequest) (*PreflightPayInvoiceResponse, error) {
	if f.PreflightPayInvoiceFunc == nil {
		return nil, errFakeNotWired
	}
	return f.PreflightPayInvoiceFunc(ctx, req)
}

func (f *FakeClient) PreflightPayOffer(ctx context.Context, req PreflightPayOfferRequest) (*PreflightPayOfferResponse, error) {
	if f.PreflightPayOfferFunc == nil {
		return nil, errFakeNotWired
	}
	return f.PreflightPayOfferFunc(ctx, req)
}

func (f *FakeClient) PayOnchain(ctx context.Context, req PayOnchainRequest) (*PayOnchainResponse, error) {
	if f.PayOnchainFunc == nil {
		return nil, errFakeNotWired
	}
	return f.PayOnchainFunc(ctx, req)
}

func (f *FakeClient) PayInvoice(ctx context.Context, req PayInvoiceRequest) (*PayInvoiceResponse, error) {
	if f.PayInvoiceFunc == nil {
		return nil, errFakeNotWired
	}
	return f.PayInvoiceFunc(ctx, req)
}

func (f *FakeClient) PayOffer(ctx context.Context, req PayOfferRequest) (*PayOfferResponse, error) {
	if f.PayOfferFunc == nil {
		return nil, errFakeNotWired
	}
	return f.PayOfferFunc(ctx, req)
}

func (f *FakeClient) ResolveLnurlPay(ctx context.Context, req ResolveLnurlPayRequest) (*ResolveLnurlPayResponse, error) {
	if f.ResolveLnurlPayFunc == nil {
		return nil, errFakeNotWired
	}
	return f.ResolveLnurlPayFunc(ctx, req)
}

func (f *FakeClient) GetBalance(ctx context.Context) (types.Balance, error) {
	if f.GetBalanceFunc == nil {
		return types.Balance{}, errFakeNotWired
	}
	return f.GetBalanceFunc(ctx)
}

func (f *FakeClient) SyncPayments(ctx context.Context) (bool, error) {
	if f.SyncPaymentsFunc == nil {
		return false, errFakeNotWired
	}
	return f.SyncPaymentsFunc(ctx)
}

func (f *FakeClient) ListPayments(ctx context.Context) ([]types.Payment, error) {
	if f.ListPaymentsFunc == nil {
		return nil, errFakeNotWired
	}
	return f.ListPaymentsFunc(ctx)
}

func (f *FakeClient) FiatRates(ctx context.Context) (types.FiatRates, error) {
	if f.FiatRatesFunc == nil {
		return types.FiatRates{}, errFakeNotWired
	}
	return f.FiatRatesFunc(ctx)
}
