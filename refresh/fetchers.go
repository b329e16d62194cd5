// Copyright (c) 2025 The Lexe developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package refresh

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lexe-app/lexe-public-sub005/metrics"
	"github.com/lexe-app/lexe-public-sub005/node"
	"github.com/lexe-app/lexe-public-sub005/retry"
	"github.com/lexe-app/lexe-public-sub005/settings"
	"github.com/lexe-app/lexe-public-sub005/types"
)

// fetchAttempts bounds the retry loop of one background fetch; after that the
// failure goes to the error queue and the fetcher waits for the next refresh.
const fetchAttempts = 3

// BackgroundError is a non-interrupting failure from a background fetch. It
// accumulates in a dismissible queue instead of breaking the current screen.
type BackgroundError struct {
	Resource string
	Message  string
	At       time.Time
}

// ErrorQueue is a bounded, observable queue of background fetch errors.
// Fetchers for different resources fail independently and concurrently, so
// the queue serializes its read-append-write; the cell alone only guards
// single reads and writes.
type ErrorQueue struct {
	mu     sync.Mutex
	Errors *Cell[[]BackgroundError]
	max    int
}

func NewErrorQueue(max int) *ErrorQueue {
	if max <= 0 {
		max = 10
	}
	return &ErrorQueue{
		Errors: NewCell[[]BackgroundError](nil),
		max:    max,
	}
}

func (q *ErrorQueue) Push(resource string, err error) {
	entry := BackgroundError{
		Resource: resource,
		Message:  err.Error(),
		At:       time.Now(),
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	errs := append(q.Errors.Get(), entry)
	if len(errs) > q.max {
		errs = errs[len(errs)-q.max:]
	}
	q.Errors.Set(errs)
}

func (q *ErrorQueue) Dismiss() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.Errors.Set(nil)
}

// fetcher carries the shared guts of a per-resource fetch loop: the in-flight
// overlap guard, the retry policy, and error reporting.
type fetcher struct {
	resource string
	inFlight atomic.Bool
	Busy     *Cell[bool]
	policy   retry.Policy
	errs     *ErrorQueue
	logger   zerolog.Logger
}

func newFetcher(resource string, errs *ErrorQueue, logger zerolog.Logger) fetcher {
	return fetcher{
		resource: resource,
		Busy:     NewCell(false),
		policy:   retry.WithMaxAttempts(retry.DefaultPolicy(), fetchAttempts),
		errs:     errs,
		logger:   logger.With().Str("resource", resource).Logger(),
	}
}

// run consumes refresh signals until ctx is canceled or the signal channel
// closes. Each signal starts at most one fetch; signals arriving while a
// fetch is in flight for this resource are skipped.
func (f *fetcher) run(ctx context.Context, signal <-chan struct{}, fetch func(context.Context) error) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-signal:
			if !ok {
				return
			}
			if !f.inFlight.CompareAndSwap(false, true) {
				f.logger.Debug().Msg("fetch already in flight, skipping")
				continue
			}
			go f.fetchOnce(ctx, fetch)
		}
	}
}

func (f *fetcher) fetchOnce(ctx context.Context, fetch func(context.Context) error) {
	defer f.inFlight.Store(false)

	f.Busy.Set(true)
	metrics.FetchInFlight.WithLabelValues(f.resource).Set(1)
	defer func() {
		f.Busy.Set(false)
		metrics.FetchInFlight.WithLabelValues(f.resource).Set(0)
	}()

	_, outcome, err := retry.Do(ctx, f.policy, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fetch(ctx)
	})

	switch outcome {
	case retry.OutcomeSuccess:
	case retry.OutcomeCanceled:
		f.logger.Debug().Msg("fetch canceled")
	case retry.OutcomeExhausted:
		metrics.FetchErrors.WithLabelValues(f.resource).Inc()
		f.errs.Push(f.resource, err)
		f.logger.Warn().Err(err).Msg("fetch failed after retries")
	}
}

// BalanceFetcher keeps the observable balance in sync with the node.
type BalanceFetcher struct {
	fetcher
	client  node.Client
	Balance *Cell[types.Balance]
}

func NewBalanceFetcher(client node.Client, errs *ErrorQueue, logger zerolog.Logger) *BalanceFetcher {
	return &BalanceFetcher{
		fetcher: newFetcher("balance", errs, logger),
		client:  client,
		Balance: NewCell(types.Balance{}),
	}
}

func (f *BalanceFetcher) Run(ctx context.Context, signal <-chan struct{}) {
	f.run(ctx, signal, func(ctx context.Context) error {
		balance, err := f.client.GetBalance(ctx)
		if err != nil {
			return err
		}
		f.Balance.Set(balance)
		return nil
	})
}

// PaymentsFetcher syncs the payment list. The sync call reports whether
// anything changed; the full list is only re-fetched when it did (or on the
// first run after startup).
type PaymentsFetcher struct {
	fetcher
	client   node.Client
	synced   atomic.Bool
	Payments *Cell[[]types.Payment]
}

func NewPaymentsFetcher(client node.Client, errs *ErrorQueue, logger zerolog.Logger) *PaymentsFetcher {
	return &PaymentsFetcher{
		fetcher:  newFetcher("payments", errs, logger),
		client:   client,
		Payments: NewCell[[]types.Payment](nil),
	}
}

func (f *PaymentsFetcher) Run(ctx context.Context, signal <-chan struct{}) {
	f.run(ctx, signal, func(ctx context.Context) error {
		changed, err := f.client.SyncPayments(ctx)
		if err != nil {
			return err
		}
		if !changed && f.synced.Load() {
			return nil
		}
		payments, err := f.client.ListPayments(ctx)
		if err != nil {
			return err
		}
		f.Payments.Set(payments)
		f.synced.Store(true)
		return nil
	})
}

// RatesFetcher keeps the fiat rate table fresh and surfaces the rate for the
// user's preferred currency from the settings store.
type RatesFetcher struct {
	fetcher
	client    node.Client
	store     settings.Store
	Rates     *Cell[types.FiatRates]
	Preferred *Cell[float64]
}

func NewRatesFetcher(client node.Client, store settings.Store, errs *ErrorQueue, logger zerolog.Logger) *RatesFetcher {
	return &RatesFetcher{
		fetcher:   newFetcher("fiat_rates", errs, logger),
		client:    client,
		store:     store,
		Rates:     NewCell(types.FiatRates{}),
		Preferred: NewCell(0.0),
	}
}

func (f *RatesFetcher) Run(ctx context.Context, signal <-chan struct{}) {
	f.run(ctx, signal, func(ctx context.Context) error {
		rates, err := f.client.FiatRates(ctx)
		if err != nil {
			return err
		}
		f.Rates.Set(rates)
		if rate, ok := rates.Get(f.store.FiatCurrency()); ok {
			f.Preferred.Set(rate)
		}
		return nil
	})
}
