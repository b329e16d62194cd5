// Copyright (c) 2025 The Lexe developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lexe-app/lexe-public-sub005/config"
	"github.com/lexe-app/lexe-public-sub005/node"
	"github.com/lexe-app/lexe-public-sub005/refresh"
	"github.com/lexe-app/lexe-public-sub005/settings"
	"github.com/lexe-app/lexe-public-sub005/shared"
	"github.com/lexe-app/lexe-public-sub005/utils"
)

func init() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	var cfg config.AppConfig

	parser := flags.NewParser(&cfg, flags.Default|flags.PassDoubleDash)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		log.Fatal().Err(err).Msg("failed to parse command line")
	}

	if cfg.Version {
		fmt.Println("Version:", utils.Version)
		return
	}

	logpath := filepath.Join(cfg.DataDir, "logs", "lexew.log")
	shared.CreateFileLogger(logpath, shared.ParseLogLevel(cfg.LogLevel))
	logger := shared.NamedLogger("main")

	store, err := settings.NewFileStore(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open settings store")
	}
	if store.FiatCurrency() == "" {
		if err := store.SetFiatCurrency(cfg.FiatCurrency); err != nil {
			log.Fatal().Err(err).Msg("failed to store fiat currency")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := node.NewRpcClient(cfg.NodeURL, shared.NamedLogger("node"))

	sched := refresh.NewScheduler(nil, shared.NamedLogger("refresh"))
	defer sched.Close()

	errq := refresh.NewErrorQueue(10)
	balanceFetcher := refresh.NewBalanceFetcher(client, errq, shared.NamedLogger("balance"))
	paymentsFetcher := refresh.NewPaymentsFetcher(client, errq, shared.NamedLogger("payments"))
	ratesFetcher := refresh.NewRatesFetcher(client, store, errq, shared.NamedLogger("rates"))

	for _, run := range []func(context.Context, <-chan struct{}){
		balanceFetcher.Run,
		paymentsFetcher.Run,
		ratesFetcher.Run,
	} {
		ch, unsub := sched.Subscribe()
		defer unsub()
		go run(ctx, ch)
	}

	balances, unsubBalances := balanceFetcher.Balance.Subscribe()
	defer unsubBalances()
	go func() {
		for balance := range balances {
			rate := ratesFetcher.Preferred.Get()
			logger.Info().
				Uint64("spendable_sat", balance.SpendableSat()).
				Str("fiat", utils.FormatFiat(balance.SpendableSat(), rate, store.FiatCurrency())).
				Msg("balance updated")
		}
	}()

	sched.TriggerRefreshUnthrottled()

	network := cfg.NetworkParams()
	logger.Info().
		Str("network", network.Name).
		Str("node_url", cfg.NodeURL).
		Msg("lexew started")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info().Msg("shutting down")
}
