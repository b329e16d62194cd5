package config

import (
	"github.com/btcsuite/btcd/chaincfg"
)

type AppConfig struct {
	NodeURL        string `short:"n" long:"nodeurl" default:"http://localhost:5393" description:"URL of the Lexe node RPC endpoint"`
	DataDir        string `short:"d" long:"datadir" default:"lexew" description:"Directory for settings and logs"`
	RegressionTest bool   `long:"regtest" description:"Use the regression test network"`
	Testnet        bool   `long:"testnet" description:"Use the test network"`
	LogLevel       string `long:"loglevel" choice:"trace" choice:"debug" choice:"info" choice:"warn" choice:"error" choice:"fatal" choice:"panic" default:"info" description:"Logging level for lexew output"`
	FiatCurrency   string `long:"fiat" default:"USD" description:"Preferred fiat currency code for balance display"`
	Version        bool   `short:"v" description:"Print version"`
}

// NetworkParams maps the network flags to chain parameters; mainnet is the
// default.
func (c *AppConfig) NetworkParams() *chaincfg.Params {
	switch {
	case c.RegressionTest:
		return &chaincfg.RegressionNetParams
	case c.Testnet:
		return &chaincfg.TestNet3Params
	default:
		return &chaincfg.MainNetParams
	}
}
