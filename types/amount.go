// Copyright (c) 2025 The Lexe developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package types

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
)

// Amount is a Bitcoin amount in millisatoshis. Lightning payments can carry
// sub-satoshi precision, so all internal accounting is done in msat and only
// floored to whole satoshis at display or on-chain boundaries.
type Amount uint64

const (
	MsatsPerSat uint64 = 1_000
	SatsPerBtc  uint64 = 100_000_000
)

// Sats builds an Amount from whole satoshis.
func Sats(sats uint64) Amount {
	return Amount(sats * MsatsPerSat)
}

// Msats builds an Amount from millisatoshis.
func Msats(msats uint64) Amount {
	return Amount(msats)
}

// Sats returns the amount in whole satoshis, flooring any msat remainder.
func (a Amount) Sats() uint64 {
	return uint64(a) / MsatsPerSat
}

// Msats returns the amount in millisatoshis.
func (a Amount) Msats() uint64 {
	return uint64(a)
}

// BtcutilAmount converts to the btcutil satoshi amount used at the on-chain
// boundary.
func (a Amount) BtcutilAmount() btcutil.Amount {
	return btcutil.Amount(a.Sats())
}

func (a Amount) String() string {
	return fmt.Sprintf("%d sat", a.Sats())
}
