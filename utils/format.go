// Copyright (c) 2025 The Lexe developers
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package utils

import (
	"fmt"

	"github.com/lexe-app/lexe-public-sub005/types"
)

type FeeOption struct {
	Label    string
	Priority types.ConfirmationPriority
	FeeSat   uint64
}

// BuildFeeOptions expands the node's fee tiers into labeled choices for the
// confirmation-priority picker. A missing high tier falls back to normal.
func BuildFeeOptions(estimates types.FeeEstimates) []FeeOption {
	return []FeeOption{
		{
			Label:    fmt.Sprintf(" Fast: %d sat ", estimates.ByPriority(types.PriorityHigh).AmountSat),
			Priority: types.PriorityHigh,
			FeeSat:   estimates.ByPriority(types.PriorityHigh).AmountSat,
		},
		{
			Label:    fmt.Sprintf(" Normal: %d sat ", estimates.Normal.AmountSat),
			Priority: types.PriorityNormal,
			FeeSat:   estimates.Normal.AmountSat,
		},
		{
			Label:    fmt.Sprintf(" Slow: %d sat ", estimates.Background.AmountSat),
			Priority: types.PriorityBackground,
			FeeSat:   estimates.Background.AmountSat,
		},
	}
}

// FormatFiat renders a satoshi amount in fiat at the given BTC rate.
func FormatFiat(amountSat uint64, rate float64, code string) string {
	fiat := float64(amountSat) / float64(types.SatsPerBtc) * rate
	return fmt.Sprintf("%.2f %s", fiat, code)
}
