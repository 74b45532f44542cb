package service

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/metrics"
)

func uintKey(id uint) string { return strconv.FormatUint(uint64(id), 10) }

func recordFailure(kind string) { metrics.RecordSideEffectFailure(kind) }

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
