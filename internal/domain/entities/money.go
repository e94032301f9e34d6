package entities

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	hundred  = decimal.NewFromInt(100)
	maxMinor = decimal.NewFromInt(math.MaxInt64)
)

// ToMinorUnits converts a major-unit amount (reais) into cents, rounding half away
// from zero. The float goes through its shortest decimal representation first, so
// 3.5, 47 and 87 become exactly 350, 4700 and 8700.
func ToMinorUnits(amount float64) (int64, bool) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, false
	}
	minor := decimal.NewFromFloat(amount).Mul(hundred).Round(0)
	if minor.Abs().GreaterThan(maxMinor) {
		return 0, false
	}
	return minor.IntPart(), true
}

// FromMinorUnits is the inverse of ToMinorUnits.
func FromMinorUnits(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}
