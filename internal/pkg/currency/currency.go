// Package currency converts invoice amounts between major and minor units.
package currency

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidCurrency = errors.New("invalid currency code")

var hundred = decimal.NewFromInt(100)

// zeroDecimal lists currencies the gateway accepts without a fractional unit.
var zeroDecimal = map[string]struct{}{
	"JPY": {},
	"KRW": {},
}

// Normalize upper-cases a currency code and checks it is three ASCII letters.
func Normalize(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return "", ErrInvalidCurrency
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", ErrInvalidCurrency
		}
	}
	return code, nil
}

// Exponent returns the number of fractional digits of the currency's minor unit.
func Exponent(code string) int32 {
	if _, ok := zeroDecimal[strings.ToUpper(code)]; ok {
		return 0
	}
	return 2
}

// ToMinorUnits converts a major-unit amount into the integer amount the gateway expects.
func ToMinorUnits(amount decimal.Decimal, code string) int64 {
	if Exponent(code) == 0 {
		return amount.Round(0).IntPart()
	}
	return amount.Mul(hundred).Round(0).IntPart()
}

// FromMinorUnits is the inverse of ToMinorUnits.
func FromMinorUnits(minor int64, code string) decimal.Decimal {
	if Exponent(code) == 0 {
		return decimal.NewFromInt(minor)
	}
	return decimal.New(minor, -2)
}

// Representable reports whether amount has no more fractional digits than the currency allows.
func Representable(amount decimal.Decimal, code string) bool {
	return amount.Equal(amount.Round(Exponent(code)))
}
