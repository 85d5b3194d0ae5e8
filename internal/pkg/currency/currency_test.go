package currency

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestToMinorUnits(t *testing.T) {
	cases := []struct {
		amount   string
		currency string
		want     int64
	}{
		{"150.00", "USD", 15000},
		{"150", "INR", 15000},
		{"0.01", "EUR", 1},
		{"19.99", "inr", 1999},
		{"10.005", "USD", 1001},
		{"1500", "JPY", 1500},
		{"1500.4", "JPY", 1500},
		{"1500.5", "jpy", 1501},
		{"999.6", "KRW", 1000},
	}

	for _, tc := range cases {
		t.Run(tc.amount+"_"+tc.currency, func(t *testing.T) {
			got := ToMinorUnits(decimal.RequireFromString(tc.amount), tc.currency)
			if got != tc.want {
				t.Fatalf("ToMinorUnits(%s, %s) = %d, want %d", tc.amount, tc.currency, got, tc.want)
			}
		})
	}
}

func TestMinorUnitsRoundTrip(t *testing.T) {
	amounts := []string{"0.01", "0.10", "1", "9.99", "150.00", "1234567.89", "20.5"}
	for _, raw := range amounts {
		amount := decimal.RequireFromString(raw)
		for _, code := range []string{"USD", "INR", "EUR"} {
			back := FromMinorUnits(ToMinorUnits(amount, code), code)
			if !back.Equal(amount) {
				t.Fatalf("round trip of %s %s gave %s", raw, code, back)
			}
		}
	}

	if got := FromMinorUnits(1500, "JPY"); !got.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("unexpected JPY amount: %s", got)
	}
}

func TestExponent(t *testing.T) {
	if Exponent("JPY") != 0 || Exponent("krw") != 0 {
		t.Fatal("expected zero-decimal currencies")
	}
	if Exponent("USD") != 2 {
		t.Fatal("expected two fractional digits for USD")
	}
}

func TestNormalize(t *testing.T) {
	got, err := Normalize(" inr ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "INR" {
		t.Fatalf("unexpected code: %s", got)
	}

	for _, bad := range []string{"", "US", "USDT", "U5D", "ÜSD"} {
		if _, err := Normalize(bad); !errors.Is(err, ErrInvalidCurrency) {
			t.Fatalf("expected ErrInvalidCurrency for %q, got %v", bad, err)
		}
	}
}

func TestRepresentable(t *testing.T) {
	if !Representable(decimal.RequireFromString("10.50"), "USD") {
		t.Fatal("expected 10.50 USD to be representable")
	}
	if Representable(decimal.RequireFromString("10.505"), "USD") {
		t.Fatal("expected 10.505 USD to be rejected")
	}
	if Representable(decimal.RequireFromString("10.5"), "JPY") {
		t.Fatal("expected 10.5 JPY to be rejected")
	}
}
