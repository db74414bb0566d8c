// Package money holds the exact-decimal arithmetic used on every balance
// and price in the ledger. Amounts are shopspring decimals end to end;
// float64 never touches the money path.
package money

import (
	"github.com/shopspring/decimal"

	"github.com/gigworks/ledgerd/pkg/errors"
)

// depositCapRate is the fraction of a client's outstanding unpaid job total
// that may be deposited in a single operation.
var depositCapRate = decimal.NewFromInt(25).Div(decimal.NewFromInt(100))

// Parse parses a positive monetary amount from its decimal string form
// (e.g. "100.00"). Zero, negative and malformed values are rejected.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Invalid.Explain("invalid amount: %s", s).Wrap(err)
	}
	if !d.IsPositive() {
		return decimal.Zero, errors.Invalid.Explain("amount must be positive")
	}
	return d, nil
}

// Add returns a + b.
func Add(a, b decimal.Decimal) decimal.Decimal {
	return a.Add(b)
}

// Sub returns a - b.
func Sub(a, b decimal.Decimal) decimal.Decimal {
	return a.Sub(b)
}

// AtLeast reports whether a >= b.
func AtLeast(a, b decimal.Decimal) bool {
	return a.GreaterThanOrEqual(b)
}

// DepositCap returns the maximum permitted deposit for a client whose
// unpaid in_progress jobs sum to outstanding: 25% of that total.
func DepositCap(outstanding decimal.Decimal) decimal.Decimal {
	return outstanding.Mul(depositCapRate)
}

// Format renders an amount with two fraction digits for responses and
// error messages.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}
