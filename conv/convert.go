package conv

import "github.com/ericlagergren/decimal"

var zeroAmount decimal.Big

func init() {
	zeroAmount = decimal.Big{}
	zeroAmount.Context = decimal.Context128
	zeroAmount.Context.RoundingMode = decimal.ToZero
}

// NewAmount returns a zero native value amount using a 128 bit context with
// truncating rounding. Every amount that flows through the ledgers is created
// through this function so that division always discards the remainder.
func NewAmount() *decimal.Big {
	z := zeroAmount
	return &z
}

// NewAmountFromUint godoc
func NewAmountFromUint(v uint64) *decimal.Big {
	return NewAmount().SetUint64(v)
}

// NewAmountFromString parses a decimal string into an amount
func NewAmountFromString(s string) (*decimal.Big, bool) {
	d := NewAmount()
	if _, ok := d.SetString(s); !ok {
		return nil, false
	}
	return d, true
}

// Clone copies the given amount into a fresh truncating amount
func Clone(x *decimal.Big) *decimal.Big {
	d := NewAmount()
	d.Copy(x)
	return d
}

// Add returns x + y without mutating either operand
func Add(x, y *decimal.Big) *decimal.Big {
	return NewAmount().Add(x, y)
}

// Sub returns x - y without mutating either operand
func Sub(x, y *decimal.Big) *decimal.Big {
	return NewAmount().Sub(x, y)
}

// MulUint returns x * n without mutating x
func MulUint(x *decimal.Big, n uint64) *decimal.Big {
	return NewAmount().Mul(x, NewAmountFromUint(n))
}

// DivTrunc returns the integer part of x / y. The remainder is discarded,
// never rounded, so the same inputs always produce the same output.
func DivTrunc(x, y *decimal.Big) *decimal.Big {
	return NewAmount().QuoInt(x, y)
}

// PercentTrunc returns x * pct / 100 with the remainder discarded
func PercentTrunc(x *decimal.Big, pct uint64) *decimal.Big {
	return DivTrunc(MulUint(x, pct), NewAmountFromUint(100))
}

// Pow10 returns 10^exp as an amount
func Pow10(exp int) *decimal.Big {
	d := NewAmount()
	d.Copy(decimal.New(1, -exp))
	return d
}

// IsPositive reports whether x is a finite number greater than zero
func IsPositive(x *decimal.Big) bool {
	return x != nil && !x.IsNaN(0) && x.Sign() > 0
}
