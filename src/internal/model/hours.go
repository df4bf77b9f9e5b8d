package model

import (
	"fmt"
	"math/big"
	"strings"
)

// Hours is a decimal hour quantity kept at exactly two fraction digits,
// stored as hundredths of an hour. Doing the arithmetic on hundredths keeps
// billed-hours totals exact where binary floating point would drift.
type Hours int64

var hundred = big.NewRat(100, 1)

// ParseHours parses a decimal string into Hours, rounding anything beyond
// two fraction digits half-to-even. The zero value stands for "unset".
func ParseHours(s string) (Hours, error) {
	r, ok := new(big.Rat).SetString(strings.TrimSpace(s))
	if !ok {
		return 0, fmt.Errorf("invalid decimal %q", s)
	}
	scaled := new(big.Rat).Mul(r, hundred)
	num, den := scaled.Num(), scaled.Denom()

	rem := new(big.Int)
	q, _ := new(big.Int).QuoRem(num, den, rem)
	if rem.Sign() != 0 {
		// Round half to even on the discarded remainder.
		twice := new(big.Int).Lsh(new(big.Int).Abs(rem), 1)
		switch twice.Cmp(den) {
		case 1:
			q = bumpAwayFromZero(q, num.Sign())
		case 0:
			if q.Bit(0) == 1 {
				q = bumpAwayFromZero(q, num.Sign())
			}
		}
	}
	if !q.IsInt64() {
		return 0, fmt.Errorf("decimal %q out of range", s)
	}
	return Hours(q.Int64()), nil
}

func bumpAwayFromZero(q *big.Int, sign int) *big.Int {
	return new(big.Int).Add(q, big.NewInt(int64(sign)))
}

// String renders the quantity with two fraction digits, e.g. "2.00".
func (h Hours) String() string {
	cents := int64(h)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// Float64 converts to hours as a float, for display math only.
func (h Hours) Float64() float64 {
	return float64(h) / 100
}

// MarshalJSON renders the quantity as a JSON number with two fraction
// digits.
func (h Hours) MarshalJSON() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (h *Hours) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseHours(s)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
