package models

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Amount is a fixed-point value with two decimal places, stored as hundredths.
// Money and percentages share the representation: 12.50% is Amount(1250).
type Amount int64

// AmountFromUnits builds an Amount from whole units (e.g. 1500 -> 1500.00).
func AmountFromUnits(units int64) Amount {
	return Amount(units * 100)
}

// AmountFromCents builds an Amount from hundredths.
func AmountFromCents(cents int64) Amount {
	return Amount(cents)
}

// ParseAmount accepts "1500", "1500.5" or "1500.50". More than two decimal
// places is rejected rather than silently rounded.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	neg := false
	if s[0] == '-' || s[0] == '+' {
		neg = s[0] == '-'
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("amount %q has more than two decimal places", s)
	}
	frac += strings.Repeat("0", 2-len(frac))

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	v := w*100 + f
	if neg {
		v = -v
	}
	return Amount(v), nil
}

// MustParseAmount is ParseAmount for literals in tests and seed data.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Amount) Cents() int64 { return int64(a) }

func (a Amount) IsZero() bool { return a == 0 }

func (a Amount) IsPositive() bool { return a > 0 }

// MulDiv returns a*num/den rounded half-up (half away from zero for negatives).
func (a Amount) MulDiv(num, den int64) Amount {
	if den == 0 {
		panic("models: Amount.MulDiv by zero")
	}
	n := new(big.Int).Mul(big.NewInt(int64(a)), big.NewInt(num))
	d := big.NewInt(den)

	neg := (n.Sign() < 0) != (d.Sign() < 0)
	n.Abs(n)
	d.Abs(d)

	q, r := new(big.Int).QuoRem(n, d, new(big.Int))
	// round half-up: remainder*2 >= divisor
	if r.Lsh(r, 1).Cmp(d) >= 0 {
		q.Add(q, big.NewInt(1))
	}
	if neg {
		q.Neg(q)
	}
	return Amount(q.Int64())
}

// Percent returns pct percent of a, rounded half-up to the cent.
func (a Amount) Percent(pct Amount) Amount {
	// a * (pct/100) / 100
	return a.MulDiv(int64(pct), 100*100)
}

// Times multiplies by a whole count.
func (a Amount) Times(n int64) Amount {
	return Amount(int64(a) * n)
}

func (a Amount) String() string {
	v := int64(a)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON renders the amount as a JSON number with two decimals.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts both JSON numbers and quoted decimal strings.
func (a *Amount) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = s
	}
	v, err := ParseAmount(raw)
	if err != nil {
		return err
	}
	*a = v
	return nil
}
