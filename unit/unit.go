// Package unit converts PKT amounts between denominations.
//
// Amounts are held as an integer number of base units ("bits"); one PKT is
// 2^30 base units. Conversions out of base units are rounded to the number of
// decimals the target denomination displays.
package unit

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/arloliu/pcproof/errs"
)

// Code identifies a denomination.
type Code string

const (
	PKT  Code = "PKT"
	MPKT Code = "mPKT"
	UPKT Code = "uPKT"
	Bits Code = "bits"
)

// fiatDecimals is the precision of AtRate results.
const fiatDecimals = 2

type denomination struct {
	factor   int64 // base units per one of this denomination
	decimals int   // displayed precision
}

var denominations = map[Code]denomination{
	PKT:  {factor: 1 << 30, decimals: 10},
	MPKT: {factor: 1 << 20, decimals: 7},
	UPKT: {factor: 1 << 10, decimals: 4},
	Bits: {factor: 1, decimals: 0},
}

// Codes returns all known denominations, largest first.
func Codes() []Code {
	return []Code{PKT, MPKT, UPKT, Bits}
}

// ParseCode returns the Code named s. Names are case-sensitive, since mPKT
// and MPKT would otherwise be ambiguous.
func ParseCode(s string) (Code, error) {
	code := Code(s)
	if _, ok := denominations[code]; !ok {
		return "", fmt.Errorf("%q: %w", s, errs.ErrUnknownUnit)
	}

	return code, nil
}

// Factor returns the number of base units in one unit of code.
func (c Code) Factor() (int64, error) {
	d, err := lookup(c)
	if err != nil {
		return 0, err
	}

	return d.factor, nil
}

func lookup(code Code) (denomination, error) {
	d, ok := denominations[code]
	if !ok {
		return denomination{}, fmt.Errorf("%q: %w", string(code), errs.ErrUnknownUnit)
	}

	return d, nil
}

func round(v float64, decimals int) float64 {
	scale := math.Pow10(decimals)
	return math.Round(v*scale) / scale
}

// ToBase converts amount in code to base units, rounding to the nearest unit.
func ToBase(amount float64, code Code) (int64, error) {
	d, err := lookup(code)
	if err != nil {
		return 0, err
	}

	return int64(math.Round(amount * float64(d.factor))), nil
}

// FromBase converts base units to code, rounded to the precision of code.
func FromBase(value int64, code Code) (float64, error) {
	d, err := lookup(code)
	if err != nil {
		return 0, err
	}

	return round(float64(value)/float64(d.factor), d.decimals), nil
}

// Convert converts amount from one denomination to another. The amount is
// rounded to base units first.
func Convert(amount float64, from, to Code) (float64, error) {
	value, err := ToBase(amount, from)
	if err != nil {
		return 0, err
	}

	return FromBase(value, to)
}

// AtRate returns the fiat value of value base units at rate fiat per PKT,
// rounded to two decimals.
func AtRate(value int64, rate float64) (float64, error) {
	if rate <= 0 {
		return 0, fmt.Errorf("rate %v: %w", rate, errs.ErrInvalidRate)
	}
	pkt, err := FromBase(value, PKT)
	if err != nil {
		return 0, err
	}

	return round(pkt*rate, fiatDecimals), nil
}

// FromFiat converts a fiat amount at rate fiat per PKT into base units.
func FromFiat(amount, rate float64) (int64, error) {
	if rate <= 0 {
		return 0, fmt.Errorf("rate %v: %w", rate, errs.ErrInvalidRate)
	}

	return ToBase(amount/rate, PKT)
}

// Amount is a quantity of PKT in base units.
type Amount int64

// NewAmount converts amount in code to an Amount.
func NewAmount(amount float64, code Code) (Amount, error) {
	v, err := ToBase(amount, code)
	return Amount(v), err
}

// In returns a in the given denomination.
func (a Amount) In(code Code) (float64, error) {
	return FromBase(int64(a), code)
}

// String returns a in base units, e.g. "1073741824 bits".
func (a Amount) String() string {
	return strconv.FormatInt(int64(a), 10) + " bits"
}

type amountJSON struct {
	Amount float64 `json:"amount"`
	Code   Code    `json:"code"`
}

// MarshalJSON writes a as {"amount": <PKT>, "code": "PKT"}.
func (a Amount) MarshalJSON() ([]byte, error) {
	pkt, _ := a.In(PKT)
	return json.Marshal(amountJSON{Amount: pkt, Code: PKT})
}

// UnmarshalJSON reads {"amount", "code"} in any known denomination.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var v amountJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidArgument, err)
	}

	amount, err := NewAmount(v.Amount, v.Code)
	if err != nil {
		return err
	}
	*a = amount

	return nil
}
