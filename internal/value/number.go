package value

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// NumKind distinguishes the three rungs of the numeric tower.
type NumKind int

const (
	NumInt NumKind = iota
	NumBig
	NumFloat
)

// Number is a MiniDyn number: a fixed-width int64, an arbitrary-precision
// integer, or an IEEE-754 double, tagged by NumKind. Promotion rules for
// arithmetic and comparison: if either side is double -> double; else if
// either is bigint -> bigint; else int64.
type Number struct {
	kind NumKind
	i    int64
	b    *big.Int
	f    float64
}

// ErrDivideByZero is returned by Div/Mod when the divisor is zero.
var ErrDivideByZero = errors.New("division by zero")

// Int constructs an int64-tagged Number.
func Int(n int64) Number { return Number{kind: NumInt, i: n} }

// BigInt constructs a bigint-tagged Number. The value is NOT downcast to
// int64 even if it fits; arithmetic results instead go through
// normalizeBig, which returns int64 whenever the result fits.
func BigInt(b *big.Int) Number { return Number{kind: NumBig, b: new(big.Int).Set(b)} }

// Float constructs a double-tagged Number.
func Float(f float64) Number { return Number{kind: NumFloat, f: f} }

func (n Number) Kind() Kind      { return KindNumber }
func (n Number) NumKind() NumKind { return n.kind }

func (n Number) Truthy() bool {
	switch n.kind {
	case NumInt:
		return n.i != 0
	case NumBig:
		return n.b.Sign() != 0
	default:
		return n.f != 0
	}
}

func (n Number) String() string {
	switch n.kind {
	case NumInt:
		return strconv.FormatInt(n.i, 10)
	case NumBig:
		return n.b.String()
	default:
		return strconv.FormatFloat(n.f, 'g', -1, 64)
	}
}

func (n Number) AsFloat() float64 {
	switch n.kind {
	case NumInt:
		return float64(n.i)
	case NumBig:
		f := new(big.Float).SetInt(n.b)
		v, _ := f.Float64()
		return v
	default:
		return n.f
	}
}

func (n Number) AsBig() *big.Int {
	switch n.kind {
	case NumInt:
		return big.NewInt(n.i)
	case NumBig:
		return new(big.Int).Set(n.b)
	default:
		bi, _ := big.NewFloat(n.f).Int(nil)
		return bi
	}
}

func commonKind(a, b Number) NumKind {
	if a.kind == NumFloat || b.kind == NumFloat {
		return NumFloat
	}
	if a.kind == NumBig || b.kind == NumBig {
		return NumBig
	}
	return NumInt
}

// NumAdd adds two numbers, promoting to bigint on int64 overflow.
func NumAdd(a, b Number) Number {
	switch commonKind(a, b) {
	case NumFloat:
		return Float(a.AsFloat() + b.AsFloat())
	case NumBig:
		return normalizeBig(new(big.Int).Add(a.AsBig(), b.AsBig()))
	default:
		sum := a.i + b.i
		if (sum > a.i) == (b.i > 0) {
			return Int(sum)
		}
		return normalizeBig(new(big.Int).Add(big.NewInt(a.i), big.NewInt(b.i)))
	}
}

// NumSub subtracts b from a, promoting to bigint on int64 overflow.
func NumSub(a, b Number) Number {
	switch commonKind(a, b) {
	case NumFloat:
		return Float(a.AsFloat() - b.AsFloat())
	case NumBig:
		return normalizeBig(new(big.Int).Sub(a.AsBig(), b.AsBig()))
	default:
		diff := a.i - b.i
		if (diff < a.i) == (b.i > 0) {
			return Int(diff)
		}
		return normalizeBig(new(big.Int).Sub(big.NewInt(a.i), big.NewInt(b.i)))
	}
}

// NumMul multiplies two numbers, promoting to bigint on int64 overflow.
func NumMul(a, b Number) Number {
	switch commonKind(a, b) {
	case NumFloat:
		return Float(a.AsFloat() * b.AsFloat())
	case NumBig:
		return normalizeBig(new(big.Int).Mul(a.AsBig(), b.AsBig()))
	default:
		if a.i == 0 || b.i == 0 {
			return Int(0)
		}
		prod := a.i * b.i
		if prod/b.i == a.i && !(a.i == -1 && b.i == math.MinInt64) && !(b.i == -1 && a.i == math.MinInt64) {
			return Int(prod)
		}
		return normalizeBig(new(big.Int).Mul(big.NewInt(a.i), big.NewInt(b.i)))
	}
}

// NumNeg negates a number, promoting int64's minimum value to bigint.
func NumNeg(a Number) Number {
	switch a.kind {
	case NumFloat:
		return Float(-a.f)
	case NumBig:
		return normalizeBig(new(big.Int).Neg(a.b))
	default:
		if a.i == math.MinInt64 {
			return normalizeBig(new(big.Int).Neg(big.NewInt(a.i)))
		}
		return Int(-a.i)
	}
}

// NumDiv divides a by b. The result is int64/bigint only when the
// division is exact; otherwise it promotes to double. Division by zero
// is an error.
func NumDiv(a, b Number) (Number, error) {
	switch commonKind(a, b) {
	case NumFloat:
		if b.AsFloat() == 0 {
			return Number{}, ErrDivideByZero
		}
		return Float(a.AsFloat() / b.AsFloat()), nil
	case NumBig:
		bb := b.AsBig()
		if bb.Sign() == 0 {
			return Number{}, ErrDivideByZero
		}
		q, r := new(big.Int).QuoRem(a.AsBig(), bb, new(big.Int))
		if r.Sign() == 0 {
			return normalizeBig(q), nil
		}
		return Float(a.AsFloat() / b.AsFloat()), nil
	default:
		if b.i == 0 {
			return Number{}, ErrDivideByZero
		}
		if a.i%b.i == 0 && !(a.i == math.MinInt64 && b.i == -1) {
			return Int(a.i / b.i), nil
		}
		return Float(float64(a.i) / float64(b.i)), nil
	}
}

// NumMod computes a modulo b, truncating toward zero like Go's %.
// Modulo by zero is an error.
func NumMod(a, b Number) (Number, error) {
	switch commonKind(a, b) {
	case NumFloat:
		if b.AsFloat() == 0 {
			return Number{}, ErrDivideByZero
		}
		return Float(math.Mod(a.AsFloat(), b.AsFloat())), nil
	case NumBig:
		bb := b.AsBig()
		if bb.Sign() == 0 {
			return Number{}, ErrDivideByZero
		}
		return normalizeBig(new(big.Int).Rem(a.AsBig(), bb)), nil
	default:
		if b.i == 0 {
			return Number{}, ErrDivideByZero
		}
		if a.i == math.MinInt64 && b.i == -1 {
			return Int(0), nil
		}
		return Int(a.i % b.i), nil
	}
}

// NumCompare returns -1, 0, or 1 comparing a and b by numeric value.
func NumCompare(a, b Number) int {
	switch commonKind(a, b) {
	case NumFloat:
		af, bf := a.AsFloat(), b.AsFloat()
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	case NumBig:
		return a.AsBig().Cmp(b.AsBig())
	default:
		switch {
		case a.i < b.i:
			return -1
		case a.i > b.i:
			return 1
		default:
			return 0
		}
	}
}

// NumEqual reports numeric equality across kinds, including NaN's
// IEEE-754 non-reflexivity.
func NumEqual(a, b Number) bool {
	if commonKind(a, b) == NumFloat {
		return a.AsFloat() == b.AsFloat()
	}
	return NumCompare(a, b) == 0
}

// normalizeBig returns a *big.Int result as an int64 Number when it fits
// in int64 and as a bigint otherwise, so arithmetic results and
// ParseIntLiteral both yield the smallest kind that holds the value.
func normalizeBig(v *big.Int) Number {
	if v.IsInt64() {
		return Int(v.Int64())
	}
	return BigInt(v)
}

// ParseIntLiteral parses a decimal integer literal's digit text (with
// optional '_' separators already stripped) into the smallest numeric
// kind that represents it exactly: int64 if it fits, bigint otherwise.
func ParseIntLiteral(digits string) (Number, error) {
	if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return Int(n), nil
	}
	b, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return Number{}, fmt.Errorf("invalid integer literal %q", digits)
	}
	return normalizeBig(b), nil
}
