package zn

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/roach88/numtower/internal/numerr"
)

// Display suffix delimiters: a 4-bit signed -2 renders as "-2<s4>".
const (
	suffixLeft  = "<"
	suffixRight = ">"
)

var radixPrefix = map[int]string{2: "0b", 8: "0o", 16: "0x"}

// bitsPerDigit for the padded radixes.
var bitsPerDigit = map[int]uint{2: 1, 8: 3, 16: 4}

func suffixCode(bits uint, signed bool) string {
	if signed {
		return fmt.Sprintf("s%d", bits)
	}
	return fmt.Sprintf("u%d", bits)
}

// String renders the decimal value, followed by the width suffix for
// bounded values ("-2<s4>", "14<u4>").
func (x Int) String() string {
	if x.bits == 0 {
		return x.value().String()
	}
	return x.value().String() + suffixLeft + suffixCode(x.bits, x.Signed()) + suffixRight
}

// Text renders x in the given base (2 to 62).
//
// Bases 2, 8 and 16 carry a 0b/0o/0x prefix. A bounded value renders its
// two's-complement bit pattern zero padded to exactly ceil(bits/log2(base))
// digits; an unbounded value uses the minimal number of digits and a
// leading '-' when negative. Base 10 renders the (signed) value.
func (x Int) Text(base int) string {
	prefix := radixPrefix[base]
	if base == 10 || x.bits == 0 {
		v := x.value()
		if v.Sign() < 0 {
			return "-" + prefix + new(big.Int).Abs(v).Text(base)
		}
		return prefix + v.Text(base)
	}

	pattern := new(big.Int).And(x.value(), mask(x.bits))
	s := pattern.Text(base)
	if per, ok := bitsPerDigit[base]; ok {
		digits := int((x.bits + per - 1) / per)
		if len(s) < digits {
			s = strings.Repeat("0", digits-len(s)) + s
		}
	}
	return prefix + s
}

var romanNumerals = []struct {
	value  int64
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// Roman renders x as a Roman numeral. Values outside 1..3999 in magnitude
// fall back to String.
func (x Int) Roman() string {
	v, ok := x.Int64()
	if !ok || v == 0 || v > 3999 || v < -3999 {
		return x.String()
	}
	var sb strings.Builder
	if v < 0 {
		sb.WriteByte('-')
		v = -v
	}
	for _, r := range romanNumerals {
		for v >= r.value {
			sb.WriteString(r.symbol)
			v -= r.value
		}
	}
	return sb.String()
}

// Parse reads an integer and fits it into m.
//
// Accepted forms: decimal, 0x/0o/0b prefixed literals, '_' digit
// separators, and the String form with a width suffix ("-2<s4>"). The
// suffix is ignored: the value is fitted into m regardless of the width it
// was rendered with.
func (m Mode) Parse(s string) (Int, error) {
	text := strings.TrimSpace(s)
	if i := strings.Index(text, suffixLeft); i >= 0 {
		text = strings.TrimSpace(text[:i])
	}

	neg := false
	switch {
	case strings.HasPrefix(text, "-"):
		neg = true
		text = text[1:]
	case strings.HasPrefix(text, "+"):
		text = text[1:]
	}

	base := 10
	lower := strings.ToLower(text)
	for b, p := range radixPrefix {
		if strings.HasPrefix(lower, p) {
			base = b
			text = text[len(p):]
			break
		}
	}
	text = strings.ReplaceAll(text, "_", "")

	if strings.HasPrefix(text, "-") || strings.HasPrefix(text, "+") {
		return Int{}, numerr.Domain("zn.Parse", "can't set integer from %q", s)
	}
	v, ok := new(big.Int).SetString(text, base)
	if !ok || text == "" {
		return Int{}, numerr.Domain("zn.Parse", "can't set integer from %q", s)
	}
	if neg {
		v.Neg(v)
	}
	return newInt(v, m.Bits, m.IsSigned()), nil
}
