package coerce

import (
	"fmt"
	"strings"

	"github.com/roach88/numtower/internal/numerr"
)

// Tag names one of the six numeric kinds.
//
// The order is the promotion order: AutoCast converts both operands to the
// larger tag. Interval and Time sit above the scalar chain, so once either
// operand carries one it wins.
type Tag int

const (
	TagInteger Tag = iota
	TagRational
	TagReal
	TagComplex
	TagInterval
	TagTime
)

var tagNames = [...]string{
	TagInteger:  "integer",
	TagRational: "rational",
	TagReal:     "real",
	TagComplex:  "complex",
	TagInterval: "interval",
	TagTime:     "time",
}

// tagCodes are the one-letter codes used on the command line.
var tagCodes = [...]string{
	TagInteger:  "z",
	TagRational: "q",
	TagReal:     "r",
	TagComplex:  "c",
	TagInterval: "i",
	TagTime:     "t",
}

// Tags lists every tag in promotion order.
func Tags() []Tag {
	return []Tag{TagInteger, TagRational, TagReal, TagComplex, TagInterval, TagTime}
}

// Valid reports whether t is one of the six tags.
func (t Tag) Valid() bool {
	return t >= TagInteger && t <= TagTime
}

// String implements fmt.Stringer.
func (t Tag) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Tag(%d)", int(t))
	}
	return tagNames[t]
}

// Code returns the one-letter code of t.
func (t Tag) Code() string {
	if !t.Valid() {
		return "?"
	}
	return tagCodes[t]
}

// ParseTag accepts a tag name or its one-letter code, case-insensitively.
func ParseTag(s string) (Tag, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, t := range Tags() {
		if key == tagNames[t] || key == tagCodes[t] {
			return t, nil
		}
	}
	return 0, numerr.Type("coerce.ParseTag", "unknown tag %q", s)
}

// Promote returns the tag two operands are converted to.
func Promote(a, b Tag) Tag {
	return max(a, b)
}
