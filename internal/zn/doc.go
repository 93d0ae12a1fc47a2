// Package zn provides fixed- and flexible-width integers with
// two's-complement semantics.
//
// An Int is an immutable value carrying its own width and signedness. A
// width of 0 means unbounded (and is always signed). Every Int satisfies:
//
//	bits > 0, signed:   -2^(bits-1) <= v <= 2^(bits-1)-1
//	bits > 0, unsigned:  0          <= v <= 2^bits-1
//
// Values are created through a Mode, which captures the width, signedness,
// division rounding and negation policy once; there is no package-level
// mutable state. Binary operations between Ints of different modes widen to
// max(bits) and signed_a && signed_b, renormalize both operands into that
// common mode, and renormalize the result.
//
// Four-bit two's complement, for reference:
//
//	U        S           S   U
//	7  0111  7    1111  -1  15
//	6  0110  6    1110  -2  14
//	5  0101  5    1101  -3  13
//	4  0100  4    1100  -4  12
//	3  0011  3    1011  -5  11
//	2  0010  2    1010  -6  10
//	1  0001  1    1001  -7   9
//	0  0000  0    1000  -8   8
//
// The most negative signed value (-8 above, MIN) has no positive
// counterpart. Abs(MIN) is a domain error and Neg(MIN) follows the Negation
// policy selected in the Mode.
package zn
