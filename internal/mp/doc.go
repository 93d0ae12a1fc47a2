// Package mp wraps the github.com/cockroachdb/apd/v3 decimal engine with
// the immutable Real, Complex and Interval values the numeric tower
// coerces between.
//
// Nothing here implements floating-point arithmetic. Every operation hands
// its operands to an apd.Context derived from a Context value and wraps
// the result; apd conditions that trap (division by zero, overflow,
// invalid operations) surface as numerr domain errors.
//
// Working precision is explicit. A Context is a small value passed to each
// rounding operation; deriving a wider one (Guarded, WithPrecision) never
// affects the caller's copy, so there is nothing to restore afterwards.
//
// Interval arithmetic rounds outward: lower bounds are computed with
// apd.RoundFloor and upper bounds with apd.RoundCeiling, so the exact
// result always lies inside the returned interval.
package mp
