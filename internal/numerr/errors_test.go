package numerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	err := Domain("zn.Abs", "no positive counterpart for %d", -8)
	assert.Equal(t, "DOMAIN_ERROR: zn.Abs: no positive counterpart for -8", err.Error())

	err = &Error{Code: CodeType, Message: "bad tag"}
	assert.Equal(t, "TYPE_ERROR: bad tag", err.Error())
}

func TestClassificationThroughWrapping(t *testing.T) {
	domain := fmt.Errorf("converting: %w", Domain("rational.New", "zero denominator"))
	typ := fmt.Errorf("casting: %w", Type("coerce.Convert", "unknown tag"))
	conv := fmt.Errorf("frac: %w", Convergence("rational.Approximate", 11, 10))

	assert.True(t, IsDomainError(domain))
	assert.False(t, IsTypeError(domain))

	assert.True(t, IsTypeError(typ))
	assert.False(t, IsConvergenceError(typ))

	assert.True(t, IsConvergenceError(conv))
	assert.False(t, IsDomainError(conv))

	assert.False(t, IsDomainError(errors.New("plain")))
	assert.False(t, IsDomainError(nil))
}

func TestConvergenceDetails(t *testing.T) {
	err := Convergence("rational.Approximate", 6, 5)
	assert.Equal(t, "6", err.Details["iterations"])
	assert.Equal(t, "5", err.Details["max_iterations"])
	assert.Contains(t, err.Error(), "no convergence after 6 iterations (max 5)")
}
