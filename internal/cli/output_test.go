package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/numtower/internal/coerce"
	"github.com/roach88/numtower/internal/config"
	"github.com/roach88/numtower/internal/mp"
	"github.com/roach88/numtower/internal/numerr"
	"github.com/roach88/numtower/internal/rational"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Success(valueJSON(coerce.Rational(rational.MustNew(22, 7))))
	require.NoError(t, err)

	var resp struct {
		Status string    `json:"status"`
		Data   ValueJSON `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, ValueJSON{Tag: "rational", Value: "22/7"}, resp.Data)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error(ErrCodeDomain, "division by zero", map[string]string{"op": "zn.DivMod"})
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeDomain, resp.Error.Code)
	assert.Equal(t, "division by zero", resp.Error.Message)
	assert.NotNil(t, resp.Error.Details)
}

func TestOutputFormatter_TextError(t *testing.T) {
	tests := []struct {
		name        string
		verbose     bool
		wantDetails bool
	}{
		{"quiet", false, false},
		{"verbose", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{Format: "text", Writer: buf, Verbose: tt.verbose}

			require.NoError(t, formatter.Error(ErrCodeType, "mixed kinds", "integer and real"))
			assert.Contains(t, buf.String(), "Error [E202]: mixed kinds")
			if tt.wantDetails {
				assert.Contains(t, buf.String(), "Details: integer and real")
			} else {
				assert.NotContains(t, buf.String(), "Details:")
			}
		})
	}
}

func TestOutputFormatter_ValueTags(t *testing.T) {
	v := coerce.Real(mp.MustParseReal("2.5"))

	buf := &bytes.Buffer{}
	(&OutputFormatter{Format: "text", Writer: buf}).Value(v)
	assert.Equal(t, "2.5\n", buf.String())

	buf.Reset()
	(&OutputFormatter{Format: "text", Writer: buf, Tags: true}).Value(v)
	assert.Equal(t, "r  2.5\n", buf.String())

	assert.False(t, isTerminal(buf))
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut, Verbose: true}
	formatter.VerboseLog("converting %s", "22/7")
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "converting 22/7")

	quiet := &OutputFormatter{Format: "text", Writer: out}
	quiet.VerboseLog("ignored")
	assert.Empty(t, out.String())
	assert.Equal(t, out, quiet.GetErrWriter())
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{numerr.Domain("zn.DivMod", "division by zero"), ErrCodeDomain},
		{fmt.Errorf("wrapped: %w", numerr.Type("coerce.Convert", "bad tag")), ErrCodeType},
		{numerr.Convergence("rational.Approximate", 10, 10), ErrCodeConvergence},
		{&config.Error{Path: "precision", Message: "out of range"}, ErrCodeBadConfig},
		{fmt.Errorf("failed to read config file: %w", os.ErrNotExist), ErrCodeNotFound},
		{errors.New("boom"), ErrCodeGeneric},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorCode(tt.err), tt.err.Error())
	}
}

func TestFailExitCodes(t *testing.T) {
	formatter := &OutputFormatter{Format: "text", Writer: &bytes.Buffer{}}

	err := formatter.Fail("conversion failed", numerr.Domain("mp.Quo", "division by zero"))
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, numerr.IsDomainError(err))

	err = formatter.Fail("loading settings", &config.Error{Message: "bad"})
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	err = formatter.BadOperand("abc", errors.New("not a number"))
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, "bad: inner", WrapExitError(ExitFailure, "bad", errors.New("inner")).Error())
}
