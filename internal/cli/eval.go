package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/numtower/internal/calc"
	"github.com/roach88/numtower/internal/coerce"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	Digits   int
	Downcast bool
	Strict   bool
}

// EvalResult is the JSON payload of the eval command: the final stack,
// bottom first.
type EvalResult struct {
	Stack []ValueJSON `json:"stack"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval <token>...",
		Short: "Evaluate an RPN expression",
		Long: `Evaluate tokens in reverse Polish notation and print the stack.

Operators: + - * (or x) / // % ** & | ^ << >> take two operands;
neg abs ~ take one. dup and swap rearrange the stack, and to:<tag>
converts the top of the stack. Anything else is pushed as a value.

Example: numtower eval -- 22 7 / to:real`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, args, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Digits, "digits", "d", 0, "digits to match for to:rational (error within 10^-digits), 0 for full precision")
	cmd.Flags().BoolVar(&opts.Downcast, "downcast", false, "simplify results to the lowest kind that holds them")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "reject mixed-kind arithmetic")

	return cmd
}

// stackError is an RPN stack underflow.
type stackError struct {
	token string
	msg   string
}

func (e *stackError) Error() string {
	return fmt.Sprintf("%s: %s", e.token, e.msg)
}

func runEval(opts *EvalOptions, tokens []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	s, err := opts.Settings(cmd)
	if err != nil {
		return formatter.Fail("loading settings", err)
	}
	if cmd.Flags().Changed("downcast") {
		s.Downcast = opts.Downcast
	}
	if cmd.Flags().Changed("strict") {
		s.Coerce = !opts.Strict
	}
	c := calc.New(s)

	stack, err := evalRPN(c, opts.Digits, tokens, formatter)
	if err != nil {
		var se *stackError
		var oe *operandError
		switch {
		case errors.As(err, &se):
			if outErr := formatter.Error(ErrCodeStack, se.Error(), nil); outErr != nil {
				return outErr
			}
			return WrapExitError(ExitCommandError, "evaluation failed", err)
		case errors.As(err, &oe):
			return formatter.BadOperand(oe.token, oe.err)
		}
		return formatter.Fail("evaluation failed", err)
	}

	if formatter.Format == "json" {
		result := EvalResult{Stack: make([]ValueJSON, len(stack))}
		for i, v := range stack {
			result.Stack[i] = valueJSON(v)
		}
		return formatter.Success(result)
	}
	for _, v := range stack {
		formatter.Value(v)
	}
	return nil
}

// operandError is a token that is neither an operator nor a literal.
type operandError struct {
	token string
	err   error
}

func (e *operandError) Error() string { return e.err.Error() }

func (e *operandError) Unwrap() error { return e.err }

// evalRPN runs tokens against c and returns the final stack, bottom first.
func evalRPN(c *calc.Calculator, digits int, tokens []string, formatter *OutputFormatter) ([]coerce.Value, error) {
	env := c.Settings().Env
	var stack []coerce.Value

	pop := func(tok string, n int) ([]coerce.Value, error) {
		if len(stack) < n {
			return nil, &stackError{token: tok, msg: fmt.Sprintf("needs %d operand(s), stack has %d", n, len(stack))}
		}
		args := slices.Clone(stack[len(stack)-n:])
		stack = stack[:len(stack)-n]
		return args, nil
	}

	for _, tok := range tokens {
		sym := tok
		if sym == "x" {
			sym = "*"
		}

		switch {
		case calc.IsBinary(sym):
			args, err := pop(tok, 2)
			if err != nil {
				return nil, err
			}
			v, err := c.Binary(sym, args[0], args[1])
			if err != nil {
				return nil, err
			}
			formatter.VerboseLog("%s %s %s = %s", args[0], sym, args[1], v)
			stack = append(stack, v)

		case calc.IsUnary(sym):
			args, err := pop(tok, 1)
			if err != nil {
				return nil, err
			}
			v, err := c.Unary(sym, args[0])
			if err != nil {
				return nil, err
			}
			stack = append(stack, v)

		case sym == "dup":
			args, err := pop(tok, 1)
			if err != nil {
				return nil, err
			}
			stack = append(stack, args[0], args[0])

		case sym == "swap":
			args, err := pop(tok, 2)
			if err != nil {
				return nil, err
			}
			stack = append(stack, args[1], args[0])

		case strings.HasPrefix(sym, "to:"):
			tag, err := coerce.ParseTag(strings.TrimPrefix(sym, "to:"))
			if err != nil {
				return nil, err
			}
			args, err := pop(tok, 1)
			if err != nil {
				return nil, err
			}
			v, err := env.Convert(args[0], tag, digits)
			if err != nil {
				return nil, err
			}
			stack = append(stack, v)

		default:
			v, err := ParseLiteral(env, tok)
			if err != nil {
				return nil, &operandError{token: tok, err: err}
			}
			stack = append(stack, v)
		}
	}

	if len(stack) == 0 {
		return nil, &stackError{token: "eval", msg: "empty stack"}
	}
	return stack, nil
}
