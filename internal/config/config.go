// Package config loads calculator settings from a YAML file.
//
// The file is decoded into a generic map and unified with an embedded CUE
// schema that rejects unknown keys, checks ranges and fills in defaults.
// An empty or absent file yields calc.DefaultSettings.
//
//	integer:
//	  bits: 8
//	  signed: false
//	  division: c
//	  negation: swap
//	precision: 50
//	modulus: 7
//	coerce: true
//	downcast: false
//	rationals: true
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"

	"github.com/roach88/numtower/internal/calc"
	"github.com/roach88/numtower/internal/zn"
)

//go:embed schema.cue
var schemaSource string

// File is the decoded settings file with every default applied.
type File struct {
	Integer   Integer `yaml:"integer" json:"integer"`
	Precision int     `yaml:"precision" json:"precision"`

	// Modulus is a decimal integer; "1" means off.
	Modulus string `yaml:"modulus" json:"-"`

	Coerce    bool `yaml:"coerce" json:"coerce"`
	Downcast  bool `yaml:"downcast" json:"downcast"`
	Rationals bool `yaml:"rationals" json:"rationals"`
}

// Integer holds the integer mode keys.
type Integer struct {
	Bits     int    `yaml:"bits" json:"bits"`
	Signed   bool   `yaml:"signed" json:"signed"`
	Division string `yaml:"division" json:"division"`
	Negation string `yaml:"negation" json:"negation"`
}

// Error reports an invalid settings file.
type Error struct {
	Path    string
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Path, e.Message)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// formatCUEError extracts the field path and position of the first CUE
// error.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	format, args := first.Msg()
	out := &Error{
		Path:    strings.TrimPrefix(strings.Join(first.Path(), "."), "#Config."),
		Message: fmt.Sprintf(format, args...),
	}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		out.Pos = positions[0]
	}
	return out
}

// Load reads the settings file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	slog.Debug("loaded config", "path", path, "bits", f.Integer.Bits, "precision", f.Precision)
	return f, nil
}

// Parse decodes and validates a settings document.
func Parse(data []byte) (*File, error) {
	doc := map[string]any{}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	v := schema.LookupPath(cue.ParsePath("#Config")).Unify(ctx.Encode(doc))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	var f File
	if err := v.Decode(&f); err != nil {
		return nil, formatCUEError(err)
	}

	mod, _ := v.LookupPath(cue.ParsePath("modulus")).Default()
	switch mod.Kind() {
	case cue.IntKind:
		n, err := mod.Int(nil)
		if err != nil {
			return nil, formatCUEError(err)
		}
		f.Modulus = n.String()
	case cue.StringKind:
		s, err := mod.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		f.Modulus = strings.ReplaceAll(s, "_", "")
	}
	return &f, nil
}

// Default returns the settings file with every default applied.
func Default() *File {
	f, err := Parse(nil)
	if err != nil {
		panic(err)
	}
	return f
}

// Settings converts f to calculator settings.
func (f *File) Settings() (calc.Settings, error) {
	s, err := calc.DefaultSettings().WithBits(f.Integer.Bits)
	if err != nil {
		return s, err
	}
	s = s.WithSigned(f.Integer.Signed)

	div, err := zn.ParseDivision(f.Integer.Division)
	if err != nil {
		return s, err
	}
	neg, err := zn.ParseNegation(f.Integer.Negation)
	if err != nil {
		return s, err
	}
	s = s.WithDivision(div).WithNegation(neg)

	if s, err = s.WithPrecision(f.Precision); err != nil {
		return s, err
	}

	m, ok := new(big.Int).SetString(f.Modulus, 10)
	if !ok {
		return s, &Error{Path: "modulus", Message: fmt.Sprintf("not an integer: %q", f.Modulus)}
	}
	if s, err = s.WithModulus(m); err != nil {
		return s, err
	}

	s.Coerce = f.Coerce
	s.Downcast = f.Downcast
	s.Rationals = f.Rationals
	return s, nil
}

// LoadSettings returns the settings in the file at path, or the defaults
// when path is empty.
func LoadSettings(path string) (calc.Settings, error) {
	if path == "" {
		return calc.DefaultSettings(), nil
	}
	f, err := Load(path)
	if err != nil {
		return calc.Settings{}, err
	}
	return f.Settings()
}

// FromSettings returns the file that loads as s.
func FromSettings(s calc.Settings) *File {
	m := s.Env.Int
	return &File{
		Integer: Integer{
			Bits:     int(m.Bits),
			Signed:   m.IsSigned(),
			Division: m.Division.String(),
			Negation: m.Negation.String(),
		},
		Precision: s.Env.Real.Digits(),
		Modulus:   s.Modulus.Int().String(),
		Coerce:    s.Coerce,
		Downcast:  s.Downcast,
		Rationals: s.Rationals,
	}
}

// Marshal renders f as YAML.
func (f *File) Marshal() ([]byte, error) {
	return yaml.Marshal(f)
}
