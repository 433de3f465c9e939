package envarify

import (
	"fmt"
	"reflect"

	"dario.cat/mergo"

	"github.com/vadimtitov/envarify/internal/parse"
	"github.com/vadimtitov/envarify/types"
)

// Value types available to config declarations.
type (
	SecretString = types.SecretString
	Date         = types.Date
	URL          = types.URL
	HTTPURL      = types.HTTPURL
	HTTPSURL     = types.HTTPSURL
	AnyHTTPURL   = types.AnyHTTPURL
)

// NewSecretString wraps a sensitive value so it prints masked.
func NewSecretString(value string) SecretString { return types.NewSecretString(value) }

// Nil is the explicit null default for pointer fields, distinct from
// leaving Default unset: a field defaulting to Nil is optional and stays
// nil when its variable is absent, instead of being reported missing.
var Nil any = nilDefault{}

type nilDefault struct{}

// EnvVar is a programmatic field specification for the few things struct
// tags cannot carry: typed defaults, the Nil default and custom parse
// functions. Attached per call via WithVars; tag metadata on the same
// field is overridden knob by knob.
type EnvVar struct {
	// Name overrides the environment variable name. Empty means the env
	// tag or, failing that, the field's own name.
	Name string

	// Default makes the variable optional. A string value is run through
	// the field's producer, any other value is assigned directly and Nil
	// keeps the field at its zero value. Unset means required.
	Default any

	// Parse is a custom producer. Supported shapes: func(string) T,
	// func(string) (T, bool), func(string) (T, error) and
	// func(string) (T, bool, error).
	Parse any

	// Delimiter splits sequence values. Defaults to ",".
	Delimiter string
}

// Vars assigns specifications to struct fields by field name.
type Vars map[string]EnvVar

type options struct {
	vars Vars
	base any
}

// Option adjusts a single FromEnv or Validate call.
type Option func(*options)

// WithVars attaches programmatic field specifications.
func WithVars(vars Vars) Option {
	return func(o *options) { o.vars = vars }
}

// WithBase supplies a partially populated config of the same type. Fields
// already set in base count as present during validation and fill any
// field the environment left unset.
func WithBase(base any) Option {
	return func(o *options) { o.base = base }
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if len(o.vars) == 0 {
		o.vars = nil
	}

	return o
}

// baseValue checks the base config against the record type and unwraps it.
func (o *options) baseValue(t reflect.Type) (reflect.Value, error) {
	if o.base == nil {
		return reflect.Value{}, nil
	}

	v := reflect.ValueOf(o.base)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if !v.IsValid() || v.Type() != t {
		return reflect.Value{}, fmt.Errorf("%w: base config must be %s, got %T", ErrAnnotation, t, o.base)
	}

	return v, nil
}

// RegisterParser extends the global producer registry with fn, keyed by
// its return type. Accepted shapes are those of EnvVar.Parse. Fields of
// the registered type then parse through fn without a per-field spec.
func RegisterParser(fn any) error {
	return parse.Register(fn)
}

// FromEnv validates and materializes a config of type T from the process
// environment.
//
// It fails with ErrAnnotation if T is not a valid config declaration, with
// ErrUnsupportedType if a field has no producer, with *MissingEnvVarsError
// listing every absent required variable across the whole nested tree, or
// with *ParseError on the first unparseable value. On failure no partial
// config is returned.
func FromEnv[T any](opts ...Option) (T, error) {
	var cfg T

	s, baseVal, err := prepare[T](opts)
	if err != nil {
		return cfg, err
	}

	if err := s.validate(baseVal); err != nil {
		return cfg, err
	}

	v, err := s.materialize()
	if err != nil {
		return cfg, err
	}

	cfg = v.Interface().(T)
	if baseVal.IsValid() {
		if err := mergo.Merge(&cfg, baseVal.Interface()); err != nil {
			return cfg, fmt.Errorf("merge base config: %w", err)
		}
	}

	return cfg, nil
}

// Validate reports every missing required variable for T without
// materializing it.
func Validate[T any](opts ...Option) error {
	s, baseVal, err := prepare[T](opts)
	if err != nil {
		return err
	}

	return s.validate(baseVal)
}

func prepare[T any](opts []Option) (*schema, reflect.Value, error) {
	var zero T
	o := newOptions(opts)

	t := reflect.TypeOf(zero)
	if t == nil || t.Kind() != reflect.Struct {
		return nil, reflect.Value{}, fmt.Errorf("%w: %T is not a struct", ErrAnnotation, zero)
	}

	baseVal, err := o.baseValue(t)
	if err != nil {
		return nil, reflect.Value{}, err
	}

	s, err := schemaFor(t, o.vars)
	if err != nil {
		return nil, reflect.Value{}, err
	}

	return s, baseVal, nil
}
