package envarify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vadimtitov/envarify/internal/parse"
)

var (
	// ErrAnnotation reports a malformed record declaration: a config type
	// with no usable fields, a Vars key naming no field, a Nil default on
	// a non-pointer field, an incompatible default value, or a nested
	// config cycle. Detected before any environment access.
	ErrAnnotation = errors.New("invalid config declaration")

	// ErrUnsupportedType reports a declared field type with no matching
	// producer and no custom parse function.
	ErrUnsupportedType = parse.ErrUnsupportedType
)

// MissingEnvVarsError lists every required environment variable that is
// absent across the whole nested config tree, in declaration order, outer
// level first. Names are not deduplicated: a variable bound to two fields
// appears twice.
type MissingEnvVarsError struct {
	EnvVars []string
}

func (e *MissingEnvVarsError) Error() string {
	return "missing environment variables: " + strings.Join(e.EnvVars, ", ")
}

// ParseError reports the first environment variable whose value could not
// be converted by its producer. Parse failures are never aggregated.
type ParseError struct {
	EnvVar string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse environment variable %s: %v", e.EnvVar, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
