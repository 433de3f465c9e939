// Package parse builds value producers: functions turning one environment
// variable string into a value of the declared field type.
package parse

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/vadimtitov/envarify/internal/inspect"
	"github.com/vadimtitov/envarify/types"
)

// ErrUnsupportedType is returned when no producer exists for a declared
// field type and no custom parse function was supplied.
var ErrUnsupportedType = errors.New("unsupported type")

// Parser converts one raw string into a value of the target type.
type Parser func(raw string) (reflect.Value, error)

// Spec carries the per-field knobs that affect producer construction.
type Spec struct {
	// Delimiter splits sequence values. Empty means DefaultDelimiter.
	Delimiter string
}

// DefaultDelimiter separates sequence elements unless overridden.
const DefaultDelimiter = ","

// typeParsers holds producers registered by exact type. Write-once per
// type: racing registrations of the same producer are harmless.
var typeParsers sync.Map // reflect.Type -> Parser

// GetParser returns the producer for a declared type. It classifies the
// type once (nullable stripped) and dispatches on the shape.
func GetParser(t reflect.Type, spec Spec) (Parser, error) {
	info := inspect.Inspect(t, true)

	if p, ok := lookupRegistered(info.Type); ok {
		return p, nil
	}

	switch info.Shape {
	case inspect.ShapePrimitive:
		return primitiveParser(info.Type, info.Kind), nil

	case inspect.ShapeEnum:
		return enumParser(info.Type), nil

	case inspect.ShapeMapping:
		return mappingParser(info.Type), nil

	case inspect.ShapeSequence, inspect.ShapeSet, inspect.ShapeTuple:
		return sequenceParser(info, spec.delimiter())
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
}

func (s Spec) delimiter() string {
	if s.Delimiter == "" {
		return DefaultDelimiter
	}

	return s.Delimiter
}

// Registered reports whether a producer was registered for exactly t.
func Registered(t reflect.Type) bool {
	_, ok := typeParsers.Load(t)
	return ok
}

func lookupRegistered(t reflect.Type) (Parser, bool) {
	p, ok := typeParsers.Load(t)
	if !ok {
		return nil, false
	}

	return p.(Parser), true
}

var (
	trueTokens  = map[string]struct{}{"true": {}, "yes": {}, "on": {}, "y": {}, "1": {}}
	falseTokens = map[string]struct{}{"false": {}, "no": {}, "off": {}, "n": {}, "0": {}}
)

// ParseBool converts a truthy/falsy token, case-insensitively.
func ParseBool(raw string) (bool, error) {
	value := strings.ToLower(raw)

	if _, ok := trueTokens[value]; ok {
		return true, nil
	}
	if _, ok := falseTokens[value]; ok {
		return false, nil
	}

	return false, fmt.Errorf("cannot convert to bool: %q", raw)
}

// primitiveParser builds a producer for a primitive kind. The result is
// converted to t so named primitive types come out as themselves.
func primitiveParser(t reflect.Type, kind inspect.KindEnum) Parser {
	switch {
	case kind.IsSigned():
		return func(raw string) (reflect.Value, error) {
			n, err := strconv.ParseInt(raw, 10, t.Bits())
			if err != nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(n).Convert(t), nil
		}

	case kind.IsUnsigned():
		return func(raw string) (reflect.Value, error) {
			n, err := strconv.ParseUint(raw, 10, t.Bits())
			if err != nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(n).Convert(t), nil
		}

	case kind.IsFloat():
		return func(raw string) (reflect.Value, error) {
			f, err := strconv.ParseFloat(raw, t.Bits())
			if err != nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(f).Convert(t), nil
		}
	}

	switch kind {
	case inspect.KindString:
		return func(raw string) (reflect.Value, error) {
			return reflect.ValueOf(raw).Convert(t), nil
		}

	case inspect.KindBool:
		return func(raw string) (reflect.Value, error) {
			b, err := ParseBool(raw)
			if err != nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(b).Convert(t), nil
		}

	case inspect.KindTime:
		return fromStringFunc(func(raw string) (time.Time, error) {
			return time.Parse(time.RFC3339, raw)
		})

	case inspect.KindDate:
		return fromStringFunc(types.ParseDate)

	case inspect.KindDuration:
		return fromStringFunc(time.ParseDuration)

	case inspect.KindSecret:
		return fromStringFunc(func(raw string) (types.SecretString, error) {
			return types.NewSecretString(raw), nil
		})

	case inspect.KindURL:
		return fromStringFunc(types.ParseURL)

	case inspect.KindHTTPURL:
		return fromStringFunc(types.ParseHTTPURL)

	case inspect.KindHTTPSURL:
		return fromStringFunc(types.ParseHTTPSURL)

	case inspect.KindAnyHTTPURL:
		return fromStringFunc(types.ParseAnyHTTPURL)
	}

	// Unreachable while the kind table and this switch stay in sync.
	return nil
}

func fromStringFunc[T any](fn func(string) (T, error)) Parser {
	return func(raw string) (reflect.Value, error) {
		v, err := fn(raw)
		if err != nil {
			return reflect.Value{}, err
		}

		return reflect.ValueOf(v), nil
	}
}

// enumParser produces values through the type's own TextUnmarshaler, the
// membership-validating contract for string enumerations.
func enumParser(t reflect.Type) Parser {
	return func(raw string) (reflect.Value, error) {
		v := reflect.New(t)
		if err := v.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw)); err != nil {
			return reflect.Value{}, err
		}

		return v.Elem(), nil
	}
}

// mappingParser produces a map of type t from JSON text.
func mappingParser(t reflect.Type) Parser {
	return func(raw string) (reflect.Value, error) {
		m := reflect.New(t)
		if err := json.Unmarshal([]byte(raw), m.Interface()); err != nil {
			return reflect.Value{}, fmt.Errorf("cannot convert to mapping: %w", err)
		}

		return m.Elem(), nil
	}
}

// sequenceParser splits the raw text on the delimiter, produces every
// token with the element type's producer and folds the results into the
// target shape: slice, set (duplicates collapse) or fixed-size array
// (token count must match the array length).
func sequenceParser(info inspect.Info, delimiter string) (Parser, error) {
	elemParser, err := elementParser(info.Elem)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, info.Type)
	}

	fold := foldFunc(info)

	return func(raw string) (reflect.Value, error) {
		tokens := strings.Split(raw, delimiter)

		values := make([]reflect.Value, 0, len(tokens))
		for _, token := range tokens {
			v, err := elemParser(token)
			if err != nil {
				return reflect.Value{}, err
			}
			values = append(values, v)
		}

		return fold(values)
	}, nil
}

// elementParser resolves the producer for a sequence element. Untyped
// (interface) elements fall back to plain text.
func elementParser(elem reflect.Type) (Parser, error) {
	if elem.Kind() == reflect.Interface {
		return func(raw string) (reflect.Value, error) {
			return reflect.ValueOf(raw), nil
		}, nil
	}

	if p, ok := lookupRegistered(elem); ok {
		return p, nil
	}

	elemInfo := inspect.Inspect(elem, false)
	switch elemInfo.Shape {
	case inspect.ShapePrimitive:
		return primitiveParser(elem, elemInfo.Kind), nil
	case inspect.ShapeEnum:
		return enumParser(elem), nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, elem)
}

func foldFunc(info inspect.Info) func([]reflect.Value) (reflect.Value, error) {
	switch info.Shape {
	case inspect.ShapeSet:
		return func(values []reflect.Value) (reflect.Value, error) {
			set := reflect.MakeMapWithSize(info.Type, len(values))
			present := reflect.ValueOf(struct{}{})
			for _, v := range values {
				set.SetMapIndex(v, present)
			}
			return set, nil
		}

	case inspect.ShapeTuple:
		return func(values []reflect.Value) (reflect.Value, error) {
			if len(values) != info.Type.Len() {
				return reflect.Value{}, fmt.Errorf(
					"expected %d elements for %s, got %d", info.Type.Len(), info.Type, len(values))
			}
			tuple := reflect.New(info.Type).Elem()
			for i, v := range values {
				tuple.Index(i).Set(v)
			}
			return tuple, nil
		}

	default:
		return func(values []reflect.Value) (reflect.Value, error) {
			seq := reflect.MakeSlice(info.Type, 0, len(values))
			return reflect.Append(seq, values...), nil
		}
	}
}
