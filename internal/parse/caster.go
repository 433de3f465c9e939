package parse

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrNotACaster   = errors.New("provided function is not a recognizable parse function")
	ErrNotAFunction = errors.New("provided parse function is not a function")
)

// Caster describes a user-supplied parse function.
type Caster struct {
	Dst     reflect.Type
	fn      reflect.Value
	in      reflect.Type
	hasBool bool
	hasErr  bool
}

// ParseCaster inspects the provided function and returns a Caster if it is
// a valid parse function.
//
// Supported interfaces:
//   - func(raw string) Type
//   - func(raw string) (Type, bool)
//   - func(raw string) (Type, error)
//   - func(raw string) (Type, bool, error)
func ParseCaster(fn any) (Caster, error) {
	fnVal := reflect.ValueOf(fn)
	if !fnVal.IsValid() || fnVal.Kind() != reflect.Func {
		return Caster{}, ErrNotAFunction
	}

	fnType := fnVal.Type()
	if fnType.NumIn() != 1 || fnType.In(0).Kind() != reflect.String || fnType.NumOut() == 0 {
		return Caster{}, ErrNotACaster
	}

	caster := Caster{
		Dst: fnType.Out(0),
		fn:  fnVal,
		in:  fnType.In(0),
	}

	switch fnType.NumOut() {
	default:
		return Caster{}, ErrNotACaster

	case 1:
		return caster, nil

	case 2:
		last := fnType.Out(1)

		switch {
		default:
			return Caster{}, ErrNotACaster
		case last.Kind() == reflect.Bool:
			caster.hasBool = true
		case isError(last):
			caster.hasErr = true
		}
		return caster, nil

	case 3:
		tbool, terr := fnType.Out(1), fnType.Out(2)
		if tbool.Kind() != reflect.Bool || !isError(terr) {
			return Caster{}, ErrNotACaster
		}

		caster.hasBool = true
		caster.hasErr = true
		return caster, nil
	}
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func isError(t reflect.Type) bool { return t.Implements(errorType) }

// Parser wraps the caster into a Parser producing Dst values.
func (c Caster) Parser() Parser {
	return func(raw string) (reflect.Value, error) {
		out := c.fn.Call([]reflect.Value{reflect.ValueOf(raw).Convert(c.in)})

		if c.hasErr {
			if errVal := out[len(out)-1]; !errVal.IsNil() {
				return reflect.Value{}, errVal.Interface().(error)
			}
		}

		if c.hasBool && !out[1].Bool() {
			return reflect.Value{}, fmt.Errorf("cannot parse %q", raw)
		}

		return out[0], nil
	}
}

// Register adds a parse function to the global producer registry, keyed by
// its return type. Later registrations for the same type win.
func Register(fn any) error {
	caster, err := ParseCaster(fn)
	if err != nil {
		return err
	}

	typeParsers.Store(caster.Dst, caster.Parser())
	return nil
}
