package envarify

import (
	"fmt"
	"os"
	"reflect"
	"sort"
	"sync"

	"github.com/vadimtitov/envarify/internal/inspect"
	"github.com/vadimtitov/envarify/internal/parse"
)

// Struct tags recognized on config fields. env:"-" ignores a field.
const (
	tagName      = "env"
	tagDefault   = "envDefault"
	tagDelimiter = "envDelimiter"
)

// schema is the resolved source set of one config type, derived once from
// the declaration and never from the environment.
type schema struct {
	typ     reflect.Type
	sources []valueSource
}

// valueSource resolves one declared field to its value.
type valueSource interface {
	fieldIndex() int
	value() (reflect.Value, error)
}

// schemaCache memoizes per-type derivations. Declarations are immutable at
// runtime, so an entry is valid for the life of the process; racing first
// computations produce identical schemas.
var schemaCache sync.Map // reflect.Type -> *schema

// schemaFor returns the schema of t. Only derivations without per-call
// specifications are cached, since Vars changes the derivation.
func schemaFor(t reflect.Type, vars Vars) (*schema, error) {
	if vars == nil {
		if cached, ok := schemaCache.Load(t); ok {
			return cached.(*schema), nil
		}
	}

	s, err := buildSchema(t, vars, map[reflect.Type]bool{})
	if err != nil {
		return nil, err
	}

	if vars == nil {
		schemaCache.Store(t, s)
	}

	return s, nil
}

// buildSchema resolves every declared field of t, in declaration order.
// visiting tracks the nesting path to reject config cycles.
func buildSchema(t reflect.Type, vars Vars, visiting map[reflect.Type]bool) (*schema, error) {
	if visiting[t] {
		return nil, fmt.Errorf("%w: %s is part of a nested config cycle", ErrAnnotation, t)
	}
	visiting[t] = true
	defer delete(visiting, t)

	s := &schema{typ: t}
	declared := map[string]bool{}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Tag.Get(tagName) == "-" {
			continue
		}
		declared[field.Name] = true

		info := inspect.Inspect(field.Type, true)

		// A struct field is a nested config unless something can produce
		// it directly: a custom parse function or a registered producer.
		if info.Shape == inspect.ShapeStruct && vars[field.Name].Parse == nil && !parse.Registered(info.Type) {
			sub, err := nestedSchema(info.Type, visiting)
			if err != nil {
				return nil, err
			}
			s.sources = append(s.sources, &nestedSource{index: i, sub: sub, ptr: info.Nullable})
			continue
		}

		src, err := resolveEnvVar(field, i, info, vars[field.Name])
		if err != nil {
			return nil, err
		}
		s.sources = append(s.sources, src)
	}

	if err := checkStrayVars(t, vars, declared); err != nil {
		return nil, err
	}
	if len(s.sources) == 0 {
		return nil, fmt.Errorf("%w: %s has no environment-bound fields", ErrAnnotation, t)
	}

	return s, nil
}

// nestedSchema builds (or reuses) the schema of a nested config type.
// Nested configs never receive per-call specifications, so they always
// qualify for the cache.
func nestedSchema(t reflect.Type, visiting map[reflect.Type]bool) (*schema, error) {
	if cached, ok := schemaCache.Load(t); ok {
		return cached.(*schema), nil
	}

	sub, err := buildSchema(t, nil, visiting)
	if err != nil {
		return nil, err
	}
	schemaCache.Store(t, sub)

	return sub, nil
}

// resolveEnvVar materializes the source of one leaf field from its tags
// and its optional programmatic specification.
func resolveEnvVar(field reflect.StructField, index int, info inspect.Info, spec EnvVar) (*envVarSource, error) {
	src := &envVarSource{
		attr:  field.Name,
		index: index,
		typ:   info.Type,
		name:  field.Name,
	}

	if tag := field.Tag.Get(tagName); tag != "" {
		src.name = tag
	}
	if spec.Name != "" {
		src.name = spec.Name
	}

	delimiter := field.Tag.Get(tagDelimiter)
	if spec.Delimiter != "" {
		delimiter = spec.Delimiter
	}

	var err error
	src.parser, err = fieldParser(field, info, spec, delimiter)
	if err != nil {
		return nil, err
	}

	if tag, ok := field.Tag.Lookup(tagDefault); ok {
		src.hasDefault, src.defval = true, tag
	}
	if spec.Default != nil {
		if err := src.setDefault(field, info, spec.Default); err != nil {
			return nil, err
		}
	}

	return src, nil
}

func fieldParser(field reflect.StructField, info inspect.Info, spec EnvVar, delimiter string) (parse.Parser, error) {
	if spec.Parse == nil {
		parser, err := parse.GetParser(field.Type, parse.Spec{Delimiter: delimiter})
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		return parser, nil
	}

	caster, err := parse.ParseCaster(spec.Parse)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", field.Name, err)
	}
	if !compatible(caster.Dst, info.Type) && !compatible(caster.Dst, field.Type) {
		return nil, fmt.Errorf("%w: parse function for field %s returns %s, want %s",
			ErrAnnotation, field.Name, caster.Dst, field.Type)
	}

	return caster.Parser(), nil
}

func (s *envVarSource) setDefault(field reflect.StructField, info inspect.Info, def any) error {
	s.hasDefault = true

	if def == Nil {
		if !info.Nullable {
			return fmt.Errorf("%w: Nil default on non-pointer field %s", ErrAnnotation, field.Name)
		}
		s.nilDefault, s.defval = true, nil
		return nil
	}

	if _, ok := def.(string); !ok {
		dt := reflect.TypeOf(def)
		if !compatible(dt, info.Type) && !compatible(dt, field.Type) {
			return fmt.Errorf("%w: default value of type %s for field %s of type %s",
				ErrAnnotation, dt, field.Name, field.Type)
		}
	}
	s.defval = def

	return nil
}

// checkStrayVars rejects specifications attached to nonexistent, ignored
// or unexported fields: a spec with no matching field is a programmer
// error, not a runtime data error.
func checkStrayVars(t reflect.Type, vars Vars, declared map[string]bool) error {
	var stray []string
	for name := range vars {
		if !declared[name] {
			stray = append(stray, name)
		}
	}
	if len(stray) == 0 {
		return nil
	}
	sort.Strings(stray)

	return fmt.Errorf("%w: specifications for unknown fields of %s: %v", ErrAnnotation, t, stray)
}

// validate collects every missing required variable across the whole
// nested tree and fails once with the complete ordered list.
func (s *schema) validate(base reflect.Value) error {
	if missing := s.missingVars(base); len(missing) > 0 {
		return &MissingEnvVarsError{EnvVars: missing}
	}

	return nil
}

// missingVars lists this level's absent leaf variables first, then the
// nested configs' in declaration order. Duplicates are kept on purpose.
func (s *schema) missingVars(base reflect.Value) []string {
	var missing []string

	for _, src := range s.sources {
		env, ok := src.(*envVarSource)
		if !ok || env.hasValue() {
			continue
		}
		if base.IsValid() && !base.Field(env.index).IsZero() {
			continue
		}
		missing = append(missing, env.name)
	}

	for _, src := range s.sources {
		nested, ok := src.(*nestedSource)
		if !ok {
			continue
		}
		missing = append(missing, nested.sub.missingVars(nested.baseField(base))...)
	}

	return missing
}

// materialize builds the config value. Presence is assumed to be
// pre-validated; the first producer failure aborts construction.
func (s *schema) materialize() (reflect.Value, error) {
	out := reflect.New(s.typ).Elem()

	for _, src := range s.sources {
		v, err := src.value()
		if err != nil {
			return reflect.Value{}, err
		}
		if !v.IsValid() {
			continue // leave the zero value (absent optional field)
		}
		if err := setValue(out.Field(src.fieldIndex()), v); err != nil {
			return reflect.Value{}, err
		}
	}

	return out, nil
}

// envVarSource reads a leaf field from one environment variable.
type envVarSource struct {
	attr   string
	index  int
	typ    reflect.Type // field type with the nullable wrapper stripped
	name   string
	parser parse.Parser

	defval     any
	hasDefault bool
	nilDefault bool
}

func (s *envVarSource) fieldIndex() int { return s.index }

func (s *envVarSource) exists() bool {
	_, ok := os.LookupEnv(s.name)
	return ok
}

func (s *envVarSource) hasValue() bool {
	return s.hasDefault || s.exists()
}

func (s *envVarSource) value() (reflect.Value, error) {
	if raw, ok := os.LookupEnv(s.name); ok {
		return s.produce(raw)
	}

	if !s.hasDefault || s.nilDefault {
		return reflect.Value{}, nil
	}
	if raw, ok := s.defval.(string); ok {
		return s.produce(raw)
	}

	return reflect.ValueOf(s.defval), nil
}

func (s *envVarSource) produce(raw string) (reflect.Value, error) {
	v, err := s.parser(raw)
	if err != nil {
		return reflect.Value{}, &ParseError{EnvVar: s.name, Err: err}
	}

	return v, nil
}

// nestedSource delegates a field to another config type's own resolution.
type nestedSource struct {
	index int
	sub   *schema
	ptr   bool
}

func (s *nestedSource) fieldIndex() int { return s.index }

func (s *nestedSource) value() (reflect.Value, error) {
	v, err := s.sub.materialize()
	if err != nil {
		return reflect.Value{}, err
	}

	if s.ptr {
		p := reflect.New(s.sub.typ)
		p.Elem().Set(v)
		return p, nil
	}

	return v, nil
}

// baseField projects the base config onto this nested field for presence
// checking.
func (s *nestedSource) baseField(base reflect.Value) reflect.Value {
	if !base.IsValid() {
		return reflect.Value{}
	}

	sub := base.Field(s.index)
	if s.ptr {
		if sub.IsNil() {
			return reflect.Value{}
		}
		sub = sub.Elem()
	}

	return sub
}

// setValue assigns v to a struct field, re-wrapping nullable values.
func setValue(field reflect.Value, v reflect.Value) error {
	t := field.Type()

	if t.Kind() == reflect.Pointer && !v.Type().AssignableTo(t) {
		p := reflect.New(t.Elem())
		converted, err := convertValue(v, t.Elem())
		if err != nil {
			return err
		}
		p.Elem().Set(converted)
		field.Set(p)
		return nil
	}

	converted, err := convertValue(v, t)
	if err != nil {
		return err
	}
	field.Set(converted)

	return nil
}

func convertValue(v reflect.Value, t reflect.Type) (reflect.Value, error) {
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if compatible(v.Type(), t) {
		return v.Convert(t), nil
	}

	return reflect.Value{}, fmt.Errorf("%w: cannot use %s value as %s", ErrAnnotation, v.Type(), t)
}

// compatible reports whether src values may be converted to dst without
// changing meaning. Integer-to-string conversions are rejected: they
// produce a rune, not a numeral.
func compatible(src, dst reflect.Type) bool {
	if src.AssignableTo(dst) {
		return true
	}
	if !src.ConvertibleTo(dst) {
		return false
	}

	return !(isIntegerKind(src.Kind()) && dst.Kind() == reflect.String)
}

func isIntegerKind(k reflect.Kind) bool {
	switch k {
	default:
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
}
