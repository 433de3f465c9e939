package envarify

import (
	"fmt"
	"hash/fnv"
	"reflect"

	"github.com/davecgh/go-spew/spew"
)

// fingerprintState dumps values deterministically: map keys sorted, no
// pointer addresses, and methods disabled so masked types (SecretString)
// contribute their actual value to the key.
var fingerprintState = &spew.ConfigState{
	Indent:                  " ",
	SortKeys:                true,
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Fingerprint returns a deterministic key over cfg's ordered (field,
// value) pairs. Two configs of the same type with equal field values get
// the same fingerprint, which makes materialized configs usable as
// deduplication or cache keys.
func Fingerprint(cfg any) (uint64, error) {
	v := reflect.ValueOf(cfg)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if !v.IsValid() || v.Kind() != reflect.Struct {
		return 0, fmt.Errorf("%w: %T is not a struct", ErrAnnotation, cfg)
	}

	h := fnv.New64a()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		fmt.Fprintf(h, "%s=", field.Name)
		fingerprintState.Fdump(h, v.Field(i).Interface())
	}

	return h.Sum64(), nil
}
