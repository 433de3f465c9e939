package parse_test

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadimtitov/envarify/internal/parse"
)

func empty()                               { panic("not implemented") }
func wrongIn(int) (string, error)          { panic("not implemented") }
func wrongOrder(string) (int, error, bool) { panic("not implemented") }

func full(string) (int, bool, error) { panic("not implemented") }

func ExampleParseCaster() {
	desc, err := parse.ParseCaster(full)
	fmt.Println(err, desc.Dst.Kind())

	desc, err = parse.ParseCaster(strconv.Atoi)
	fmt.Println(err, desc.Dst.Kind())

	_, err = parse.ParseCaster(empty)
	fmt.Println(err)

	_, err = parse.ParseCaster(wrongIn)
	fmt.Println(err)

	_, err = parse.ParseCaster(wrongOrder)
	fmt.Println(err)

	_, err = parse.ParseCaster("not a function")
	fmt.Println(err)

	// Output:
	// <nil> int
	// <nil> int
	// provided function is not a recognizable parse function
	// provided function is not a recognizable parse function
	// provided function is not a recognizable parse function
	// provided parse function is not a function
}

func TestCaster_Parser(t *testing.T) {
	caster, err := parse.ParseCaster(strconv.Atoi)
	require.NoError(t, err)

	parser := caster.Parser()

	v, err := parser("42")
	require.NoError(t, err)
	assert.Equal(t, 42, v.Interface())

	_, err = parser("forty-two")
	assert.Error(t, err)
}

func TestCaster_Parser_BoolResult(t *testing.T) {
	lookup := func(raw string) (int, bool) {
		known := map[string]int{"one": 1, "two": 2}
		v, ok := known[raw]
		return v, ok
	}

	caster, err := parse.ParseCaster(lookup)
	require.NoError(t, err)

	parser := caster.Parser()

	v, err := parser("two")
	require.NoError(t, err)
	assert.Equal(t, 2, v.Interface())

	_, err = parser("three")
	assert.Error(t, err)
}

func TestCaster_Parser_PlainResult(t *testing.T) {
	upper := func(raw string) string { return raw + "!" }

	caster, err := parse.ParseCaster(upper)
	require.NoError(t, err)

	v, err := caster.Parser()("hey")
	require.NoError(t, err)
	assert.Equal(t, "hey!", v.Interface())
}
