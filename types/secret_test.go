package types_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vadimtitov/envarify/types"
)

func TestSecretString(t *testing.T) {
	secret := types.NewSecretString("ABCD")

	assert.Equal(t, "******", secret.String())
	assert.Equal(t, "******", fmt.Sprintf("%v", secret))
	assert.Equal(t, "ABCD", secret.Reveal())

	secret.Erase()
	assert.Equal(t, strings.Repeat("\x00", 4), secret.Reveal())
}

func TestSecretString_MaskedInGoSyntax(t *testing.T) {
	secret := types.NewSecretString("hunter2")

	assert.NotContains(t, fmt.Sprintf("%#v", secret), "hunter2")
	assert.NotContains(t, fmt.Sprintf("%+v", secret), "hunter2")
}

func TestSecretString_Equal(t *testing.T) {
	assert.True(t, types.NewSecretString("XYZ").Equal(types.NewSecretString("XYZ")))
	assert.False(t, types.NewSecretString("XYZ").Equal(types.NewSecretString("XXX")))
}
