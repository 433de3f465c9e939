package envarify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadimtitov/envarify"
)

type fingerprintConfig struct {
	Name   string
	Port   int
	APIKey envarify.SecretString
	Labels map[string]string
	Debug  *bool
}

func fingerprint(t *testing.T, cfg any) uint64 {
	t.Helper()

	fp, err := envarify.Fingerprint(cfg)
	require.NoError(t, err)

	return fp
}

func TestFingerprint(t *testing.T) {
	yes := true
	cfg := fingerprintConfig{
		Name:   "svc",
		Port:   8080,
		APIKey: envarify.NewSecretString("swordfish"),
		Labels: map[string]string{"tier": "backend", "team": "core"},
		Debug:  &yes,
	}

	t.Run("stable across calls", func(t *testing.T) {
		assert.Equal(t, fingerprint(t, cfg), fingerprint(t, cfg))
	})

	t.Run("pointer identity does not matter", func(t *testing.T) {
		alsoYes := true
		other := cfg
		other.Debug = &alsoYes

		assert.Equal(t, fingerprint(t, cfg), fingerprint(t, other))
	})

	t.Run("map iteration order does not matter", func(t *testing.T) {
		other := cfg
		other.Labels = map[string]string{"team": "core", "tier": "backend"}

		assert.Equal(t, fingerprint(t, cfg), fingerprint(t, other))
	})

	t.Run("changed field changes the fingerprint", func(t *testing.T) {
		other := cfg
		other.Port = 9090

		assert.NotEqual(t, fingerprint(t, cfg), fingerprint(t, other))
	})

	t.Run("secret value participates", func(t *testing.T) {
		other := cfg
		other.APIKey = envarify.NewSecretString("hunter2")

		assert.NotEqual(t, fingerprint(t, cfg), fingerprint(t, other))
	})
}

func TestFingerprint_NotAStruct(t *testing.T) {
	_, err := envarify.Fingerprint(42)
	assert.ErrorIs(t, err, envarify.ErrAnnotation)
}

func TestFingerprint_MatchesFreshLoad(t *testing.T) {
	t.Setenv("TEST_FP_NAME", "svc")
	t.Setenv("TEST_FP_PORT", "8080")

	type config struct {
		Name string `env:"TEST_FP_NAME"`
		Port int    `env:"TEST_FP_PORT"`
	}

	first, err := envarify.FromEnv[config]()
	require.NoError(t, err)
	second, err := envarify.FromEnv[config]()
	require.NoError(t, err)

	assert.Equal(t, fingerprint(t, first), fingerprint(t, second))
}
