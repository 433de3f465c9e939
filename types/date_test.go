package types_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadimtitov/envarify/types"
)

func TestParseDate(t *testing.T) {
	d, err := types.ParseDate("2024-06-01")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), d.Time())
	assert.Equal(t, "2024-06-01", d.String())
}

func TestParseDate_RejectsDateTime(t *testing.T) {
	_, err := types.ParseDate("2024-06-01T12:00:00Z")
	assert.Error(t, err)

	_, err = types.ParseDate("01.06.2024")
	assert.Error(t, err)
}
