package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vadimtitov/envarify/types"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		value string
		ok    bool
	}{
		{"https://example.com", true},
		{"http://example.com", true},
		{"ftp://files.example.com", true},
		{"postgres://10.0.0.1:5432/mydb", true},
		{"HTTPS://EXAMPLE.COM/Path", true},
		{"not-a-url", false},
		{"://example.com", false},
		{"https//example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			u, err := types.ParseURL(tt.value)
			if tt.ok {
				assert.NoError(t, err)
				assert.Equal(t, types.URL(tt.value), u)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestParseURL_SchemeFamilies(t *testing.T) {
	_, err := types.ParseHTTPSURL("https://example.com")
	assert.NoError(t, err)
	_, err = types.ParseAnyHTTPURL("https://example.com")
	assert.NoError(t, err)
	_, err = types.ParseHTTPURL("https://example.com")
	assert.Error(t, err)

	_, err = types.ParseHTTPURL("http://example.com:8080/health")
	assert.NoError(t, err)
	_, err = types.ParseAnyHTTPURL("http://example.com")
	assert.NoError(t, err)
	_, err = types.ParseHTTPSURL("http://example.com")
	assert.Error(t, err)

	for _, parse := range []func(string) error{
		func(s string) error { _, err := types.ParseURL(s); return err },
		func(s string) error { _, err := types.ParseHTTPURL(s); return err },
		func(s string) error { _, err := types.ParseHTTPSURL(s); return err },
		func(s string) error { _, err := types.ParseAnyHTTPURL(s); return err },
	} {
		assert.Error(t, parse("not-a-url"))
	}
}
