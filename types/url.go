package types

import (
	"fmt"
	"regexp"
)

// URL value types. Each family constrains the allowed scheme; the rest of
// the pattern is shared: a domain name or IPv4 host, an optional port and
// an optional path, matched case-insensitively over the whole string.
type (
	// URL accepts any single-word scheme.
	URL string
	// HTTPURL accepts only http.
	HTTPURL string
	// HTTPSURL accepts only https.
	HTTPSURL string
	// AnyHTTPURL accepts http or https.
	AnyHTTPURL string
)

const urlHostExpr = `(([a-z0-9-]+\.)*[a-z0-9-]+|\d{1,3}(\.\d{1,3}){3})(:\d+)?(/\S*)?`

var (
	urlPattern        = urlRegexp(`[a-z]+`)
	httpURLPattern    = urlRegexp(`http`)
	httpsURLPattern   = urlRegexp(`https`)
	anyHTTPURLPattern = urlRegexp(`https?`)
)

func urlRegexp(scheme string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^` + scheme + `://` + urlHostExpr + `$`)
}

// ParseURL validates value as a URL with any scheme.
func ParseURL(value string) (URL, error) {
	if !urlPattern.MatchString(value) {
		return "", fmt.Errorf("not a valid URL: %q", value)
	}

	return URL(value), nil
}

// ParseHTTPURL validates value as an http URL.
func ParseHTTPURL(value string) (HTTPURL, error) {
	if !httpURLPattern.MatchString(value) {
		return "", fmt.Errorf("not a valid http URL: %q", value)
	}

	return HTTPURL(value), nil
}

// ParseHTTPSURL validates value as an https URL.
func ParseHTTPSURL(value string) (HTTPSURL, error) {
	if !httpsURLPattern.MatchString(value) {
		return "", fmt.Errorf("not a valid https URL: %q", value)
	}

	return HTTPSURL(value), nil
}

// ParseAnyHTTPURL validates value as an http or https URL.
func ParseAnyHTTPURL(value string) (AnyHTTPURL, error) {
	if !anyHTTPURLPattern.MatchString(value) {
		return "", fmt.Errorf("not a valid http(s) URL: %q", value)
	}

	return AnyHTTPURL(value), nil
}
