// Package envarify binds environment variables to the fields of a declared
// config struct, validates that every required variable is present before
// touching any value, and reports all missing variables in one error.
//
// A config is a plain struct. Field metadata lives in struct tags, with
// programmatic specifications for anything a tag cannot express:
//
//	type Config struct {
//		Port    int              `env:"PORT"`
//		Debug   bool             `env:"DEBUG" envDefault:"false"`
//		Hosts   []string         `env:"HOSTS" envDelimiter:"|"`
//		APIKey  envarify.SecretString `env:"API_KEY"`
//		Metrics MetricsConfig    // nested config, resolved recursively
//	}
//
//	cfg, err := envarify.FromEnv[Config]()
//
// Presence failures (missing variables, bad declarations) are cheap to
// enumerate and come back aggregated; value failures abort on the first
// unparseable variable.
package envarify
