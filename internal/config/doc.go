// Package config loads and merges application configuration from
// environment variables, command-line flags, and an optional JSON file.
//
// Sources are merged in priority order (environment first, then flags, then
// the JSON file), documented defaults fill whatever remains unset, and the
// final configuration is validated before the application starts. All
// runtime settings — including the session token secret and the SMTP
// transport — travel inside the resulting [StructuredConfig] value; business
// logic never reads the environment directly.
package config
