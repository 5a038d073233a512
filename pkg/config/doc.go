// Package config loads typed configuration structs from environment
// variables, with optional .env file support for local development.
//
// Struct fields are annotated with `env` tags as understood by
// github.com/caarlos0/env; `envDefault` supplies fall-back values and the
// `required` option makes startup fail when a variable is absent.
package config
