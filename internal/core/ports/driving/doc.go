// Package driving provides interfaces exposed by the application core
// to its entry points (primary/inbound ports): the HTTP API and the CLI.
package driving
