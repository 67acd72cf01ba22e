// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports). The pipelines in core/services depend on
// these interfaces only, so providers can be swapped and tests can
// substitute fakes.
package driven
