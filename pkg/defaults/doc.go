// Package defaults centralizes timeout and interval constants used across
// the exporter. Keeping them in one place makes the relationships between
// them (poll timeout < poll interval, shutdown timeout vs eviction grace
// period) reviewable at a glance.
package defaults
