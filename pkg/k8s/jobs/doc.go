// Package jobs adapts the Kubernetes batch API into the exporter's domain:
// a single namespaced list call filtered by label key presence, returning
// immutable per-Job observations with a classified error taxonomy.
package jobs
