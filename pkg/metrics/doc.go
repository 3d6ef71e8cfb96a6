// Package metrics exposes poll snapshots as Prometheus metrics through a
// custom collector built on const metrics. Because every scrape reads one
// immutable snapshot reference, the exposition always reflects exactly one
// completed poll tick.
package metrics
