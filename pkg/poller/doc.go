// Package poller runs the fetch-and-publish loop: every tick it asks the
// jobs adapter for the current state, rebuilds a complete Snapshot, and
// swaps it atomically so HTTP scrapes never see a partially updated tick.
// A failed tick leaves the previous snapshot in place; the next tick
// retries unconditionally.
package poller
