// Package exporter assembles the Kubernetes job exporter: config, cluster
// client, poll loop, job metrics collector, and HTTP server, with graceful
// shutdown on SIGINT/SIGTERM.
package exporter
