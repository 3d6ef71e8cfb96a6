// Package client resolves Kubernetes credentials and constructs the shared
// clientset used by the exporter. In-cluster service account credentials are
// preferred; local kubeconfig discovery is the fallback for development.
package client
