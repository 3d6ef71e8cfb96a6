// Package cli implements the command-line interface for the Kubernetes job
// exporter.
//
// # Commands
//
// serve (default) - Run the exporter:
//
//	kube-job-exporter serve --namespace batch [--job-label app] [--poll-interval 30] [--port 8000]
//
// Polls the configured namespace for jobs carrying the job label and serves
// their status as Prometheus metrics on /metrics.
//
// config - Print the resolved configuration:
//
//	kube-job-exporter config --namespace batch [--format yaml|json]
//
// Resolves configuration from flags and environment variables exactly as
// serve would and prints the validated result.
//
// # Environment Variables
//
// Every flag can also be set through the environment, matching the
// deployment manifests this exporter typically runs under:
//
//	NAMESPACE                 Namespace to watch (required)
//	JOB_LABEL                 Label key a job must carry (default: app)
//	KUBERNETES_POLL_INTERVAL  Seconds between poll ticks (default: 30)
//	PORT                      Metrics endpoint port (default: 8000)
//	LOG_LEVEL                 Logging verbosity (default: info)
//	KUBECONFIG                Kubeconfig path for out-of-cluster use
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/kube-job-exporter/pkg/cli.version=1.0.0'"
package cli
