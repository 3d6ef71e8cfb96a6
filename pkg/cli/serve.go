/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/kube-job-exporter/pkg/exporter"
	"github.com/NVIDIA/kube-job-exporter/pkg/logging"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "serve",
		EnableShellCompletion: true,
		Usage:                 "Run the exporter",
		Description: `Poll the configured namespace for Kubernetes jobs carrying the job label
and serve their status as Prometheus metrics.

Exported metrics:
  - kubernetes_job_status_active/succeeded/failed per live job
  - kubernetes_jobs_total and kubernetes_job_errors_total per label value
  - kubernetes_job_duration_seconds histogram per label value

Only jobs created after the exporter started feed the aggregate counters
and the duration histogram; the per-job status gauges always reflect the
current state of the namespace.

# Examples

Run against the current kubeconfig context:
  kube-job-exporter serve --namespace batch

Run with a custom label key and faster polling:
  kube-job-exporter serve --namespace batch --job-label team --poll-interval 10`,
		Flags: []cli.Flag{
			namespaceFlag,
			jobLabelFlag,
			pollIntervalFlag,
			portFlag,
			logLevelFlag,
			kubeconfigFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := buildConfig(cmd)

			logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.LogLevel)
			slog.Info("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date,
				"logLevel", cfg.LogLevel,
			)

			return exporter.Serve(ctx, cfg, name, version)
		},
	}
}
