/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/kube-job-exporter/pkg/config"
)

const (
	name           = "kube-job-exporter"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	// e.g., -X "github.com/NVIDIA/kube-job-exporter/pkg/cli.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Shared flags across commands
var (
	namespaceFlag = &cli.StringFlag{
		Name:    "namespace",
		Usage:   "Kubernetes namespace to watch for jobs (required)",
		Sources: cli.EnvVars(config.EnvNamespace),
	}

	jobLabelFlag = &cli.StringFlag{
		Name:    "job-label",
		Usage:   "Label key a job must carry to be tracked",
		Sources: cli.EnvVars(config.EnvJobLabel),
		Value:   config.DefaultJobLabel,
	}

	pollIntervalFlag = &cli.IntFlag{
		Name:    "poll-interval",
		Usage:   "Seconds between Kubernetes poll ticks",
		Sources: cli.EnvVars(config.EnvPollInterval),
		Value:   30,
	}

	portFlag = &cli.IntFlag{
		Name:    "port",
		Usage:   "Port for the HTTP metrics endpoint",
		Sources: cli.EnvVars(config.EnvPort),
		Value:   config.DefaultPort,
	}

	logLevelFlag = &cli.StringFlag{
		Name:    "log-level",
		Usage:   "Log level (debug, info, warn, error)",
		Sources: cli.EnvVars(config.EnvLogLevel),
		Value:   config.DefaultLogLevel,
	}

	kubeconfigFlag = &cli.StringFlag{
		Name:    "kubeconfig",
		Usage:   "Path to kubeconfig file (default: in-cluster, then ~/.kube/config)",
		Sources: cli.EnvVars(config.EnvKubeconfig),
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Usage:   "Output format: yaml or json",
		Value:   "yaml",
	}
)

// Root builds the top-level command. Running it with no subcommand starts
// the exporter.
func Root() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Prometheus exporter for Kubernetes job status",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Commands: []*cli.Command{
			serveCmd(),
			configCmd(),
		},
		DefaultCommand: "serve",
	}
}

// Run executes the CLI with the given arguments.
func Run(ctx context.Context, args []string) error {
	return Root().Run(ctx, args)
}

// buildConfig maps parsed flags onto the exporter configuration.
func buildConfig(cmd *cli.Command) *config.Config {
	return &config.Config{
		Namespace:    cmd.String("namespace"),
		JobLabel:     cmd.String("job-label"),
		PollInterval: time.Duration(cmd.Int("poll-interval")) * time.Second,
		Port:         int(cmd.Int("port")),
		LogLevel:     cmd.String("log-level"),
		Kubeconfig:   cmd.String("kubeconfig"),
	}
}
