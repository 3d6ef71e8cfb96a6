/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/kube-job-exporter/pkg/serializer"
)

func configCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Print the resolved exporter configuration",
		Description: `Resolve configuration from flags and environment variables exactly as
the serve command would, validate it, and print the result. Useful for
verifying a deployment manifest before rollout.`,
		Flags: []cli.Flag{
			namespaceFlag,
			jobLabelFlag,
			pollIntervalFlag,
			portFlag,
			logLevelFlag,
			kubeconfigFlag,
			formatFlag,
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg := buildConfig(cmd)
			if err := cfg.Validate(); err != nil {
				return err
			}

			outFormat := serializer.Format(cmd.String("format"))
			if outFormat.IsUnknown() {
				return fmt.Errorf("unknown output format: %q", outFormat)
			}

			return serializer.NewWriter(outFormat, cmd.Root().Writer).Serialize(cfg)
		},
	}
}
