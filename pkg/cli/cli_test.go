// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/kube-job-exporter/pkg/config"
	"github.com/NVIDIA/kube-job-exporter/pkg/errors"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		config.EnvNamespace,
		config.EnvJobLabel,
		config.EnvPollInterval,
		config.EnvPort,
		config.EnvLogLevel,
		config.EnvKubeconfig,
	} {
		t.Setenv(key, "")
	}
}

func TestBuildConfigDefaults(t *testing.T) {
	clearConfigEnv(t)

	var got *config.Config
	cmd := configCmd()
	cmd.Action = func(_ context.Context, c *cli.Command) error {
		got = buildConfig(c)
		return nil
	}

	if err := cmd.Run(context.Background(), []string{"config"}); err != nil {
		t.Fatalf("failed to run command: %v", err)
	}

	if got.JobLabel != "app" {
		t.Errorf("expected default job label app, got %s", got.JobLabel)
	}
	if got.PollInterval != 30*time.Second {
		t.Errorf("expected default poll interval 30s, got %s", got.PollInterval)
	}
	if got.Port != 8000 {
		t.Errorf("expected default port 8000, got %d", got.Port)
	}
	if got.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", got.LogLevel)
	}
}

func TestBuildConfigFromEnv(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv(config.EnvNamespace, "batch")
	t.Setenv(config.EnvJobLabel, "team")
	t.Setenv(config.EnvPollInterval, "10")
	t.Setenv(config.EnvPort, "9105")

	var got *config.Config
	cmd := configCmd()
	cmd.Action = func(_ context.Context, c *cli.Command) error {
		got = buildConfig(c)
		return nil
	}

	if err := cmd.Run(context.Background(), []string{"config"}); err != nil {
		t.Fatalf("failed to run command: %v", err)
	}

	if got.Namespace != "batch" {
		t.Errorf("expected namespace batch, got %s", got.Namespace)
	}
	if got.JobLabel != "team" {
		t.Errorf("expected job label team, got %s", got.JobLabel)
	}
	if got.PollInterval != 10*time.Second {
		t.Errorf("expected poll interval 10s, got %s", got.PollInterval)
	}
	if got.Port != 9105 {
		t.Errorf("expected port 9105, got %d", got.Port)
	}
}

func TestConfigCommandOutput(t *testing.T) {
	clearConfigEnv(t)

	var buf bytes.Buffer
	root := Root()
	root.Writer = &buf

	err := root.Run(context.Background(),
		[]string{name, "config", "--namespace", "batch", "--job-label", "team"})
	if err != nil {
		t.Fatalf("failed to run command: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "batch") {
		t.Errorf("expected output to contain namespace, got:\n%s", out)
	}
	if !strings.Contains(out, "team") {
		t.Errorf("expected output to contain job label, got:\n%s", out)
	}
}

func TestConfigCommandRequiresNamespace(t *testing.T) {
	clearConfigEnv(t)

	var buf bytes.Buffer
	root := Root()
	root.Writer = &buf

	err := root.Run(context.Background(), []string{name, "config"})
	if err == nil {
		t.Fatal("expected error for missing namespace")
	}
	if !errors.IsCode(err, errors.ErrCodeConfig) {
		t.Errorf("expected CONFIG error, got %v", err)
	}
}

func TestConfigCommandRejectsUnknownFormat(t *testing.T) {
	clearConfigEnv(t)

	var buf bytes.Buffer
	root := Root()
	root.Writer = &buf

	err := root.Run(context.Background(),
		[]string{name, "config", "--namespace", "batch", "--format", "xml"})
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	if !strings.Contains(err.Error(), "unknown output format") {
		t.Errorf("unexpected error: %v", err)
	}
}
