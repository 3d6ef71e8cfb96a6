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

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/NVIDIA/kube-job-exporter/pkg/defaults"
	"github.com/NVIDIA/kube-job-exporter/pkg/errors"
)

// Environment variable names recognized by the exporter.
const (
	EnvNamespace    = "NAMESPACE"
	EnvJobLabel     = "JOB_LABEL"
	EnvPollInterval = "KUBERNETES_POLL_INTERVAL"
	EnvPort         = "PORT"
	EnvLogLevel     = "LOG_LEVEL"
	EnvKubeconfig   = "KUBECONFIG"
)

// Defaults applied when the corresponding variable is unset.
const (
	DefaultJobLabel = "app"
	DefaultPort     = 8000
	DefaultLogLevel = "info"
)

// Config holds the immutable process-wide exporter configuration.
// It is loaded once at startup and passed explicitly to components.
type Config struct {
	// Namespace to watch for jobs. Required.
	Namespace string `json:"namespace" yaml:"namespace"`

	// JobLabel is the label key jobs must carry to be tracked.
	// Its value becomes the aggregation label on exported metrics.
	JobLabel string `json:"jobLabel" yaml:"jobLabel"`

	// PollInterval is the time between poll ticks.
	PollInterval time.Duration `json:"pollInterval" yaml:"pollInterval"`

	// Port for the HTTP metrics endpoint.
	Port int `json:"port" yaml:"port"`

	// LogLevel for the structured logger.
	LogLevel string `json:"logLevel" yaml:"logLevel"`

	// Kubeconfig is an optional path override for local development.
	// Empty means in-cluster config first, then default kubeconfig discovery.
	Kubeconfig string `json:"kubeconfig,omitempty" yaml:"kubeconfig,omitempty"`
}

// Load reads configuration from environment variables, applying defaults
// for optional values. A missing NAMESPACE or an invalid value returns a
// CONFIG error; callers must treat that as fatal before serving.
func Load() (*Config, error) {
	cfg := &Config{
		Namespace:    os.Getenv(EnvNamespace),
		JobLabel:     os.Getenv(EnvJobLabel),
		PollInterval: defaults.PollInterval,
		Port:         DefaultPort,
		LogLevel:     os.Getenv(EnvLogLevel),
		Kubeconfig:   os.Getenv(EnvKubeconfig),
	}

	if v := os.Getenv(EnvPollInterval); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfig,
				fmt.Sprintf("%s must be an integer number of seconds, got %q", EnvPollInterval, v), err)
		}
		cfg.PollInterval = time.Duration(seconds) * time.Second
	}

	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfig,
				fmt.Sprintf("%s must be an integer, got %q", EnvPort, v), err)
		}
		cfg.Port = port
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required values and fills in defaults for optional ones.
// It is shared by Load and by the CLI flag path.
func (c *Config) Validate() error {
	if c.Namespace == "" {
		return errors.New(errors.ErrCodeConfig, EnvNamespace+" is required")
	}
	if c.JobLabel == "" {
		c.JobLabel = DefaultJobLabel
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.PollInterval <= 0 {
		return errors.New(errors.ErrCodeConfig,
			fmt.Sprintf("poll interval must be positive, got %s", c.PollInterval))
	}
	if c.Port < 1 || c.Port > 65535 {
		return errors.New(errors.ErrCodeConfig,
			fmt.Sprintf("port must be in 1..65535, got %d", c.Port))
	}
	return nil
}
