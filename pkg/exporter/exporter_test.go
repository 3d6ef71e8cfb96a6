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

package exporter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/kube-job-exporter/pkg/config"
	"github.com/NVIDIA/kube-job-exporter/pkg/errors"
)

func TestServeRejectsInvalidConfig(t *testing.T) {
	cfg := &config.Config{
		// Namespace intentionally empty
		JobLabel:     "app",
		PollInterval: 30 * time.Second,
		Port:         8000,
	}

	err := Serve(t.Context(), cfg, "test", "dev")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfig))
}

func TestServeFailsFastOnBadCredentials(t *testing.T) {
	// keep the client from discovering a real kubeconfig
	t.Setenv("KUBECONFIG", "")
	t.Setenv("HOME", t.TempDir())

	cfg := &config.Config{
		Namespace:    "batch",
		JobLabel:     "app",
		PollInterval: 30 * time.Second,
		Port:         8000,
		Kubeconfig:   "/nonexistent/kubeconfig",
	}

	err := Serve(t.Context(), cfg, "test", "dev")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeAuth))
}

func TestServeSharedClientPathFailsFastOnBadCredentials(t *testing.T) {
	// no explicit kubeconfig, so Serve goes through the shared client;
	// keep it from discovering real credentials
	t.Setenv("KUBECONFIG", "")
	t.Setenv("HOME", t.TempDir())

	cfg := &config.Config{
		Namespace:    "batch",
		JobLabel:     "app",
		PollInterval: 30 * time.Second,
		Port:         8000,
	}

	err := Serve(t.Context(), cfg, "test", "dev")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeAuth))
}

func TestServerConfigMapping(t *testing.T) {
	cfg := &config.Config{
		Namespace:    "batch",
		JobLabel:     "app",
		PollInterval: 30 * time.Second,
		Port:         9105,
	}

	sc := serverConfig(cfg, "kube-job-exporter", "v1.0.0")
	assert.Equal(t, "kube-job-exporter", sc.Name)
	assert.Equal(t, "v1.0.0", sc.Version)
	assert.Equal(t, 9105, sc.Port)
}
