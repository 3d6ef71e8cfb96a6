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
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/kube-job-exporter/pkg/config"
	"github.com/NVIDIA/kube-job-exporter/pkg/errors"
	"github.com/NVIDIA/kube-job-exporter/pkg/k8s/client"
	"github.com/NVIDIA/kube-job-exporter/pkg/k8s/jobs"
	"github.com/NVIDIA/kube-job-exporter/pkg/metrics"
	"github.com/NVIDIA/kube-job-exporter/pkg/poller"
	"github.com/NVIDIA/kube-job-exporter/pkg/server"
)

// Serve builds the exporter from cfg and blocks until shutdown: it connects
// to the cluster, runs one poll so the first scrape is never empty, then
// serves /metrics while the poll loop ticks in the background.
//
// Configuration and credential failures are returned before the listener
// opens, so a misconfigured pod fails its deployment visibly instead of
// serving an empty exporter.
func Serve(ctx context.Context, cfg *config.Config, name, version string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	slog.Info("exporter config",
		"namespace", cfg.Namespace,
		"jobLabel", cfg.JobLabel,
		"pollInterval", cfg.PollInterval.String(),
		"port", cfg.Port,
	)

	// The shared singleton covers the common deployment; an explicit
	// kubeconfig path bypasses it so local runs never pick up a cached
	// client built against different credentials.
	var clientset client.Interface
	var err error
	if cfg.Kubeconfig != "" {
		clientset, _, err = client.BuildKubeClient(cfg.Kubeconfig)
	} else {
		clientset, _, err = client.GetKubeClient()
	}
	if err != nil {
		return err
	}

	lister := jobs.NewLister(clientset, cfg.Namespace, cfg.JobLabel)
	p := poller.New(lister, cfg.PollInterval)

	// Populate the first snapshot before the listener opens. Auth failures
	// here are fatal; transient API errors just mean the first scrapes
	// carry no job metrics yet.
	if err := p.PollOnce(ctx); err != nil {
		if errors.IsCode(err, errors.ErrCodeAuth) {
			return err
		}
		slog.Warn("initial poll failed, serving without job metrics until a tick succeeds",
			"error", err,
			"code", string(errors.Code(err)),
		)
	}

	prometheus.MustRegister(metrics.NewJobCollector(p, cfg.JobLabel))

	s := server.New(
		server.WithConfig(serverConfig(cfg, name, version)),
		server.WithHandler(map[string]http.HandlerFunc{
			"/metrics": promhttp.Handler().ServeHTTP,
		}),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return p.Run(gctx)
	})

	g.Go(func() error {
		return s.Start(gctx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("exporter exited with error", "error", err)
		return err
	}

	slog.Info("exporter stopped gracefully")
	return nil
}

// serverConfig maps exporter settings onto the HTTP server config.
func serverConfig(cfg *config.Config, name, version string) *server.Config {
	sc := server.NewConfig()
	sc.Name = name
	sc.Version = version
	sc.Port = cfg.Port
	return sc
}
