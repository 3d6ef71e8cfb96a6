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

package poller

import (
	"context"
	"log/slog"
	"sort"
	"sync/atomic"
	"time"

	"github.com/NVIDIA/kube-job-exporter/pkg/defaults"
	"github.com/NVIDIA/kube-job-exporter/pkg/errors"
	"github.com/NVIDIA/kube-job-exporter/pkg/k8s/jobs"
)

// Lister is the adapter contract the poll loop depends on.
type Lister interface {
	List(ctx context.Context) ([]jobs.Observation, error)
}

// Poller drives the fetch-and-publish cycle. A single goroutine runs the
// loop, so ticks never overlap: a poll slower than the interval simply
// delays (and drops) ticks instead of running concurrently.
type Poller struct {
	lister   Lister
	interval time.Duration
	timeout  time.Duration
	start    time.Time

	// tracked accumulates finished jobs first seen since start,
	// keyed by namespace/name. Touched only by the poll goroutine.
	tracked map[string]jobs.Observation

	current atomic.Pointer[Snapshot]
}

// Option customizes a Poller.
type Option func(*Poller)

// WithTimeout bounds each list call. Defaults to defaults.PollTimeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Poller) {
		p.timeout = d
	}
}

// WithStartTime overrides the process start time used to ignore jobs that
// predate this exporter instance. Intended for tests.
func WithStartTime(t time.Time) Option {
	return func(p *Poller) {
		p.start = t
	}
}

// New creates a Poller that queries through lister every interval.
func New(lister Lister, interval time.Duration, opts ...Option) *Poller {
	p := &Poller{
		lister:   lister,
		interval: interval,
		timeout:  defaults.PollTimeout,
		start:    time.Now().UTC(),
		tracked:  make(map[string]jobs.Observation),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Snapshot returns the most recently published snapshot, or nil before the
// first successful tick. Safe for concurrent use.
func (p *Poller) Snapshot() *Snapshot {
	return p.current.Load()
}

// PollOnce executes a single tick: one list call, retention bookkeeping,
// and an atomic snapshot swap. On failure the previous snapshot stays
// published untouched and the error is returned for the caller to log.
//
// Not safe for concurrent calls; Run is the only caller after startup.
func (p *Poller) PollOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	started := time.Now()
	live, err := p.lister.List(ctx)
	pollDuration.Observe(time.Since(started).Seconds())

	if err != nil {
		pollTotal.WithLabelValues("error").Inc()
		return err
	}

	for _, o := range live {
		p.track(o)
	}

	tracked := make([]jobs.Observation, 0, len(p.tracked))
	for _, o := range p.tracked {
		tracked = append(tracked, o)
	}
	sort.Slice(tracked, func(i, j int) bool {
		if tracked[i].Namespace != tracked[j].Namespace {
			return tracked[i].Namespace < tracked[j].Namespace
		}
		return tracked[i].Name < tracked[j].Name
	})

	snap := &Snapshot{
		TakenAt: time.Now().UTC(),
		Live:    append([]jobs.Observation(nil), live...),
		Tracked: tracked,
	}
	p.current.Store(snap)

	pollTotal.WithLabelValues("success").Inc()
	jobsObserved.Set(float64(len(live)))
	jobsTracked.Set(float64(len(tracked)))

	slog.Debug("poll completed",
		"jobs", len(live),
		"tracked", len(tracked),
		"duration", time.Since(started).String(),
	)

	return nil
}

// track retains a finished job the first time it is seen. Later
// observations of the same job never replace the retained one, and jobs
// created before this process started are ignored.
func (p *Poller) track(o jobs.Observation) {
	key := o.Namespace + "/" + o.Name
	if _, ok := p.tracked[key]; ok {
		return
	}
	if !o.IsFinished() {
		return
	}
	if o.CreatedAt.Before(p.start) {
		return
	}
	p.tracked[key] = o
}

// Run polls on the configured interval until ctx is canceled. Poll
// failures are logged and retried unconditionally on the next tick.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	slog.Info("poller started", "interval", p.interval.String())

	for {
		select {
		case <-ctx.Done():
			slog.Info("poller stopped")
			return nil
		case <-ticker.C:
			if err := p.PollOnce(ctx); err != nil {
				slog.Error("poll failed, keeping previous snapshot",
					"error", err,
					"code", string(errors.Code(err)),
				)
			}
		}
	}
}
