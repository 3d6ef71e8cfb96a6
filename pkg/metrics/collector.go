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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/NVIDIA/kube-job-exporter/pkg/k8s/jobs"
	"github.com/NVIDIA/kube-job-exporter/pkg/poller"
)

// DurationBuckets are the upper bounds, in seconds, of the job duration
// histogram: 10s, 30s, 1m, 3m, 8m, 20m, 1h, 2h.
var DurationBuckets = []float64{10, 30, 60, 180, 480, 1200, 3600, 7200}

// SnapshotSource provides the current poll snapshot. Nil means no tick has
// succeeded yet.
type SnapshotSource interface {
	Snapshot() *poller.Snapshot
}

// JobCollector renders the current snapshot as Prometheus metrics. All
// samples in one scrape come from a single immutable snapshot, so a scrape
// can never observe a partially applied tick.
type JobCollector struct {
	source SnapshotSource

	activeDesc      *prometheus.Desc
	succeededDesc   *prometheus.Desc
	failedDesc      *prometheus.Desc
	jobsTotalDesc   *prometheus.Desc
	errorsTotalDesc *prometheus.Desc
	durationDesc    *prometheus.Desc
}

// NewJobCollector creates a collector keyed on the configured job label.
// The label key becomes a metric label name after sanitization (e.g.
// "app.kubernetes.io/name" -> "app_kubernetes_io_name").
func NewJobCollector(source SnapshotSource, labelKey string) *JobCollector {
	name := SanitizeLabelName(labelKey)

	return &JobCollector{
		source: source,
		activeDesc: prometheus.NewDesc(
			"kubernetes_job_status_active",
			"Number of active pods for the job",
			[]string{"job", "namespace", name}, nil,
		),
		succeededDesc: prometheus.NewDesc(
			"kubernetes_job_status_succeeded",
			"Number of succeeded pods for the job",
			[]string{"job", "namespace", name}, nil,
		),
		failedDesc: prometheus.NewDesc(
			"kubernetes_job_status_failed",
			"Number of failed pods for the job",
			[]string{"job", "namespace", name}, nil,
		),
		jobsTotalDesc: prometheus.NewDesc(
			"kubernetes_jobs_total",
			"Count of all kubernetes jobs",
			[]string{name}, nil,
		),
		errorsTotalDesc: prometheus.NewDesc(
			"kubernetes_job_errors_total",
			"Count of all kubernetes job errors",
			[]string{name}, nil,
		),
		durationDesc: prometheus.NewDesc(
			"kubernetes_job_duration_seconds",
			"Histogram of kubernetes job durations",
			[]string{name}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *JobCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.activeDesc
	ch <- c.succeededDesc
	ch <- c.failedDesc
	ch <- c.jobsTotalDesc
	ch <- c.errorsTotalDesc
	ch <- c.durationDesc
}

// Collect implements prometheus.Collector.
func (c *JobCollector) Collect(ch chan<- prometheus.Metric) {
	snap := c.source.Snapshot()
	if snap == nil {
		return
	}

	for _, o := range snap.Live {
		ch <- prometheus.MustNewConstMetric(c.activeDesc, prometheus.GaugeValue,
			float64(o.Active), o.Name, o.Namespace, o.Label)
		ch <- prometheus.MustNewConstMetric(c.succeededDesc, prometheus.GaugeValue,
			float64(o.Succeeded), o.Name, o.Namespace, o.Label)
		ch <- prometheus.MustNewConstMetric(c.failedDesc, prometheus.GaugeValue,
			float64(o.Failed), o.Name, o.Namespace, o.Label)
	}

	c.collectAggregates(ch, snap.Tracked)
}

// collectAggregates derives per-label-value totals, error counts, and
// duration histograms from the retained job set.
func (c *JobCollector) collectAggregates(ch chan<- prometheus.Metric, tracked []jobs.Observation) {
	totals := map[string]uint64{}
	errs := map[string]uint64{}
	durations := map[string]*histogram{}

	for _, o := range tracked {
		totals[o.Label]++

		if o.IsError() {
			errs[o.Label]++
			continue
		}

		d, ok := o.Duration()
		if !ok {
			continue
		}
		h := durations[o.Label]
		if h == nil {
			h = newHistogram()
			durations[o.Label] = h
		}
		h.observe(d.Seconds())
	}

	for label, n := range totals {
		ch <- prometheus.MustNewConstMetric(c.jobsTotalDesc, prometheus.CounterValue,
			float64(n), label)
	}
	for label, n := range errs {
		ch <- prometheus.MustNewConstMetric(c.errorsTotalDesc, prometheus.CounterValue,
			float64(n), label)
	}
	for label, h := range durations {
		ch <- prometheus.MustNewConstHistogram(c.durationDesc,
			h.count, h.sum, h.buckets, label)
	}
}

// histogram accumulates cumulative bucket counts for const histograms.
type histogram struct {
	count   uint64
	sum     float64
	buckets map[float64]uint64
}

func newHistogram() *histogram {
	return &histogram{buckets: make(map[float64]uint64, len(DurationBuckets))}
}

func (h *histogram) observe(v float64) {
	h.count++
	h.sum += v
	for _, bound := range DurationBuckets {
		if v <= bound {
			h.buckets[bound]++
		}
	}
}

// SanitizeLabelName converts an arbitrary Kubernetes label key into a valid
// Prometheus label name: invalid characters become underscores, and a
// leading digit is prefixed with an underscore.
func SanitizeLabelName(key string) string {
	if key == "" {
		return "_"
	}

	out := make([]byte, 0, len(key))
	for i := 0; i < len(key); i++ {
		b := key[i]
		switch {
		case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b == '_':
			out = append(out, b)
		case b >= '0' && b <= '9':
			if i == 0 {
				out = append(out, '_')
			}
			out = append(out, b)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
