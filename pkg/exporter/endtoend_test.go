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
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	batchv1 "k8s.io/api/batch/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"

	"github.com/NVIDIA/kube-job-exporter/pkg/k8s/jobs"
	"github.com/NVIDIA/kube-job-exporter/pkg/metrics"
	"github.com/NVIDIA/kube-job-exporter/pkg/poller"
)

func clusterJob(name, labelValue string, active, succeeded, failed int32) *batchv1.Job {
	return &batchv1.Job{
		ObjectMeta: metav1.ObjectMeta{
			Name:              name,
			Namespace:         "batch",
			Labels:            map[string]string{"app": labelValue},
			CreationTimestamp: metav1.Now(),
		},
		Status: batchv1.JobStatus{
			Active:    active,
			Succeeded: succeeded,
			Failed:    failed,
		},
	}
}

// Drives the whole read path: cluster state through the lister, one poll
// tick, the job collector, and the scrape endpoint.
func TestMetricsEndpointEndToEnd(t *testing.T) {
	clientset := fake.NewSimpleClientset(
		clusterJob("job-a", "etl", 1, 0, 0),
		clusterJob("job-b", "backup", 0, 0, 1),
	)

	lister := jobs.NewLister(clientset, "batch", "app")
	p := poller.New(lister, 30*time.Second,
		poller.WithStartTime(time.Now().Add(-time.Minute)))
	require.NoError(t, p.PollOnce(t.Context()))

	reg := prometheus.NewPedanticRegistry()
	reg.MustRegister(metrics.NewJobCollector(p, "app"))

	srv := httptest.NewServer(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := string(raw)

	for _, want := range []string{
		`kubernetes_job_status_active{app="etl",job="job-a",namespace="batch"} 1`,
		`kubernetes_job_status_succeeded{app="etl",job="job-a",namespace="batch"} 0`,
		`kubernetes_job_status_failed{app="etl",job="job-a",namespace="batch"} 0`,
		`kubernetes_job_status_active{app="backup",job="job-b",namespace="batch"} 0`,
		`kubernetes_job_status_succeeded{app="backup",job="job-b",namespace="batch"} 0`,
		`kubernetes_job_status_failed{app="backup",job="job-b",namespace="batch"} 1`,
	} {
		assert.Contains(t, body, want)
	}

	// exactly those two jobs, no others
	assert.Equal(t, 2, strings.Count(body, "kubernetes_job_status_active{"))

	// job-b finished without success, so the aggregates pick it up;
	// job-a is still running and must not
	assert.Contains(t, body, `kubernetes_jobs_total{app="backup"} 1`)
	assert.Contains(t, body, `kubernetes_job_errors_total{app="backup"} 1`)
	assert.NotContains(t, body, `kubernetes_jobs_total{app="etl"}`)
}
