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

package jobs

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	batchv1 "k8s.io/api/batch/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/kube-job-exporter/pkg/errors"
)

func newJob(name, namespace string, labels map[string]string, active, succeeded, failed int32) *batchv1.Job {
	return &batchv1.Job{
		ObjectMeta: metav1.ObjectMeta{
			Name:              name,
			Namespace:         namespace,
			Labels:            labels,
			CreationTimestamp: metav1.Now(),
		},
		Spec: batchv1.JobSpec{
			Completions: ptr.To(int32(1)),
		},
		Status: batchv1.JobStatus{
			Active:    active,
			Succeeded: succeeded,
			Failed:    failed,
		},
	}
}

func TestListFiltersOnLabelPresence(t *testing.T) {
	clientset := fake.NewSimpleClientset(
		newJob("job-a", "batch", map[string]string{"app": "etl"}, 1, 0, 0),
		newJob("job-b", "batch", map[string]string{"app": "backup"}, 0, 1, 0),
		newJob("job-c", "batch", map[string]string{"team": "infra"}, 0, 0, 1),
	)

	lister := NewLister(clientset, "batch", "app")
	observations, err := lister.List(context.Background())
	require.NoError(t, err)
	require.Len(t, observations, 2)

	byName := map[string]Observation{}
	for _, o := range observations {
		byName[o.Name] = o
	}

	assert.Equal(t, "etl", byName["job-a"].Label)
	assert.Equal(t, int32(1), byName["job-a"].Active)
	assert.Equal(t, "backup", byName["job-b"].Label)
	assert.Equal(t, int32(1), byName["job-b"].Succeeded)
	assert.NotContains(t, byName, "job-c")
}

func TestListScopedToNamespace(t *testing.T) {
	clientset := fake.NewSimpleClientset(
		newJob("job-a", "batch", map[string]string{"app": "etl"}, 0, 1, 0),
		newJob("job-b", "other", map[string]string{"app": "etl"}, 0, 1, 0),
	)

	lister := NewLister(clientset, "batch", "app")
	observations, err := lister.List(context.Background())
	require.NoError(t, err)
	require.Len(t, observations, 1)
	assert.Equal(t, "job-a", observations[0].Name)
}

func TestListErrorClassification(t *testing.T) {
	gr := schema.GroupResource{Group: "batch", Resource: "jobs"}

	tests := []struct {
		name     string
		err      error
		wantCode errors.ErrorCode
	}{
		{
			name:     "forbidden is AUTH",
			err:      apierrors.NewForbidden(gr, "jobs", nil),
			wantCode: errors.ErrCodeAuth,
		},
		{
			name:     "unauthorized is AUTH",
			err:      apierrors.NewUnauthorized("token expired"),
			wantCode: errors.ErrCodeAuth,
		},
		{
			name:     "server error is API",
			err:      apierrors.NewInternalError(assertableErr("boom")),
			wantCode: errors.ErrCodeAPI,
		},
		{
			name:     "transport failure is CONNECTION",
			err:      &net.OpError{Op: "dial", Err: assertableErr("connection refused")},
			wantCode: errors.ErrCodeConnection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clientset := fake.NewSimpleClientset()
			clientset.PrependReactor("list", "jobs",
				func(_ k8stesting.Action) (bool, runtime.Object, error) {
					return true, nil, tt.err
				})

			lister := NewLister(clientset, "batch", "app")
			_, err := lister.List(context.Background())
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.wantCode),
				"expected %s, got %s", tt.wantCode, errors.Code(err))
		})
	}
}

func TestObservationDuration(t *testing.T) {
	started := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	completed := started.Add(95 * time.Second)

	o := Observation{StartedAt: &started, CompletedAt: &completed}
	d, ok := o.Duration()
	require.True(t, ok)
	assert.Equal(t, 95*time.Second, d)

	o = Observation{StartedAt: &started}
	_, ok = o.Duration()
	assert.False(t, ok)
}

func TestObservationStates(t *testing.T) {
	assert.False(t, Observation{Active: 1}.IsFinished())
	assert.True(t, Observation{Active: 0, Succeeded: 1}.IsFinished())
	assert.True(t, Observation{Succeeded: 0, Failed: 1}.IsError())
	assert.False(t, Observation{Succeeded: 1}.IsError())
}

func TestListCapturesTimestamps(t *testing.T) {
	started := metav1.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	completed := metav1.Date(2026, 1, 1, 10, 2, 0, 0, time.UTC)

	job := newJob("job-a", "batch", map[string]string{"app": "etl"}, 0, 1, 0)
	job.Status.StartTime = &started
	job.Status.CompletionTime = &completed

	clientset := fake.NewSimpleClientset(job)
	lister := NewLister(clientset, "batch", "app")

	observations, err := lister.List(context.Background())
	require.NoError(t, err)
	require.Len(t, observations, 1)

	o := observations[0]
	require.NotNil(t, o.StartedAt)
	require.NotNil(t, o.CompletedAt)
	d, ok := o.Duration()
	require.True(t, ok)
	assert.Equal(t, 2*time.Minute, d)
}

type assertableErr string

func (e assertableErr) Error() string { return string(e) }
