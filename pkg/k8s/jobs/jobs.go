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
	stderrors "errors"
	"time"

	batchv1 "k8s.io/api/batch/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/NVIDIA/kube-job-exporter/pkg/errors"
)

// Observation is a point-in-time view of one Job matching the label filter.
// Observations are rebuilt wholesale every poll tick and never mutated.
type Observation struct {
	Name      string
	Namespace string

	// Label is the value of the configured label key on the Job.
	Label string

	Active    int32
	Succeeded int32
	Failed    int32

	CreatedAt   time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// IsFinished reports whether the Job has no running pods.
func (o Observation) IsFinished() bool {
	return o.Active == 0
}

// IsError reports whether the Job finished without a successful completion.
func (o Observation) IsError() bool {
	return o.Succeeded != 1
}

// Duration returns the start-to-completion duration, when both are known.
func (o Observation) Duration() (time.Duration, bool) {
	if o.StartedAt == nil || o.CompletedAt == nil {
		return 0, false
	}
	return o.CompletedAt.Sub(*o.StartedAt), true
}

// Lister issues namespaced Job list requests filtered by label key presence.
type Lister struct {
	client    kubernetes.Interface
	namespace string
	labelKey  string
}

// NewLister creates a Lister for the given namespace and label key.
func NewLister(client kubernetes.Interface, namespace, labelKey string) *Lister {
	return &Lister{
		client:    client,
		namespace: namespace,
		labelKey:  labelKey,
	}
}

// List performs a single list call against the API server, filtered
// server-side by label key presence, and converts the results into
// Observations. Transient failures are returned to the caller unretried;
// the poll loop retries on its next tick.
func (l *Lister) List(ctx context.Context) ([]Observation, error) {
	// A bare key is a valid "exists" label selector
	list, err := l.client.BatchV1().Jobs(l.namespace).List(ctx, metav1.ListOptions{
		LabelSelector: l.labelKey,
	})
	if err != nil {
		return nil, classify(err, l.namespace)
	}

	observations := make([]Observation, 0, len(list.Items))
	for i := range list.Items {
		job := &list.Items[i]

		// Belt and suspenders for servers (and fakes) that skip
		// server-side selector filtering
		value, ok := job.Labels[l.labelKey]
		if !ok {
			continue
		}

		observations = append(observations, observe(job, value))
	}

	return observations, nil
}

func observe(job *batchv1.Job, label string) Observation {
	o := Observation{
		Name:      job.Name,
		Namespace: job.Namespace,
		Label:     label,
		Active:    job.Status.Active,
		Succeeded: job.Status.Succeeded,
		Failed:    job.Status.Failed,
		CreatedAt: job.CreationTimestamp.Time,
	}
	if job.Status.StartTime != nil {
		t := job.Status.StartTime.Time
		o.StartedAt = &t
	}
	if job.Status.CompletionTime != nil {
		t := job.Status.CompletionTime.Time
		o.CompletedAt = &t
	}
	return o
}

// classify maps client-go errors onto the exporter error taxonomy.
func classify(err error, namespace string) error {
	msg := "failed to list jobs in namespace " + namespace

	switch {
	case apierrors.IsUnauthorized(err), apierrors.IsForbidden(err):
		return errors.Wrap(errors.ErrCodeAuth, msg, err)
	case isAPIStatus(err):
		return errors.Wrap(errors.ErrCodeAPI, msg, err)
	default:
		return errors.Wrap(errors.ErrCodeConnection, msg, err)
	}
}

func isAPIStatus(err error) bool {
	var statusErr *apierrors.StatusError
	return stderrors.As(err, &statusErr)
}
