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
	"time"

	"github.com/NVIDIA/kube-job-exporter/pkg/k8s/jobs"
)

// Snapshot is the complete result of one successful poll tick. It is
// immutable once published: readers either see the previous snapshot or
// this one in full, never a mixture.
type Snapshot struct {
	// TakenAt is when the tick completed.
	TakenAt time.Time

	// Live holds every Job matching the label filter at poll time.
	// Per-job status gauges are derived from this set.
	Live []jobs.Observation

	// Tracked holds finished labeled Jobs first observed since process
	// start. Entries survive Kubernetes pruning the underlying Job, so
	// aggregate counters never regress. Sorted by namespace/name.
	Tracked []jobs.Observation
}
