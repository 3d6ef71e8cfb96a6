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

// Package k8s provides the Kubernetes integration for the job exporter.
//
// # Sub-packages
//
// client: Singleton Kubernetes client with automatic authentication
//
//	clientset, _, err := client.GetKubeClient()
//	if err != nil {
//	    return err
//	}
//
// jobs: Read-only adapter that lists batch/v1 Jobs and maps them to the
// exporter's observation model
//
//	lister := jobs.NewLister(clientset, "batch", "app")
//	observations, err := lister.List(ctx)
//
// # Architecture
//
//   - Singleton Pattern: The client package uses sync.Once to ensure a single
//     Kubernetes client instance is shared across the application, preventing
//     connection exhaustion and reducing API server load.
//
//   - Automatic Authentication: The client prefers in-cluster service account
//     credentials and falls back to kubeconfig file discovery when running
//     outside a cluster.
//
//   - Read-only Access: The jobs adapter only lists; the exporter never
//     mutates cluster state, so its RBAC needs are list/get on jobs.
//
// # Thread Safety
//
// Both sub-packages are designed for concurrent use:
//   - client: Uses sync.Once for thread-safe initialization
//   - jobs: Each Lister instance is independent and stateless
package k8s
