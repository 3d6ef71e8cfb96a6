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

package client

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"

	"github.com/NVIDIA/kube-job-exporter/pkg/errors"
)

// Interface is an alias for kubernetes.Interface to allow easier mocking in tests.
// This enables using fake.NewSimpleClientset() which returns kubernetes.Interface.
type Interface = kubernetes.Interface

var (
	clientOnce   sync.Once
	cachedClient *kubernetes.Clientset
	cachedConfig *rest.Config
	clientErr    error
)

// GetKubeClient returns a singleton Kubernetes client, creating it on first call.
// Subsequent calls return the cached client for connection reuse and reduced
// load on the API server.
//
// Credential resolution order:
//  1. In-cluster service account (when running as a Kubernetes Pod)
//  2. KUBECONFIG environment variable
//  3. ~/.kube/config (default location)
//
// For custom kubeconfig paths, use BuildKubeClient.
func GetKubeClient() (Interface, *rest.Config, error) {
	clientOnce.Do(func() {
		cachedClient, cachedConfig, clientErr = BuildKubeClient("")
	})
	return cachedClient, cachedConfig, clientErr
}

// BuildKubeClient creates a Kubernetes client, bypassing the singleton cache.
//
// When kubeconfig is empty the in-cluster service account is tried first,
// falling back to KUBECONFIG and then ~/.kube/config. When no credential
// source resolves, an AUTH error is returned; callers treat that as a fatal
// startup failure.
func BuildKubeClient(kubeconfig string) (*kubernetes.Clientset, *rest.Config, error) {
	config, err := resolveConfig(kubeconfig)
	if err != nil {
		return nil, nil, err
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeAuth, "failed to create kubernetes client", err)
	}

	return clientset, config, nil
}

func resolveConfig(kubeconfig string) (*rest.Config, error) {
	// Explicit path always wins
	if kubeconfig != "" {
		config, err := clientcmd.BuildConfigFromFlags("", kubeconfig)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeAuth,
				fmt.Sprintf("failed to build kube config from %s", kubeconfig), err)
		}
		return config, nil
	}

	// Service account token mounted in the pod
	if config, err := rest.InClusterConfig(); err == nil {
		return config, nil
	}

	kubeconfig = os.Getenv("KUBECONFIG")
	if kubeconfig == "" {
		kubeconfig = filepath.Join(homedir.HomeDir(), ".kube", "config")
		if _, err := os.Stat(kubeconfig); os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeAuth,
				"no usable credentials: not in cluster and no kubeconfig found")
		}
	}

	config, err := clientcmd.BuildConfigFromFlags("", kubeconfig)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAuth,
			fmt.Sprintf("failed to build kube config from %s", kubeconfig), err)
	}
	return config, nil
}
