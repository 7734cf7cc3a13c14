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

// Package client provides the Kubernetes client used to read catalogs and
// request documents from ConfigMaps and to write optimization results back.
//
// GetKubeClient builds one client per process on first use:
//
//	clientset, _, err := client.GetKubeClient()
//	if err != nil {
//	    return fmt.Errorf("failed to get kubernetes client: %w", err)
//	}
//	cm, err := clientset.CoreV1().ConfigMaps("recipes").Get(ctx, "catalog", metav1.GetOptions{})
//
// GetKubeClientWithConfig bypasses the cache for an explicit kubeconfig,
// which is what the --kubeconfig CLI flag uses.
//
// Configuration is discovered in order from the explicit path, the
// KUBECONFIG environment variable, ~/.kube/config, and finally the
// in-cluster service account.
//
// Interface aliases kubernetes.Interface, so tests pass
// k8s.io/client-go/kubernetes/fake clientsets wherever a client is accepted.
package client
