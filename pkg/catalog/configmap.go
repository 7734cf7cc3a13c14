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

package catalog

import (
	"context"
	"fmt"
	"strings"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	cnserrors "github.com/NVIDIA/recipe-optimizer/pkg/errors"
	"github.com/NVIDIA/recipe-optimizer/pkg/k8s/client"
	"github.com/NVIDIA/recipe-optimizer/pkg/serializer"
)

// DefaultConfigMapKey is the data key holding the CSV catalog.
const DefaultConfigMapKey = "catalog.csv"

// ConfigMapSource reads a CSV catalog stored in a Kubernetes ConfigMap.
type ConfigMapSource struct {
	uri        string
	namespace  string
	name       string
	key        string
	client     client.Interface
	kubeconfig string
}

// NewConfigMapSource returns a source for the given ConfigMap data key.
// A nil client is resolved from kubeconfig on first load.
func NewConfigMapSource(namespace, name, key string, c client.Interface) *ConfigMapSource {
	if key == "" {
		key = DefaultConfigMapKey
	}
	return &ConfigMapSource{
		uri:       fmt.Sprintf("%s%s/%s", serializer.ConfigMapURIScheme, namespace, name),
		namespace: namespace,
		name:      name,
		key:       key,
		client:    c,
	}
}

func newConfigMapSourceFromURI(uri string, c client.Interface, kubeconfig string) (*ConfigMapSource, error) {
	base, query, _ := strings.Cut(uri, "?")
	namespace, name, err := serializer.ParseConfigMapURI(base)
	if err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidRequest,
			"invalid ConfigMap catalog URI", err, map[string]any{"uri": uri})
	}
	key := ""
	if query != "" {
		u, err := parseURI(uri)
		if err != nil {
			return nil, err
		}
		key = u.Query().Get("key")
	}
	src := NewConfigMapSource(namespace, name, key, c)
	src.kubeconfig = kubeconfig
	return src, nil
}

// URI returns the cm:// location.
func (s *ConfigMapSource) URI() string { return s.uri }

// Load reads the configured key and parses it.
func (s *ConfigMapSource) Load(ctx context.Context) ([]Ingredient, error) {
	if s.client == nil {
		var err error
		if s.kubeconfig != "" {
			s.client, _, err = client.GetKubeClientWithConfig(s.kubeconfig)
		} else {
			s.client, _, err = client.GetKubeClient()
		}
		if err != nil {
			return nil, cnserrors.Wrap(cnserrors.ErrCodeUnavailable, "failed to get kubernetes client", err)
		}
	}

	cm, err := s.client.CoreV1().ConfigMaps(s.namespace).Get(ctx, s.name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, notFound(s.uri, err)
		}
		return nil, withSource(s.uri, err)
	}

	data, ok := cm.Data[s.key]
	if !ok {
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeNotFound,
			fmt.Sprintf("ConfigMap %s/%s has no key %q", s.namespace, s.name, s.key),
			map[string]any{"uri": s.uri, "key": s.key})
	}

	return ParseCSV(strings.NewReader(data))
}
