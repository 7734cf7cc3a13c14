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

package serializer

import (
	"context"
	"strings"
	"testing"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

type describedDoc struct {
	Name string `json:"name"`
}

func (describedDoc) DocumentKind() string    { return "OptimizeResult" }
func (describedDoc) DocumentVersion() string { return "v1" }

func TestParseConfigMapURI(t *testing.T) {
	tests := []struct {
		name          string
		uri           string
		wantNamespace string
		wantName      string
		wantErr       bool
	}{
		{name: "valid URI", uri: "cm://recipes/latest", wantNamespace: "recipes", wantName: "latest"},
		{name: "valid URI with spaces", uri: "cm://recipes / latest ", wantNamespace: "recipes", wantName: "latest"},
		{name: "missing scheme", uri: "recipes/latest", wantErr: true},
		{name: "wrong scheme", uri: "http://recipes/latest", wantErr: true},
		{name: "missing name", uri: "cm://recipes/", wantErr: true},
		{name: "missing namespace", uri: "cm:///latest", wantErr: true},
		{name: "missing separator", uri: "cm://recipes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns, name, err := ParseConfigMapURI(tt.uri)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseConfigMapURI() error = %v, wantErr %v", err, tt.wantErr)
			}
			if ns != tt.wantNamespace || name != tt.wantName {
				t.Errorf("got %s/%s, want %s/%s", ns, name, tt.wantNamespace, tt.wantName)
			}
		})
	}
}

func TestConfigMapWriter_Serialize(t *testing.T) {
	clientset := fake.NewClientset()
	w := NewConfigMapWriter("recipes", "latest", FormatJSON).WithClient(clientset)

	if err := w.Serialize(context.Background(), describedDoc{Name: "r1"}); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	cm, err := clientset.CoreV1().ConfigMaps("recipes").Get(context.Background(), "latest", metav1.GetOptions{})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !strings.Contains(cm.Data["result.json"], `"name": "r1"`) {
		t.Errorf("unexpected data: %v", cm.Data)
	}
	if cm.Data["format"] != "json" {
		t.Errorf("format = %q", cm.Data["format"])
	}
	if cm.Labels["app.kubernetes.io/component"] != "OptimizeResult" {
		t.Errorf("labels = %v", cm.Labels)
	}
	if cm.Labels["app.kubernetes.io/version"] != "v1" {
		t.Errorf("labels = %v", cm.Labels)
	}
}
