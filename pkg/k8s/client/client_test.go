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
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func resetSingleton() {
	clientOnce = sync.Once{}
	cachedClient = nil
	cachedConfig = nil
	clientErr = nil
}

const validKubeconfig = `apiVersion: v1
kind: Config
clusters:
- cluster:
    server: https://127.0.0.1:6443
  name: test
contexts:
- context:
    cluster: test
    user: test
  name: test
current-context: test
users:
- name: test
  user:
    token: abc
`

func TestBuildKubeClient(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "valid")
	invalid := filepath.Join(dir, "invalid")
	if err := os.WriteFile(valid, []byte(validKubeconfig), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(invalid, []byte("invalid yaml content"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name          string
		kubeconfigArg string
		kubeconfigEnv string
		wantErr       bool
		errorContains string
	}{
		{name: "explicit valid path", kubeconfigArg: valid},
		{name: "env var valid path", kubeconfigEnv: valid},
		{
			name:          "explicit invalid path",
			kubeconfigArg: "/nonexistent/path/to/kubeconfig",
			wantErr:       true,
			errorContains: "failed to build kube config",
		},
		{
			name:          "env var with invalid path",
			kubeconfigEnv: "/nonexistent/env/kubeconfig",
			wantErr:       true,
			errorContains: "failed to build kube config",
		},
		{
			name:          "malformed file",
			kubeconfigArg: invalid,
			wantErr:       true,
			errorContains: "failed to build kube config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvKubeconfig, tt.kubeconfigEnv)

			cs, cfg, err := BuildKubeClient(tt.kubeconfigArg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("BuildKubeClient() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("BuildKubeClient() error = %v, want error containing %q", err, tt.errorContains)
				}
				return
			}
			if cs == nil || cfg == nil {
				t.Fatal("expected client and config")
			}
			if cfg.UserAgent != userAgent {
				t.Errorf("UserAgent = %q", cfg.UserAgent)
			}
			if cfg.Host != "https://127.0.0.1:6443" {
				t.Errorf("Host = %q", cfg.Host)
			}
		})
	}
}

func TestResolveKubeconfig(t *testing.T) {
	t.Setenv(EnvKubeconfig, "/env/config")

	if got := ResolveKubeconfig("/explicit"); got != "/explicit" {
		t.Errorf("explicit path: got %q", got)
	}
	if got := ResolveKubeconfig(""); got != "/env/config" {
		t.Errorf("env path: got %q", got)
	}
}

func TestGetKubeClientWithConfig_ErrorReturnsNilInterface(t *testing.T) {
	c, _, err := GetKubeClientWithConfig("/nonexistent/kubeconfig")
	if err == nil {
		t.Fatal("expected error")
	}
	if c != nil {
		t.Error("expected nil interface on error")
	}
}

func TestGetKubeClient_Singleton(t *testing.T) {
	resetSingleton()
	defer resetSingleton()

	dir := t.TempDir()
	path := filepath.Join(dir, "config")
	if err := os.WriteFile(path, []byte(validKubeconfig), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvKubeconfig, path)

	c1, cfg1, err1 := GetKubeClient()
	c2, cfg2, err2 := GetKubeClient()
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if c1 != c2 || cfg1 != cfg2 {
		t.Error("GetKubeClient() should return the same instances")
	}
}

func TestGetKubeClient_ConcurrentCallsShareResult(t *testing.T) {
	resetSingleton()
	defer resetSingleton()
	t.Setenv(EnvKubeconfig, "/nonexistent/kubeconfig")

	const n = 10
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := GetKubeClient()
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var first error
	for err := range errs {
		if err == nil {
			t.Fatal("expected error from missing kubeconfig")
		}
		if first == nil {
			first = err
		}
		//nolint:errorlint // singleton returns the same error value
		if err != first {
			t.Error("all callers should observe the same error")
		}
	}
}
