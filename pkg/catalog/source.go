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
	"net/url"
	"strings"

	cnserrors "github.com/NVIDIA/recipe-optimizer/pkg/errors"
	"github.com/NVIDIA/recipe-optimizer/pkg/k8s/client"
	"github.com/NVIDIA/recipe-optimizer/pkg/serializer"
)

// Scheme identifies a catalog backend.
type Scheme string

const (
	SchemeFile      Scheme = "file"
	SchemeHTTP      Scheme = "http"
	SchemeHTTPS     Scheme = "https"
	SchemeS3        Scheme = "s3"
	SchemeConfigMap Scheme = "cm"
	SchemePostgres  Scheme = "postgres"
	SchemeSQLite    Scheme = "sqlite"
)

// SupportedSchemes returns the URI schemes Open understands.
func SupportedSchemes() []string {
	return []string{
		string(SchemeFile),
		string(SchemeHTTP),
		string(SchemeHTTPS),
		string(SchemeS3),
		string(SchemeConfigMap),
		string(SchemePostgres),
		string(SchemeSQLite),
	}
}

// Source produces the full ingredient list of one catalog.
type Source interface {
	// URI returns the catalog location the source was opened with.
	URI() string
	// Load reads and parses the complete catalog.
	Load(ctx context.Context) ([]Ingredient, error)
}

// Option configures how Open builds sources.
type Option func(*options)

type options struct {
	httpReader *serializer.HttpReader
	s3Client   S3GetObjectAPI
	kubeClient client.Interface
	kubeconfig string
}

// WithHTTPReader sets the reader used for http(s) catalogs.
func WithHTTPReader(r *serializer.HttpReader) Option {
	return func(o *options) { o.httpReader = r }
}

// WithS3Client sets the client used for s3 catalogs.
func WithS3Client(c S3GetObjectAPI) Option {
	return func(o *options) { o.s3Client = c }
}

// WithKubeClient sets the Kubernetes client used for ConfigMap catalogs.
func WithKubeClient(c client.Interface) Option {
	return func(o *options) { o.kubeClient = c }
}

// WithKubeconfig sets the kubeconfig path used when no client is given.
func WithKubeconfig(path string) Option {
	return func(o *options) { o.kubeconfig = path }
}

// Open resolves a catalog URI to a Source. Plain paths are local files.
func Open(uri string, opts ...Option) (Source, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	trimmed := strings.TrimSpace(uri)
	if trimmed == "" {
		return nil, cnserrors.New(cnserrors.ErrCodeInvalidRequest, "catalog URI is empty")
	}

	scheme, ok := schemeOf(trimmed)
	if !ok {
		return NewFileSource(trimmed), nil
	}

	switch scheme {
	case SchemeFile:
		return NewFileSource(strings.TrimPrefix(trimmed, "file://")), nil
	case SchemeHTTP, SchemeHTTPS:
		return NewHTTPSource(trimmed, o.httpReader), nil
	case SchemeS3:
		return newS3SourceFromURI(trimmed, o.s3Client)
	case SchemeConfigMap:
		return newConfigMapSourceFromURI(trimmed, o.kubeClient, o.kubeconfig)
	case SchemePostgres, SchemeSQLite:
		return newSQLSourceFromURI(trimmed, scheme)
	default:
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unsupported catalog scheme %q", scheme),
			map[string]any{"uri": uri, "supported": SupportedSchemes()})
	}
}

// schemeOf returns the scheme of a URI-looking string. Strings without
// "://" are treated as file paths.
func schemeOf(uri string) (Scheme, bool) {
	idx := strings.Index(uri, "://")
	if idx <= 0 {
		return "", false
	}
	s := Scheme(strings.ToLower(uri[:idx]))
	if s == "postgresql" {
		s = SchemePostgres
	}
	return s, true
}

// parseURI parses uri and reports malformed input as INVALID_REQUEST.
func parseURI(uri string) (*url.URL, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidRequest,
			"invalid catalog URI", err, map[string]any{"uri": uri})
	}
	return u, nil
}

func notFound(uri string, cause error) error {
	return cnserrors.WrapWithContext(cnserrors.ErrCodeNotFound,
		fmt.Sprintf("catalog not found: %s", uri), cause,
		map[string]any{"uri": uri})
}

// withSource annotates load failures that do not already carry a code.
func withSource(uri string, err error) error {
	if _, ok := cnserrors.As(err); ok {
		return err
	}
	return cnserrors.WrapWithContext(cnserrors.ErrCodeUnavailable,
		fmt.Sprintf("failed to read catalog %s", uri), err,
		map[string]any{"uri": uri})
}
