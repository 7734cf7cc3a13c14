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
	"bytes"
	"context"
	stderrors "errors"
	"net/http"

	"github.com/NVIDIA/recipe-optimizer/pkg/serializer"
)

// HTTPSource fetches a CSV catalog over HTTP(S).
type HTTPSource struct {
	url    string
	reader *serializer.HttpReader
}

// NewHTTPSource returns a source for url. A nil reader uses the
// serializer defaults.
func NewHTTPSource(url string, reader *serializer.HttpReader) *HTTPSource {
	if reader == nil {
		reader = serializer.NewHttpReader()
	}
	return &HTTPSource{url: url, reader: reader}
}

// URI returns the catalog URL.
func (s *HTTPSource) URI() string { return s.url }

// Load downloads and parses the catalog. 404 and 410 responses are
// reported as NOT_FOUND.
func (s *HTTPSource) Load(ctx context.Context) ([]Ingredient, error) {
	data, err := s.reader.ReadWithContext(ctx, s.url)
	if err != nil {
		var se *serializer.HTTPStatusError
		if stderrors.As(err, &se) &&
			(se.StatusCode == http.StatusNotFound || se.StatusCode == http.StatusGone) {
			return nil, notFound(s.url, err)
		}
		return nil, withSource(s.url, err)
	}
	return ParseCSV(bytes.NewReader(data))
}
