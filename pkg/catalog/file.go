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
	stderrors "errors"
	"io/fs"
	"log/slog"
	"os"
)

// FileSource reads a CSV catalog from the local filesystem.
type FileSource struct {
	path string
}

// NewFileSource returns a source for the CSV file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// URI returns the file path.
func (s *FileSource) URI() string { return s.path }

// Load parses the file.
func (s *FileSource) Load(ctx context.Context) ([]Ingredient, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, notFound(s.path, err)
		}
		return nil, withSource(s.path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("failed to close catalog file", "path", s.path, "error", cerr)
		}
	}()

	return ParseCSV(f)
}
