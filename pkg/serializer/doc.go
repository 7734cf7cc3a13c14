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

// Package serializer encodes and decodes documents as JSON, YAML, or
// human-readable tables.
//
// Writers target stdout, files, or Kubernetes ConfigMaps:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, "cm://recipes/latest")
//	defer w.(serializer.Closer).Close()
//	if err := w.Serialize(ctx, result); err != nil {
//		return err
//	}
//
// Table output flattens nested structs into FIELD/VALUE rows unless the
// value implements Tabular and renders its own columns.
//
// Readers accept local paths, HTTP(S) URLs, and cm://namespace/name URIs:
//
//	req, err := serializer.FromFile[optimizer.Request]("request.yaml")
//
// HttpReader fetches remote documents with bounded connect, header, and
// total timeouts plus a response size cap. Non-200 answers surface as
// *HTTPStatusError so callers can tell a missing document from a broken
// server.
//
// RespondJSON and RespondYAML buffer the encoded body before writing
// headers so an encoding failure never produces a partial response.
package serializer
