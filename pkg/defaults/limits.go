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

package defaults

// Size limits for inbound and outbound payloads.
const (
	// MaxCatalogBytes caps the size of a catalog fetched over the network.
	MaxCatalogBytes int64 = 32 << 20

	// MaxRequestBodyBytes caps the size of an optimize request body.
	MaxRequestBodyBytes int64 = 1 << 20
)
