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

package header

import (
	"fmt"

	cnserrors "github.com/NVIDIA/recipe-optimizer/pkg/errors"
)

// APIVersion is the schema version of every document this module reads or
// writes.
const APIVersion = "recipe-optimizer/v1"

// Kind represents the type of a document.
type Kind string

// Document kinds.
const (
	KindOptimizeRequest   Kind = "OptimizeRequest"
	KindOptimizeResult    Kind = "OptimizeResult"
	KindIngredientCatalog Kind = "IngredientCatalog"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the Kind is one of the recognized kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindOptimizeRequest, KindOptimizeResult, KindIngredientCatalog:
		return true
	default:
		return false
	}
}

// Check validates the optional kind and apiVersion of an incoming document.
// Empty values are accepted; anything else must match want and APIVersion.
func Check(kind, apiVersion string, want Kind) error {
	if kind != "" && Kind(kind) != want {
		return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid kind %q, expected %q", kind, want),
			map[string]any{"kind": kind})
	}
	if apiVersion != "" && apiVersion != APIVersion {
		return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid apiVersion %q, expected %q", apiVersion, APIVersion),
			map[string]any{"apiVersion": apiVersion})
	}
	return nil
}
