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

// Package header provides the common document header for value-type files.
//
// Every document read or written by this module starts with the same three
// fields, in the style of Kubernetes resources:
//
//	kind: RecipeSet
//	apiVersion: valuetype/v1
//	metadata:
//	  owner: pets-team
//
// Kind names what the rest of the document contains. Readers call Check to
// reject documents of the wrong kind or an unsupported API version before
// decoding the body.
//
// # Usage
//
//	h := header.New(
//	    header.WithKind(header.KindCheckResult),
//	    header.WithAPIVersion(header.APIVersion),
//	    header.WithMetadata("source", "cats.yaml"),
//	)
//
// Init stamps a header with a timestamp and tool version for generated output.
package header
