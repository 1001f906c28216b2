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

// Package cli implements the valuetype command-line interface.
//
// # Commands
//
// describe - List the recipes declared in a RecipeSet file:
//
//	valuetype describe --recipes pets.yaml --format table
//
// Prints every recipe with its attributes, matchers, defaults and coercions,
// including attributes inherited through extends.
//
// check - Construct instances from InstanceSet files:
//
//	valuetype check --recipes pets.yaml cats.yaml dogs.yaml --fail-on-error
//
// Data files are processed concurrently. Each instance is reported with
// either its final attribute values or the structured error that stopped its
// construction.
//
// schema - Export a recipe as JSON Schema:
//
//	valuetype schema --recipes pets.yaml --name Cat
//
// # Global Flags
//
//	--log-level    Logging verbosity: debug, info, warn, error (default: info)
//	--output, -o   Output file path (default: stdout)
//	--format, -t   Output format: yaml, json, table (default: yaml)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// Recipe and data paths may be local files or HTTP/HTTPS URLs.
//
// # Environment Variables
//
//	VALUETYPE_LOG_LEVEL  Same as --log-level
//	VALUETYPE_FORMAT     Same as --format
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, invalid declarations, failed checks)
package cli
