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

package errors

import (
	"fmt"
	"strings"
)

// Context keys shared by the engine errors.
const (
	ContextType       = "type"
	ContextAttribute  = "attribute"
	ContextAttributes = "attributes"
	ContextValue      = "value"
	ContextInputType  = "inputType"
)

// Configuration reports an illegal declaration found while building a recipe.
// The attribute may be empty when the problem is not tied to a single attribute.
func Configuration(typeName, attribute, reason string) *StructuredError {
	msg := fmt.Sprintf("recipe %s: %s", typeName, reason)
	if attribute != "" {
		msg = fmt.Sprintf("attribute `%s#%s` %s", typeName, attribute, reason)
	}
	return NewWithContext(ErrCodeConfiguration, msg, map[string]any{
		ContextType:      typeName,
		ContextAttribute: attribute,
	})
}

// MissingAttribute reports a required attribute with no supplied value and no default.
func MissingAttribute(typeName, attribute string) *StructuredError {
	return NewWithContext(ErrCodeMissingAttribute,
		fmt.Sprintf("attribute `%s#%s` has no value", typeName, attribute),
		map[string]any{
			ContextType:      typeName,
			ContextAttribute: attribute,
		})
}

// UnrecognizedAttributes reports input keys that the recipe does not define.
// Names are expected in their final (sorted) order.
func UnrecognizedAttributes(typeName string, names []string) *StructuredError {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "`" + n + "`"
	}
	return NewWithContext(ErrCodeUnrecognizedAttribute,
		fmt.Sprintf("%s does not define attributes: %s", typeName, strings.Join(quoted, ", ")),
		map[string]any{
			ContextType:       typeName,
			ContextAttributes: append([]string(nil), names...),
		})
}

// UnrecognizedAttribute reports a single lookup of a name the recipe does not define.
func UnrecognizedAttribute(typeName, name string) *StructuredError {
	return NewWithContext(ErrCodeUnrecognizedAttribute,
		fmt.Sprintf("%s does not define attribute `%s`", typeName, name),
		map[string]any{
			ContextType:      typeName,
			ContextAttribute: name,
		})
}

// InvalidValue reports a value rejected by its attribute matcher.
// inspected is the literal rendering of the offending value.
func InvalidValue(typeName, attribute, inspected string) *StructuredError {
	return NewWithContext(ErrCodeInvalidValue,
		fmt.Sprintf("attribute `%s#%s` is invalid: %s", typeName, attribute, inspected),
		map[string]any{
			ContextType:      typeName,
			ContextAttribute: attribute,
			ContextValue:     inspected,
		})
}

// InputShape reports construction input that is neither a map nor convertible to one.
func InputShape(typeName, inputType string) *StructuredError {
	return NewWithContext(ErrCodeInputShape,
		fmt.Sprintf("%s can not be initialized with a %s: expected a map with string keys "+
			"or a value implementing ToMap() (map[string]any, error)", typeName, inputType),
		map[string]any{
			ContextType:      typeName,
			ContextInputType: inputType,
		})
}
