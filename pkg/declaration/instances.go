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

package declaration

import (
	"context"
	"io"

	cerrors "github.com/tomdalling/value-type/pkg/errors"
	"github.com/tomdalling/value-type/pkg/header"
	"github.com/tomdalling/value-type/pkg/serializer"
)

// LoadInstances reads an InstanceSet document from r.
func LoadInstances(r io.Reader) (*InstanceSet, error) {
	reader, err := serializer.NewReader(serializer.FormatYAML, r)
	if err != nil {
		return nil, err
	}
	var set InstanceSet
	if err := reader.Strict().Deserialize(&set); err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInvalidRequest, "invalid instance set", err)
	}
	return checkInstances(&set)
}

// LoadInstancesFile reads an InstanceSet from a local path or URL.
func LoadInstancesFile(ctx context.Context, path string) (*InstanceSet, error) {
	set, err := serializer.FromFile[InstanceSet](ctx, path)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInvalidRequest, "invalid instance set", err)
	}
	return checkInstances(set)
}

func checkInstances(set *InstanceSet) (*InstanceSet, error) {
	if err := set.Check(header.KindInstanceSet); err != nil {
		return nil, cerrors.Wrap(cerrors.ErrCodeInvalidRequest, "invalid instance set", err)
	}
	return set, nil
}
