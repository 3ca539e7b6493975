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

package webpack

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// CacheGroups keeps cache groups in insertion order and serializes them as a
// single object keyed by CacheGroup.Key.
type CacheGroups []CacheGroup

// Get returns the cache group with the given key.
func (g CacheGroups) Get(key string) (CacheGroup, bool) {
	for _, cg := range g {
		if cg.Key == key {
			return cg, true
		}
	}
	return CacheGroup{}, false
}

// MarshalJSON writes the groups as an object, preserving order.
func (g CacheGroups) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cg := range g {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cg.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(cg)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML writes the groups as a mapping node, preserving order.
func (g CacheGroups) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, cg := range g {
		var val yaml.Node
		if err := val.Encode(cg); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: cg.Key},
			&val,
		)
	}
	return node, nil
}
