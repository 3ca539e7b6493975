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

// Package webpack defines the configuration object graph handed to webpack.
//
// The types mirror the subset of the webpack configuration schema the
// projector emits. They carry both json and yaml tags so a projected Config
// can be written with the serializer package and loaded by a thin
// webpack.config.js shim:
//
//	module.exports = require('./build/webpack.json');
//
// Regular expressions (rule tests, cache group tests) are emitted as their
// source strings; the shim is expected to wrap them with new RegExp().
package webpack
