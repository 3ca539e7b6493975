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

// Options is a free-form option bag passed to a loader or plugin.
type Options map[string]any

// Config is the root webpack configuration.
type Config struct {
	Mode         string              `json:"mode" yaml:"mode"`
	Context      string              `json:"context,omitempty" yaml:"context,omitempty"`
	Entry        map[string][]string `json:"entry" yaml:"entry"`
	Output       *Output             `json:"output" yaml:"output"`
	Module       *Module             `json:"module" yaml:"module"`
	Plugins      []Plugin            `json:"plugins" yaml:"plugins"`
	Optimization *Optimization       `json:"optimization" yaml:"optimization"`
	Devtool      any                 `json:"devtool" yaml:"devtool"`
	DevServer    *DevServer          `json:"devServer,omitempty" yaml:"devServer,omitempty"`
	Resolve      *Resolve            `json:"resolve" yaml:"resolve"`
	Externals    map[string]string   `json:"externals,omitempty" yaml:"externals,omitempty"`
	WatchOptions *WatchOptions       `json:"watchOptions,omitempty" yaml:"watchOptions,omitempty"`
	Watch        bool                `json:"watch,omitempty" yaml:"watch,omitempty"`
	Performance  *Performance        `json:"performance" yaml:"performance"`
	Stats        string              `json:"stats" yaml:"stats"`
}

// Output controls where and how bundles are written.
type Output struct {
	Path                string `json:"path" yaml:"path"`
	Filename            string `json:"filename" yaml:"filename"`
	ChunkFilename       string `json:"chunkFilename,omitempty" yaml:"chunkFilename,omitempty"`
	AssetModuleFilename string `json:"assetModuleFilename,omitempty" yaml:"assetModuleFilename,omitempty"`
	PublicPath          string `json:"publicPath" yaml:"publicPath"`
	Pathinfo            bool   `json:"pathinfo" yaml:"pathinfo"`
	CrossOriginLoading  string `json:"crossOriginLoading,omitempty" yaml:"crossOriginLoading,omitempty"`
}

// Module holds the ordered module rules.
type Module struct {
	Rules []Rule `json:"rules" yaml:"rules"`
}

// Rule is a single module rule. Name identifies built-in rules for overrides
// and is not emitted.
type Rule struct {
	Name      string   `json:"-" yaml:"-"`
	Test      string   `json:"test" yaml:"test"`
	Include   []string `json:"include,omitempty" yaml:"include,omitempty"`
	Exclude   string   `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	Use       []Loader `json:"use,omitempty" yaml:"use,omitempty"`
	Type      string   `json:"type,omitempty" yaml:"type,omitempty"`
	Generator Options  `json:"generator,omitempty" yaml:"generator,omitempty"`
	Parser    Options  `json:"parser,omitempty" yaml:"parser,omitempty"`
}

// Loader is one element of a rule's use chain.
type Loader struct {
	Loader  string  `json:"loader" yaml:"loader"`
	Options Options `json:"options,omitempty" yaml:"options,omitempty"`
}

// Plugin is a plugin instance description: the package to construct and the
// options passed to its constructor.
type Plugin struct {
	Name    string  `json:"name" yaml:"name"`
	Options Options `json:"options,omitempty" yaml:"options,omitempty"`
}

// Optimization controls minification and code splitting.
type Optimization struct {
	Minimize     bool         `json:"minimize" yaml:"minimize"`
	Minimizer    []Plugin     `json:"minimizer,omitempty" yaml:"minimizer,omitempty"`
	RuntimeChunk string       `json:"runtimeChunk,omitempty" yaml:"runtimeChunk,omitempty"`
	SplitChunks  *SplitChunks `json:"splitChunks,omitempty" yaml:"splitChunks,omitempty"`
}

// SplitChunks configures the split chunks plugin.
type SplitChunks struct {
	Chunks      string      `json:"chunks,omitempty" yaml:"chunks,omitempty"`
	CacheGroups CacheGroups `json:"cacheGroups,omitempty" yaml:"cacheGroups,omitempty"`
}

// CacheGroup is one split chunks cache group. Key is the group's key in the
// cacheGroups object.
type CacheGroup struct {
	Key                string `json:"-" yaml:"-"`
	Name               string `json:"name,omitempty" yaml:"name,omitempty"`
	Test               string `json:"test,omitempty" yaml:"test,omitempty"`
	Chunks             string `json:"chunks,omitempty" yaml:"chunks,omitempty"`
	Enforce            bool   `json:"enforce,omitempty" yaml:"enforce,omitempty"`
	Priority           *int   `json:"priority,omitempty" yaml:"priority,omitempty"`
	ReuseExistingChunk bool   `json:"reuseExistingChunk,omitempty" yaml:"reuseExistingChunk,omitempty"`
	MinSize            *int   `json:"minSize,omitempty" yaml:"minSize,omitempty"`
}

// DevServer configures webpack-dev-server.
type DevServer struct {
	Host               string            `json:"host" yaml:"host"`
	Port               int               `json:"port" yaml:"port"`
	Server             string            `json:"server" yaml:"server"`
	Hot                bool              `json:"hot" yaml:"hot"`
	Static             *Static           `json:"static,omitempty" yaml:"static,omitempty"`
	Headers            map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Client             *Client           `json:"client,omitempty" yaml:"client,omitempty"`
	AllowedHosts       string            `json:"allowedHosts,omitempty" yaml:"allowedHosts,omitempty"`
	HistoryAPIFallback bool              `json:"historyApiFallback,omitempty" yaml:"historyApiFallback,omitempty"`
	LiveReload         bool              `json:"liveReload" yaml:"liveReload"`
	Compress           bool              `json:"compress,omitempty" yaml:"compress,omitempty"`
}

// Static is the dev server static directory.
type Static struct {
	Directory string `json:"directory" yaml:"directory"`
	Watch     bool   `json:"watch" yaml:"watch"`
}

// Client configures the dev server browser client.
type Client struct {
	Overlay bool   `json:"overlay" yaml:"overlay"`
	Logging string `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// Resolve configures module resolution.
type Resolve struct {
	Extensions []string          `json:"extensions" yaml:"extensions"`
	Alias      map[string]string `json:"alias,omitempty" yaml:"alias,omitempty"`
}

// WatchOptions configures watch mode.
type WatchOptions struct {
	AggregateTimeout int      `json:"aggregateTimeout,omitempty" yaml:"aggregateTimeout,omitempty"`
	Poll             int      `json:"poll,omitempty" yaml:"poll,omitempty"`
	Ignored          []string `json:"ignored,omitempty" yaml:"ignored,omitempty"`
}

// Performance configures asset size hints.
type Performance struct {
	Hints bool `json:"hints" yaml:"hints"`
}

// PluginNames returns the plugin names in projection order.
func (c *Config) PluginNames() []string {
	names := make([]string, 0, len(c.Plugins))
	for _, p := range c.Plugins {
		names = append(names, p.Name)
	}
	return names
}

// FindPlugin returns the first plugin with the given name.
func (c *Config) FindPlugin(name string) (Plugin, bool) {
	for _, p := range c.Plugins {
		if p.Name == name {
			return p, true
		}
	}
	return Plugin{}, false
}

// FindRule returns the module rule with the given name.
func (c *Config) FindRule(name string) (Rule, bool) {
	if c.Module == nil {
		return Rule{}, false
	}
	for _, r := range c.Module.Rules {
		if r.Name == name {
			return r, true
		}
	}
	return Rule{}, false
}

// LoaderNames returns the loaders of the rule in use order.
func (r Rule) LoaderNames() []string {
	names := make([]string, 0, len(r.Use))
	for _, l := range r.Use {
		names = append(names, l.Loader)
	}
	return names
}
