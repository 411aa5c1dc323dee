// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package serializer

import (
	"go.opentelemetry.io/otel/metric"

	"github.com/tochemey/objcodec/log"
)

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(*Config)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(config *Config)

func (f OptionFunc) Apply(c *Config) {
	f(c)
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(config *Config) {
		if logger != nil {
			config.logger = logger
		}
	})
}

// WithTypes registers the types of the given values under their default tag.
// Types reached only through interface-typed slots must be registered for
// Deserialize to resolve them. new(T) and T{} both register T.
func WithTypes(values ...any) Option {
	return OptionFunc(func(config *Config) {
		config.types = append(config.types, values...)
	})
}

// WithNamedType registers the type of value under a custom tag
func WithNamedType(name string, value any) Option {
	return OptionFunc(func(config *Config) {
		config.namedTypes = append(config.namedTypes, namedType{name: name, value: value})
	})
}

// WithMaxDepth sets the maximum nesting depth of encoded values
func WithMaxDepth(depth int) Option {
	return OptionFunc(func(config *Config) {
		config.maxDepth = depth
	})
}

// WithTagKey sets the struct tag key used to rename or skip fields
func WithTagKey(key string) Option {
	return OptionFunc(func(config *Config) {
		config.tagKey = key
	})
}

// WithMeterProvider sets the meter provider used to record the serializer
// metrics. The global provider is used otherwise.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return OptionFunc(func(config *Config) {
		config.meterProvider = provider
	})
}
