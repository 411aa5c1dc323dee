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
	"strings"
	"unicode"

	"go.opentelemetry.io/otel/metric"

	"github.com/tochemey/objcodec/internal/members"
	"github.com/tochemey/objcodec/internal/validation"
	"github.com/tochemey/objcodec/log"
)

// DefaultMaxDepth is the default maximum nesting depth
const DefaultMaxDepth = 512

type namedType struct {
	name  string
	value any
}

// Config holds the serializer settings.
// It is immutable once the serializer is created.
type Config struct {
	logger        log.Logger
	types         []any
	namedTypes    []namedType
	maxDepth      int
	tagKey        string
	meterProvider metric.MeterProvider
}

var _ validation.Validator = (*Config)(nil)

// NewConfig returns a Config with the defaults overridden by the given options
func NewConfig(opts ...Option) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt.Apply(cfg)
	}
	return cfg
}

// DefaultConfig returns the default serializer config
func DefaultConfig() *Config {
	return &Config{
		logger:   log.DiscardLogger,
		maxDepth: DefaultMaxDepth,
		tagKey:   members.DefaultTagKey,
	}
}

// Logger returns the logger
func (x *Config) Logger() log.Logger {
	return x.logger
}

// MaxDepth returns the maximum nesting depth
func (x *Config) MaxDepth() int {
	return x.maxDepth
}

// TagKey returns the struct tag key
func (x *Config) TagKey() string {
	return x.tagKey
}

// MeterProvider returns the meter provider, nil when the global one is used
func (x *Config) MeterProvider() metric.MeterProvider {
	return x.meterProvider
}

// Validate checks the config
func (x *Config) Validate() error {
	chain := validation.
		New(validation.AllErrors()).
		AddAssertion(x.logger != nil, "logger is required").
		AddAssertion(x.maxDepth > 0, "maxDepth must be greater than 0").
		AddAssertion(validTagKey(x.tagKey), "tagKey must be a non-empty struct tag key")

	for _, named := range x.namedTypes {
		chain.AddValidator(validation.NewTypeNameValidator(named.name)).
			AddAssertion(named.value != nil, "type name=("+named.name+") needs a non-nil value").
			AddAssertion(!strings.HasPrefix(named.name, "*"), "type name=("+named.name+") must not start with '*'").
			AddAssertion(!strings.HasPrefix(named.name, protoTagPrefix), "type name=("+named.name+") uses the reserved proto prefix")
	}

	for _, value := range x.types {
		chain.AddAssertion(value != nil, "registered types need non-nil values")
	}

	return chain.Validate()
}

// validTagKey follows the struct tag convention: no spaces, quotes, colons
// or control characters
func validTagKey(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		if r == ' ' || r == '"' || r == ':' || unicode.IsControl(r) {
			return false
		}
	}
	return true
}
