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

// Package serializer turns arbitrary Go values into self-describing UTF-8 JSON
// and back, preserving their runtime types.
//
// Struct values are walked member by member, unexported fields included.
// Accessor methods (N and SetN) take part too: a read-only accessor backed by
// an unexported field is still restored on decode. Every object carries a
// "$type" tag so values held by interface-typed slots come back with their
// original concrete type.
package serializer

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"

	gerrors "github.com/tochemey/objcodec/errors"
	"github.com/tochemey/objcodec/internal/encoded"
	"github.com/tochemey/objcodec/internal/members"
	"github.com/tochemey/objcodec/internal/metric"
	"github.com/tochemey/objcodec/internal/types"
	"github.com/tochemey/objcodec/log"
)

// Serializer encodes Go values into self-describing bytes and decodes them
// back with the exact concrete type they had before serialization.
//
// # Self-description requirement
//
// The decoding side does not know the type of the value it receives, so the
// encoded bytes embed a type tag for every value whose static type is an
// interface, the top-level value included. Deserialize resolves the tag to a
// Go type among the types known to the serializer.
//
// # Concurrency
//
// A single Serializer instance may be called from multiple goroutines
// concurrently without external synchronization.
//
// # Error handling
//
// Both methods return a non-nil error when encoding or decoding fails.
// Decoding failures wrap errors.ErrDeserialization.
type Serializer interface {
	// Serialize encodes value into a self-describing byte slice
	Serialize(value any) ([]byte, error)
	// Deserialize decodes data produced by Serialize and returns the value
	// with its concrete type restored
	Deserialize(data []byte) (any, error)
}

// IntoDeserializer decodes against a type known by the caller
type IntoDeserializer interface {
	// DeserializeInto decodes data into the value target points to
	DeserializeInto(data []byte, target any) error
}

// JSONSerializer is the UTF-8 JSON Serializer
type JSONSerializer struct {
	config   *Config
	logger   log.Logger
	registry types.Registry
	policy   *members.Policy
	metric   *metric.SerializerMetric
}

// enforce compilation error
var (
	_ Serializer       = (*JSONSerializer)(nil)
	_ IntoDeserializer = (*JSONSerializer)(nil)
)

// NewJSONSerializer creates a JSONSerializer.
// It returns an error wrapping errors.ErrInvalidConfig when the options do not validate.
func NewJSONSerializer(opts ...Option) (*JSONSerializer, error) {
	config := NewConfig(opts...)
	if err := config.Validate(); err != nil {
		return nil, gerrors.NewErrInvalidConfig(err)
	}

	registry := types.NewRegistry()
	registry.Register(config.types...)
	for _, named := range config.namedTypes {
		if err := registry.RegisterName(named.name, named.value); err != nil {
			return nil, gerrors.NewErrInvalidConfig(err)
		}
	}

	var providerOpts []metric.Option
	if config.meterProvider != nil {
		providerOpts = append(providerOpts, metric.WithMeterProvider(config.meterProvider))
	}

	serializerMetric, err := metric.NewSerializerMetric(metric.New(providerOpts...).Meter())
	if err != nil {
		return nil, err
	}

	logger := config.logger
	if logger.Enabled(log.DebugLevel) {
		logger.With("types", registry.Names()).Debug("json serializer created")
	}

	return &JSONSerializer{
		config:   config,
		logger:   logger,
		registry: registry,
		policy:   members.NewPolicy(config.tagKey, logger),
		metric:   serializerMetric,
	}, nil
}

// Serialize encodes value. The runtime type of value is recorded so that
// Deserialize returns a value of the same type.
// It returns errors.ErrCyclicGraph when the value references itself,
// errors.ErrMaxDepth when it is nested too deep, errors.ErrUnsupportedType
// when it holds funcs, channels or unsafe pointers and errors.ErrTimeOutOfRange
// when a time.Time has no RFC 3339 form.
func (x *JSONSerializer) Serialize(value any) ([]byte, error) {
	node, err := newEncoder(x.policy, x.registry, x.config.maxDepth).
		encodeDynamic(reflect.ValueOf(value), root, 0)
	if err != nil {
		return nil, x.serializeFailed(err)
	}

	bytea, err := encoded.Render(node)
	if err != nil {
		return nil, x.serializeFailed(fmt.Errorf("failed to render %T: %w", value, err))
	}

	ctx := context.Background()
	x.metric.SerializeCount().Add(ctx, 1)
	x.metric.EncodedSize().Record(ctx, int64(len(bytea)))
	return bytea, nil
}

// Deserialize decodes data produced by Serialize. The concrete type is read
// from the data and must be known to the serializer, see WithTypes.
func (x *JSONSerializer) Deserialize(data []byte) (any, error) {
	node, err := encoded.Parse(data)
	if err != nil {
		return nil, x.deserializeFailed(err)
	}

	value, err := newDecoder(x.policy, x.registry, x.config.maxDepth).decodeDynamic(node, root, 0)
	if err != nil {
		return nil, x.deserializeFailed(err)
	}

	x.metric.DeserializeCount().Add(context.Background(), 1)
	if !value.IsValid() {
		return nil, nil
	}
	return value.Interface(), nil
}

// DeserializeInto decodes data into the value target points to.
// Types reached through concrete slots do not need to be registered.
func (x *JSONSerializer) DeserializeInto(data []byte, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return x.deserializeFailed(gerrors.ErrNilTarget)
	}

	node, err := encoded.Parse(data)
	if err != nil {
		return x.deserializeFailed(err)
	}

	if err := newDecoder(x.policy, x.registry, x.config.maxDepth).decodeRoot(node, rv.Elem()); err != nil {
		return x.deserializeFailed(err)
	}

	x.metric.DeserializeCount().Add(context.Background(), 1)
	return nil
}

// Types returns the registered type tags
func (x *JSONSerializer) Types() []string {
	return x.registry.Names()
}

// serializeFailed records a serialization failure
func (x *JSONSerializer) serializeFailed(err error) error {
	x.metric.SerializeFailures().Add(context.Background(), 1,
		otelmetric.WithAttributes(attribute.String("kind", failureKind(err))))

	if x.logger.Enabled(log.DebugLevel) {
		x.logger.Debugf("serialization failed: %v", err)
	}
	return err
}

// deserializeFailed records a deserialization failure
func (x *JSONSerializer) deserializeFailed(err error) error {
	x.metric.DeserializeFailures().Add(context.Background(), 1,
		otelmetric.WithAttributes(attribute.String("kind", failureKind(err))))

	if x.logger.Enabled(log.DebugLevel) {
		x.logger.Debugf("deserialization failed: %v", err)
	}
	return err
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, gerrors.ErrMalformedEncoding):
		return "malformed_encoding"
	case errors.Is(err, gerrors.ErrTypeResolution):
		return "type_resolution"
	case errors.Is(err, gerrors.ErrMemberCoercion):
		return "member_coercion"
	case errors.Is(err, gerrors.ErrNilTarget):
		return "nil_target"
	case errors.Is(err, gerrors.ErrCyclicGraph):
		return "cyclic_graph"
	case errors.Is(err, gerrors.ErrMaxDepth):
		return "max_depth"
	case errors.Is(err, gerrors.ErrUnsupportedType):
		return "unsupported_type"
	case errors.Is(err, gerrors.ErrTimeOutOfRange):
		return "time_out_of_range"
	default:
		return "unknown"
	}
}

// Serialize encodes value with s
func Serialize[T any](s Serializer, value T) ([]byte, error) {
	return s.Serialize(value)
}

// Deserialize decodes data into a value of type T.
// T may be an interface type, in which case the concrete type is read from
// the data. When s cannot decode into a target, the value returned by
// s.Deserialize must be assignable to T.
func Deserialize[T any](s Serializer, data []byte) (T, error) {
	var out T
	if into, ok := s.(IntoDeserializer); ok {
		if err := into.DeserializeInto(data, &out); err != nil {
			return out, err
		}
		return out, nil
	}

	value, err := s.Deserialize(data)
	if err != nil {
		return out, err
	}

	if value == nil {
		return out, nil
	}

	typed, ok := value.(T)
	if !ok {
		return out, gerrors.NewErrMemberCoercion(root, fmt.Sprintf("%T cannot be assigned to %s", value, reflect.TypeFor[T]()), nil)
	}
	return typed, nil
}
