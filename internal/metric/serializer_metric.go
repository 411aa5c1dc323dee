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

package metric

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// SerializerMetric defines the serializer instrumentation
type SerializerMetric struct {
	// Specifies the total number of serialized values
	serializeCount metric.Int64Counter
	// Specifies the total number of failed serializations, by failure kind
	serializeFailures metric.Int64Counter
	// Specifies the total number of deserialized values
	deserializeCount metric.Int64Counter
	// Specifies the total number of failed deserializations, by failure kind
	deserializeFailures metric.Int64Counter
	// Specifies the size of the produced buffers in bytes
	encodedSize metric.Int64Histogram
}

// NewSerializerMetric creates an instance of SerializerMetric
func NewSerializerMetric(meter metric.Meter) (*SerializerMetric, error) {
	serializerMetric := new(SerializerMetric)
	var err error

	if serializerMetric.serializeCount, err = meter.Int64Counter(
		"objcodec.serialize.count",
		metric.WithDescription("Total number of values serialized"),
	); err != nil {
		return nil, fmt.Errorf("failed to create serializeCount instrument, %w", err)
	}

	if serializerMetric.serializeFailures, err = meter.Int64Counter(
		"objcodec.serialize.failures",
		metric.WithDescription("Total number of failed serializations"),
	); err != nil {
		return nil, fmt.Errorf("failed to create serializeFailures instrument, %w", err)
	}

	if serializerMetric.deserializeCount, err = meter.Int64Counter(
		"objcodec.deserialize.count",
		metric.WithDescription("Total number of values deserialized"),
	); err != nil {
		return nil, fmt.Errorf("failed to create deserializeCount instrument, %w", err)
	}

	if serializerMetric.deserializeFailures, err = meter.Int64Counter(
		"objcodec.deserialize.failures",
		metric.WithDescription("Total number of failed deserializations"),
	); err != nil {
		return nil, fmt.Errorf("failed to create deserializeFailures instrument, %w", err)
	}

	if serializerMetric.encodedSize, err = meter.Int64Histogram(
		"objcodec.encoded.size",
		metric.WithDescription("The size of the serialized buffers"),
		metric.WithUnit("By"),
	); err != nil {
		return nil, fmt.Errorf("failed to create encodedSize instrument, %w", err)
	}

	return serializerMetric, nil
}

// SerializeCount returns the total number of values serialized
func (x *SerializerMetric) SerializeCount() metric.Int64Counter {
	return x.serializeCount
}

// SerializeFailures returns the total number of failed serializations
func (x *SerializerMetric) SerializeFailures() metric.Int64Counter {
	return x.serializeFailures
}

// DeserializeCount returns the total number of values deserialized
func (x *SerializerMetric) DeserializeCount() metric.Int64Counter {
	return x.deserializeCount
}

// DeserializeFailures returns the total number of failed deserializations
func (x *SerializerMetric) DeserializeFailures() metric.Int64Counter {
	return x.deserializeFailures
}

// EncodedSize returns the size of the serialized buffers
func (x *SerializerMetric) EncodedSize() metric.Int64Histogram {
	return x.encodedSize
}
