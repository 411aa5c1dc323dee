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

package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDeserialization is the umbrella error returned by every failed
	// deserialization. Use errors.Is with one of the kinds below to find out why.
	ErrDeserialization = errors.New("deserialization failed")

	// ErrMalformedEncoding is returned when the byte buffer is not valid UTF-8
	// JSON text, or when the text does not follow the envelope layout.
	ErrMalformedEncoding = errors.New("malformed encoding")

	// ErrTypeResolution is returned when an embedded type tag cannot be mapped
	// to a type known to the decoding serializer.
	ErrTypeResolution = errors.New("type cannot be resolved")

	// ErrMemberCoercion is returned when an encoded value cannot be assigned
	// into the slot it targets.
	ErrMemberCoercion = errors.New("member coercion failed")

	// ErrCyclicGraph is returned by serialization when the value graph
	// references itself through pointers, maps or slices.
	ErrCyclicGraph = errors.New("cyclic object graph")

	// ErrMaxDepth is returned when a value is nested deeper than the configured limit.
	ErrMaxDepth = errors.New("maximum nesting depth exceeded")

	// ErrUnsupportedType is returned when serialization reaches a value whose
	// kind has no encoded form (func, chan, unsafe.Pointer).
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrTimeOutOfRange is returned by serialization when a time.Time has no
	// RFC 3339 form: a year outside [0,9999] or an offset of a day or more.
	ErrTimeOutOfRange = errors.New("time outside of RFC 3339 range")

	// ErrNilTarget is returned when DeserializeInto is given a nil or non-pointer target.
	ErrNilTarget = errors.New("target must be a non-nil pointer")

	// ErrInvalidConfig is returned when the serializer configuration does not validate.
	ErrInvalidConfig = errors.New("invalid serializer configuration")
)

// DecodeError describes a failed deserialization. It records the kind of
// failure, the JSON path of the member being decoded and the underlying cause,
// if any.
//
// errors.Is matches ErrDeserialization, the Kind and the Cause chain.
type DecodeError struct {
	// Kind is one of ErrMalformedEncoding, ErrTypeResolution or ErrMemberCoercion
	Kind error
	// Path is the JSON path of the failing member, "$" for the root
	Path string
	// Detail is a human readable explanation
	Detail string
	// Cause is the underlying error, when there is one
	Cause error
}

var _ error = (*DecodeError)(nil)

// Error implements error
func (e *DecodeError) Error() string {
	var builder strings.Builder
	builder.WriteString(ErrDeserialization.Error())
	builder.WriteString(": ")
	builder.WriteString(e.Kind.Error())
	if e.Path != "" {
		builder.WriteString(" at ")
		builder.WriteString(e.Path)
	}
	if e.Detail != "" {
		builder.WriteString(": ")
		builder.WriteString(e.Detail)
	}
	if e.Cause != nil {
		builder.WriteString(": ")
		builder.WriteString(e.Cause.Error())
	}
	return builder.String()
}

// Unwrap returns the umbrella error, the kind and the cause
func (e *DecodeError) Unwrap() []error {
	errs := []error{ErrDeserialization, e.Kind}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// NewErrMalformedEncoding creates a DecodeError of kind ErrMalformedEncoding
func NewErrMalformedEncoding(path string, cause error) error {
	return &DecodeError{Kind: ErrMalformedEncoding, Path: path, Cause: cause}
}

// NewErrTypeResolution creates a DecodeError of kind ErrTypeResolution for the given type tag
func NewErrTypeResolution(path, tag string) error {
	return &DecodeError{Kind: ErrTypeResolution, Path: path, Detail: fmt.Sprintf("type=(%s)", tag)}
}

// NewErrMemberCoercion creates a DecodeError of kind ErrMemberCoercion
func NewErrMemberCoercion(path, detail string, cause error) error {
	return &DecodeError{Kind: ErrMemberCoercion, Path: path, Detail: detail, Cause: cause}
}

// NewErrCyclicGraph formats an ErrCyclicGraph with the path where the cycle closes
func NewErrCyclicGraph(path string) error {
	return fmt.Errorf("(path=%s) %w", path, ErrCyclicGraph)
}

// NewErrMaxDepth formats an ErrMaxDepth with the path and the limit that was hit
func NewErrMaxDepth(path string, limit int) error {
	return fmt.Errorf("(path=%s, limit=%d) %w", path, limit, ErrMaxDepth)
}

// NewErrUnsupportedType formats an ErrUnsupportedType with the offending type name
func NewErrUnsupportedType(path, typeName string) error {
	return fmt.Errorf("(path=%s, type=%s) %w", path, typeName, ErrUnsupportedType)
}

// NewErrTimeOutOfRange formats an ErrTimeOutOfRange with the offending time
func NewErrTimeOutOfRange(path, value string) error {
	return fmt.Errorf("(path=%s, time=%s) %w", path, value, ErrTimeOutOfRange)
}

// NewErrInvalidConfig wraps the validation violations with ErrInvalidConfig
func NewErrInvalidConfig(err error) error {
	return errors.Join(ErrInvalidConfig, err)
}
