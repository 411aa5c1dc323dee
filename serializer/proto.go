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
	"fmt"
	"reflect"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"

	gerrors "github.com/tochemey/objcodec/errors"
	"github.com/tochemey/objcodec/internal/encoded"
)

// encodeProto encodes a protocol buffer message with its canonical JSON
// mapping, tagged with its full name
func (e *encoder) encodeProto(v reflect.Value, path string) (*encoded.Node, error) {
	message := v.Interface().(proto.Message)
	tag := protoTagPrefix + string(message.ProtoReflect().Descriptor().FullName())

	value := encoded.NewNull()
	if !v.IsNil() {
		bytea, err := protojson.Marshal(message)
		if err != nil {
			return nil, fmt.Errorf("(path=%s) failed to marshal proto message: %w", path, err)
		}

		if value, err = encoded.Parse(bytea); err != nil {
			return nil, fmt.Errorf("(path=%s) failed to read proto message: %w", path, err)
		}
	}

	return encoded.NewObject(
		encoded.Member{Key: typeKey, Value: encoded.NewString(tag)},
		encoded.Member{Key: valueKey, Value: value},
	), nil
}

// protoType resolves a proto tag through the global protobuf registry
func protoType(tag string) (reflect.Type, bool) {
	name := protoreflect.FullName(strings.TrimPrefix(tag, protoTagPrefix))
	messageType, err := protoregistry.GlobalTypes.FindMessageByName(name)
	if err != nil {
		return nil, false
	}
	return reflect.TypeOf(messageType.Zero().Interface()), true
}

// decodeProto decodes a proto envelope into dst, a proto.Message pointer
func (d *decoder) decodeProto(node *encoded.Node, dst reflect.Value, path string) error {
	if node.IsNull() {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}

	if !isEnvelope(node) {
		return gerrors.NewErrMemberCoercion(path, fmt.Sprintf("cannot decode %s into %s", node.Kind, dst.Type()), nil)
	}

	tag, err := d.tagOf(node, path)
	if err != nil {
		return err
	}

	message := reflect.New(dst.Type().Elem()).Interface().(proto.Message)
	expected := protoTagPrefix + string(message.ProtoReflect().Descriptor().FullName())
	if tag != expected {
		return gerrors.NewErrMemberCoercion(path, fmt.Sprintf("type=(%s) does not match %s", tag, expected), nil)
	}

	value, _ := node.Get(valueKey)
	if value.IsNull() {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}

	bytea, err := encoded.Render(value)
	if err != nil {
		return gerrors.NewErrMalformedEncoding(memberPath(path, valueKey), err)
	}

	if err := protojson.Unmarshal(bytea, message); err != nil {
		return gerrors.NewErrMemberCoercion(memberPath(path, valueKey), "invalid proto message", err)
	}

	dst.Set(reflect.ValueOf(message))
	return nil
}
