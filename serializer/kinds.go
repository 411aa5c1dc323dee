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
	"encoding"
	"reflect"
	"strconv"
	"strings"
	"time"

	"google.golang.org/protobuf/proto"

	"github.com/tochemey/objcodec/internal/encoded"
)

const (
	typeKey  = "$type"
	valueKey = "$value"

	protoTagPrefix = "proto:"
	root           = "$"
)

var (
	timeType            = reflect.TypeOf(time.Time{})
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	protoMessageType    = reflect.TypeOf((*proto.Message)(nil)).Elem()
)

// isProto reports whether values of rtype are protocol buffer messages
func isProto(rtype reflect.Type) bool {
	return rtype.Kind() == reflect.Pointer && rtype.Implements(protoMessageType)
}

// isTextLeaf reports whether rtype is encoded through its text form
func isTextLeaf(rtype reflect.Type) bool {
	switch rtype.Kind() {
	case reflect.Pointer, reflect.Interface:
		return false
	}
	if rtype == timeType {
		return false
	}
	ptr := reflect.PointerTo(rtype)
	return (rtype.Implements(textMarshalerType) || ptr.Implements(textMarshalerType)) &&
		ptr.Implements(textUnmarshalerType)
}

// isStructForm reports whether rtype is encoded as an object carrying its
// members, directly or behind one pointer
func isStructForm(rtype reflect.Type) bool {
	if rtype.Kind() == reflect.Pointer {
		if isProto(rtype) {
			return false
		}
		rtype = rtype.Elem()
	}
	return rtype.Kind() == reflect.Struct && rtype != timeType && !isTextLeaf(rtype)
}

// isEnvelope reports whether node is a {"$type":..., "$value":...} envelope
func isEnvelope(node *encoded.Node) bool {
	if node.Kind != encoded.Object || len(node.Members) != 2 {
		return false
	}
	_, hasType := node.Get(typeKey)
	_, hasValue := node.Get(valueKey)
	return hasType && hasValue
}

// addressable returns v itself when addressable, or an addressable copy
func addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v
	}
	c := reflect.New(v.Type()).Elem()
	c.Set(v)
	return c
}

func memberPath(path, name string) string {
	return path + "." + name
}

func indexPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

func keyPath(path, key string) string {
	return path + "[" + strconv.Quote(key) + "]"
}

func derefName(name string) string {
	return strings.TrimLeft(name, "*")
}
