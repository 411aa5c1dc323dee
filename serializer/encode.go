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
	"encoding/base64"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	gerrors "github.com/tochemey/objcodec/errors"
	"github.com/tochemey/objcodec/internal/encoded"
	"github.com/tochemey/objcodec/internal/members"
	"github.com/tochemey/objcodec/internal/types"
)

// visit identifies a reference being walked. The type is part of the key
// since a struct and its first field share an address.
type visit struct {
	ptr  uintptr
	typ  reflect.Type
	size int
}

// encoder walks a value graph into an encoded tree. It is not safe for
// concurrent use: each serialization uses its own encoder.
type encoder struct {
	policy   *members.Policy
	registry types.Registry
	maxDepth int
	visiting map[visit]struct{}
}

func newEncoder(policy *members.Policy, registry types.Registry, maxDepth int) *encoder {
	return &encoder{
		policy:   policy,
		registry: registry,
		maxDepth: maxDepth,
		visiting: make(map[visit]struct{}),
	}
}

// encodeDynamic encodes the value held by an interface slot, tagging it with
// its runtime type
func (e *encoder) encodeDynamic(v reflect.Value, path string, depth int) (*encoded.Node, error) {
	if !v.IsValid() {
		return encoded.NewNull(), nil
	}

	rtype := v.Type()
	if isProto(rtype) {
		return e.encodeProto(v, path)
	}

	tag := e.registry.NameOf(rtype)
	if isStructForm(rtype) && !(rtype.Kind() == reflect.Pointer && v.IsNil()) {
		node, err := e.encode(v, path, depth)
		if err != nil {
			return nil, err
		}
		// the struct tag is replaced by the runtime tag, "*" prefixed for pointers
		node.Members[0].Value = encoded.NewString(tag)
		return node, nil
	}

	value, err := e.encode(v, path, depth)
	if err != nil {
		return nil, err
	}

	return encoded.NewObject(
		encoded.Member{Key: typeKey, Value: encoded.NewString(tag)},
		encoded.Member{Key: valueKey, Value: value},
	), nil
}

// encode encodes v according to its static type
func (e *encoder) encode(v reflect.Value, path string, depth int) (*encoded.Node, error) {
	if depth > e.maxDepth {
		return nil, gerrors.NewErrMaxDepth(path, e.maxDepth)
	}

	if !v.IsValid() {
		return encoded.NewNull(), nil
	}

	rtype := v.Type()
	switch {
	case isProto(rtype):
		return e.encodeProto(v, path)
	case rtype == timeType:
		return encodeTime(v.Interface().(time.Time), path)
	case isTextLeaf(rtype):
		text, err := marshalText(v)
		if err != nil {
			return nil, fmt.Errorf("(path=%s) failed to marshal %s: %w", path, rtype, err)
		}
		return encoded.NewString(text), nil
	}

	switch rtype.Kind() {
	case reflect.Bool:
		return encoded.NewBool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return encoded.NewNumber(strconv.FormatInt(v.Int(), 10)), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return encoded.NewNumber(strconv.FormatUint(v.Uint(), 10)), nil
	case reflect.Float32:
		return encodeFloat(v.Float(), 32), nil
	case reflect.Float64:
		return encodeFloat(v.Float(), 64), nil
	case reflect.Complex64, reflect.Complex128:
		bits := 64
		if rtype.Kind() == reflect.Complex64 {
			bits = 32
		}
		c := v.Complex()
		return encoded.NewArray(encodeFloat(real(c), bits), encodeFloat(imag(c), bits)), nil
	case reflect.String:
		return encoded.NewString(v.String()), nil
	case reflect.Interface:
		if v.IsNil() {
			return encoded.NewNull(), nil
		}
		return e.encodeDynamic(v.Elem(), path, depth+1)
	case reflect.Pointer:
		if v.IsNil() {
			return encoded.NewNull(), nil
		}
		return e.enter(v, path, func() (*encoded.Node, error) {
			return e.encode(v.Elem(), path, depth+1)
		})
	case reflect.Struct:
		return e.encodeStruct(v, path, depth)
	case reflect.Slice:
		if v.IsNil() {
			return encoded.NewNull(), nil
		}
		if rtype.Elem().Kind() == reflect.Uint8 && !isTextLeaf(rtype.Elem()) {
			return encoded.NewString(base64.StdEncoding.EncodeToString(v.Bytes())), nil
		}
		return e.enter(v, path, func() (*encoded.Node, error) {
			return e.encodeItems(v, path, depth)
		})
	case reflect.Array:
		return e.encodeItems(v, path, depth)
	case reflect.Map:
		if v.IsNil() {
			return encoded.NewNull(), nil
		}
		return e.enter(v, path, func() (*encoded.Node, error) {
			return e.encodeMap(v, path, depth)
		})
	default:
		return nil, gerrors.NewErrUnsupportedType(path, rtype.String())
	}
}

// enter tracks a reference while fn walks what it points to
func (e *encoder) enter(v reflect.Value, path string, fn func() (*encoded.Node, error)) (*encoded.Node, error) {
	key := visit{ptr: v.Pointer(), typ: v.Type()}
	if v.Kind() == reflect.Slice {
		key.size = v.Len()
		if key.size == 0 {
			return fn()
		}
	}

	if _, ok := e.visiting[key]; ok {
		return nil, gerrors.NewErrCyclicGraph(path)
	}

	e.visiting[key] = struct{}{}
	defer delete(e.visiting, key)
	return fn()
}

func (e *encoder) encodeStruct(v reflect.Value, path string, depth int) (*encoded.Node, error) {
	v = addressable(v)
	desc := e.policy.Describe(v.Type())

	node := encoded.NewObject(encoded.Member{Key: typeKey, Value: encoded.NewString(e.registry.NameOf(v.Type()))})
	for _, slot := range desc.Slots {
		if !slot.Readable {
			continue
		}

		slotPath := memberPath(path, slot.Name)
		value, err := slot.Get(v)
		if err != nil {
			return nil, fmt.Errorf("(path=%s) failed to read member: %w", slotPath, err)
		}

		// promoted through a nil embedded pointer
		if !value.IsValid() {
			continue
		}

		member, err := e.encode(value, slotPath, depth+1)
		if err != nil {
			return nil, err
		}
		node.Add(slot.Name, member)
	}
	return node, nil
}

func (e *encoder) encodeItems(v reflect.Value, path string, depth int) (*encoded.Node, error) {
	items := make([]*encoded.Node, v.Len())
	for i := range v.Len() {
		item, err := e.encode(v.Index(i), indexPath(path, i), depth+1)
		if err != nil {
			return nil, err
		}
		items[i] = item
	}
	return encoded.NewArray(items...), nil
}

func (e *encoder) encodeMap(v reflect.Value, path string, depth int) (*encoded.Node, error) {
	type entry struct {
		key   string
		value reflect.Value
	}

	entries := make([]entry, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		key, err := encodeKey(iter.Key(), path)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{key: key, value: iter.Value()})
	}

	slices.SortFunc(entries, func(a, b entry) int { return strings.Compare(a.key, b.key) })
	for i := 1; i < len(entries); i++ {
		if entries[i].key == entries[i-1].key {
			return nil, fmt.Errorf("(path=%s) map keys collide on key=(%s)", path, entries[i].key)
		}
	}

	node := encoded.NewObject()
	for _, entry := range entries {
		value, err := e.encode(entry.value, keyPath(path, entry.key), depth+1)
		if err != nil {
			return nil, err
		}
		node.Add(entry.key, value)
	}
	return node, nil
}

func encodeKey(key reflect.Value, path string) (string, error) {
	if isTextLeaf(key.Type()) {
		text, err := marshalText(key)
		if err != nil {
			return "", fmt.Errorf("(path=%s) failed to marshal map key: %w", path, err)
		}
		return text, nil
	}

	switch key.Kind() {
	case reflect.String:
		return key.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(key.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(key.Uint(), 10), nil
	default:
		return "", gerrors.NewErrUnsupportedType(path, "map key "+key.Type().String())
	}
}

// encodeTime writes t as RFC 3339 with nanoseconds. A year outside [0,9999]
// or an offset of a day or more has no RFC 3339 form.
func encodeTime(t time.Time, path string) (*encoded.Node, error) {
	if year := t.Year(); year < 0 || year > 9999 {
		return nil, gerrors.NewErrTimeOutOfRange(path, t.String())
	}

	if _, offset := t.Zone(); offset <= -24*60*60 || offset >= 24*60*60 {
		return nil, gerrors.NewErrTimeOutOfRange(path, t.String())
	}
	return encoded.NewString(t.Format(time.RFC3339Nano)), nil
}

func encodeFloat(f float64, bits int) *encoded.Node {
	switch {
	case math.IsNaN(f):
		return encoded.NewString("NaN")
	case math.IsInf(f, 1):
		return encoded.NewString("+Inf")
	case math.IsInf(f, -1):
		return encoded.NewString("-Inf")
	default:
		return encoded.NewNumber(strconv.FormatFloat(f, 'g', -1, bits))
	}
}

func marshalText(v reflect.Value) (string, error) {
	var marshaler encoding.TextMarshaler
	if v.Type().Implements(textMarshalerType) {
		marshaler = v.Interface().(encoding.TextMarshaler)
	} else {
		marshaler = addressable(v).Addr().Interface().(encoding.TextMarshaler)
	}

	text, err := marshaler.MarshalText()
	if err != nil {
		return "", err
	}
	return string(text), nil
}
