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
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	gerrors "github.com/tochemey/objcodec/errors"
	"github.com/tochemey/objcodec/internal/encoded"
	"github.com/tochemey/objcodec/internal/members"
	"github.com/tochemey/objcodec/internal/types"
)

// decoder rebuilds values from an encoded tree
type decoder struct {
	policy   *members.Policy
	registry types.Registry
	maxDepth int
}

func newDecoder(policy *members.Policy, registry types.Registry, maxDepth int) *decoder {
	return &decoder{
		policy:   policy,
		registry: registry,
		maxDepth: maxDepth,
	}
}

// decodeDynamic decodes a node targeting an interface slot. Tagged nodes are
// resolved through the registry. Untagged nodes decode to bool, float64,
// string, []any or map[string]any.
func (d *decoder) decodeDynamic(node *encoded.Node, path string, depth int) (reflect.Value, error) {
	if depth > d.maxDepth {
		return reflect.Value{}, gerrors.NewErrMalformedEncoding(path, gerrors.NewErrMaxDepth(path, d.maxDepth))
	}

	switch node.Kind {
	case encoded.Null:
		return reflect.Value{}, nil
	case encoded.Bool:
		return reflect.ValueOf(node.Bool), nil
	case encoded.Number:
		f, err := strconv.ParseFloat(node.Text, 64)
		if err != nil {
			return reflect.Value{}, gerrors.NewErrMemberCoercion(path, fmt.Sprintf("number=(%s) does not fit float64", node.Text), err)
		}
		return reflect.ValueOf(f), nil
	case encoded.String:
		return reflect.ValueOf(node.Text), nil
	case encoded.Array:
		items := make([]any, len(node.Items))
		for i, item := range node.Items {
			value, err := d.decodeDynamic(item, indexPath(path, i), depth+1)
			if err != nil {
				return reflect.Value{}, err
			}
			if value.IsValid() {
				items[i] = value.Interface()
			}
		}
		return reflect.ValueOf(items), nil
	}

	if _, tagged := node.Get(typeKey); !tagged {
		object := make(map[string]any, len(node.Members))
		for _, member := range node.Members {
			value, err := d.decodeDynamic(member.Value, keyPath(path, member.Key), depth+1)
			if err != nil {
				return reflect.Value{}, err
			}
			if value.IsValid() {
				object[member.Key] = value.Interface()
			} else {
				object[member.Key] = nil
			}
		}
		return reflect.ValueOf(object), nil
	}

	tag, err := d.tagOf(node, path)
	if err != nil {
		return reflect.Value{}, err
	}

	var (
		rtype reflect.Type
		ok    bool
	)
	if strings.HasPrefix(tag, protoTagPrefix) {
		rtype, ok = protoType(tag)
	} else {
		rtype, ok = d.registry.TypeOf(tag)
	}
	if !ok {
		return reflect.Value{}, gerrors.NewErrTypeResolution(path, tag)
	}

	// proto envelopes are read by decodeProto
	if isEnvelope(node) && !isProto(rtype) {
		node, _ = node.Get(valueKey)
		path = memberPath(path, valueKey)
	}

	target := reflect.New(rtype).Elem()
	if err := d.decode(node, target, path, depth); err != nil {
		return reflect.Value{}, err
	}
	return target, nil
}

// decode decodes node into dst according to the static type of dst.
// dst must be settable.
func (d *decoder) decode(node *encoded.Node, dst reflect.Value, path string, depth int) error {
	if depth > d.maxDepth {
		return gerrors.NewErrMalformedEncoding(path, gerrors.NewErrMaxDepth(path, d.maxDepth))
	}

	rtype := dst.Type()
	if isProto(rtype) {
		return d.decodeProto(node, dst, path)
	}

	if node.IsNull() {
		dst.Set(reflect.Zero(rtype))
		return nil
	}

	switch {
	case rtype == timeType:
		return d.decodeTime(node, dst, path)
	case isTextLeaf(rtype):
		return d.decodeText(node, dst, path)
	}

	switch rtype.Kind() {
	case reflect.Interface:
		value, err := d.decodeDynamic(node, path, depth+1)
		if err != nil {
			return err
		}
		if !value.IsValid() {
			dst.Set(reflect.Zero(rtype))
			return nil
		}
		if !value.Type().AssignableTo(rtype) {
			return gerrors.NewErrMemberCoercion(path, fmt.Sprintf("%s does not implement %s", value.Type(), rtype), nil)
		}
		dst.Set(value)
		return nil
	case reflect.Pointer:
		if dst.IsNil() {
			dst.Set(reflect.New(rtype.Elem()))
		}
		return d.decode(node, dst.Elem(), path, depth+1)
	case reflect.Struct:
		return d.decodeStruct(node, dst, path, depth)
	case reflect.Bool:
		if node.Kind != encoded.Bool {
			return mismatch(node, rtype, path)
		}
		dst.SetBool(node.Bool)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if node.Kind != encoded.Number {
			return mismatch(node, rtype, path)
		}
		i, err := strconv.ParseInt(node.Text, 10, rtype.Bits())
		if err != nil {
			return gerrors.NewErrMemberCoercion(path, fmt.Sprintf("number=(%s) does not fit %s", node.Text, rtype), err)
		}
		dst.SetInt(i)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if node.Kind != encoded.Number {
			return mismatch(node, rtype, path)
		}
		u, err := strconv.ParseUint(node.Text, 10, rtype.Bits())
		if err != nil {
			return gerrors.NewErrMemberCoercion(path, fmt.Sprintf("number=(%s) does not fit %s", node.Text, rtype), err)
		}
		dst.SetUint(u)
		return nil
	case reflect.Float32, reflect.Float64:
		f, err := decodeFloat(node, rtype.Bits(), path)
		if err != nil {
			return err
		}
		dst.SetFloat(f)
		return nil
	case reflect.Complex64, reflect.Complex128:
		if node.Kind != encoded.Array || len(node.Items) != 2 {
			return mismatch(node, rtype, path)
		}
		bits := rtype.Bits() / 2
		re, err := decodeFloat(node.Items[0], bits, indexPath(path, 0))
		if err != nil {
			return err
		}
		im, err := decodeFloat(node.Items[1], bits, indexPath(path, 1))
		if err != nil {
			return err
		}
		dst.SetComplex(complex(re, im))
		return nil
	case reflect.String:
		if node.Kind != encoded.String {
			return mismatch(node, rtype, path)
		}
		dst.SetString(node.Text)
		return nil
	case reflect.Slice:
		return d.decodeSlice(node, dst, path, depth)
	case reflect.Array:
		if node.Kind != encoded.Array {
			return mismatch(node, rtype, path)
		}
		if len(node.Items) != rtype.Len() {
			return gerrors.NewErrMemberCoercion(path, fmt.Sprintf("%d items do not fit %s", len(node.Items), rtype), nil)
		}
		for i, item := range node.Items {
			if err := d.decode(item, dst.Index(i), indexPath(path, i), depth+1); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		return d.decodeMap(node, dst, path, depth)
	default:
		return gerrors.NewErrMemberCoercion(path, "cannot decode into "+rtype.String(), gerrors.ErrUnsupportedType)
	}
}

// decodeRoot decodes the top-level node into dst. The top-level value is
// written as an interface slot, so a concrete dst first unwraps its envelope.
func (d *decoder) decodeRoot(node *encoded.Node, dst reflect.Value) error {
	path := root
	rtype := dst.Type()
	if rtype.Kind() != reflect.Interface && !isProto(rtype) && isEnvelope(node) {
		value, err := d.unwrap(node, rtype, path)
		if err != nil {
			return err
		}
		node, path = value, memberPath(path, valueKey)
	}
	return d.decode(node, dst, path, 0)
}

// unwrap returns the value of an envelope after checking its tag matches rtype
func (d *decoder) unwrap(node *encoded.Node, rtype reflect.Type, path string) (*encoded.Node, error) {
	tag, err := d.tagOf(node, path)
	if err != nil {
		return nil, err
	}

	if !d.matches(tag, rtype) {
		return nil, gerrors.NewErrMemberCoercion(path, fmt.Sprintf("type=(%s) cannot be assigned to %s", tag, rtype), nil)
	}

	value, _ := node.Get(valueKey)
	return value, nil
}

// matches reports whether the tag names rtype. Pointer prefixes are ignored
// on both sides: a value encoded behind a pointer decodes into a value slot
// and the other way round.
func (d *decoder) matches(tag string, rtype reflect.Type) bool {
	if derefName(tag) == derefName(d.registry.NameOf(rtype)) {
		return true
	}

	resolved, ok := d.registry.TypeOf(derefName(tag))
	if !ok {
		return false
	}

	for rtype.Kind() == reflect.Pointer {
		rtype = rtype.Elem()
	}
	return resolved == rtype
}

// tagOf returns the type tag of an object node
func (d *decoder) tagOf(node *encoded.Node, path string) (string, error) {
	tag, ok := node.Get(typeKey)
	if !ok {
		return "", nil
	}
	if tag.Kind != encoded.String || tag.Text == "" {
		return "", gerrors.NewErrMalformedEncoding(memberPath(path, typeKey), errors.New("type tag must be a non-empty string"))
	}
	return tag.Text, nil
}

func (d *decoder) decodeStruct(node *encoded.Node, dst reflect.Value, path string, depth int) error {
	rtype := dst.Type()
	if node.Kind != encoded.Object {
		return mismatch(node, rtype, path)
	}

	tag, err := d.tagOf(node, path)
	if err != nil {
		return err
	}

	if tag != "" && !d.matches(tag, rtype) {
		return gerrors.NewErrMemberCoercion(path, fmt.Sprintf("type=(%s) cannot be assigned to %s", tag, rtype), nil)
	}

	desc := d.policy.Describe(rtype)
	for _, member := range node.Members {
		if strings.HasPrefix(member.Key, "$") {
			continue
		}

		slot, ok := desc.Lookup(member.Key)
		if !ok || !slot.Writable {
			continue
		}

		slotPath := memberPath(path, member.Key)
		value := reflect.New(slot.Type).Elem()
		if err := d.decode(member.Value, value, slotPath, depth+1); err != nil {
			return err
		}

		if err := slot.Set(dst, value); err != nil {
			return gerrors.NewErrMemberCoercion(slotPath, "member rejected the value", err)
		}
	}
	return nil
}

func (d *decoder) decodeSlice(node *encoded.Node, dst reflect.Value, path string, depth int) error {
	rtype := dst.Type()
	if node.Kind == encoded.String && rtype.Elem().Kind() == reflect.Uint8 && !isTextLeaf(rtype.Elem()) {
		bytea, err := base64.StdEncoding.DecodeString(node.Text)
		if err != nil {
			return gerrors.NewErrMemberCoercion(path, "invalid base64 text", err)
		}
		dst.SetBytes(bytea)
		return nil
	}

	if node.Kind != encoded.Array {
		return mismatch(node, rtype, path)
	}

	slice := reflect.MakeSlice(rtype, len(node.Items), len(node.Items))
	for i, item := range node.Items {
		if err := d.decode(item, slice.Index(i), indexPath(path, i), depth+1); err != nil {
			return err
		}
	}
	dst.Set(slice)
	return nil
}

func (d *decoder) decodeMap(node *encoded.Node, dst reflect.Value, path string, depth int) error {
	rtype := dst.Type()
	if node.Kind != encoded.Object {
		return mismatch(node, rtype, path)
	}

	m := reflect.MakeMapWithSize(rtype, len(node.Members))
	for _, member := range node.Members {
		entryPath := keyPath(path, member.Key)
		key, err := decodeKey(member.Key, rtype.Key(), entryPath)
		if err != nil {
			return err
		}

		value := reflect.New(rtype.Elem()).Elem()
		if err := d.decode(member.Value, value, entryPath, depth+1); err != nil {
			return err
		}
		m.SetMapIndex(key, value)
	}
	dst.Set(m)
	return nil
}

func decodeKey(text string, rtype reflect.Type, path string) (reflect.Value, error) {
	if isTextLeaf(rtype) {
		key := reflect.New(rtype)
		if err := key.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text)); err != nil {
			return reflect.Value{}, gerrors.NewErrMemberCoercion(path, "invalid map key", err)
		}
		return key.Elem(), nil
	}

	key := reflect.New(rtype).Elem()
	switch rtype.Kind() {
	case reflect.String:
		key.SetString(text)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(text, 10, rtype.Bits())
		if err != nil {
			return reflect.Value{}, gerrors.NewErrMemberCoercion(path, "invalid map key", err)
		}
		key.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u, err := strconv.ParseUint(text, 10, rtype.Bits())
		if err != nil {
			return reflect.Value{}, gerrors.NewErrMemberCoercion(path, "invalid map key", err)
		}
		key.SetUint(u)
	default:
		return reflect.Value{}, gerrors.NewErrMemberCoercion(path, "cannot decode map key into "+rtype.String(), gerrors.ErrUnsupportedType)
	}
	return key, nil
}

func (d *decoder) decodeTime(node *encoded.Node, dst reflect.Value, path string) error {
	if node.Kind != encoded.String {
		return mismatch(node, dst.Type(), path)
	}

	t, err := time.Parse(time.RFC3339Nano, node.Text)
	if err != nil {
		return gerrors.NewErrMemberCoercion(path, "invalid date and time", err)
	}
	dst.Set(reflect.ValueOf(t))
	return nil
}

func (d *decoder) decodeText(node *encoded.Node, dst reflect.Value, path string) error {
	if node.Kind != encoded.String {
		return mismatch(node, dst.Type(), path)
	}

	if err := dst.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(node.Text)); err != nil {
		return gerrors.NewErrMemberCoercion(path, "invalid text for "+dst.Type().String(), err)
	}
	return nil
}

func decodeFloat(node *encoded.Node, bits int, path string) (float64, error) {
	switch node.Kind {
	case encoded.Number:
		f, err := strconv.ParseFloat(node.Text, bits)
		if err != nil {
			return 0, gerrors.NewErrMemberCoercion(path, fmt.Sprintf("number=(%s) does not fit float%d", node.Text, bits), err)
		}
		return f, nil
	case encoded.String:
		switch node.Text {
		case "NaN":
			return math.NaN(), nil
		case "+Inf":
			return math.Inf(1), nil
		case "-Inf":
			return math.Inf(-1), nil
		}
	}
	return 0, gerrors.NewErrMemberCoercion(path, fmt.Sprintf("cannot decode %s into float%d", node.Kind, bits), nil)
}

func mismatch(node *encoded.Node, rtype reflect.Type, path string) error {
	return gerrors.NewErrMemberCoercion(path, fmt.Sprintf("cannot decode %s into %s", node.Kind, rtype), nil)
}
