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

package members

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"
)

var (
	// ErrNotReadable is returned when reading a slot without read access
	ErrNotReadable = errors.New("slot is not readable")
	// ErrNotWritable is returned when writing a slot without write access
	ErrNotWritable = errors.New("slot is not writable")
)

// Get reads the slot from v, an addressable value of the descriptor type.
// It returns an invalid reflect.Value when the storage sits behind a nil
// embedded pointer. The returned value is always safe to call Interface on.
func (s *Slot) Get(v reflect.Value) (value reflect.Value, err error) {
	if !s.Readable {
		return reflect.Value{}, ErrNotReadable
	}

	if s.index != nil {
		field, ok := fieldByIndex(v, s.index, false)
		if !ok {
			return reflect.Value{}, nil
		}
		if s.getter < 0 {
			return Exported(field), nil
		}
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("getter %s panicked: %v", s.goName, r)
		}
	}()

	return v.Addr().Method(s.getter).Call(nil)[0], nil
}

// Set writes x into the slot of v, an addressable value of the descriptor
// type. x must be assignable to the slot type. Nil embedded pointers on the
// way to the storage are allocated.
func (s *Slot) Set(v reflect.Value, x reflect.Value) (err error) {
	if !s.Writable {
		return ErrNotWritable
	}

	var field reflect.Value
	if s.index != nil {
		field, _ = fieldByIndex(v, s.index, true)
	}

	if s.setter < 0 {
		Exported(field).Set(x)
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("setter Set%s panicked: %v", s.goName, r)
		}
	}()

	out := v.Addr().Method(s.setter).Call([]reflect.Value{x})
	if s.setterErr && !out[0].IsNil() {
		return out[0].Interface().(error)
	}
	return nil
}

// Exported returns a view of v that can be read with Interface and written
// with Set even when v was reached through unexported fields. v must be
// addressable when it carries the read-only flag.
func Exported(v reflect.Value) reflect.Value {
	if v.CanInterface() {
		return v
	}
	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
}

// fieldByIndex walks the field path from v. With alloc set, nil embedded
// pointers are allocated; otherwise ok is false when one is met.
func fieldByIndex(v reflect.Value, index []int, alloc bool) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				if !alloc {
					return reflect.Value{}, false
				}
				Exported(v).Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, true
}
