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

package types

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tochemey/objcodec/internal/validation"
)

// Registry maps type tags to Go types and back.
//
// Types are registered either under their default tag (see Name) or under a
// custom tag. Predeclared types, time.Time and time.Duration are always
// resolvable and do not need to be registered. Pointer, slice, array and map
// tags resolve to composites of their resolvable element types.
type Registry interface {
	// Register records the type of each value under its default tag.
	// A pointer value registers its element type, so new(T) registers T.
	Register(values ...any)
	// RegisterName records the type of v under the given tag.
	RegisterName(name string, v any) error
	// Deregister removes the type of v from the registry
	Deregister(v any)
	// Exists return true when the type of v is in the registry
	Exists(v any) bool
	// TypeOf returns the type registered under the given tag
	TypeOf(name string) (reflect.Type, bool)
	// NameOf returns the tag used on the wire for the given type
	NameOf(rtype reflect.Type) string
	// Names returns the registered tags, sorted
	Names() []string
}

type registry struct {
	mu    *sync.RWMutex
	types map[string]reflect.Type
	names map[reflect.Type]string
}

var _ Registry = (*registry)(nil)

// builtins are resolvable without registration
var builtins = func() map[string]reflect.Type {
	out := make(map[string]reflect.Type)
	for _, v := range []any{
		false, "", int(0), int8(0), int16(0), int32(0), int64(0),
		uint(0), uint8(0), uint16(0), uint32(0), uint64(0), uintptr(0),
		float32(0), float64(0), complex64(0), complex128(0),
		time.Time{}, time.Duration(0),
		(*any)(nil), (*error)(nil),
	} {
		rtype := reflect.TypeOf(v)
		if rtype.Kind() == reflect.Pointer {
			rtype = rtype.Elem()
		}
		out[Name(rtype)] = rtype
	}
	return out
}()

// NewRegistry creates a new types registry
func NewRegistry() Registry {
	return &registry{
		mu:    &sync.RWMutex{},
		types: make(map[string]reflect.Type),
		names: make(map[reflect.Type]string),
	}
}

// Register records the type of each value under its default tag
func (r *registry) Register(values ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range values {
		rtype := reflectType(v)
		if rtype == nil {
			continue
		}
		r.store(Name(rtype), rtype)
	}
}

// RegisterName records the type of v under the given tag
func (r *registry) RegisterName(name string, v any) error {
	if err := validation.NewTypeNameValidator(name).Validate(); err != nil {
		return err
	}

	if strings.HasPrefix(name, "*") {
		return fmt.Errorf("type name=(%s) must not start with '*'", name)
	}

	rtype := reflectType(v)
	if rtype == nil {
		return fmt.Errorf("type name=(%s) is registered with a nil value", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.types[name]; ok && existing != rtype {
		return fmt.Errorf("type name=(%s) is already registered for %s", name, existing.String())
	}
	r.store(name, rtype)
	return nil
}

// store must be called with the write lock held. A type registered twice
// keeps only its latest tag.
func (r *registry) store(name string, rtype reflect.Type) {
	if previous, ok := r.names[rtype]; ok && previous != name {
		delete(r.types, previous)
	}
	r.types[name] = rtype
	r.names[rtype] = name
}

// Deregister removes the registered type from the registry
func (r *registry) Deregister(v any) {
	rtype := reflectType(v)
	r.mu.Lock()
	if name, ok := r.names[rtype]; ok {
		delete(r.types, name)
		delete(r.names, rtype)
	}
	r.mu.Unlock()
}

// Exists return true when a given type is in the registry
func (r *registry) Exists(v any) bool {
	rtype := reflectType(v)
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.names[rtype]
	return ok
}

// TypeOf returns the type registered under name.
// Pointer, slice, array and map tags resolve when their element tags do.
func (r *registry) TypeOf(name string) (reflect.Type, bool) {
	return r.resolve(strings.TrimSpace(name))
}

func (r *registry) resolve(name string) (reflect.Type, bool) {
	switch {
	case strings.HasPrefix(name, "*"):
		elem, ok := r.resolve(name[1:])
		if !ok {
			return nil, false
		}
		return reflect.PointerTo(elem), true
	case strings.HasPrefix(name, "[]"):
		elem, ok := r.resolve(name[2:])
		if !ok {
			return nil, false
		}
		return reflect.SliceOf(elem), true
	case strings.HasPrefix(name, "["):
		size, rest, ok := strings.Cut(name[1:], "]")
		if !ok {
			return nil, false
		}
		length, err := strconv.Atoi(size)
		if err != nil || length < 0 {
			return nil, false
		}
		elem, ok := r.resolve(rest)
		if !ok {
			return nil, false
		}
		return reflect.ArrayOf(length, elem), true
	case strings.HasPrefix(name, "map["):
		end := closingBracket(name, len("map"))
		if end < 0 {
			return nil, false
		}
		key, ok := r.resolve(name[len("map["):end])
		if !ok || !key.Comparable() {
			return nil, false
		}
		elem, ok := r.resolve(name[end+1:])
		if !ok {
			return nil, false
		}
		return reflect.MapOf(key, elem), true
	}

	r.mu.RLock()
	rtype, ok := r.types[name]
	r.mu.RUnlock()
	if ok {
		return rtype, true
	}

	rtype, ok = builtins[name]
	return rtype, ok
}

// closingBracket returns the index of the bracket closing the one at open
func closingBracket(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// NameOf returns the wire tag of rtype: its custom tag when registered under
// one, its default tag otherwise.
func (r *registry) NameOf(rtype reflect.Type) string {
	r.mu.RLock()
	name, ok := r.names[rtype]
	r.mu.RUnlock()
	if ok {
		return name
	}

	if rtype.Name() != "" {
		return Name(rtype)
	}

	switch rtype.Kind() {
	case reflect.Pointer:
		return "*" + r.NameOf(rtype.Elem())
	case reflect.Slice:
		return "[]" + r.NameOf(rtype.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(rtype.Len()) + "]" + r.NameOf(rtype.Elem())
	case reflect.Map:
		return "map[" + r.NameOf(rtype.Key()) + "]" + r.NameOf(rtype.Elem())
	default:
		return Name(rtype)
	}
}

// Names returns the registered tags, sorted
func (r *registry) Names() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.types))
	for name := range r.types {
		out = append(out, name)
	}
	r.mu.RUnlock()
	sort.Strings(out)
	return out
}

// Name returns the default tag of a type: the package path qualified name for
// named types, the predeclared name for builtin types. Pointers, slices,
// arrays and maps are spelled from the tags of their elements.
func Name(rtype reflect.Type) string {
	if rtype.Name() != "" {
		if rtype.PkgPath() != "" {
			return rtype.PkgPath() + "." + rtype.Name()
		}
		return rtype.Name()
	}

	switch rtype.Kind() {
	case reflect.Pointer:
		return "*" + Name(rtype.Elem())
	case reflect.Slice:
		return "[]" + Name(rtype.Elem())
	case reflect.Array:
		return "[" + strconv.Itoa(rtype.Len()) + "]" + Name(rtype.Elem())
	case reflect.Map:
		return "map[" + Name(rtype.Key()) + "]" + Name(rtype.Elem())
	default:
		return rtype.String()
	}
}

// reflectType returns the type to register for v
func reflectType(v any) reflect.Type {
	switch x := v.(type) {
	case nil:
		return nil
	case reflect.Type:
		return x
	default:
		rtype := reflect.TypeOf(v)
		if rtype.Kind() == reflect.Pointer {
			return rtype.Elem()
		}
		return rtype
	}
}
