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
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStruct struct {
	ID int
}

type celsius float64

const testPkg = "github.com/tochemey/objcodec/internal/types"

func TestRegistry(t *testing.T) {
	t.Run("With new instance", func(t *testing.T) {
		var p any = NewRegistry()
		_, ok := p.(Registry)
		assert.True(t, ok)
	})

	t.Run("With registration", func(t *testing.T) {
		registry := NewRegistry()
		obj := new(testStruct)
		registry.Register(obj)

		rtype, ok := registry.TypeOf(testPkg + ".testStruct")
		require.True(t, ok)
		assert.Equal(t, reflect.TypeOf(testStruct{}), rtype)
		assert.True(t, registry.Exists(obj))
		assert.True(t, registry.Exists(testStruct{}))
		assert.Equal(t, []string{testPkg + ".testStruct"}, registry.Names())

		registry.Deregister(obj)
		assert.Empty(t, registry.Names())
		assert.False(t, registry.Exists(obj))
	})

	t.Run("With non-struct named type", func(t *testing.T) {
		registry := NewRegistry()
		registry.Register(celsius(0))
		rtype, ok := registry.TypeOf(testPkg + ".celsius")
		require.True(t, ok)
		assert.Equal(t, reflect.Float64, rtype.Kind())
	})

	t.Run("With pointer tags", func(t *testing.T) {
		registry := NewRegistry()
		registry.Register(new(testStruct))
		rtype, ok := registry.TypeOf("*" + testPkg + ".testStruct")
		require.True(t, ok)
		assert.Equal(t, reflect.TypeOf(&testStruct{}), rtype)
		assert.Equal(t, "*"+testPkg+".testStruct", registry.NameOf(rtype))

		rtype, ok = registry.TypeOf("**int")
		require.True(t, ok)
		assert.Equal(t, reflect.TypeOf((**int)(nil)), rtype)
	})

	t.Run("With builtins", func(t *testing.T) {
		registry := NewRegistry()
		for name, expected := range map[string]reflect.Type{
			"int":                     reflect.TypeOf(0),
			"string":                  reflect.TypeOf(""),
			"float64":                 reflect.TypeOf(0.0),
			"[]uint8":                 reflect.TypeOf([]byte(nil)),
			"[]interface {}":          reflect.TypeOf([]any(nil)),
			"map[string]interface {}": reflect.TypeOf(map[string]any(nil)),
			"time.Time":               reflect.TypeOf(time.Time{}),
			"time.Duration":           reflect.TypeOf(time.Duration(0)),
		} {
			rtype, ok := registry.TypeOf(name)
			require.True(t, ok, name)
			assert.Equal(t, expected, rtype, name)
			assert.Equal(t, name, registry.NameOf(rtype))
		}
		assert.Empty(t, registry.Names())
	})

	t.Run("With composite names", func(t *testing.T) {
		registry := NewRegistry()
		registry.Register(new(testStruct))
		for _, expected := range []reflect.Type{
			reflect.TypeOf([]testStruct{}),
			reflect.TypeOf([]*testStruct{}),
			reflect.TypeOf([2][]int{}),
			reflect.TypeOf(map[string][]testStruct{}),
			reflect.TypeOf(map[[2]int]map[string]any{}),
			reflect.TypeOf(map[testStruct]bool{}),
		} {
			name := registry.NameOf(expected)
			rtype, ok := registry.TypeOf(name)
			require.True(t, ok, name)
			assert.Equal(t, expected, rtype, name)
		}

		for _, name := range []string{"[]geo.Unknown", "[x]int", "map[string", "map[[]int]string", "[2"} {
			_, ok := registry.TypeOf(name)
			assert.False(t, ok, name)
		}
	})

	t.Run("With custom name for a composite", func(t *testing.T) {
		registry := NewRegistry()
		require.NoError(t, registry.RegisterName("ints", []int{}))
		assert.Equal(t, "ints", registry.NameOf(reflect.TypeOf([]int{})))
		assert.Equal(t, "[]ints", registry.NameOf(reflect.TypeOf([][]int{})))
		rtype, ok := registry.TypeOf("[]ints")
		require.True(t, ok)
		assert.Equal(t, reflect.TypeOf([][]int{}), rtype)
	})

	t.Run("With unknown name", func(t *testing.T) {
		_, ok := NewRegistry().TypeOf("geo.Unknown")
		assert.False(t, ok)
	})

	t.Run("With custom name", func(t *testing.T) {
		registry := NewRegistry()
		require.NoError(t, registry.RegisterName("test.struct", new(testStruct)))

		rtype, ok := registry.TypeOf("test.struct")
		require.True(t, ok)
		assert.Equal(t, "test.struct", registry.NameOf(rtype))
		assert.Equal(t, "*test.struct", registry.NameOf(reflect.PointerTo(rtype)))

		// the default tag is not resolvable once a custom one is used
		registry.Register(new(testStruct))
		_, ok = registry.TypeOf("test.struct")
		assert.False(t, ok)
		_, ok = registry.TypeOf(testPkg + ".testStruct")
		assert.True(t, ok)
	})

	t.Run("With invalid custom names", func(t *testing.T) {
		registry := NewRegistry()
		require.Error(t, registry.RegisterName("", new(testStruct)))
		require.Error(t, registry.RegisterName("$type", new(testStruct)))
		require.Error(t, registry.RegisterName("*ptr", new(testStruct)))
		require.Error(t, registry.RegisterName("nil", nil))
	})

	t.Run("With conflicting custom names", func(t *testing.T) {
		registry := NewRegistry()
		require.NoError(t, registry.RegisterName("shared", new(testStruct)))
		require.NoError(t, registry.RegisterName("shared", new(testStruct)))
		require.Error(t, registry.RegisterName("shared", celsius(0)))
	})
}

func TestName(t *testing.T) {
	assert.Equal(t, testPkg+".testStruct", Name(reflect.TypeOf(testStruct{})))
	assert.Equal(t, "*"+testPkg+".testStruct", Name(reflect.TypeOf(&testStruct{})))
	assert.Equal(t, "int", Name(reflect.TypeOf(0)))
	assert.Equal(t, "[]string", Name(reflect.TypeOf([]string{})))
	assert.Equal(t, "[]*"+testPkg+".testStruct", Name(reflect.TypeOf([]*testStruct{})))
	assert.Equal(t, "[3]int", Name(reflect.TypeOf([3]int{})))
	assert.Equal(t, "map[string]"+testPkg+".testStruct", Name(reflect.TypeOf(map[string]testStruct{})))
	assert.Equal(t, "interface {}", Name(reflect.TypeOf((*any)(nil)).Elem()))
	assert.Equal(t, "time.Time", Name(reflect.TypeOf(time.Time{})))
}
