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

package xsync

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	sm := NewMap[string, int]()

	sm.Set("a", 1)
	sm.Set("b", 2)

	val, ok := sm.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, val)

	_, ok = sm.Get("c")
	require.False(t, ok)
	assert.Equal(t, 2, sm.Len())

	keys := sm.Keys()
	sort.Strings(keys)
	assert.Equal(t, []string{"a", "b"}, keys)

	sum := 0
	sm.Range(func(_ string, v int) { sum += v })
	assert.Equal(t, 3, sum)

	sm.Delete("a")
	_, ok = sm.Get("a")
	require.False(t, ok)
	assert.Equal(t, 1, sm.Len())
}

func TestMapLoadOrStore(t *testing.T) {
	sm := NewMap[string, int]()

	actual, loaded := sm.LoadOrStore("k", 1)
	require.False(t, loaded)
	assert.Equal(t, 1, actual)

	actual, loaded = sm.LoadOrStore("k", 2)
	require.True(t, loaded)
	assert.Equal(t, 1, actual)

	t.Run("concurrent callers agree on the stored value", func(t *testing.T) {
		sm := NewMap[int, int]()
		const workers = 32
		results := make([]int, workers)

		var wg sync.WaitGroup
		wg.Add(workers)
		for i := range workers {
			go func(i int) {
				defer wg.Done()
				results[i], _ = sm.LoadOrStore(0, i)
			}(i)
		}
		wg.Wait()

		for _, r := range results {
			assert.Equal(t, results[0], r)
		}
		assert.Equal(t, 1, sm.Len())
	})
}
