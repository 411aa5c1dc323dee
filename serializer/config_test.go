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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/objcodec/internal/members"
	"github.com/tochemey/objcodec/log"
)

func TestConfig(t *testing.T) {
	t.Run("With defaults", func(t *testing.T) {
		config := DefaultConfig()
		require.NoError(t, config.Validate())
		assert.Equal(t, DefaultMaxDepth, config.MaxDepth())
		assert.Equal(t, members.DefaultTagKey, config.TagKey())
		assert.Equal(t, log.DiscardLogger, config.Logger())
		assert.Nil(t, config.MeterProvider())
	})

	t.Run("With options", func(t *testing.T) {
		config := NewConfig(WithMaxDepth(8), WithTagKey("wire"), WithNamedType("geo.point", point{}))
		require.NoError(t, config.Validate())
		assert.Equal(t, 8, config.MaxDepth())
		assert.Equal(t, "wire", config.TagKey())
	})

	t.Run("With all violations reported", func(t *testing.T) {
		config := NewConfig(WithMaxDepth(-1), WithTagKey("a:b"))
		err := config.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "maxDepth must be greater than 0")
		assert.Contains(t, err.Error(), "tagKey must be a non-empty struct tag key")
	})
}
