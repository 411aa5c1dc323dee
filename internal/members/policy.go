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
	"reflect"
	"strconv"

	"go.uber.org/atomic"
	"golang.org/x/sync/singleflight"

	"github.com/tochemey/objcodec/internal/xsync"
	"github.com/tochemey/objcodec/log"
)

// DefaultTagKey is the struct tag read by the access policy
const DefaultTagKey = "objcodec"

// Policy caches the descriptors of the struct types it is asked about.
//
// The cache is append-only. The first caller for a type computes and
// publishes its descriptor; concurrent callers for the same type share that
// computation and every caller gets the same *Descriptor.
type Policy struct {
	tagKey      string
	logger      log.Logger
	descriptors *xsync.Map[reflect.Type, *Descriptor]
	inflight    singleflight.Group
	computed    *atomic.Int64
}

// NewPolicy creates a Policy reading tagKey struct tags.
// An empty tagKey falls back to DefaultTagKey and a nil logger to log.DiscardLogger.
func NewPolicy(tagKey string, logger log.Logger) *Policy {
	if tagKey == "" {
		tagKey = DefaultTagKey
	}

	if logger == nil {
		logger = log.DiscardLogger
	}

	return &Policy{
		tagKey:      tagKey,
		logger:      logger,
		descriptors: xsync.NewMap[reflect.Type, *Descriptor](),
		computed:    atomic.NewInt64(0),
	}
}

// Describe returns the descriptor of rtype, computing it on first use
func (p *Policy) Describe(rtype reflect.Type) *Descriptor {
	if desc, ok := p.descriptors.Get(rtype); ok {
		return desc
	}

	result, _, _ := p.inflight.Do(flightKey(rtype), func() (any, error) {
		if desc, ok := p.descriptors.Get(rtype); ok {
			return desc, nil
		}

		desc := Discover(rtype, p.tagKey)
		actual, loaded := p.descriptors.LoadOrStore(rtype, desc)
		if !loaded {
			p.computed.Inc()
			if p.logger.Enabled(log.DebugLevel) {
				p.logger.With("type", rtype.String(), "slots", len(desc.Slots), "excluded", len(desc.Excluded)).
					Debug("access policy computed")
			}
		}
		return actual, nil
	})

	return result.(*Descriptor)
}

// TagKey returns the struct tag read by the policy
func (p *Policy) TagKey() string {
	return p.tagKey
}

// Computed returns the number of descriptors computed so far
func (p *Policy) Computed() int64 {
	return p.computed.Load()
}

// Len returns the number of cached descriptors
func (p *Policy) Len() int {
	return p.descriptors.Len()
}

// flightKey identifies a type uniquely; type names are not unique across
// packages or function scopes.
func flightKey(rtype reflect.Type) string {
	return strconv.FormatUint(uint64(reflect.ValueOf(rtype).Pointer()), 16)
}
