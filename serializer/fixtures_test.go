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
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const testPkg = "github.com/tochemey/objcodec/serializer"

type shape interface {
	Area() float64
}

type circle struct {
	Radius float64
}

func (c circle) Area() float64 { return math.Pi * c.Radius * c.Radius }

type rect struct {
	W, H float64
}

func (r *rect) Area() float64 { return r.W * r.H }

type drawing struct {
	Title   string
	Shapes  []shape
	Main    shape
	Meta    map[string]any
	Created time.Time
	owner   string
}

// point exposes Y through a getter only
type point struct {
	X int
	y int
}

func newPoint(x, y int) point {
	return point{X: x, y: y}
}

func (p point) Y() int { return p.y }

var errNegativeBalance = errors.New("balance cannot be negative")

type account struct {
	id      uuid.UUID
	balance float64
	History []entry
}

func (a *account) ID() uuid.UUID    { return a.id }
func (a *account) Balance() float64 { return a.balance }

func (a *account) SetBalance(balance float64) error {
	if balance < 0 {
		return errNegativeBalance
	}
	a.balance = balance
	return nil
}

type entry struct {
	At     time.Time
	Amount float64
	Note   *string
}

type node struct {
	Value int
	Next  *node
}

type numbers struct {
	I8    int8
	U64   uint64
	F32   float32
	F64   float64
	C     complex128
	Big   int64
	Bytes []byte
	Arr   [3]int
	Dur   time.Duration
	Inf   float64
	NaN   float64
}

type keyed struct {
	ByInt  map[int]string
	ByUUID map[uuid.UUID]int
	Empty  map[string]int
	Nil    map[string]int
}

type audit struct {
	createdBy string
	Created   time.Time
}

type document struct {
	*audit
	Name  string
	Stamp *timestamppb.Timestamp
}

type renamed struct {
	Visible string `objcodec:"visible"`
	Hidden  string `objcodec:"-"`
	Custom  string `wire:"c"`
}

type withFunc struct {
	Name     string
	Callback func()
}

func linkedList(length int) *node {
	var head *node
	for i := length; i > 0; i-- {
		head = &node{Value: i, Next: head}
	}
	return head
}

// annotated holds maps whose keys look like type envelopes
type annotated struct {
	Labels map[string]string
	Extra  map[string]any
}

type event struct {
	Name string
	At   time.Time
}
