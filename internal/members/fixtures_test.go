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
	"time"
)

// point exposes Y read-only; the decoder writes it through its backing field
type point struct {
	X int
	y int
}

func (p point) Y() int { return p.y }

type private struct {
	a int
	B string
}

type noisy struct {
	_       [4]byte
	Kept    int
	Skipped int    `objcodec:"-"`
	Renamed string `objcodec:"renamed,omitempty"`
	Dollar  string `objcodec:"$type"`
	fn      func()
	ch      chan int
}

// temperature exposes a computed accessor pair without storage of its own
type temperature struct {
	kelvin float64
}

func (t *temperature) Celsius() float64     { return t.kelvin - 273.15 }
func (t *temperature) SetCelsius(c float64) { t.kelvin = c + 273.15 }

// counter has a setter and no getter
type counter struct {
	count int
}

func (c *counter) SetCount(n int) { c.count = n * 10 }

type shape struct {
	W, H int
}

func (s shape) Area() int { return s.W * s.H }

type base struct {
	id      string
	Created time.Time
}

func (b *base) ID() string { return b.id }

type user struct {
	base
	Name string
}

type withPointer struct {
	*base
	Name string
}

type left struct{ V int }
type right struct{ V int }

type ambiguous struct {
	left
	right
}

type shadowed struct {
	left
	V string
}

type taggedTie struct {
	left
	Other struct {
		V int `objcodec:"V"`
	}
	right `objcodec:"tagged"`
}

var errNegative = errors.New("negative age")

type person struct {
	age int
}

func (p *person) Age() int { return p.age }

func (p *person) SetAge(age int) error {
	if age < 0 {
		return errNegative
	}
	p.age = age
	return nil
}

// mismatched has a setter whose argument does not match the getter
type mismatched struct {
	size int
}

func (m *mismatched) Size() int         { return m.size }
func (m *mismatched) SetSize(s float64) { m.size = int(s) }

type renamedBacking struct {
	label string `objcodec:"title"`
}

func (r renamedBacking) Label() string { return r.label }

type recursive struct {
	*recursive
	Value int
}
