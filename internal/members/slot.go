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
)

// SlotKind tells how a slot stores its state
type SlotKind int

const (
	// FieldSlot is a struct field, exported or not
	FieldSlot SlotKind = iota
	// AccessorSlot is a getter/setter method pair, possibly backed by an unexported field
	AccessorSlot
)

// String returns the kind name
func (k SlotKind) String() string {
	switch k {
	case FieldSlot:
		return "field"
	case AccessorSlot:
		return "accessor"
	default:
		return "unknown"
	}
}

// ExclusionReason tells why a member does not take part in encoding
type ExclusionReason string

const (
	// ExcludedBlank is a blank "_" field
	ExcludedBlank ExclusionReason = "blank"
	// ExcludedBacking is the storage of an accessor slot
	ExcludedBacking ExclusionReason = "backing"
	// ExcludedByTag is a field tagged with "-"
	ExcludedByTag ExclusionReason = "tag"
	// ExcludedKind is a func, chan or unsafe.Pointer field
	ExcludedKind ExclusionReason = "kind"
	// ExcludedAmbiguous is a promoted field whose name clashes at the same depth
	ExcludedAmbiguous ExclusionReason = "ambiguous"
)

// Slot is one unit of state of a struct type.
type Slot struct {
	// Name is the member name used on the wire, unique within the descriptor
	Name string
	// Kind is either FieldSlot or AccessorSlot
	Kind SlotKind
	// Type is the Go type of the stored value
	Type reflect.Type
	// Readable is true when encoding can read the slot
	Readable bool
	// Writable is true when decoding can populate the slot
	Writable bool
	// Synthesized is true for members that are not state of their own: blank
	// fields and the backing field of an accessor slot
	Synthesized bool
	// Reason is set on excluded members
	Reason ExclusionReason

	// index is the field path of a field slot, or of the backing field of an
	// accessor slot. Nil for accessors without storage.
	index []int
	// getter and setter are indexes in the method set of the pointer type, -1 when absent
	getter int
	setter int
	// setterErr is true when the setter returns an error
	setterErr bool
	// depth is the embedding depth of the field
	depth int
	// tagged is true when the name comes from a struct tag
	tagged bool
	// goName is the Go identifier of the field or accessor
	goName string
}

// HasGetter reports whether reads go through an exported getter
func (s *Slot) HasGetter() bool {
	return s.getter >= 0
}

// HasSetter reports whether writes go through an exported setter
func (s *Slot) HasSetter() bool {
	return s.setter >= 0
}

// HasStorage reports whether the slot is backed by a struct field
func (s *Slot) HasStorage() bool {
	return s.index != nil
}

// Descriptor is the access policy of a struct type.
// It is immutable once built and safe to share between goroutines.
type Descriptor struct {
	// Type is the struct type described
	Type reflect.Type
	// Slots are the members taking part in encoding and decoding, in declaration order
	Slots []*Slot
	// Excluded are the members left out, kept for introspection
	Excluded []*Slot

	byName map[string]*Slot
}

// Lookup returns the slot with the given wire name
func (d *Descriptor) Lookup(name string) (*Slot, bool) {
	slot, ok := d.byName[name]
	return slot, ok
}

// Names returns the wire names of the slots, in order
func (d *Descriptor) Names() []string {
	names := make([]string, len(d.Slots))
	for i, slot := range d.Slots {
		names[i] = slot.Name
	}
	return names
}
