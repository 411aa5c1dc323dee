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
	"go/token"
	"reflect"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Discover computes the access policy of a struct type. tagKey is the struct
// tag consulted for renames ("name") and exclusions ("-").
//
// Every field takes part, exported or not, including fields promoted from
// embedded structs. Exported methods of the pointer type add accessor slots:
// N() V is a getter and SetN(V) a setter. An accessor slot exists for a getter
// and setter pair, or when the getter or setter is backed by an unexported
// field named N case-insensitively. The backing field is the storage of the
// accessor and is excluded from the slots; it is used to read an accessor
// without getter and to write an accessor without setter.
//
// Non-struct types yield an empty descriptor.
func Discover(rtype reflect.Type, tagKey string) *Descriptor {
	desc := &Descriptor{
		Type:   rtype,
		byName: make(map[string]*Slot),
	}

	if rtype.Kind() != reflect.Struct {
		return desc
	}

	fields, excluded := collectFields(rtype, tagKey)
	accessors := collectAccessors(rtype)

	// bind accessors to their backing fields
	backed := make(map[*Slot]*Slot, len(accessors))
	for _, accessor := range accessors {
		if backing := findBacking(fields, accessor); backing != nil {
			accessor.index = backing.index
			accessor.depth = backing.depth
			if backing.tagged {
				accessor.Name = backing.Name
				accessor.tagged = true
			}
			backed[backing] = accessor
		}
	}

	taken := make(map[string]bool, len(fields))
	for _, field := range fields {
		if _, ok := backed[field]; !ok {
			taken[field.Name] = true
		}
	}

	for _, field := range fields {
		accessor, ok := backed[field]
		if !ok {
			desc.add(field)
			continue
		}

		field.Readable, field.Writable = false, false
		field.Synthesized = true
		field.Reason = ExcludedBacking
		excluded = append(excluded, field)

		if taken[accessor.Name] {
			continue
		}
		finishAccessor(accessor)
		desc.add(accessor)
		taken[accessor.Name] = true
	}

	// accessors without storage come last, in method name order
	for _, accessor := range accessors {
		if accessor.index != nil || accessor.getter < 0 || accessor.setter < 0 || taken[accessor.Name] {
			continue
		}
		finishAccessor(accessor)
		desc.add(accessor)
		taken[accessor.Name] = true
	}

	desc.Excluded = excluded
	return desc
}

func (d *Descriptor) add(slot *Slot) {
	d.Slots = append(d.Slots, slot)
	d.byName[slot.Name] = slot
}

// finishAccessor resolves the access flags: the getter or the backing field
// makes the slot readable, the setter or the backing field makes it writable.
func finishAccessor(slot *Slot) {
	slot.Readable = slot.getter >= 0 || slot.index != nil
	slot.Writable = slot.setter >= 0 || slot.index != nil
}

type embedded struct {
	typ   reflect.Type
	index []int
	depth int
}

// collectFields walks the struct and its embedded structs breadth first.
// Name clashes between promoted fields are settled like Go selectors: the
// shallowest field wins, a tie is broken by a tag and otherwise drops the name.
func collectFields(root reflect.Type, tagKey string) (fields []*Slot, excluded []*Slot) {
	var candidates []*Slot
	visited := map[reflect.Type]int{}
	next := []embedded{{typ: root}}

	for len(next) > 0 {
		current := next
		next = nil
		for _, e := range current {
			if depth, ok := visited[e.typ]; ok && depth < e.depth {
				continue
			}
			visited[e.typ] = e.depth

			for i := range e.typ.NumField() {
				sf := e.typ.Field(i)
				index := make([]int, len(e.index)+1)
				copy(index, e.index)
				index[len(e.index)] = i

				name, tagged, skip := parseTag(sf, tagKey)
				slot := &Slot{
					Name:   name,
					Kind:   FieldSlot,
					Type:   sf.Type,
					index:  index,
					getter: -1,
					setter: -1,
					depth:  e.depth,
					tagged: tagged,
					goName: sf.Name,
				}

				switch {
				case sf.Name == "_":
					slot.Synthesized = true
					slot.Reason = ExcludedBlank
					excluded = append(excluded, slot)
					continue
				case skip:
					slot.Reason = ExcludedByTag
					excluded = append(excluded, slot)
					continue
				}

				if sf.Anonymous && !tagged {
					ft := sf.Type
					if ft.Kind() == reflect.Pointer {
						ft = ft.Elem()
					}
					if ft.Kind() == reflect.Struct {
						next = append(next, embedded{typ: ft, index: index, depth: e.depth + 1})
						continue
					}
				}

				if isNonState(sf.Type) {
					slot.Reason = ExcludedKind
					excluded = append(excluded, slot)
					continue
				}

				slot.Readable, slot.Writable = true, true
				candidates = append(candidates, slot)
			}
		}
	}

	groups := lo.GroupBy(candidates, func(slot *Slot) string { return slot.Name })
	for _, slot := range candidates {
		if dominant(groups[slot.Name]) == slot {
			fields = append(fields, slot)
			continue
		}
		slot.Readable, slot.Writable = false, false
		slot.Reason = ExcludedAmbiguous
		excluded = append(excluded, slot)
	}

	slices.SortStableFunc(fields, func(a, b *Slot) int {
		return slices.Compare(a.index, b.index)
	})
	return fields, excluded
}

// dominant returns the field that owns a name, or nil when the name is ambiguous
func dominant(group []*Slot) *Slot {
	if len(group) == 1 {
		return group[0]
	}

	minDepth := lo.MinBy(group, func(a, b *Slot) bool { return a.depth < b.depth }).depth
	shallow := lo.Filter(group, func(slot *Slot, _ int) bool { return slot.depth == minDepth })
	if len(shallow) == 1 {
		return shallow[0]
	}

	tagged := lo.Filter(shallow, func(slot *Slot, _ int) bool { return slot.tagged })
	if len(tagged) == 1 {
		return tagged[0]
	}
	return nil
}

// parseTag returns the wire name of a field. Tag names starting with "$" are
// reserved for envelope keys and ignored.
func parseTag(sf reflect.StructField, tagKey string) (name string, tagged bool, skip bool) {
	tag, ok := sf.Tag.Lookup(tagKey)
	if !ok {
		return sf.Name, false, false
	}

	if tag == "-" {
		return sf.Name, false, true
	}

	name, _, _ = strings.Cut(tag, ",")
	if name == "" || strings.HasPrefix(name, "$") {
		return sf.Name, false, false
	}
	return name, true, false
}

func isNonState(rtype reflect.Type) bool {
	switch rtype.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

// collectAccessors returns the accessor candidates of the pointer method set
// in method name order.
func collectAccessors(rtype reflect.Type) []*Slot {
	ptr := reflect.PointerTo(rtype)
	byName := make(map[string]*Slot)
	var order []string

	get := func(name string) *Slot {
		if slot, ok := byName[name]; ok {
			return slot
		}
		slot := &Slot{
			Name:   name,
			Kind:   AccessorSlot,
			getter: -1,
			setter: -1,
			goName: name,
		}
		byName[name] = slot
		order = append(order, name)
		return slot
	}

	for i := range ptr.NumMethod() {
		method := ptr.Method(i)
		mtype := method.Type

		if name, ok := setterName(method); ok {
			slot := get(name)
			slot.setter = i
			slot.setterErr = mtype.NumOut() == 1
			if slot.Type == nil {
				slot.Type = mtype.In(1)
			}
			continue
		}

		if mtype.NumIn() == 1 && mtype.NumOut() == 1 && mtype.Out(0) != errorType && !isNonState(mtype.Out(0)) {
			slot := get(method.Name)
			slot.getter = i
			slot.Type = mtype.Out(0)
		}
	}

	accessors := make([]*Slot, 0, len(order))
	for _, name := range order {
		slot := byName[name]
		// a setter taking another type than the getter returns is not its pair
		if slot.getter >= 0 && slot.setter >= 0 && ptr.Method(slot.setter).Type.In(1) != slot.Type {
			slot.setter = -1
			slot.setterErr = false
		}
		accessors = append(accessors, slot)
	}
	return accessors
}

// setterName returns N for a method shaped SetN(V) or SetN(V) error
func setterName(method reflect.Method) (string, bool) {
	mtype := method.Type
	if !strings.HasPrefix(method.Name, "Set") || len(method.Name) <= len("Set") {
		return "", false
	}

	name := method.Name[len("Set"):]
	if r, _ := utf8.DecodeRuneInString(name); !unicode.IsUpper(r) {
		return "", false
	}

	if mtype.NumIn() != 2 || isNonState(mtype.In(1)) {
		return "", false
	}

	switch mtype.NumOut() {
	case 0:
		return name, true
	case 1:
		return name, mtype.Out(0) == errorType
	default:
		return "", false
	}
}

// findBacking returns the unexported field storing the accessor. A field named
// with the accessor name and a lowercase first letter is preferred over other
// case-insensitive matches.
func findBacking(fields []*Slot, accessor *Slot) *Slot {
	candidates := lo.Filter(fields, func(field *Slot, _ int) bool {
		return !token.IsExported(field.goName) &&
			strings.EqualFold(field.goName, accessor.goName) &&
			field.Type == accessor.Type
	})

	if len(candidates) == 0 {
		return nil
	}

	want := lowerFirst(accessor.goName)
	if exact, ok := lo.Find(candidates, func(field *Slot) bool { return field.goName == want }); ok {
		return exact
	}
	return candidates[0]
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}
