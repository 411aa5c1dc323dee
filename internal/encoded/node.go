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

// Package encoded holds the self-describing tree produced by the serializer
// and its UTF-8 JSON text form.
package encoded

import (
	"strconv"
)

// Kind is the kind of an encoded node
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// String returns the JSON name of the kind
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Member is a named value of an object node
type Member struct {
	Key   string
	Value *Node
}

// Node is an encoded value.
// Numbers keep their literal text so integers of any width survive the trip.
// Object members keep their insertion order.
type Node struct {
	Kind    Kind
	Bool    bool
	Text    string
	Items   []*Node
	Members []Member
}

// NewNull creates a null node
func NewNull() *Node {
	return &Node{Kind: Null}
}

// NewBool creates a boolean node
func NewBool(b bool) *Node {
	return &Node{Kind: Bool, Bool: b}
}

// NewNumber creates a number node from its literal text
func NewNumber(literal string) *Node {
	return &Node{Kind: Number, Text: literal}
}

// NewString creates a string node
func NewString(s string) *Node {
	return &Node{Kind: String, Text: s}
}

// NewArray creates an array node
func NewArray(items ...*Node) *Node {
	return &Node{Kind: Array, Items: items}
}

// NewObject creates an object node
func NewObject(members ...Member) *Node {
	return &Node{Kind: Object, Members: members}
}

// Add appends a member to an object node
func (n *Node) Add(key string, value *Node) *Node {
	n.Members = append(n.Members, Member{Key: key, Value: value})
	return n
}

// Set replaces the value of the member with the given key, or appends it
func (n *Node) Set(key string, value *Node) {
	for i := range n.Members {
		if n.Members[i].Key == key {
			n.Members[i].Value = value
			return
		}
	}
	n.Add(key, value)
}

// Get returns the value of the member with the given key
func (n *Node) Get(key string) (*Node, bool) {
	for _, member := range n.Members {
		if member.Key == key {
			return member.Value, true
		}
	}
	return nil, false
}

// IsNull reports whether the node is nil or a null node
func (n *Node) IsNull() bool {
	return n == nil || n.Kind == Null
}
