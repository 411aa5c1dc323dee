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

package encoded

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"

	gerrors "github.com/tochemey/objcodec/errors"
)

var (
	// ErrInvalidUTF8 is the cause of a malformed encoding when the buffer is not UTF-8 text
	ErrInvalidUTF8 = errors.New("buffer is not valid UTF-8")
	// ErrTrailingData is the cause of a malformed encoding when bytes follow the top-level value
	ErrTrailingData = errors.New("unexpected data after top-level value")
	// ErrEmptyInput is the cause of a malformed encoding when the buffer holds no value
	ErrEmptyInput = errors.New("no value found")
	// ErrDuplicateKey is the cause of a malformed encoding when an object repeats a key
	ErrDuplicateKey = errors.New("duplicate object key")
)

var (
	api = jsoniter.Config{EscapeHTML: false}.Froze()

	numberPattern = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)
)

// Render writes the node as UTF-8 JSON text.
// Invalid UTF-8 in strings and keys is replaced by U+FFFD.
func Render(node *Node) ([]byte, error) {
	stream := api.BorrowStream(nil)
	defer api.ReturnStream(stream)

	if err := write(stream, node); err != nil {
		return nil, err
	}

	if stream.Error != nil {
		return nil, stream.Error
	}

	out := make([]byte, stream.Buffered())
	copy(out, stream.Buffer())
	return out, nil
}

func write(stream *jsoniter.Stream, node *Node) error {
	if node == nil {
		stream.WriteNil()
		return nil
	}

	switch node.Kind {
	case Null:
		stream.WriteNil()
	case Bool:
		stream.WriteBool(node.Bool)
	case Number:
		if !numberPattern.MatchString(node.Text) {
			return fmt.Errorf("invalid number literal=(%s)", node.Text)
		}
		stream.WriteRaw(node.Text)
	case String:
		stream.WriteString(sanitize(node.Text))
	case Array:
		stream.WriteArrayStart()
		for i, item := range node.Items {
			if i > 0 {
				stream.WriteMore()
			}
			if err := write(stream, item); err != nil {
				return err
			}
		}
		stream.WriteArrayEnd()
	case Object:
		stream.WriteObjectStart()
		for i, member := range node.Members {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(sanitize(member.Key))
			if err := write(stream, member.Value); err != nil {
				return err
			}
		}
		stream.WriteObjectEnd()
	default:
		return fmt.Errorf("unknown node kind=(%s)", node.Kind)
	}
	return nil
}

func sanitize(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, "\uFFFD")
}

// Parse reads UTF-8 JSON text into a node.
// The buffer must hold exactly one JSON value, optionally surrounded by whitespace.
// Objects must not repeat a key.
// Failures are reported as a malformed encoding.
func Parse(data []byte) (*Node, error) {
	if !utf8.Valid(data) {
		return nil, gerrors.NewErrMalformedEncoding("$", ErrInvalidUTF8)
	}

	iter := api.BorrowIterator(data)
	defer api.ReturnIterator(iter)

	if iter.WhatIsNext() == jsoniter.InvalidValue && iter.Error == io.EOF {
		return nil, gerrors.NewErrMalformedEncoding("$", ErrEmptyInput)
	}

	node, err := read(iter)
	if err != nil {
		return nil, gerrors.NewErrMalformedEncoding("$", err)
	}

	if iter.Error != nil && iter.Error != io.EOF {
		return nil, gerrors.NewErrMalformedEncoding("$", iter.Error)
	}

	// reaching the end of the buffer sets io.EOF; anything else is trailing data
	iter.WhatIsNext()
	if iter.Error == nil {
		return nil, gerrors.NewErrMalformedEncoding("$", ErrTrailingData)
	}
	if iter.Error != io.EOF {
		return nil, gerrors.NewErrMalformedEncoding("$", iter.Error)
	}
	return node, nil
}

func read(iter *jsoniter.Iterator) (*Node, error) {
	switch iter.WhatIsNext() {
	case jsoniter.NilValue:
		iter.ReadNil()
		return NewNull(), failure(iter)
	case jsoniter.BoolValue:
		return NewBool(iter.ReadBool()), failure(iter)
	case jsoniter.NumberValue:
		literal := string(iter.ReadNumber())
		if err := failure(iter); err != nil {
			return nil, err
		}
		if !numberPattern.MatchString(literal) {
			return nil, fmt.Errorf("invalid number literal=(%s)", literal)
		}
		return NewNumber(literal), nil
	case jsoniter.StringValue:
		return NewString(iter.ReadString()), failure(iter)
	case jsoniter.ArrayValue:
		node := NewArray()
		var err error
		iter.ReadArrayCB(func(iter *jsoniter.Iterator) bool {
			var item *Node
			if item, err = read(iter); err != nil {
				return false
			}
			node.Items = append(node.Items, item)
			return true
		})
		if err != nil {
			return nil, err
		}
		return node, failure(iter)
	case jsoniter.ObjectValue:
		node := NewObject()
		seen := make(map[string]struct{})
		var err error
		iter.ReadObjectCB(func(iter *jsoniter.Iterator, key string) bool {
			if _, ok := seen[key]; ok {
				err = fmt.Errorf("%w: key=(%s)", ErrDuplicateKey, key)
				return false
			}
			seen[key] = struct{}{}

			var value *Node
			if value, err = read(iter); err != nil {
				return false
			}
			node.Add(key, value)
			return true
		})
		if err != nil {
			return nil, err
		}
		return node, failure(iter)
	default:
		if err := failure(iter); err != nil {
			return nil, err
		}
		if iter.Error == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, errors.New("unexpected character, expecting a JSON value")
	}
}

// failure returns the iterator error, if any. io.EOF is not a failure:
// reading the last number of the buffer reaches it.
func failure(iter *jsoniter.Iterator) error {
	if iter.Error != nil && iter.Error != io.EOF {
		return iter.Error
	}
	return nil
}
