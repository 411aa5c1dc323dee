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

package validation

import (
	"fmt"
	"regexp"
)

// typeNamePattern accepts Go style qualified names such as
// "github.com/acme/geo.Point", "*geo.Point" or "proto:acme.v1.Ping".
// The "$" prefix is reserved for envelope keys.
var typeNamePattern = regexp.MustCompile(`^\*?[A-Za-z_][A-Za-z0-9_./:\-\[\]]*$`)

const maxTypeNameLength = 255

// TypeNameValidator validates a type tag name used on the wire
type TypeNameValidator struct {
	name string
}

var _ Validator = (*TypeNameValidator)(nil)

// NewTypeNameValidator creates an instance of TypeNameValidator
func NewTypeNameValidator(name string) *TypeNameValidator {
	return &TypeNameValidator{name: name}
}

// Validate checks the name length and characters
func (x *TypeNameValidator) Validate() error {
	return New(FailFast()).
		AddAssertion(x.name != "", "type name is required").
		AddAssertion(len(x.name) <= maxTypeNameLength, fmt.Sprintf("type name=(%s) is longer than %d characters", x.name, maxTypeNameLength)).
		AddValidator(NewPatternValidator(typeNamePattern, x.name, fmt.Errorf("type name=(%s) contains invalid characters", x.name))).
		Validate()
}
