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
	"testing"

	"github.com/stretchr/testify/suite"
)

type booleanTestSuite struct {
	suite.Suite
}

func TestBooleanValidator(t *testing.T) {
	suite.Run(t, new(booleanTestSuite))
}

func (s *booleanTestSuite) TestBooleanValidator() {
	s.Run("With a positive max depth", func() {
		depth := 512
		err := NewBooleanValidator(depth > 0, "max depth must be positive").Validate()
		s.Assert().NoError(err)
	})
	s.Run("With a zero max depth", func() {
		depth := 0
		err := NewBooleanValidator(depth > 0, "max depth must be positive").Validate()
		s.Require().Error(err)
		s.Assert().EqualError(err, "max depth must be positive")
	})
	s.Run("Within a chain", func() {
		err := New(AllErrors()).
			AddValidator(NewBooleanValidator(false, "logger is required")).
			AddValidator(NewBooleanValidator(true, "tag key is invalid")).
			Validate()
		s.Require().Error(err)
		s.Assert().Contains(err.Error(), "logger is required")
		s.Assert().NotContains(err.Error(), "tag key is invalid")
	})
}
