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
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/multierr"
)

type validationTestSuite struct {
	suite.Suite
}

func TestValidation(t *testing.T) {
	suite.Run(t, new(validationTestSuite))
}

func (s *validationTestSuite) TestNewChain() {
	s.Run("new chain without option", func() {
		chain := New()
		s.Assert().NotNil(chain)
		s.Assert().False(chain.failFast)
	})
	s.Run("new chain with options", func() {
		s.Assert().True(New(FailFast()).failFast)
		s.Assert().False(New(AllErrors()).failFast)
	})
}

func (s *validationTestSuite) TestValidate() {
	s.Run("with no violation", func() {
		err := New().
			AddValidator(NewEmptyStringValidator("field", "value")).
			AddAssertion(true, "never").
			Validate()
		s.Assert().NoError(err)
	})
	s.Run("with all errors", func() {
		err := New().
			AddValidator(NewEmptyStringValidator("first", "")).
			AddValidator(NewEmptyStringValidator("second", " ")).
			Validate()
		s.Require().Error(err)
		s.Assert().Len(multierr.Errors(err), 2)
		s.Assert().Contains(err.Error(), "the [first] is required")
		s.Assert().Contains(err.Error(), "the [second] is required")
	})
	s.Run("with fail fast", func() {
		err := New(FailFast()).
			AddAssertion(false, "first failure").
			AddAssertion(false, "second failure").
			Validate()
		s.Require().Error(err)
		s.Assert().EqualError(err, "first failure")
	})
}

func (s *validationTestSuite) TestPatternValidator() {
	s.Assert().NoError(NewPatternValidator(`^[a-z]+$`, "abc", nil).Validate())
	s.Assert().Error(NewPatternValidator(`^[a-z]+$`, "ABC", nil).Validate())

	custom := errors.New("custom")
	s.Assert().ErrorIs(NewPatternValidator(`^[a-z]+$`, "123", custom).Validate(), custom)
}

func (s *validationTestSuite) TestNameValidator() {
	s.Assert().NoError(NewNameValidator("AAMDataStore", nil).Validate())
	s.Assert().NoError(NewNameValidator("AdobeMobile_ConfigState", nil).Validate())
	s.Assert().NoError(NewNameValidator("store-1", nil).Validate())
	s.Assert().Error(NewNameValidator("", nil).Validate())
	s.Assert().Error(NewNameValidator("_leading", nil).Validate())
	s.Assert().Error(NewNameValidator("$omeN@me", nil).Validate())
	s.Assert().Error(NewNameValidator(strings.Repeat("a", 300), nil).Validate())

	custom := errors.New("custom")
	s.Assert().ErrorIs(NewNameValidator("with space", custom).Validate(), custom)
}

func (s *validationTestSuite) TestTCPAddressValidator() {
	s.Assert().NoError(NewTCPAddressValidator("127.0.0.1:6379").Validate())
	s.Assert().NoError(NewTCPAddressValidator("localhost:4222").Validate())
	s.Assert().Error(NewTCPAddressValidator("localhost").Validate())
	s.Assert().Error(NewTCPAddressValidator(":6379").Validate())
	s.Assert().Error(NewTCPAddressValidator("localhost:port").Validate())
	s.Assert().Error(NewTCPAddressValidator("localhost:70000").Validate())
}
