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
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"
)

// NamePattern is the pattern a collection name must match.
const NamePattern = `^[a-zA-Z0-9][a-zA-Z0-9_-]*$`

// MaxNameLength is the maximum length of a collection name.
const MaxNameLength = 255

var namePattern = regexp.MustCompile(NamePattern)

// ValidatorFunc adapts a plain function into a Validator.
type ValidatorFunc func() error

// Validate calls f.
func (f ValidatorFunc) Validate() error {
	return f()
}

// NewBooleanValidator fails with message when check is false.
func NewBooleanValidator(check bool, message string) Validator {
	return ValidatorFunc(func() error {
		if !check {
			return errors.New(message)
		}
		return nil
	})
}

// NewEmptyStringValidator fails when value is blank.
func NewEmptyStringValidator(field, value string) Validator {
	return ValidatorFunc(func() error {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("the [%s] is required", field)
		}
		return nil
	})
}

// NewPatternValidator fails when expression does not match pattern.
// customErr, when set, replaces the default error.
func NewPatternValidator(pattern, expression string, customErr error) Validator {
	return ValidatorFunc(func() error {
		if match, _ := regexp.MatchString(pattern, expression); !match {
			if customErr != nil {
				return customErr
			}
			return fmt.Errorf("invalid expression %q", expression)
		}
		return nil
	})
}

// NewNameValidator checks a collection name against NamePattern and MaxNameLength.
// customErr, when set, replaces the default error.
func NewNameValidator(name string, customErr error) Validator {
	return ValidatorFunc(func() error {
		if len(name) <= MaxNameLength && namePattern.MatchString(name) {
			return nil
		}
		if customErr != nil {
			return customErr
		}
		return fmt.Errorf("invalid name %q", name)
	})
}

// NewTCPAddressValidator checks that address is a host:port pair.
func NewTCPAddressValidator(address string) Validator {
	return ValidatorFunc(func() error {
		host, port, err := net.SplitHostPort(strings.TrimSpace(address))
		if err != nil {
			return fmt.Errorf("invalid address=(%s): %w", address, err)
		}
		portNum, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid address=(%s): %w", address, err)
		}
		if host == "" || portNum <= 0 || portNum > 65535 {
			return fmt.Errorf("invalid address=(%s)", address)
		}
		return nil
	})
}
