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

// Package privacy defines the tri-state consent flag that gates whether
// identity data may be retained or shared.
package privacy

import "strings"

// Status is the privacy consent state of the visitor.
type Status int

const (
	// Unknown means consent has not been decided yet.
	Unknown Status = iota
	// OptedIn means identity data may be retained and shared.
	OptedIn
	// OptedOut means identity data must be cleared and never retained.
	OptedOut
)

// Default is the status a freshly constructed cache starts with.
const Default = OptedIn

var statusNames = map[Status]string{
	OptedIn:  "optedin",
	OptedOut: "optedout",
	Unknown:  "optunknown",
}

// String returns the wire value of the status.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// IsOptedOut reports whether the status forbids retaining identity data.
func (s Status) IsOptedOut() bool {
	return s == OptedOut
}

// FromString parses a wire value. Unrecognized values resolve to Unknown.
func FromString(value string) Status {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "optedin":
		return OptedIn
	case "optedout":
		return OptedOut
	default:
		return Unknown
	}
}
