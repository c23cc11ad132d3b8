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

package audience

const (
	// DataStoreName is the name of the collection holding the persisted audience state
	DataStoreName = "AAMDataStore"
	// ConfigurationDataStoreName is the name of the collection holding the persisted configuration
	ConfigurationDataStoreName = "AdobeMobile_ConfigState"

	// IdentifierKey is the store key of the visitor identifier
	IdentifierKey = "AAMUserId"
	// ProfileKey is the store key of the visitor profile
	ProfileKey = "AAMUserProfile"

	// SharableIdentifierKey is the key of the identifier in the sharable state
	SharableIdentifierKey = "uuid"
	// SharableProfileKey is the key of the profile in the sharable state
	SharableProfileKey = "aamprofile"

	// LogSource tags every diagnostic emitted by the cache
	LogSource = "AudienceState"
)
