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

import (
	"context"
	"maps"

	"github.com/tochemey/audience/datastore"
	"github.com/tochemey/audience/log"
	"github.com/tochemey/audience/privacy"
	"github.com/tochemey/audience/telemetry"
)

// State is the in-memory mirror of the visitor identity fields.
type State struct {
	store   datastore.NamedCollection
	logger  log.Logger
	metrics *telemetry.Metrics

	identifier       string
	identifierLoaded bool

	profile       map[string]string
	profileLoaded bool

	privacyStatus            privacy.Status
	lastResetTimestampMillis int64
}

// New creates a State bound to store. A nil store keeps the state in memory only
// and every operation that would touch the store logs a warning instead.
func New(store datastore.NamedCollection, opts ...Option) *State {
	state := &State{
		store:         store,
		logger:        log.DefaultLogger,
		privacyStatus: privacy.Default,
	}
	for _, opt := range opts {
		opt.Apply(state)
	}
	state.logger = state.logger.With("source", LogSource)
	return state
}

// NewFromService creates a State bound to the DataStoreName collection of service.
// When the collection cannot be obtained the State runs without a store.
func NewFromService(service *datastore.Service, opts ...Option) *State {
	state := New(nil, opts...)
	if service == nil {
		state.logger.Warn("datastore service is not set, audience state will not be persisted")
		return state
	}

	collection, err := service.NamedCollection(DataStoreName)
	if err != nil {
		state.logger.Warnf("unable to open collection=(%s), audience state will not be persisted: %v", DataStoreName, err)
		return state
	}
	state.store = collection
	return state
}

// SetIdentifier sets the visitor identifier and writes it through to the store.
// An empty value always clears the identifier. A non-empty value is ignored while opted out.
func (s *State) SetIdentifier(identifier string) {
	empty := identifier == ""
	s.applyWrite("set identifier", IdentifierKey, empty,
		func() {
			s.identifier = identifier
			s.identifierLoaded = !empty
		},
		func(store datastore.NamedCollection) {
			store.SetString(IdentifierKey, identifier)
		},
	)
}

// Identifier returns the visitor identifier.
// An empty in-memory identifier is read back from the store once, whatever the
// privacy status. SharableState withholds it while opted out.
func (s *State) Identifier() string {
	if s.identifier != "" || s.identifierLoaded {
		return s.identifier
	}

	if s.store == nil {
		s.warnUnavailable("get identifier")
		return s.identifier
	}

	s.identifier = s.store.GetString(IdentifierKey, s.identifier)
	s.identifierLoaded = true
	if s.identifier != "" {
		s.metrics.RecordStoreRead(context.Background(), IdentifierKey)
	}
	return s.identifier
}

// SetProfile sets the visitor profile and writes it through to the store.
// A nil or empty profile always clears the stored profile. A non-empty profile
// is ignored while opted out.
func (s *State) SetProfile(profile map[string]string) {
	empty := len(profile) == 0
	s.applyWrite("set profile", ProfileKey, empty,
		func() {
			s.profile = maps.Clone(profile)
			s.profileLoaded = !empty
		},
		func(store datastore.NamedCollection) {
			store.SetMap(ProfileKey, profile)
		},
	)
}

// Profile returns a copy of the visitor profile, or nil when there is none.
// An empty in-memory profile is read back from the store once, and only when
// the store holds the profile key.
func (s *State) Profile() map[string]string {
	if len(s.profile) > 0 || s.profileLoaded {
		return maps.Clone(s.profile)
	}

	if s.store == nil {
		s.warnUnavailable("get profile")
		return maps.Clone(s.profile)
	}

	if s.store.Contains(ProfileKey) {
		s.profile = s.store.GetMap(ProfileKey)
		s.metrics.RecordStoreRead(context.Background(), ProfileKey)
	}
	s.profileLoaded = true
	return maps.Clone(s.profile)
}

// SetPrivacyStatus sets the privacy status. Switching to privacy.OptedOut
// clears the identifier and the profile from memory and from the store.
func (s *State) SetPrivacyStatus(status privacy.Status) {
	s.privacyStatus = status
	if status.IsOptedOut() {
		s.logger.Debugf("privacy status is %s, clearing identifiers", status)
		s.ClearIdentifiers()
	}
}

// PrivacyStatus returns the privacy status.
func (s *State) PrivacyStatus() privacy.Status {
	return s.privacyStatus
}

// SetLastResetTimestamp sets the last reset timestamp in milliseconds since epoch.
// Negative values are ignored.
func (s *State) SetLastResetTimestamp(timestampMillis int64) {
	if timestampMillis < 0 {
		s.logger.Debugf("ignoring negative reset timestamp=(%d)", timestampMillis)
		return
	}
	s.lastResetTimestampMillis = timestampMillis
}

// LastResetTimestampMillis returns the last reset timestamp in milliseconds since epoch.
func (s *State) LastResetTimestampMillis() int64 {
	return s.lastResetTimestampMillis
}

// SharableState returns the state shared with other components.
// It is empty while opted out. Otherwise it carries the identifier under
// SharableIdentifierKey when not empty, and the profile under
// SharableProfileKey whenever a profile exists, even an empty one.
func (s *State) SharableState() map[string]any {
	data := make(map[string]any)
	if s.privacyStatus.IsOptedOut() {
		return data
	}

	if identifier := s.Identifier(); identifier != "" {
		data[SharableIdentifierKey] = identifier
	}

	if profile := s.Profile(); profile != nil {
		data[SharableProfileKey] = profile
	}
	return data
}

// ClearIdentifiers clears the identifier and the profile from memory and from
// the store, whatever the privacy status.
func (s *State) ClearIdentifiers() {
	s.SetIdentifier("")
	s.SetProfile(nil)
}

// applyWrite gates a field write on the privacy status and mirrors it into the store.
// Empty values clear the field and remove the key. Non-empty values are applied
// and persisted only while not opted out.
func (s *State) applyWrite(operation, key string, empty bool, apply func(), persist func(datastore.NamedCollection)) {
	ctx := context.Background()
	allowed := empty || !s.privacyStatus.IsOptedOut()
	if allowed {
		apply()
	} else {
		s.logger.Debugf("privacy status is %s, ignoring write to key=(%s)", s.privacyStatus, key)
		s.metrics.RecordPrivacyBlockedWrite(ctx, key)
	}

	if s.store == nil {
		s.warnUnavailable(operation)
		return
	}

	if empty {
		s.store.Remove(key)
		s.metrics.RecordStoreRemoval(ctx, key)
		return
	}

	if allowed {
		persist(s.store)
		s.metrics.RecordStoreWrite(ctx, key)
	}
}

func (s *State) warnUnavailable(operation string) {
	s.logger.Warnf("unable to %s, datastore is not available", operation)
	s.metrics.RecordStoreUnavailable(context.Background(), operation)
}
