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

package log

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZap(t *testing.T) {
	t.Run("With debug level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(DebugLevel, buffer)
		require.Equal(t, DebugLevel, logger.LogLevel())
		require.True(t, logger.Enabled(DebugLevel))

		logger.Debug("test debug")
		require.NoError(t, logger.Flush())

		msg, err := extractField(buffer.Bytes(), "msg")
		require.NoError(t, err)
		require.Equal(t, "test debug", msg)

		lvl, err := extractField(buffer.Bytes(), "level")
		require.NoError(t, err)
		require.Equal(t, DebugLevel.String(), lvl)
	})
	t.Run("With info level drops debug entries", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		require.False(t, logger.Enabled(DebugLevel))

		logger.Debugf("hidden %d", 1)
		require.Empty(t, buffer.Bytes())

		logger.Infof("visible %d", 2)
		msg, err := extractField(buffer.Bytes(), "msg")
		require.NoError(t, err)
		require.Equal(t, "visible 2", msg)
	})
	t.Run("With warn level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(WarningLevel, buffer)
		require.Equal(t, WarningLevel, logger.LogLevel())

		logger.Info("hidden")
		require.Empty(t, buffer.Bytes())

		logger.Warnf("store %s", "unavailable")
		lvl, err := extractField(buffer.Bytes(), "level")
		require.NoError(t, err)
		require.Equal(t, "warn", lvl)
	})
	t.Run("With error level", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(ErrorLevel, buffer)
		require.Equal(t, ErrorLevel, logger.LogLevel())

		logger.Warn("hidden")
		require.Empty(t, buffer.Bytes())

		logger.Error("boom")
		lvl, err := extractField(buffer.Bytes(), "level")
		require.NoError(t, err)
		require.Equal(t, "error", lvl)
	})
	t.Run("With structured fields", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With("source", "AudienceState", 42, "skipped", "orphan").Info("started")

		var payload map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(buffer.Bytes(), &payload))
		require.Contains(t, payload, "source")
		require.Contains(t, payload, "_")
		require.NotContains(t, payload, "42")

		source, err := extractField(buffer.Bytes(), "source")
		require.NoError(t, err)
		require.Equal(t, "AudienceState", source)
	})
	t.Run("With returns the same logger when no fields", func(t *testing.T) {
		logger := NewZap(InfoLevel, new(bytes.Buffer))
		assert.Equal(t, Logger(logger), logger.With())
		assert.Equal(t, Logger(logger), logger.With(1, 2))
	})
	t.Run("With file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "audience.log")
		file, err := os.Create(path)
		require.NoError(t, err)
		t.Cleanup(func() { _ = file.Close() })

		logger := NewZap(InfoLevel, file)
		logger.Info("buffered entry")
		require.NoError(t, logger.Flush())

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		msg, err := extractField(bytes.TrimSpace(content), "msg")
		require.NoError(t, err)
		require.Equal(t, "buffered entry", msg)
	})
}

func TestDiscardLogger(t *testing.T) {
	logger := DiscardLogger

	logger.Debug("debug")
	logger.Debugf("debug %s", "msg")
	logger.Info("info")
	logger.Infof("info %s", "msg")
	logger.Warn("warn")
	logger.Warnf("warn %s", "msg")
	logger.Error("error")
	logger.Errorf("error %s", "msg")

	require.Equal(t, InfoLevel, logger.LogLevel())
	require.False(t, logger.Enabled(ErrorLevel))
	require.Equal(t, DiscardLogger, logger.With("k", "v"))
	require.NoError(t, logger.Flush())
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, DebugLevel, ParseLevel("DEBUG"))
	require.Equal(t, WarningLevel, ParseLevel("warn"))
	require.Equal(t, WarningLevel, ParseLevel(" warning "))
	require.Equal(t, ErrorLevel, ParseLevel("error"))
	require.Equal(t, InfoLevel, ParseLevel("info"))
	require.Equal(t, InfoLevel, ParseLevel("unknown"))
	require.Equal(t, "invalid", InvalidLevel.String())
}

func extractField(bytes []byte, field string) (string, error) {
	c := make(map[string]json.RawMessage)
	if err := json.Unmarshal(bytes, &c); err != nil {
		return "", err
	}
	if v, ok := c[field]; ok {
		return strconv.Unquote(string(v))
	}
	return "", nil
}
