package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionID_ContextRoundTrip(t *testing.T) {
	id := NewSessionID()
	ctx := WithSessionID(context.Background(), id)

	got, ok := SessionIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, id, got)
}

func TestSessionIDFromContext_Absent(t *testing.T) {
	_, ok := SessionIDFromContext(context.Background())
	assert.False(t, ok)
}

func TestFromContext_AddsSessionAttribute(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "json", ServiceName: "dicemate", Version: "test", Environment: "test"}, &buf)

	id := NewSessionID()
	ctx := WithSessionID(context.Background(), id)
	FromContext(ctx).Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, id.String(), entry[AttrKeySessionID])
	assert.Equal(t, "dicemate", entry[AttrKeyService])
	assert.Equal(t, "hello", entry["msg"])
}

func TestConfig_LogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", Config{Level: "debug"}.LogLevel().String())
	assert.Equal(t, "WARN", Config{Level: "warning"}.LogLevel().String())
	assert.Equal(t, "INFO", Config{Level: "bogus"}.LogLevel().String())
}

func TestConfig_IsJSON(t *testing.T) {
	assert.True(t, Config{Format: "JSON"}.IsJSON())
	assert.False(t, Config{Format: "text"}.IsJSON())
}
