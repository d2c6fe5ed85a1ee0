package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoWritesStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	l := New("littlelemon", &buf, false)

	l.Info("order_created", "req-1", "order created", slog.Int("order_id", 7))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "INFO", line["level"])
	assert.Equal(t, "order created", line["msg"])
	assert.Equal(t, "littlelemon", line["service"])
	assert.Equal(t, "order_created", line["action"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.EqualValues(t, 7, line["order_id"])
}

func TestDebugSuppressedUnlessEnabled(t *testing.T) {
	var buf bytes.Buffer
	New("littlelemon", &buf, false).Debug("noise", "", "hidden")
	assert.Zero(t, buf.Len())

	New("littlelemon", &buf, true).Debug("noise", "", "shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestErrorCarriesCause(t *testing.T) {
	var buf bytes.Buffer
	New("littlelemon", &buf, false).Error("db", "req-2", "query failed", errors.New("connection reset"))

	var line struct {
		Level string `json:"level"`
		Error struct {
			Msg string `json:"msg"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "ERROR", line.Level)
	assert.Equal(t, "connection reset", line.Error.Msg)
}
