package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, getLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, getLogLevel("warning"))
	assert.Equal(t, slog.LevelError, getLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, getLogLevel("nonsense"))
}

func TestLogTicketPurchased(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithHandler(slog.NewJSONHandler(&buf, nil)).WithUserID(7)

	l.LogTicketPurchased(context.Background(), 1, 2, 7, 10)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "Ticket Purchased", line["msg"])
	assert.EqualValues(t, 2, line["event_seat_id"])
	assert.EqualValues(t, 7, line["user_id"])
	assert.EqualValues(t, 10, line["price"])
}

func TestSetDefault(t *testing.T) {
	previous := GetDefault()
	t.Cleanup(func() { SetDefault(previous) })

	var buf bytes.Buffer
	SetDefault(NewWithHandler(slog.NewJSONHandler(&buf, nil)))
	GetDefault().LogTicketCancelled(context.Background(), 3, 4, 5)

	assert.Contains(t, buf.String(), `"msg":"Ticket Cancelled"`)
}
