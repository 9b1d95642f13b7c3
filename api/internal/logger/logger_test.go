package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnyToStr(t *testing.T) {

	tests := []struct {
		T    any
		TStr string
	}{
		{10, "10"},
		{-10, "-10"},
		{true, "true"},
		{"test", "test"},
		{"", ""},
		{nil, "<nil>"},
		{struct{}{}, "{}"},

		{struct {
			Z string
			F int
		}{"test", 10}, "{test 10}"},

		{[]int{1, 2, 3}, "[1 2 3]"},
	}

	for _, x := range tests {
		assert.Equal(t, x.TStr, AnyToStr(x.T))
	}

}

func TestInfoAddsStreamAndSource(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, true)

	l.Info("cycle finished", LS_MONITOR, false, "attempted", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "cycle finished", entry["msg"])
	assert.Equal(t, "monitor", entry["stream"])
	assert.EqualValues(t, 3, entry["attempted"])
	assert.True(t, strings.Contains(entry["source"].(string), "logger_test.go"))
}

func TestTemplWalletErrReturnsErrorId(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, true)

	errorId := l.TemplWalletErr("sync failed", "0xabc", errors.New("boom"))
	require.NotEmpty(t, errorId)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, errorId, entry["error_id"])
	assert.Equal(t, "boom", entry["error"])
	assert.True(t, strings.Contains(entry["source"].(string), "logger_test.go"))
}

func TestStreamAndLevelNames(t *testing.T) {
	assert.Equal(t, "nats", LS_NATS.ToString())
	assert.Equal(t, "http", LS_HTTP.ToString())
	assert.Equal(t, "monitor", LS_MONITOR.ToString())
	assert.Equal(t, "WARN", LL_WARN.ToString())
}
