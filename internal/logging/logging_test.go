package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"DEBUG", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"warning", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"fatal", logrus.FatalLevel},
		{"trace", logrus.TraceLevel},
		{"  debug  ", logrus.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLevel_Unknown(t *testing.T) {
	_, err := ParseLevel("verbose")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verbose")
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, "info", "json")
	require.NoError(t, err)

	log.WithField("region", "Kerala").Info("scored")
	log.Debug("filtered")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "scored", entry["msg"])
	assert.Equal(t, "Kerala", entry["region"])
	assert.NotContains(t, buf.String(), "filtered")
}

func TestNewWithWriter_Text(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, "debug", "")
	require.NoError(t, err)

	log.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New("loud", "text")
	assert.Error(t, err)
}
