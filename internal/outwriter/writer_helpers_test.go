package outwriter

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name     string
		data     any
		expected string
	}{
		{
			name:     "object",
			data:     map[string]any{"name": "Ana", "speed": 12.5},
			expected: "{\n  \"name\": \"Ana\",\n  \"speed\": 12.5\n}\n",
		},
		{
			name:     "array",
			data:     []string{"Pranje", "Sušenje"},
			expected: "[\n  \"Pranje\",\n  \"Sušenje\"\n]\n",
		},
		{
			name:     "string",
			data:     "hello",
			expected: "\"hello\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeJSON(&buf, tt.data))
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestWriteJSONError(t *testing.T) {
	// Channels can't be marshaled to JSON
	var buf bytes.Buffer
	err := writeJSON(&buf, make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode JSON")
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	data := map[string]any{"workers": []string{"Ana", "Marko"}}
	require.NoError(t, writeYAML(&buf, data))
	assert.Equal(t, "workers:\n  - Ana\n  - Marko\n", buf.String())
}

func TestWriteWithFileStdout(t *testing.T) {
	// Empty string means stdout
	called := false
	err := writeWithFile("", func(w io.Writer) error {
		called = true
		assert.Equal(t, os.Stdout, w)
		return nil
	}, "Test message")

	require.NoError(t, err)
	assert.True(t, called, "Writer function should have been called")
}

func TestWriteWithFileActualFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "test.txt")

	err := writeWithFile(tmpFile, func(w io.Writer) error {
		_, err := w.Write([]byte("test content"))
		return err
	}, "Test message")
	require.NoError(t, err)

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, "test content", string(content))
}

func TestWriteWithFileError(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "test.txt")

	err := writeWithFile(tmpFile, func(io.Writer) error {
		return assert.AnError
	}, "Test message")
	assert.Equal(t, assert.AnError, err)
}

func TestWriteWithFileInvalidPath(t *testing.T) {
	err := writeWithFile("/nonexistent/path/file.txt", func(io.Writer) error {
		return nil
	}, "Test message")
	require.Error(t, err)
}
