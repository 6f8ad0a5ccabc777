package pkg

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestCombinedWriter(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	cw := NewCombinedWriter(&buf1, &buf2)

	n, err := cw.Write([]byte("straviz"))
	require.NoError(t, err)
	assert.Equal(t, 14, n)
	assert.Equal(t, "straviz", buf1.String())
	assert.Equal(t, "straviz", buf2.String())
}

func TestCombinedWriter_OneWriterFails(t *testing.T) {
	var buf bytes.Buffer
	cw := NewCombinedWriter(failingWriter{}, &buf)

	n, err := cw.Write([]byte("log line"))
	require.Error(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, "log line", buf.String())
}
