package response

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/nhdewitt/simple-http/internal/headers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestOK(t *testing.T) {
	b, err := OK("x").Bytes()
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1 200 OK\r\nContent-Length: 1\r\n\r\nx", string(b))
}

func TestWithCode(t *testing.T) {
	b, err := WithCode(StatusNotFound, "").Bytes()
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1 404 Not Found\r\nContent-Length: 0\r\n\r\n", string(b))

	b, err = WithCode(StatusMethodNotSupported, "nope").Bytes()
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1 405 Method Not Supported\r\nContent-Length: 4\r\n\r\nnope", string(b))
}

func TestContentLengthCountsBytes(t *testing.T) {
	b, err := OK("héllo").Bytes()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(b), "Content-Length: 6\r\n\r\nhéllo"))
}

func TestSetHeaders(t *testing.T) {
	r := OK("body")
	r.SetHeaders(
		headers.Field{Name: "X-A", Value: "1"},
		headers.Field{Name: "X-B", Value: "2"},
	)
	b, err := r.Bytes()
	require.NoError(t, err)
	out := string(b)

	head, body, ok := strings.Cut(out, "\r\n\r\n")
	require.True(t, ok)
	assert.Equal(t, "body", body)

	lines := strings.Split(head, "\r\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "HTTP/1.1 200 OK", lines[0])
	assert.ElementsMatch(t, []string{"X-A: 1", "X-B: 2"}, lines[1:3])
	assert.Equal(t, "Content-Length: 4", lines[3])
}

func TestSetHeadersReplacesAndDedups(t *testing.T) {
	r := OK("")
	r.SetHeaders(headers.Field{Name: "X-Old", Value: "gone"})
	r.SetHeaders(
		headers.Field{Name: "X-A", Value: "1"},
		headers.Field{Name: "X-A", Value: "2"},
		headers.Field{Name: "Content-Length", Value: "999"},
	)
	assert.Len(t, r.Headers(), 1)
	assert.Equal(t, "2", r.Headers().Get("x-a"))

	b, err := r.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "HTTP/1.1 200 OK\r\nX-A: 2\r\nContent-Length: 0\r\n\r\n", string(b))
}

func TestHeaderNamesKeptAsGiven(t *testing.T) {
	r := OK("")
	r.SetHeaders(
		headers.Field{Name: "X-API-Key", Value: "k"},
		headers.Field{Name: "ETag", Value: "e"},
		headers.Field{Name: "WWW-Authenticate", Value: "w"},
	)
	b, err := r.Bytes()
	require.NoError(t, err)

	head, _, ok := strings.Cut(string(b), "\r\n\r\n")
	require.True(t, ok)
	lines := strings.Split(head, "\r\n")
	require.Len(t, lines, 5)
	assert.ElementsMatch(t, []string{"X-API-Key: k", "ETag: e", "WWW-Authenticate: w"}, lines[1:4])
	assert.Equal(t, "Content-Length: 0", lines[4])
}

func TestContentLengthNotOverridable(t *testing.T) {
	r := OK("abc")
	r.Headers().Set("content-length", "42")
	b, err := r.Bytes()
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(b), "Content-Length"))
	assert.Contains(t, string(b), "Content-Length: 3\r\n")
}

func TestUnknownStatusCode(t *testing.T) {
	var buf bytes.Buffer
	err := WithCode(StatusCode(418), "teapot").Write(&buf)
	require.ErrorIs(t, err, ErrUnknownStatusCode)
	assert.Zero(t, buf.Len())

	_, ok := StatusCode(999).Reason()
	assert.False(t, ok)
}

func TestStatusReasons(t *testing.T) {
	cases := map[StatusCode]string{
		StatusOK:                  "OK",
		StatusCreated:             "Created",
		StatusAccepted:            "Accepted",
		StatusMovedPermanently:    "Moved Permanently",
		StatusNotModified:         "Not Modified",
		StatusBadRequest:          "Bad Request",
		StatusUnauthorized:        "Unauthorized",
		StatusForbidden:           "Forbidden",
		StatusNotFound:            "Not Found",
		StatusMethodNotSupported:  "Method Not Supported",
		StatusInternalServerError: "Internal Server Error",
	}
	for code, want := range cases {
		got, ok := code.Reason()
		require.True(t, ok)
		assert.Equal(t, want, got)
		assert.True(t, code.Valid())
	}
}

func TestWriterOrder(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	_, err := w.WriteBody([]byte("early"))
	require.ErrorIs(t, err, ErrWriterState)
	require.ErrorIs(t, w.WriteHeaders(nil, 0), ErrWriterState)

	require.NoError(t, w.WriteStatusLine(StatusAccepted))
	require.ErrorIs(t, w.WriteStatusLine(StatusOK), ErrWriterState)
	require.NoError(t, w.WriteHeaders(nil, 2))
	n, err := w.WriteBody([]byte("ok"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = w.WriteBody([]byte("again"))
	require.ErrorIs(t, err, ErrWriterState)
	assert.Equal(t, "HTTP/1.1 202 Accepted\r\nContent-Length: 2\r\n\r\nok", buf.String())
}

func TestWriteError(t *testing.T) {
	err := OK("x").Write(failingWriter{})
	require.Error(t, err)
}
