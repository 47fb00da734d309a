package headers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	// Test: Valid single header
	headers := NewHeaders()
	err := headers.ParseLine("Host: localhost:42069")
	require.NoError(t, err)
	assert.Equal(t, "localhost:42069", headers.Get("host"))
	assert.Equal(t, Field{Name: "Host", Value: "localhost:42069"}, headers["host"])

	// Test: Surrounding whitespace is trimmed on both sides
	headers = NewHeaders()
	err = headers.ParseLine("           Host : localhost:42069             ")
	require.NoError(t, err)
	assert.Equal(t, "localhost:42069", headers.Get("HOST"))
	assert.Equal(t, "Host", headers["host"].Name)

	// Test: Valid 3 headers
	headers = NewHeaders()
	for _, line := range []string{"Host: example.com", "User-Agent: test-agent/1.0", "Accept: */*"} {
		require.NoError(t, headers.ParseLine(line))
	}
	assert.Len(t, headers, 3)
	assert.Equal(t, "example.com", headers.Get("host"))
	assert.Equal(t, "test-agent/1.0", headers.Get("user-agent"))
	assert.Equal(t, "*/*", headers.Get("accept"))

	// Valid header with existing headers
	headers = NewHeaders()
	headers.Set("User-Agent", "curl/7.54.1")
	headers.Set("Accept-Language", "en-US")
	require.NoError(t, headers.ParseLine("Host: localhost:42069"))
	assert.Equal(t, "localhost:42069", headers.Get("host"))
	assert.Equal(t, "en-US", headers.Get("accept-language"))
	assert.Equal(t, "curl/7.54.1", headers.Get("user-agent"))

	// Invalid no colon
	headers = NewHeaders()
	err = headers.ParseLine("Host localhost 42069")
	require.ErrorIs(t, err, ErrMalformedHeader)
	assert.Empty(t, headers)

	// Invalid empty name
	headers = NewHeaders()
	err = headers.ParseLine(" : value")
	require.ErrorIs(t, err, ErrMalformedHeader)
	assert.Empty(t, headers)

	// Empty value is allowed
	headers = NewHeaders()
	require.NoError(t, headers.ParseLine("X-Empty:"))
	assert.True(t, headers.Has("x-empty"))
	assert.Equal(t, "", headers.Get("X-Empty"))

	// Multiple values for one header key: last one wins
	headers = NewHeaders()
	for _, line := range []string{"Set-Person: lane-loves-go", "Set-Person: prime-loves-zig", "set-person: tj-loves-ocaml"} {
		require.NoError(t, headers.ParseLine(line))
	}
	assert.Equal(t, "tj-loves-ocaml", headers.Get("Set-Person"))
	assert.Len(t, headers, 1)
}

func TestNamesKeepCasing(t *testing.T) {
	h := FromFields(
		Field{Name: "X-API-Key", Value: "k"},
		Field{Name: "ETag", Value: "e"},
		Field{Name: "WWW-Authenticate", Value: "w"},
	)
	assert.Equal(t, "k", h.Get("x-api-key"))
	assert.Equal(t, "e", h.Get("ETAG"))

	var names []string
	for _, f := range h {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"X-API-Key", "ETag", "WWW-Authenticate"}, names)
}

func TestContentLength(t *testing.T) {
	cases := []struct {
		name  string
		lines []string
		want  int64
	}{
		{"absent", nil, 0},
		{"empty", []string{"Content-Length:"}, 0},
		{"zero", []string{"Content-Length: 0"}, 0},
		{"numeric", []string{"Content-Length: 5"}, 5},
		{"lower-case name", []string{"content-length: 12"}, 12},
		{"non-numeric", []string{"Content-Length: five"}, 0},
		{"negative", []string{"Content-Length: -3"}, 0},
		{"huge", []string{"Content-Length: 999999999999999999"}, 999999999999999999},
		{"overflow", []string{"Content-Length: 99999999999999999999999"}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := NewHeaders()
			for _, line := range c.lines {
				require.NoError(t, h.ParseLine(line))
			}
			assert.Equal(t, c.want, h.ContentLength())
		})
	}
}

func TestFromFields(t *testing.T) {
	h := FromFields(
		Field{Name: "X-A", Value: "1"},
		Field{Name: "X-B", Value: "2"},
		Field{Name: "x-a", Value: "3"},
	)
	assert.Len(t, h, 2)
	assert.Equal(t, "3", h.Get("X-A"))
	assert.Equal(t, "x-a", h["x-a"].Name)
	assert.Equal(t, "2", h.Get("x-b"))

	h.Del("X-B")
	assert.False(t, h.Has("x-b"))
}
