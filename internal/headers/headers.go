package headers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

const contentLength = "Content-Length"

var ErrMalformedHeader = errors.New("headers: malformed header line")

// Headers is keyed by the case-folded name so lookups ignore the casing a
// peer sent; each entry keeps the name as it was given.
type Headers map[string]Field

// Field is a single name/value pair, kept in caller order until it is stored.
type Field struct {
	Name  string
	Value string
}

func NewHeaders() Headers {
	return map[string]Field{}
}

func key(name string) string {
	return cases.Fold().String(name)
}

// ParseLine parses one "Name: Value" line (terminator already stripped).
// Only the first colon splits; a repeated name overwrites the previous value.
func (h Headers) ParseLine(line string) error {
	name, value, ok := strings.Cut(line, ":")
	if !ok {
		return fmt.Errorf("%w (no colon): %q", ErrMalformedHeader, line)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w (empty field-name): %q", ErrMalformedHeader, line)
	}

	h.Set(name, strings.TrimSpace(value))
	return nil
}

func (h Headers) Set(name, value string) {
	h[key(name)] = Field{Name: name, Value: value}
}

func (h Headers) Get(name string) (value string) {
	return h[key(name)].Value
}

func (h Headers) Has(name string) bool {
	_, ok := h[key(name)]
	return ok
}

func (h Headers) Del(name string) {
	delete(h, key(name))
}

// ContentLength returns the declared body length. Missing, empty,
// non-numeric and negative values all count as zero.
func (h Headers) ContentLength() int64 {
	n, err := strconv.ParseInt(h.Get(contentLength), 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// FromFields builds a header map from pairs; later duplicates win.
func FromFields(fields ...Field) Headers {
	h := NewHeaders()
	for _, f := range fields {
		h.Set(f.Name, f.Value)
	}
	return h
}
