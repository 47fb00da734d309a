package request

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nhdewitt/simple-http/internal/headers"
)

type requestState int

const (
	stateStatusLine requestState = iota
	stateHeaders
	stateBody
	stateDone
)

var (
	ErrMalformedStatusLine = errors.New("request: malformed status line")
	ErrUnsupportedMethod   = errors.New("request: unsupported method")
	ErrMissingPath         = errors.New("request: missing path")
	ErrHeaderReadFailure   = errors.New("request: header read failure")
	ErrTruncatedBody       = errors.New("request: truncated body")
	ErrBodyTooLarge        = errors.New("request: body too large")
)

type Request struct {
	Method  Method
	Path    string
	Headers headers.Headers
	Body    string

	state       requestState
	maxBodySize int64
}

type Option func(*Request)

// WithMaxBodySize rejects a declared Content-Length above n before any body
// byte is read. Zero or less means no limit.
func WithMaxBodySize(n int64) Option {
	return func(r *Request) { r.maxBodySize = n }
}

// RequestFromReader reads exactly one message from r: the status line, the
// header block and Content-Length bytes of body. Bytes after the body stay
// in r.
func RequestFromReader(r *bufio.Reader, opts ...Option) (*Request, error) {
	req := Request{
		Headers: headers.NewHeaders(),
		state:   stateStatusLine,
	}
	for _, opt := range opts {
		opt(&req)
	}

	for req.state != stateDone {
		if err := req.parse(r); err != nil {
			return nil, err
		}
	}

	return &req, nil
}

func (r *Request) parse(br *bufio.Reader) error {
	switch r.state {
	case stateStatusLine:
		line, err := br.ReadString('\n')
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedStatusLine, err)
		}
		if err := r.parseStatusLine(line); err != nil {
			return err
		}
		r.state = stateHeaders
		return nil
	case stateHeaders:
		line, err := br.ReadString('\n')
		if err != nil {
			return fmt.Errorf("%w: %v", ErrHeaderReadFailure, err)
		}
		line = trimTerminator(line)
		if line == "" {
			r.state = stateBody
			return nil
		}
		if err := r.Headers.ParseLine(line); err != nil {
			return fmt.Errorf("%w: %v", ErrHeaderReadFailure, err)
		}
		return nil
	case stateBody:
		n := r.Headers.ContentLength()
		if r.maxBodySize > 0 && n > r.maxBodySize {
			return fmt.Errorf("%w: %d > %d", ErrBodyTooLarge, n, r.maxBodySize)
		}
		if n > 0 {
			// The buffer grows with the bytes that actually arrive, not with n.
			var body bytes.Buffer
			if _, err := io.CopyN(&body, br, n); err != nil {
				return fmt.Errorf("%w: want %d bytes, got %d: %v", ErrTruncatedBody, n, body.Len(), err)
			}
			r.Body = body.String()
		}
		r.state = stateDone
		return nil
	case stateDone:
		return fmt.Errorf("error: trying to read data in a done state")
	default:
		return fmt.Errorf("error: unknown state")
	}
}

// parseStatusLine takes "<METHOD> <PATH> [ignored...]".
func (r *Request) parseStatusLine(line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return fmt.Errorf("%w: %q", ErrMalformedStatusLine, line)
	}

	method, ok := ParseMethod(parts[0])
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedMethod, parts[0])
	}
	if len(parts) < 2 {
		return fmt.Errorf("%w: %q", ErrMissingPath, trimTerminator(line))
	}

	r.Method = method
	r.Path = parts[1]
	return nil
}

func trimTerminator(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
