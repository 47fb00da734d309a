package response

import (
	"bytes"
	"io"

	"github.com/nhdewitt/simple-http/internal/headers"
)

// BadRequestLine is written verbatim when a request cannot be parsed.
const BadRequestLine = "HTTP/1.1 400 BAD REQUEST"

type Response struct {
	Code    StatusCode
	Body    string
	headers headers.Headers
}

func OK(body string) *Response {
	return WithCode(StatusOK, body)
}

func WithCode(code StatusCode, body string) *Response {
	return &Response{
		Code:    code,
		Body:    body,
		headers: headers.NewHeaders(),
	}
}

// SetHeaders replaces every extra header. Content-Length is always
// computed from Body and is dropped here.
func (r *Response) SetHeaders(fields ...headers.Field) {
	r.headers = headers.FromFields(fields...)
	r.headers.Del("Content-Length")
}

func (r *Response) Headers() headers.Headers {
	if r.headers == nil {
		r.headers = headers.NewHeaders()
	}
	return r.headers
}

// Write serializes the response to w. An unknown Code fails with
// ErrUnknownStatusCode before any byte is written.
func (r *Response) Write(w io.Writer) error {
	rw := NewWriter(w)
	if err := rw.WriteStatusLine(r.Code); err != nil {
		return err
	}
	if err := rw.WriteHeaders(r.headers, len(r.Body)); err != nil {
		return err
	}
	_, err := rw.WriteBody([]byte(r.Body))
	return err
}

func (r *Response) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DefaultHeaders are the headers the bundled handlers send with plain text.
func DefaultHeaders() []headers.Field {
	return []headers.Field{
		{Name: "Connection", Value: "close"},
		{Name: "Content-Type", Value: "text/plain"},
	}
}
