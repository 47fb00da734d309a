package response

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nhdewitt/simple-http/internal/headers"
)

type writerState int

const (
	StateWritingStatusLine writerState = iota
	StateWritingHeaders
	StateWritingBody
	StateDone
)

var (
	ErrUnknownStatusCode = errors.New("response: unknown status code")
	ErrWriterState       = errors.New("response: writer state out-of-order")
)

// Writer emits one message and refuses to write its parts out of order.
type Writer struct {
	writer io.Writer
	state  writerState
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{
		writer: w,
		state:  StateWritingStatusLine,
	}
}

// WriteStatusLine writes nothing when the code is not a known one.
func (w *Writer) WriteStatusLine(statusCode StatusCode) error {
	if w.state != StateWritingStatusLine {
		return ErrWriterState
	}

	reason, ok := statusCode.Reason()
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownStatusCode, int(statusCode))
	}
	if _, err := fmt.Fprintf(w.writer, "HTTP/1.1 %d %s\r\n", int(statusCode), reason); err != nil {
		return err
	}

	w.state = StateWritingHeaders
	return nil
}

// WriteHeaders writes h with names as they were set, then the computed
// Content-Length and the blank separator line. A Content-Length in h is
// ignored.
func (w *Writer) WriteHeaders(h headers.Headers, contentLength int) error {
	if w.state != StateWritingHeaders {
		return ErrWriterState
	}

	for _, f := range h {
		if strings.EqualFold(f.Name, "Content-Length") {
			continue
		}
		line := f.Name + ": " + f.Value
		if _, err := io.WriteString(w.writer, line+"\r\n"); err != nil {
			return fmt.Errorf("error writing header: %w", err)
		}
	}
	if _, err := io.WriteString(w.writer, "Content-Length: "+strconv.Itoa(contentLength)+"\r\n\r\n"); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	w.state = StateWritingBody
	return nil
}

func (w *Writer) WriteBody(p []byte) (int, error) {
	if w.state != StateWritingBody {
		return 0, ErrWriterState
	}

	w.state = StateDone
	return w.writer.Write(p)
}
