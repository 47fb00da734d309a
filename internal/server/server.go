package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nhdewitt/simple-http/internal/request"
	"github.com/nhdewitt/simple-http/internal/response"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
)

const (
	minAcceptDelay = 5 * time.Millisecond
	maxAcceptDelay = time.Second

	// After a rejected request, unread input is drained for at most this
	// long so the close does not reset the connection under the 400.
	drainTimeout  = 250 * time.Millisecond
	maxDrainBytes = 256 << 10

	// Responses already being written when Close runs get this long.
	closeWriteGrace = time.Second
)

var ErrBindFailure = errors.New("server: bind failure")

type Server struct {
	listener    net.Listener
	isListening atomic.Bool
	handler     Handler
	cfg         config
	slots       *semaphore.Weighted

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	conns   map[net.Conn]struct{}
	closing bool
}

// Serve binds addr and starts accepting in the background. Each accepted
// connection is served one request on its own goroutine.
func Serve(addr string, handler Handler, opts ...Option) (*Server, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBindFailure, addr, err)
	}

	s := &Server{
		listener: listener,
		handler:  handler,
		cfg:      cfg,
		conns:    make(map[net.Conn]struct{}),
	}
	if cfg.maxConns > 0 {
		s.slots = semaphore.NewWeighted(cfg.maxConns)
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.isListening.Store(true)

	s.wg.Add(1)
	go s.listen()

	cfg.logger.Info().Str("addr", listener.Addr().String()).Msg("server listening")
	return s, nil
}

// ListenAndServe runs a server until ctx is done.
func ListenAndServe(ctx context.Context, addr string, handler Handler, opts ...Option) error {
	s, err := Serve(addr, handler, opts...)
	if err != nil {
		return err
	}
	<-ctx.Done()
	return s.Close()
}

func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Close stops accepting, expires the read deadline of connections still
// being served, gives their writes closeWriteGrace, and waits for them.
func (s *Server) Close() error {
	if !s.isListening.CompareAndSwap(true, false) {
		return nil
	}

	s.cancel()
	err := s.listener.Close()

	s.mu.Lock()
	s.closing = true
	now := time.Now()
	for c := range s.conns {
		_ = c.SetReadDeadline(now)
		_ = c.SetWriteDeadline(now.Add(closeWriteGrace))
	}
	s.mu.Unlock()

	s.wg.Wait()
	s.cfg.logger.Info().Msg("server stopped")
	return err
}

func (s *Server) listen() {
	defer s.wg.Done()

	var delay time.Duration
	for {
		if err := s.acquire(); err != nil {
			return
		}

		conn, err := s.listener.Accept()
		if err != nil {
			s.release()
			if !s.isListening.Load() || errors.Is(err, net.ErrClosed) {
				return
			}

			delay = nextAcceptDelay(delay)
			s.cfg.logger.Error().Err(err).Dur("retry_in", delay).Msg("error accepting connection")
			select {
			case <-time.After(delay):
			case <-s.ctx.Done():
				return
			}
			continue
		}
		delay = 0

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			defer s.release()
			s.handle(conn)
		}()
	}
}

func nextAcceptDelay(d time.Duration) time.Duration {
	if d == 0 {
		return minAcceptDelay
	}
	return min(2*d, maxAcceptDelay)
}

func (s *Server) acquire() error {
	if s.slots == nil {
		return nil
	}
	return s.slots.Acquire(s.ctx, 1)
}

func (s *Server) release() {
	if s.slots != nil {
		s.slots.Release(1)
	}
}

// track registers conn for Close; it reports false once Close has begun.
func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.conns[conn] = struct{}{}
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}

// setDeadline applies d unless Close has already expired the connection.
func (s *Server) setDeadline(set func(time.Time) error, d time.Duration) {
	if d <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closing {
		_ = set(time.Now().Add(d))
	}
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()
	if !s.track(conn) {
		return
	}
	defer s.untrack(conn)
	log := s.cfg.logger.With().Str("remote", conn.RemoteAddr().String()).Logger()

	s.setDeadline(conn.SetReadDeadline, s.cfg.readTimeout)
	req, err := s.parse(conn)

	s.setDeadline(conn.SetWriteDeadline, s.cfg.writeTimeout)
	if err != nil {
		log.Debug().Err(err).Msg("bad request")
		s.reject(conn, log)
		return
	}

	log.Debug().Stringer("method", req.Method).Str("path", req.Path).Int("body", len(req.Body)).Msg("request")
	s.write(conn, s.respond(req, log), log)
}

// parse reads one request; a fault inside the parser becomes an error.
func (s *Server) parse(conn net.Conn) (req *request.Request, err error) {
	defer func() {
		if r := recover(); r != nil {
			req, err = nil, fmt.Errorf("request parser panicked: %v", r)
		}
	}()
	return request.RequestFromReader(bufio.NewReader(conn), request.WithMaxBodySize(s.cfg.maxBodySize))
}

// reject sends the bare 400, half-closes and drains what the peer already
// sent before the deferred Close.
func (s *Server) reject(conn net.Conn, log zerolog.Logger) {
	s.write(conn, []byte(response.BadRequestLine), log)
	if cw, ok := conn.(interface{ CloseWrite() error }); ok {
		_ = cw.CloseWrite()
	}
	s.setDeadline(conn.SetReadDeadline, drainTimeout)
	_, _ = io.Copy(io.Discard, io.LimitReader(conn, maxDrainBytes))
}

// respond runs the handler and serializes its result. Anything that keeps
// a response from being built turns into a 500.
func (s *Server) respond(req *request.Request, log zerolog.Logger) (out []byte) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("handler panicked, sending 500")
			out = internalServerError()
		}
	}()

	resp := s.handler(req)
	if resp == nil {
		log.Error().Msg("handler returned no response, sending 500")
		return internalServerError()
	}

	b, err := resp.Bytes()
	if err != nil {
		log.Error().Err(err).Int("code", int(resp.Code)).Msg("cannot serialize response, sending 500")
		return internalServerError()
	}
	return b
}

func (s *Server) write(conn net.Conn, b []byte, log zerolog.Logger) {
	if _, err := conn.Write(b); err != nil {
		log.Debug().Err(err).Msg("write failed")
	}
}

func internalServerError() []byte {
	b, _ := response.WithCode(response.StatusInternalServerError, "").Bytes()
	return b
}
