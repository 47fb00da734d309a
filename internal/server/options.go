package server

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultReadTimeout  = 30 * time.Second
	DefaultWriteTimeout = 30 * time.Second
	DefaultMaxConns     = 256
	DefaultMaxBodySize  = 10 << 20
)

type config struct {
	logger       zerolog.Logger
	readTimeout  time.Duration
	writeTimeout time.Duration
	maxConns     int64
	maxBodySize  int64
}

type Option func(*config)

func defaultConfig() config {
	return config{
		logger:       zerolog.New(os.Stderr).With().Timestamp().Logger(),
		readTimeout:  DefaultReadTimeout,
		writeTimeout: DefaultWriteTimeout,
		maxConns:     DefaultMaxConns,
		maxBodySize:  DefaultMaxBodySize,
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithReadTimeout bounds the whole request read: status line, headers and
// body. Zero disables the deadline.
func WithReadTimeout(d time.Duration) Option {
	return func(c *config) { c.readTimeout = d }
}

func WithWriteTimeout(d time.Duration) Option {
	return func(c *config) { c.writeTimeout = d }
}

// WithMaxConns caps connections served at once; 0 means no cap.
func WithMaxConns(n int) Option {
	return func(c *config) {
		if n < 0 {
			n = 0
		}
		c.maxConns = int64(n)
	}
}

// WithMaxBodySize answers 400 to any request declaring a longer body; 0
// means no limit. Bodies are read as they arrive either way.
func WithMaxBodySize(n int64) Option {
	return func(c *config) { c.maxBodySize = n }
}
