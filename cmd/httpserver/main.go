package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nhdewitt/simple-http/internal/calc"
	"github.com/nhdewitt/simple-http/internal/server"
	"github.com/rs/zerolog"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:7878", "address to listen on")
	level := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	readTimeout := flag.Duration("read-timeout", server.DefaultReadTimeout, "deadline for reading one request")
	writeTimeout := flag.Duration("write-timeout", server.DefaultWriteTimeout, "deadline for writing one response")
	maxConns := flag.Int("max-conns", server.DefaultMaxConns, "connections served at once, 0 for no limit")
	maxBody := flag.Int64("max-body", server.DefaultMaxBodySize, "largest accepted Content-Length, 0 for no limit")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		log.Fatal().Err(err).Str("level", *level).Msg("invalid log level")
	}
	log = log.Level(lvl)

	srv, err := server.Serve(*addr, calc.Handler,
		server.WithLogger(log),
		server.WithReadTimeout(*readTimeout),
		server.WithWriteTimeout(*writeTimeout),
		server.WithMaxConns(*maxConns),
		server.WithMaxBodySize(*maxBody),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error starting server")
	}
	defer srv.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("server gracefully stopping")
}
