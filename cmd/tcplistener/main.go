package main

import (
	"bufio"
	"flag"
	"net"
	"os"

	"github.com/nhdewitt/simple-http/internal/request"
	"github.com/rs/zerolog"
)

// tcplistener prints every request it receives and closes the connection
// without answering.
func main() {
	addr := flag.String("addr", ":42069", "address to listen on")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	listener, err := net.Listen("tcp", *addr)
	if err != nil {
		log.Fatal().Err(err).Msg("error listening")
	}
	defer listener.Close()

	log.Info().Str("addr", listener.Addr().String()).Msg("listening for TCP traffic")
	for {
		c, err := listener.Accept()
		if err != nil {
			log.Fatal().Err(err).Msg("error accepting connection")
		}
		clog := log.With().Str("remote", c.RemoteAddr().String()).Logger()
		clog.Info().Msg("connection accepted")

		req, err := request.RequestFromReader(bufio.NewReader(c))
		if err != nil {
			clog.Error().Err(err).Msg("error parsing request")
			c.Close()
			continue
		}

		ev := clog.Info().
			Stringer("method", req.Method).
			Str("path", req.Path).
			Str("body", req.Body)
		hd := zerolog.Dict()
		for _, f := range req.Headers {
			hd.Str(f.Name, f.Value)
		}
		ev.Dict("headers", hd).Msg("request")

		c.Close()
		clog.Info().Msg("connection closed")
	}
}
