package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// tcpsender reads a raw request from stdin, one line per header, ending at
// EOF. Lines are sent CRLF-terminated; a body given with -body is appended
// after the blank line together with its Content-Length.
func main() {
	addr := flag.String("addr", "127.0.0.1:7878", "server address")
	body := flag.String("body", "", "request body")
	timeout := flag.Duration("timeout", 10*time.Second, "deadline for the whole exchange")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	var sb strings.Builder
	r := bufio.NewReader(os.Stdin)
	for {
		fmt.Fprint(os.Stderr, "> ")
		line, err := r.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line != "" {
			sb.WriteString(line + "\r\n")
		}
		if err != nil {
			if err != io.EOF {
				log.Error().Err(err).Msg("input error")
			}
			break
		}
	}
	if *body != "" {
		fmt.Fprintf(&sb, "Content-Length: %d\r\n", len(*body))
	}
	sb.WriteString("\r\n" + *body)

	conn, err := net.DialTimeout("tcp", *addr, *timeout)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting")
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(*timeout))

	if _, err := io.WriteString(conn, sb.String()); err != nil {
		log.Fatal().Err(err).Msg("write error")
	}
	if _, err := io.Copy(os.Stdout, conn); err != nil {
		log.Error().Err(err).Msg("read error")
	}
	fmt.Println()
}
