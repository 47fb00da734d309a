package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/nhdewitt/simple-http/internal/calc"
	"github.com/nhdewitt/simple-http/internal/server"
	"github.com/rs/zerolog"
)

const defaultAddr = "127.0.0.1:7878"

type commandKind int

const (
	cmdExit commandKind = iota
	cmdServe
	cmdFormula
)

type command struct {
	kind  commandKind
	input string
}

func parseCommand(line string) command {
	switch line {
	case "exit":
		return command{kind: cmdExit}
	case "serve":
		return command{kind: cmdServe}
	default:
		return command{kind: cmdFormula, input: line}
	}
}

// getLinesChannel yields lines from r without their terminator and closes
// the channel at EOF.
func getLinesChannel(r io.Reader) <-chan string {
	out := make(chan string)

	go func() {
		defer close(out)

		sc := bufio.NewScanner(r)
		for sc.Scan() {
			out <- strings.TrimSuffix(sc.Text(), "\r")
		}
	}()

	return out
}

type repl struct {
	out   io.Writer
	serve func() error
}

// handle runs one command and reports whether to keep reading.
func (r *repl) handle(cmd command) bool {
	switch cmd.kind {
	case cmdExit:
		return false
	case cmdServe:
		if err := r.serve(); err != nil {
			fmt.Fprintf(r.out, "Error: %v\n", err)
		}
	case cmdFormula:
		v, err := calc.Evaluate(cmd.input)
		if err != nil {
			fmt.Fprintln(r.out, err)
			break
		}
		fmt.Fprintf(r.out, "%s = %s\n", cmd.input, calc.FormatResult(v))
	}
	return true
}

func (r *repl) run(in io.Reader) {
	fmt.Fprintln(r.out, "Welcome to the calculator!")

	lines := getLinesChannel(in)
	for {
		fmt.Fprintln(r.out, "Enter your input: ")
		line, ok := <-lines
		if !ok || !r.handle(parseCommand(line)) {
			break
		}
	}
	fmt.Fprintln(r.out, "Good bye!")
}

func main() {
	addr := flag.String("addr", defaultAddr, "address the server listens on")
	level := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level %q: %v\n", *level, err)
		os.Exit(2)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()

	r := &repl{
		out: os.Stdout,
		serve: func() error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			fmt.Fprintf(os.Stdout, "Serving on %s, press Ctrl-C to return\n", *addr)
			return server.ListenAndServe(ctx, *addr, calc.Handler, server.WithLogger(logger))
		},
	}
	r.run(os.Stdin)
}
