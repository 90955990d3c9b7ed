// Package main provides the qur command, a tool for moving binary
// payloads through animated QR codes.
//
// Usage:
//
//	qur <command> [options]
//
// gen renders a random payload as an animated code or PNG files,
// encode turns a payload into part strings, and decode reassembles a
// payload from part strings collected in any order.
package main

import (
	"errors"
	"fmt"
	"os"

	logging "github.com/ipfs/go-log/v2"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:           "qur",
		Usage:          "Transfer binary payloads through animated QR codes",
		ExitErrHandler: exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
				Value: "error",
			},
		},
		Before: setupLogging,
		Commands: []*cli.Command{
			genCommand(),
			encodeCommand(),
			decodeCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		// ExitErrHandler already handled cli.ExitCoder errors. This
		// branch handles unexpected errors that weren't wrapped.
		os.Exit(1)
	}
}

// setupLogging applies the requested log level to every subsystem
// before any command runs.
func setupLogging(c *cli.Context) error {
	level, err := logging.LevelFromString(c.String("log-level"))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.String("log-level"), err)
	}
	logging.SetAllLoggers(level)
	return nil
}

// exitErrHandler handles errors from the CLI, preserving exit codes
// from cli.Exit().
func exitErrHandler(_ *cli.Context, err error) {
	if err == nil {
		return
	}

	var exitCoder cli.ExitCoder
	if errors.As(err, &exitCoder) {
		code := exitCoder.ExitCode()
		msg := exitCoder.Error()

		// cli.Exit("", N).Error() returns "exit status N", skip those
		if msg != "" && msg != fmt.Sprintf("exit status %d", code) {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(code)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
