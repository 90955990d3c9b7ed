package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/qurcode/qur/ur"
)

// decodeCommand returns the decode command.
func decodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "Reassemble a payload from part strings, one per line",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Write the payload to a file instead of stdout",
			},
		},
		Action: decodeAction,
	}
}

func decodeAction(c *cli.Context) error {
	var in io.Reader = os.Stdin
	if path := c.Args().First(); path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	// Scan part strings in whatever order and multiplicity they come,
	// reporting and skipping lines the session rejects.
	dec := ur.NewDecoder()
	scanner := bufio.NewScanner(in)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if _, err := dec.Receive(line); err != nil {
			fmt.Fprintf(os.Stderr, "line %d: %v\n", lineNum, err)
		}
		if dec.Complete() {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if !dec.Complete() {
		if dec.Received() == 0 {
			return cli.Exit("no usable parts found", 1)
		}
		return cli.Exit(fmt.Sprintf("incomplete after %d parts: %d of %d fragments recovered",
			dec.Received(), dec.Rank(), dec.SeqLen()), 1)
	}

	result, err := dec.Result()
	if err != nil {
		return err
	}
	payload, err := result.Bytes()
	if err != nil {
		return err
	}

	if out := c.String("out"); out != "" {
		return os.WriteFile(out, payload, 0o644)
	}
	_, err = os.Stdout.Write(payload)
	return err
}
