package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

// encodeCommand returns the encode command.
func encodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "encode",
		Usage:     "Encode a payload to part strings, one per line",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "multipart",
				Aliases: []string{"m"},
				Usage:   "Encode as a multi-part fountain sequence",
			},
			&cli.IntFlag{
				Name:    "fragment-len",
				Aliases: []string{"f"},
				Usage:   "Fragment length in bytes (multipart)",
				Value:   100,
			},
			&cli.IntFlag{
				Name:  "max-fragment-len",
				Usage: "Spread the payload evenly over fragments of at most this many bytes, overriding --fragment-len (multipart)",
			},
			&cli.IntFlag{
				Name:    "extra",
				Aliases: []string{"e"},
				Usage:   "Extra mixed parts beyond the sequence length (multipart)",
				Value:   0,
			},
		},
		Action: encodeAction,
	}
}

func encodeAction(c *cli.Context) error {
	payload, err := readInput(c.Args().First())
	if err != nil {
		return err
	}

	cfg := payloadConfig{
		multipart:      c.Bool("multipart"),
		fragmentLen:    c.Int("fragment-len"),
		maxFragmentLen: c.Int("max-fragment-len"),
		extra:          c.Int("extra"),
	}
	if err := validatePayload(cfg, len(payload)); err != nil {
		return err
	}

	parts, err := buildParts(payload, cfg)
	if err != nil {
		return err
	}
	for _, part := range parts {
		fmt.Println(part)
	}
	return nil
}

// readInput reads the whole payload from a file, or from stdin when
// the path is empty or "-".
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
