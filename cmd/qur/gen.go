package main

import (
	"bytes"
	"fmt"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/qurcode/qur/display"
	"github.com/qurcode/qur/lifehash"
	"github.com/qurcode/qur/qr"
	"github.com/qurcode/qur/ur"
)

// genCommand returns the gen command.
func genCommand() *cli.Command {
	return &cli.Command{
		Name:  "gen",
		Usage: "Generate a random payload and show it as an animated code",
		Flags: []cli.Flag{
			// Encoding flags
			&cli.BoolFlag{
				Name:    "multipart",
				Aliases: []string{"m"},
				Usage:   "Encode as a multi-part fountain sequence",
			},
			&cli.IntFlag{
				Name:    "length",
				Aliases: []string{"l"},
				Usage:   "Payload length in bytes",
				Value:   100,
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
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "Seed for the random payload (default: current time)",
			},
			// Rendering flags
			&cli.IntFlag{
				Name:    "qr-size",
				Aliases: []string{"s"},
				Usage:   "QR image size in pixels (PNG export)",
				Value:   256,
			},
			&cli.IntFlag{
				Name:  "lifehash-size",
				Usage: "Fingerprint image size in pixels (PNG export)",
				Value: 128,
			},
			&cli.IntFlag{
				Name:    "fps",
				Aliases: []string{"t"},
				Usage:   "Animation frames per second",
				Value:   4,
			},
			&cli.StringFlag{
				Name:  "ec-level",
				Usage: "QR error-correction level: L, M, Q or H",
				Value: "L",
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "Export PNG files to this directory instead of animating",
			},
		},
		Action: genAction,
	}
}

func genAction(c *cli.Context) error {
	level, err := qr.ParseLevel(c.String("ec-level"))
	if err != nil {
		return err
	}

	cfg := genConfig{
		payloadConfig: payloadConfig{
			multipart:      c.Bool("multipart"),
			fragmentLen:    c.Int("fragment-len"),
			maxFragmentLen: c.Int("max-fragment-len"),
			extra:          c.Int("extra"),
		},
		length:       c.Int("length"),
		qrSize:       c.Int("qr-size"),
		lifehashSize: c.Int("lifehash-size"),
		fps:          c.Int("fps"),
		level:        level,
	}
	if err := validateGen(cfg); err != nil {
		return err
	}

	// Payload randomness is plain math/rand; the fountain keeps its
	// own generator for index selection.
	seed := time.Now().UnixNano()
	if c.IsSet("seed") {
		seed = c.Int64("seed")
	}
	payload := make([]byte, cfg.length)
	rand.New(rand.NewSource(seed)).Read(payload)

	parts, err := buildParts(payload, cfg.payloadConfig)
	if err != nil {
		return err
	}

	if dir := c.String("out"); dir != "" {
		return exportPNGs(dir, parts, payload, cfg)
	}

	frames, err := buildFrames(parts, payload, cfg.level)
	if err != nil {
		return err
	}
	return display.Run(frames, cfg.fps)
}

// buildFrames pre-renders one animation frame per part: fingerprint
// art, half-block code art and a caption. The fingerprint covers the
// serialized resource, the same bytes a scanner reassembles, so both
// sides derive the same image.
func buildFrames(parts []string, payload []byte, level qr.Level) ([]string, error) {
	finger := display.ImageArt(lifehash.Make(ur.NewBytes(payload).CBOR()))

	frames := make([]string, 0, len(parts))
	for i, part := range parts {
		matrix, err := qr.Matrix(part, level)
		if err != nil {
			return nil, fmt.Errorf("part %d: %w", i+1, err)
		}
		caption := display.CaptionStyle.Render(
			fmt.Sprintf("part %d/%d, %d bytes", i+1, len(parts), len(payload)))
		frames = append(frames, finger+"\n"+display.QRArt(matrix)+"\n"+caption)
	}
	return frames, nil
}

// exportPNGs writes one PNG per part, the fingerprint image and the
// part strings to dir.
func exportPNGs(dir string, parts []string, payload []byte, cfg genConfig) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	for i, part := range parts {
		data, err := qr.PNG(part, cfg.level, cfg.qrSize)
		if err != nil {
			return fmt.Errorf("part %d: %w", i+1, err)
		}
		name := filepath.Join(dir, fmt.Sprintf("part-%03d.png", i+1))
		if err := os.WriteFile(name, data, 0o644); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, lifehash.MakeScaled(ur.NewBytes(payload).CBOR(), cfg.lifehashSize)); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "lifehash.png"), buf.Bytes(), 0o644); err != nil {
		return err
	}

	list := strings.Join(parts, "\n") + "\n"
	return os.WriteFile(filepath.Join(dir, "parts.txt"), []byte(list), 0o644)
}
