package main

import (
	"fmt"

	"github.com/qurcode/qur/fountain"
	"github.com/qurcode/qur/qr"
	"github.com/qurcode/qur/ur"
)

// singlePartCap is the hard cap on single-part payloads. A part
// string spends two minimal bytewords characters per byte of the
// CBOR envelope (payload plus a 3-byte header at this size) and the
// 4-byte checksum, after a 9-character scheme prefix, and
// 2*(1465+3+4)+9 is 2953, the byte capacity of a version 40 code at
// level L.
const singlePartCap = 1465

// minFragmentLen floors the nominal fragment search; below this the
// part metadata outweighs the data it carries.
const minFragmentLen = 10

// payloadConfig holds the encoding choices shared by gen and encode.
type payloadConfig struct {
	multipart   bool
	fragmentLen int
	// maxFragmentLen, when positive, overrides fragmentLen with the
	// evenest length NominalFragmentLen finds under it.
	maxFragmentLen int
	extra          int
}

// genConfig holds the full gen command configuration.
type genConfig struct {
	payloadConfig
	length       int
	qrSize       int
	lifehashSize int
	fps          int
	level        qr.Level
}

// validatePayload checks the encoding choices against a payload of
// messageLen bytes, before any encoding work happens.
func validatePayload(cfg payloadConfig, messageLen int) error {
	if cfg.extra < 0 {
		return fmt.Errorf("%w: extra part count %d is negative", fountain.ErrInvalidConfig, cfg.extra)
	}

	if !cfg.multipart {
		if messageLen > singlePartCap {
			return fmt.Errorf("%w: %d byte payload exceeds the %d byte single-part cap, use --multipart",
				fountain.ErrInvalidConfig, messageLen, singlePartCap)
		}
		return nil
	}

	if messageLen < 1 {
		return fmt.Errorf("%w: empty payload cannot be fragmented", fountain.ErrInvalidConfig)
	}
	if cfg.maxFragmentLen > 0 {
		if cfg.maxFragmentLen < minFragmentLen {
			return fmt.Errorf("%w: max fragment length %d, want at least %d",
				fountain.ErrInvalidConfig, cfg.maxFragmentLen, minFragmentLen)
		}
		if cfg.maxFragmentLen > singlePartCap {
			return fmt.Errorf("%w: max fragment length %d exceeds the %d byte cap",
				fountain.ErrInvalidConfig, cfg.maxFragmentLen, singlePartCap)
		}
		return nil
	}
	if cfg.fragmentLen < 1 {
		return fmt.Errorf("%w: fragment length %d, want at least 1", fountain.ErrInvalidConfig, cfg.fragmentLen)
	}
	if cfg.fragmentLen > messageLen {
		return fmt.Errorf("%w: fragment length %d exceeds the %d byte payload",
			fountain.ErrInvalidConfig, cfg.fragmentLen, messageLen)
	}
	if cfg.fragmentLen > singlePartCap {
		return fmt.Errorf("%w: fragment length %d exceeds the %d byte cap",
			fountain.ErrInvalidConfig, cfg.fragmentLen, singlePartCap)
	}
	return nil
}

// validateGen checks the gen command configuration.
func validateGen(cfg genConfig) error {
	if cfg.length < 0 {
		return fmt.Errorf("%w: payload length %d is negative", fountain.ErrInvalidConfig, cfg.length)
	}
	if cfg.fps < 1 {
		return fmt.Errorf("%w: fps %d, want at least 1", fountain.ErrInvalidConfig, cfg.fps)
	}
	if cfg.qrSize < 1 {
		return fmt.Errorf("%w: qr size %d, want at least 1", fountain.ErrInvalidConfig, cfg.qrSize)
	}
	if cfg.lifehashSize < 1 {
		return fmt.Errorf("%w: lifehash size %d, want at least 1", fountain.ErrInvalidConfig, cfg.lifehashSize)
	}
	return validatePayload(cfg.payloadConfig, cfg.length)
}

// buildParts encodes a payload to its part strings: one single-part
// string, or the whole fountain sequence plus any extra mixed parts.
func buildParts(payload []byte, cfg payloadConfig) ([]string, error) {
	u := ur.NewBytes(payload)
	if !cfg.multipart {
		return []string{ur.Encode(u)}, nil
	}

	fragmentLen := cfg.fragmentLen
	if cfg.maxFragmentLen > 0 {
		var err error
		fragmentLen, err = fountain.NominalFragmentLen(len(u.CBOR()), minFragmentLen, cfg.maxFragmentLen)
		if err != nil {
			return nil, err
		}
	}

	enc, err := ur.NewEncoder(u, fragmentLen)
	if err != nil {
		return nil, err
	}
	return enc.Parts(enc.SeqLen() + cfg.extra)
}
