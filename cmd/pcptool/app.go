package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arloliu/pcproof/compress"
	"github.com/arloliu/pcproof/entity"
	"github.com/arloliu/pcproof/errs"
	"github.com/arloliu/pcproof/format"
	"github.com/arloliu/pcproof/internal/collision"
	"github.com/arloliu/pcproof/internal/hash"
	"github.com/arloliu/pcproof/section"
)

type app struct {
	cfg  config
	log  zerolog.Logger
	dec  *entity.Decoder
	enc  *entity.Encoder
	seen *collision.Tracker
	in   io.Reader
	out  io.Writer
}

func newApp(cfg config, logger zerolog.Logger, in io.Reader, out io.Writer) (*app, error) {
	dec, err := entity.NewDecoder(cfg.codecOptions()...)
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}
	enc, err := entity.NewEncoder(entity.WithVarint(cfg.Varint))
	if err != nil {
		return nil, fmt.Errorf("create encoder: %w", err)
	}

	return &app{
		cfg:  cfg,
		log:  logger,
		dec:  dec,
		enc:  enc,
		seen: collision.NewTracker(),
		in:   in,
		out:  out,
	}, nil
}

// readInput returns the contents of a file, or of stdin for "-" or "".
func (a *app) readInput(name string) ([]byte, error) {
	if name == "" || name == "-" {
		return io.ReadAll(a.in)
	}

	return os.ReadFile(name)
}

// readHexArg returns the bytes of a hex argument, or of hex read from stdin
// for "-". Whitespace inside the hex text is ignored.
func (a *app) readHexArg(arg string) ([]byte, error) {
	text := arg
	if arg == "-" {
		data, err := io.ReadAll(a.in)
		if err != nil {
			return nil, err
		}
		text = string(data)
	}

	return parseHex(text)
}

func parseHex(text string) ([]byte, error) {
	b, err := hex.DecodeString(strings.Join(strings.Fields(text), ""))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidHex, err)
	}

	return b, nil
}

// decodeProof decodes one proof from data, either as a bare entity stream or
// as a raw block.
func (a *app) decodeProof(data []byte, rawBlock bool) (entity.List, error) {
	if rawBlock {
		header, _, err := section.SplitBlock(data)
		if err != nil {
			return entity.List{}, err
		}
		l, err := a.dec.DecodeRawBlock(data)
		if err != nil {
			return entity.List{}, err
		}
		a.log.Debug().Int("block_size", len(data)).
			Str("header_digest", fmt.Sprintf("%016x", hash.Digest(header))).
			Int("entities", l.Len()).Msg("decoded raw block proof")

		return l, nil
	}

	l, n, err := a.dec.DecodePrefix(data)
	if err != nil {
		return entity.List{}, err
	}
	if trailing := len(data) - n; trailing > 0 {
		a.log.Debug().Int("consumed", n).Int("trailing", trailing).Msg("ignoring bytes after sentinel")
	}

	return l, nil
}

// track records l in the duplicate tracker and logs repeats.
func (a *app) track(source string, l entity.List) {
	digest := l.Digest()
	err := a.seen.Track(digest, l.Hex())
	switch {
	case errors.Is(err, errs.ErrDuplicateProof):
		a.log.Warn().Str("source", source).Str("digest", fmt.Sprintf("%016x", digest)).Msg("duplicate proof")
	case err != nil:
		a.log.Warn().Err(err).Str("source", source).Msg("proof not tracked")
	default:
		a.log.Debug().Str("source", source).Str("digest", fmt.Sprintf("%016x", digest)).
			Int("entities", l.Len()).Msg("proof decoded")
	}
}

func (a *app) printObject(l entity.List) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")

	return enc.Encode(l.ToObject())
}

func (a *app) decode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	rawBlock := fs.Bool("block", a.cfg.RawBlock, "input is a raw block with the proof at byte 88")
	hexInput := fs.Bool("hex", false, "input is hex text")
	if err := fs.Parse(args); err != nil {
		return err
	}

	inputs := fs.Args()
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}

	for _, name := range inputs {
		data, err := a.readInput(name)
		if err != nil {
			return err
		}
		if *hexInput {
			if data, err = parseHex(string(data)); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}

		l, err := a.decodeProof(data, *rawBlock)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		a.track(name, l)

		if err := a.printObject(l); err != nil {
			return err
		}
	}

	if a.seen.HasCollision() {
		a.log.Warn().Msg("digest collision between distinct proofs")
	}

	return nil
}

func (a *app) encode(args []string) error {
	name := "-"
	if len(args) > 0 {
		name = args[0]
	}

	data, err := a.readInput(name)
	if err != nil {
		return err
	}

	var l entity.List
	if err := json.Unmarshal(data, &l); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	a.log.Debug().Int("entities", l.Len()).Int("size", a.enc.Size(l)).Msg("encoding proof")

	_, err = fmt.Fprintln(a.out, a.enc.EncodeHex(l))

	return err
}

func (a *app) pack(args []string) error {
	fs := flag.NewFlagSet("pack", flag.ContinueOnError)
	compression := fs.String("c", a.cfg.Compression.String(), "compression: none, zstd, s2 or lz4")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("pack expects one hex argument: %w", errUsage)
	}

	ct, ok := format.ParseCompressionType(strings.ToLower(*compression))
	if !ok {
		return fmt.Errorf("compression %q: %w", *compression, errs.ErrInvalidCompression)
	}

	data, err := a.readHexArg(fs.Arg(0))
	if err != nil {
		return err
	}
	l, err := a.dec.Decode(data)
	if err != nil {
		return err
	}

	packed, err := a.enc.Pack(l, ct)
	if err != nil {
		return err
	}

	stats := compress.CompressionStats{
		Algorithm:      ct,
		OriginalSize:   int64(a.enc.Size(l)),
		CompressedSize: int64(len(packed)),
	}
	a.log.Info().Str("compression", ct.String()).
		Int64("original", stats.OriginalSize).
		Int64("packed", stats.CompressedSize).
		Float64("savings_pct", stats.SpaceSavings()).
		Msg("packed proof")

	_, err = fmt.Fprintln(a.out, hex.EncodeToString(packed))

	return err
}

func (a *app) unpack(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("unpack expects one hex argument: %w", errUsage)
	}

	data, err := a.readHexArg(args[0])
	if err != nil {
		return err
	}
	l, err := a.dec.Unpack(data)
	if err != nil {
		return err
	}
	a.log.Debug().Str("compression", format.CompressionType(data[0]).String()).Int("entities", l.Len()).Msg("unpacked proof")

	return a.printObject(l)
}
