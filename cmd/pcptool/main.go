// Command pcptool inspects and converts PacketCrypt proofs.
//
// Usage:
//
//	pcptool [-config file] [-log-level level] [-varint scheme] <command> [args]
//
// Commands:
//
//	decode [-block] [-hex] [file|-]...  print proofs in object form (JSON)
//	encode [file|-]                     encode a JSON object form to hex
//	pack [-c compression] <hex|->       compress a proof into a packed envelope
//	unpack <hex|->                      decode a packed envelope
//	shell                               interactive decoder
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
			log.Error().Err(err).Msg("pcptool failed")
		}
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("pcptool", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a TOML config file")
	logLevel := fs.String("log-level", "", "log level, overrides config and "+envLogLevel)
	varint := fs.String("varint", "", "varint scheme: base128 or compactsize")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "pcptool - inspect and convert PacketCrypt proofs\n\n")
		fmt.Fprintf(fs.Output(), "Usage: pcptool [options] <command> [args]\n\n")
		fmt.Fprintf(fs.Output(), "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(fs.Output(), "\nCommands:\n")
		fmt.Fprintf(fs.Output(), "  decode [-block] [-hex] [file|-]...  print proofs in object form\n")
		fmt.Fprintf(fs.Output(), "  encode [file|-]                     encode an object form to hex\n")
		fmt.Fprintf(fs.Output(), "  pack [-c compression] <hex|->       compress a proof\n")
		fmt.Fprintf(fs.Output(), "  unpack <hex|->                      decompress and decode a packed proof\n")
		fmt.Fprintf(fs.Output(), "  shell                               interactive decoder\n")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return err
	}
	if *logLevel != "" {
		if err := cfg.setLogLevel(*logLevel); err != nil {
			return err
		}
	}
	if *varint != "" {
		if err := cfg.setVarint(*varint); err != nil {
			return err
		}
	}

	logger := initLogger(stderr, cfg.LogLevel)
	a, err := newApp(cfg, logger, stdin, stdout)
	if err != nil {
		return err
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	logger.Debug().Str("command", cmd).Str("varint", cfg.Varint.String()).Msg("starting")

	switch cmd {
	case "decode":
		return a.decode(rest)
	case "encode":
		return a.encode(rest)
	case "pack":
		return a.pack(rest)
	case "unpack":
		return a.unpack(rest)
	case "shell":
		return a.shell()
	case "help":
		fs.SetOutput(stdout)
		fs.Usage()
		return nil
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}
