package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/arloliu/pcproof/entity"
)

var completer = readline.NewPrefixCompleter(
	readline.PcItem(".help"),
	readline.PcItem(".exit"),
	readline.PcItem(".block",
		readline.PcItem("on"),
		readline.PcItem("off"),
	),
	readline.PcItem(".varint",
		readline.PcItem("base128"),
		readline.PcItem("compactsize"),
	),
	readline.PcItem(".stats"),
)

const shellHelp = `Enter a hex-encoded proof to decode it.
  .block on|off            treat input as a raw block (proof at byte 88)
  .varint base128|compact  switch the varint scheme
  .stats                   show how many distinct proofs were decoded
  .exit                    leave the shell
`

var errQuit = errors.New("quit")

func (a *app) shell() error {
	historyFile := a.cfg.HistoryFile
	if historyFile == "" {
		historyFile = filepath.Join(os.TempDir(), ".pcptool_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          a.prompt(),
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer,
	})
	if err != nil {
		return fmt.Errorf("initialize readline: %w", err)
	}
	defer rl.Close()

	fmt.Fprint(a.out, "pcptool shell. Enter .help for usage hints.\n")

	for {
		rl.SetPrompt(a.prompt())

		line, readErr := rl.Readline()
		if readErr != nil {
			if errors.Is(readErr, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil
				}

				continue
			}
			if errors.Is(readErr, io.EOF) {
				return nil
			}

			return readErr
		}

		if err := a.evalLine(line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			a.log.Error().Err(err).Msg("decode failed")
		}
	}
}

func (a *app) prompt() string {
	if a.cfg.RawBlock {
		return fmt.Sprintf("pcp[%s,block]> ", a.cfg.Varint)
	}

	return fmt.Sprintf("pcp[%s]> ", a.cfg.Varint)
}

// evalLine runs one shell line. It returns errQuit when the shell should exit.
func (a *app) evalLine(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	if strings.HasPrefix(line, ".") {
		return a.evalCommand(strings.Fields(line))
	}

	data, err := parseHex(line)
	if err != nil {
		return err
	}
	l, err := a.decodeProof(data, a.cfg.RawBlock)
	if err != nil {
		return err
	}
	a.track("shell", l)

	return a.printObject(l)
}

func (a *app) evalCommand(parts []string) error {
	switch strings.ToLower(parts[0]) {
	case ".exit", ".quit":
		return errQuit
	case ".help":
		_, err := fmt.Fprint(a.out, shellHelp)
		return err
	case ".stats":
		_, err := fmt.Fprintf(a.out, "%d distinct proofs, collision: %t\n", a.seen.Count(), a.seen.HasCollision())
		return err
	case ".block":
		if len(parts) != 2 || (parts[1] != "on" && parts[1] != "off") {
			return fmt.Errorf(".block expects on or off: %w", errUsage)
		}
		a.cfg.RawBlock = parts[1] == "on"

		return nil
	case ".varint":
		if len(parts) != 2 {
			return fmt.Errorf(".varint expects a scheme: %w", errUsage)
		}

		return a.switchVarint(parts[1])
	default:
		return fmt.Errorf("unknown command %q: %w", parts[0], errUsage)
	}
}

func (a *app) switchVarint(name string) error {
	cfg := a.cfg
	if err := cfg.setVarint(name); err != nil {
		return err
	}

	dec, err := entity.NewDecoder(cfg.codecOptions()...)
	if err != nil {
		return err
	}
	enc, err := entity.NewEncoder(entity.WithVarint(cfg.Varint))
	if err != nil {
		return err
	}

	a.cfg, a.dec, a.enc = cfg, dec, enc
	a.log.Debug().Str("varint", cfg.Varint.String()).Msg("varint scheme switched")

	return nil
}

