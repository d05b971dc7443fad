// Package interactive provides the interactive command-line interface
// for feeding hand-written bus traffic to the decoder.
package interactive

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/notecard-tools/soi2c-go/pkg/analyzer"
	"github.com/notecard-tools/soi2c-go/pkg/bus"
	"github.com/notecard-tools/soi2c-go/pkg/soi2c"
)

// Config configures a Shell.
type Config struct {
	// Address is the decoder's target address. 0 selects the default.
	Address uint8

	// Logger is the optional logger for operational output.
	// If nil, logging is disabled.
	Logger *slog.Logger
}

// Shell turns typed commands into bus frames and prints what the decoder
// makes of them.
type Shell struct {
	out     io.Writer
	session *analyzer.Session
	builder *bus.Builder
	base    time.Time
}

// NewShell creates a Shell that writes its output to out.
func NewShell(cfg Config, out io.Writer) (*Shell, error) {
	session, err := analyzer.New(analyzer.Config{
		Decoder: soi2c.Config{Address: cfg.Address, Logger: cfg.Logger},
		Logger:  cfg.Logger,
	})
	if err != nil {
		return nil, err
	}

	base := time.Now().UTC().Truncate(time.Second)
	return &Shell{
		out:     out,
		session: session,
		builder: bus.NewBuilder(base),
		base:    base,
	}, nil
}

// Session returns the analyzer session the shell feeds.
func (s *Shell) Session() *analyzer.Session {
	return s.session
}

// Execute runs one command line. It returns false when the shell should exit.
func (s *Shell) Execute(line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return true
	}

	cmd, rest, _ := strings.Cut(input, " ")
	cmd = strings.ToLower(cmd)
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "start", "s":
		s.builder.Start()
		s.flush()

	case "addr", "a":
		s.cmdAddr(rest)

	case "data", "d":
		s.cmdData(rest)

	case "text", "t":
		s.cmdText(rest)

	case "stop", "p":
		s.builder.Stop()
		s.flush()

	case "tx":
		s.cmdTx(rest)

	case "state":
		s.cmdState()

	case "stats":
		s.session.Stats().Print(s.out)

	case "quit", "exit", "q":
		fmt.Fprintln(s.out, "Exiting...")
		return false

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (s *Shell) printHelp() {
	fmt.Fprintf(s.out, `
Serial-over-I2C Decoder Commands (target 0x%02X):
  Frames:
    start              - Start condition
    addr <a> r|w       - Address frame (e.g. addr 0x17 r)
    data <b>...        - One data frame per byte (hex, binary or decimal)
    text "..."         - One data frame per character (Go string escapes)
    stop               - Stop condition

  Shortcuts:
    tx r|w <b>...      - Whole transaction to the target address
    tx r|w "..."       - Same, with text as payload

  Inspection:
    state              - Show the decoder's transaction state
    stats              - Show session statistics

  General:
    help               - Show this help
    quit               - Exit
`, s.session.Decoder().Address())
}

func (s *Shell) cmdAddr(args string) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		fmt.Fprintln(s.out, "Usage: addr <address> r|w")
		return
	}
	addr, err := parseByte(fields[0])
	if err != nil || addr > bus.MaxAddress {
		fmt.Fprintf(s.out, "Invalid address: %s\n", fields[0])
		return
	}
	read, err := parseDirection(fields[1])
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	s.builder.Address(addr, read)
	s.flush()
}

func (s *Shell) cmdData(args string) {
	data, err := parseBytes(args)
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	if len(data) == 0 {
		fmt.Fprintln(s.out, "Usage: data <byte>...")
		return
	}
	s.builder.Data(data...)
	s.flush()
}

func (s *Shell) cmdText(args string) {
	text, err := parseText(args)
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	s.builder.Text(text)
	s.flush()
}

func (s *Shell) cmdTx(args string) {
	dir, payload, _ := strings.Cut(args, " ")
	read, err := parseDirection(dir)
	if err != nil {
		fmt.Fprintln(s.out, "Usage: tx r|w <bytes|\"text\">")
		return
	}

	payload = strings.TrimSpace(payload)
	var data []byte
	if strings.HasPrefix(payload, `"`) {
		text, err := parseText(payload)
		if err != nil {
			fmt.Fprintln(s.out, err)
			return
		}
		data = []byte(text)
	} else if data, err = parseBytes(payload); err != nil {
		fmt.Fprintln(s.out, err)
		return
	}

	s.builder.Transaction(s.session.Decoder().Address(), read, data...)
	s.flush()
}

func (s *Shell) cmdState() {
	st := s.session.Decoder().State()
	fmt.Fprintf(s.out, "Direction: %s\n", st.Direction)
	if st.Ignored {
		fmt.Fprintln(s.out, "Ignored:   yes (other address)")
	}
	fmt.Fprintf(s.out, "Header 1:  %s\n", optByte(st.Header1))
	fmt.Fprintf(s.out, "Header 2:  %s\n", optByte(st.Header2))
	fmt.Fprintf(s.out, "Payload:   %d bytes %q\n", len(st.Payload), st.Payload)
}

// flush feeds the frames built so far to the decoder and prints the results.
func (s *Shell) flush() {
	for _, f := range s.builder.Frames() {
		ev, err := s.session.Feed(f)
		if err != nil {
			fmt.Fprintf(s.out, "  %s  fault: %v\n", s.stamp(f.End), err)
			continue
		}
		if ev != nil {
			fmt.Fprintf(s.out, "  %s  [%-7s] %s\n", s.stamp(ev.Start), ev.Kind, soi2c.Format(*ev))
		}
	}
	s.builder.Reset()
}

func (s *Shell) stamp(t time.Time) string {
	return fmt.Sprintf("+%dus", t.Sub(s.base).Microseconds())
}

func optByte(b *byte) string {
	if b == nil {
		return "-"
	}
	return fmt.Sprintf("0x%02X (%d)", *b, *b)
}

func parseByte(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, err
	}
	return byte(v), nil
}

func parseBytes(args string) ([]byte, error) {
	fields := strings.Fields(args)
	data := make([]byte, 0, len(fields))
	for _, f := range fields {
		b, err := parseByte(f)
		if err != nil {
			return nil, fmt.Errorf("invalid byte: %s", f)
		}
		data = append(data, b)
	}
	return data, nil
}

func parseText(args string) (string, error) {
	if strings.HasPrefix(args, `"`) {
		text, err := strconv.Unquote(args)
		if err != nil {
			return "", fmt.Errorf("invalid text: %s", args)
		}
		return text, nil
	}
	return args, nil
}

func parseDirection(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "r", "read":
		return true, nil
	case "w", "write":
		return false, nil
	default:
		return false, fmt.Errorf("invalid direction: %q (must be r or w)", s)
	}
}

// Run reads commands from the terminal until the user exits or ctx is done.
func Run(ctx context.Context, cfg Config) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "soi2c> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("start"),
			readline.PcItem("addr"),
			readline.PcItem("data"),
			readline.PcItem("text"),
			readline.PcItem("stop"),
			readline.PcItem("tx", readline.PcItem("r"), readline.PcItem("w")),
			readline.PcItem("state"),
			readline.PcItem("stats"),
			readline.PcItem("help"),
			readline.PcItem("quit"),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	sh, err := NewShell(cfg, rl.Stdout())
	if err != nil {
		return err
	}
	sh.printHelp()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(rl.Stdout(), "Exiting...")
			return nil
		}

		if !sh.Execute(line) {
			return nil
		}
	}
}
