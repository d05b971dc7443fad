// Command soi2c decodes Blues Notecard Serial-over-I2C traffic.
//
// Input is either a Saleae Logic 2 I2C analyzer CSV export or a CBOR
// capture file written by "soi2c convert".
//
// Usage:
//
//	soi2c <command> [flags] <args>
//
// Commands:
//
//	decode       Decode a capture and print protocol events
//	convert      Convert a CSV export into a capture file
//	check        Run YAML decode vectors against the decoder
//	interactive  Type frames by hand and watch them decode
//
// Examples:
//
//	# Decode a Logic 2 export
//	soi2c decode capture.csv
//
//	# Decode a Notecard on a non-default address and keep a protocol log
//	soi2c decode -address 0x18 -protocol-log capture.nlog capture.csv
//
//	# Decode one second of a capture as JSON
//	soi2c decode -json -from 2026-01-28T10:00:00Z -to 2026-01-28T10:00:01Z capture.i2c
//
//	# Check the bundled vectors
//	soi2c check internal/vectors/testdata
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/notecard-tools/soi2c-go/cmd/soi2c/interactive"
	"github.com/notecard-tools/soi2c-go/pkg/bus"
)

const usage = `soi2c - Notecard Serial-over-I2C Decoder

Usage:
  soi2c <command> [flags] <args>

Commands:
  decode       Decode a capture and print protocol events
  convert      Convert a CSV export into a capture file
  check        Run YAML decode vectors against the decoder
  interactive  Type frames by hand and watch them decode

Use "soi2c <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "decode":
		err = cmdDecode(ctx, args)
	case "convert":
		err = cmdConvert(args)
	case "check":
		err = cmdCheck(ctx, args)
	case "interactive":
		err = cmdInteractive(ctx, args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newFlagSet(name, synopsis, args string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `soi2c %s - %s

Usage:
  soi2c %s [flags] %s

Flags:
`, name, synopsis, name, args)
		fs.PrintDefaults()
	}
	return fs
}

func requireArg(fs *flag.FlagSet, what string) string {
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: %s required\n", what)
		fs.Usage()
		os.Exit(1)
	}
	return fs.Arg(0)
}

func cmdDecode(ctx context.Context, args []string) error {
	fs := newFlagSet("decode", "Decode a capture and print protocol events", "<capture.csv|capture.i2c>")

	var common commonFlags
	common.register(fs)
	format := fs.String("format", FormatAuto, "Input format: auto, csv, capture")
	protocolLog := fs.String("protocol-log", "", "Record decoded traffic to this .nlog file")
	logFrames := fs.Bool("log-frames", false, "Also record raw bus frames in the protocol log")
	asJSON := fs.Bool("json", false, "Print events as JSON lines")
	trace := fs.Bool("trace", false, "Log every protocol record to stderr")
	showStats := fs.Bool("stats", false, "Print a summary after decoding")
	from := fs.String("from", "", "Skip capture frames before this time (RFC3339)")
	to := fs.String("to", "", "Skip capture frames at or after this time (RFC3339)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := requireArg(fs, "capture file")

	cfg, err := common.resolve(fs, func(cfg *Config, name string) error {
		switch name {
		case "format":
			cfg.Format = *format
		case "protocol-log":
			cfg.ProtocolLog = *protocolLog
		case "log-frames":
			cfg.LogFrames = *logFrames
		}
		return nil
	})
	if err != nil {
		return err
	}

	var window bus.Filter
	if *from != "" {
		t, err := time.Parse(time.RFC3339Nano, *from)
		if err != nil {
			return fmt.Errorf("invalid -from: %w", err)
		}
		window.TimeStart = &t
	}
	if *to != "" {
		t, err := time.Parse(time.RFC3339Nano, *to)
		if err != nil {
			return fmt.Errorf("invalid -to: %w", err)
		}
		window.TimeEnd = &t
	}

	_, err = runDecode(ctx, path, cfg, decodeOptions{
		Window: window,
		JSON:   *asJSON,
		Trace:  *trace,
		Stats:  *showStats,
	}, os.Stdout, os.Stderr)
	return err
}

func cmdConvert(args []string) error {
	fs := newFlagSet("convert", "Convert a CSV export into a capture file", "<capture.csv>")
	output := fs.String("o", "", "Output capture file (required)")
	force := fs.Bool("force", false, "Overwrite an existing output file")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	in := requireArg(fs, "CSV file")
	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	n, err := runConvert(in, *output, *force)
	if err != nil {
		return err
	}
	fmt.Printf("Converted %d frames to %s\n", n, *output)
	return nil
}

func cmdCheck(ctx context.Context, args []string) error {
	fs := newFlagSet("check", "Run YAML decode vectors against the decoder", "<dir|vector.yaml>")
	logLevel := fs.String("log-level", "warn", "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	path := requireArg(fs, "vector path")

	// Vectors carry their own target address.
	cfg := DefaultConfig()
	cfg.LogLevel = *logLevel
	if err := cfg.Validate(); err != nil {
		return err
	}

	failed, err := runCheck(ctx, path, os.Stdout, cfg.newLogger(os.Stderr))
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d vector(s) failed", failed)
	}
	return nil
}

func cmdInteractive(ctx context.Context, args []string) error {
	fs := newFlagSet("interactive", "Type frames by hand and watch them decode", "")
	var common commonFlags
	common.register(fs)

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg, err := common.resolve(fs, nil)
	if err != nil {
		return err
	}

	return interactive.Run(ctx, interactive.Config{
		Address: cfg.Address,
		Logger:  cfg.newLogger(os.Stderr),
	})
}
