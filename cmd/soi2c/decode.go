package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/notecard-tools/soi2c-go/pkg/analyzer"
	"github.com/notecard-tools/soi2c-go/pkg/bus"
	"github.com/notecard-tools/soi2c-go/pkg/log"
	"github.com/notecard-tools/soi2c-go/pkg/soi2c"
)

// decodeOptions are the decode flags that are not part of Config.
type decodeOptions struct {
	// Window restricts capture input to a time range.
	Window bus.Filter

	// JSON prints one JSON object per event instead of text.
	JSON bool

	// Trace mirrors protocol records to the console logger.
	Trace bool

	// Stats prints a summary to stderr after decoding.
	Stats bool
}

// jsonEvent is the -json output format.
type jsonEvent struct {
	Kind    string    `json:"kind"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Offset  float64   `json:"offset"`
	Display string    `json:"display"`
	Sender  string    `json:"sender,omitempty"`
	Action  string    `json:"action,omitempty"`
	Length  *int      `json:"length,omitempty"`
	Text    *string   `json:"text,omitempty"`
}

// eventPrinter is an analyzer.Sink that prints events to out and faults
// to errOut. Times are shown relative to the first output.
type eventPrinter struct {
	out    io.Writer
	errOut io.Writer
	enc    *json.Encoder
	base   time.Time
	err    error
}

func newEventPrinter(out, errOut io.Writer, asJSON bool) *eventPrinter {
	p := &eventPrinter{out: out, errOut: errOut}
	if asJSON {
		p.enc = json.NewEncoder(out)
	}
	return p
}

func (p *eventPrinter) offset(t time.Time) time.Duration {
	if p.base.IsZero() {
		p.base = t
	}
	return t.Sub(p.base)
}

// Event prints one decoded event.
func (p *eventPrinter) Event(e soi2c.Event) {
	off := p.offset(e.Start)

	if p.enc != nil {
		je := jsonEvent{
			Kind:    e.Kind.String(),
			Start:   e.Start,
			End:     e.End,
			Offset:  off.Seconds(),
			Display: soi2c.Format(e),
			Sender:  e.Sender,
			Action:  e.Action,
		}
		switch e.Kind {
		case soi2c.KindHeader, soi2c.KindRequest:
			je.Length = &e.Length
		case soi2c.KindNote:
			je.Text = &e.Text
		}
		if err := p.enc.Encode(je); err != nil && p.err == nil {
			p.err = err
		}
		return
	}

	fmt.Fprintf(p.out, "%12s  [%-7s] %s\n", formatOffset(off), e.Kind, soi2c.Format(e))
}

// Fault prints a decode fault.
func (p *eventPrinter) Fault(f *soi2c.DecodeFault) {
	fmt.Fprintf(p.errOut, "%12s  fault: %v\n", formatOffset(p.offset(f.Start)), f)
}

func formatOffset(d time.Duration) string {
	return fmt.Sprintf("+%.6fs", d.Seconds())
}

// runDecode decodes the frames in path and prints the resulting events.
func runDecode(ctx context.Context, path string, cfg Config, opts decodeOptions, stdout, stderr io.Writer) (analyzer.Stats, error) {
	logger := cfg.newLogger(stderr)

	src, err := openSource(path, cfg.Format, opts.Window)
	if err != nil {
		return analyzer.Stats{}, fmt.Errorf("opening input: %w", err)
	}
	defer src.Close()

	var (
		protocol   log.Logger
		loggers    []log.Logger
		fileLogger *log.FileLogger
	)
	if cfg.ProtocolLog != "" {
		fileLogger, err = log.NewFileLogger(cfg.ProtocolLog)
		if err != nil {
			return analyzer.Stats{}, fmt.Errorf("opening protocol log: %w", err)
		}
		defer fileLogger.Close()
		loggers = append(loggers, fileLogger)
	}
	if opts.Trace {
		loggers = append(loggers, log.NewSlogAdapter(logger).WithLevel(slog.LevelInfo))
	}
	if len(loggers) > 0 {
		protocol = log.NewMultiLogger(loggers...)
	}

	session, err := analyzer.New(analyzer.Config{
		Decoder:        soi2c.Config{Address: cfg.Address, Logger: logger.With("component", "decoder")},
		ProtocolLogger: protocol,
		LogFrames:      cfg.LogFrames,
		Logger:         logger,
	})
	if err != nil {
		return analyzer.Stats{}, err
	}

	printer := newEventPrinter(stdout, stderr, opts.JSON)
	stats, err := session.Run(ctx, src, printer)
	if err != nil {
		return stats, err
	}
	if printer.err != nil {
		return stats, fmt.Errorf("writing output: %w", printer.err)
	}

	if fileLogger != nil {
		if err := fileLogger.Err(); err != nil {
			return stats, fmt.Errorf("writing protocol log: %w", err)
		}
		logger.Info("protocol log written",
			"path", cfg.ProtocolLog,
			"records", fileLogger.Written())
	}

	if opts.Stats {
		stats.Print(stderr)
	}
	return stats, nil
}
