package log

import (
	"context"
	"log/slog"

	"github.com/notecard-tools/soi2c-go/pkg/soi2c"
)

// SlogAdapter writes analyzer records to an slog.Logger.
// Useful for development when you want to see decoded traffic in the console.
type SlogAdapter struct {
	logger *slog.Logger
	level  slog.Level
}

// NewSlogAdapter creates a SlogAdapter that writes to the given slog.Logger
// at Debug level.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger, level: slog.LevelDebug}
}

// WithLevel returns a copy of the adapter that logs at the given level.
func (a *SlogAdapter) WithLevel(level slog.Level) *SlogAdapter {
	return &SlogAdapter{logger: a.logger, level: level}
}

// Log writes the event to the slog logger.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
		slog.Time("start", event.Timestamp),
		slog.Duration("span", event.End.Sub(event.Timestamp)),
	}

	switch {
	case event.Frame != nil:
		attrs = append(attrs,
			slog.String("frame_type", event.Frame.Type.String()),
			slog.String("frame", event.Frame.String()),
		)
	case event.Decoded != nil:
		attrs = append(attrs,
			slog.String("kind", event.Decoded.Kind.String()),
			slog.String("display", soi2c.Format(*event.Decoded)),
		)
		switch event.Decoded.Kind {
		case soi2c.KindHeader, soi2c.KindRequest:
			attrs = append(attrs, slog.Int("length", event.Decoded.Length))
		case soi2c.KindSender:
			attrs = append(attrs, slog.String("sender", event.Decoded.Sender))
		}
	case event.Fault != nil:
		attrs = append(attrs, slog.String("fault", event.Fault.Message))
		if event.Fault.Offset != nil {
			attrs = append(attrs, slog.Int("fault_offset", *event.Fault.Offset))
		}
	}

	a.logger.LogAttrs(context.Background(), a.level, "protocol", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
