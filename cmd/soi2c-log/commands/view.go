// Package commands implements the soi2c-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/notecard-tools/soi2c-go/pkg/bus"
	"github.com/notecard-tools/soi2c-go/pkg/log"
	"github.com/notecard-tools/soi2c-go/pkg/soi2c"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Layer    *log.Layer
	Category *log.Category
	Kind     *soi2c.Kind
}

func (f ViewFilter) logFilter() log.Filter {
	return log.Filter{Layer: f.Layer, Category: f.Category, Kind: f.Kind}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [sess:id] LAYER Type
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	sessID := shortenSessionID(event.SessionID)

	fmt.Fprintf(w, "%s [sess:%s] %s %s\n", ts, sessID, event.Layer.String(), typeLabel(event))

	switch {
	case event.Frame != nil:
		formatFrameDetails(w, event.Frame)
	case event.Decoded != nil:
		formatDecodedDetails(w, event.Decoded)
	case event.Fault != nil:
		formatFaultDetails(w, event.Fault)
	}
	if span := event.End.Sub(event.Timestamp); span > 0 {
		fmt.Fprintf(w, "  Span: %s\n", formatDuration(span))
	}

	fmt.Fprintln(w) // Blank line between events
}

// typeLabel names the payload carried by the event.
func typeLabel(event log.Event) string {
	switch {
	case event.Frame != nil:
		return "Frame"
	case event.Decoded != nil:
		return event.Decoded.Kind.String()
	case event.Fault != nil:
		return "Fault"
	default:
		return "Unknown"
	}
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// formatFrameDetails writes frame-specific details.
func formatFrameDetails(w io.Writer, frame *bus.Frame) {
	fmt.Fprintf(w, "  Frame: %s\n", frame.String())
	if (frame.Type == bus.FrameAddress || frame.Type == bus.FrameData) && !frame.Ack {
		fmt.Fprintln(w, "  NACK")
	}
}

// formatDecodedDetails writes decoded event details.
func formatDecodedDetails(w io.Writer, e *soi2c.Event) {
	fmt.Fprintf(w, "  %s\n", soi2c.Format(*e))
}

// formatFaultDetails writes fault details.
func formatFaultDetails(w io.Writer, f *log.FaultData) {
	fmt.Fprintf(w, "  Message: %s\n", f.Message)
	if f.Offset != nil {
		fmt.Fprintf(w, "  Offset: %d\n", *f.Offset)
	}
	if f.Byte != nil {
		fmt.Fprintf(w, "  Byte: 0x%02X\n", *f.Byte)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// ParseLayerFlag parses a layer string from command-line flag (case-insensitive).
func ParseLayerFlag(s string) (log.Layer, error) {
	return parseLayer(s)
}

func parseLayer(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "bus":
		return log.LayerBus, nil
	case "protocol":
		return log.LayerProtocol, nil
	default:
		return 0, fmt.Errorf("invalid layer: %s (must be bus or protocol)", s)
	}
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	return parseCategory(s)
}

func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "frame":
		return log.CategoryFrame, nil
	case "decoded":
		return log.CategoryDecoded, nil
	case "fault":
		return log.CategoryFault, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be frame, decoded, or fault)", s)
	}
}

// ParseKindFlag parses a decoded event kind from command-line flag.
func ParseKindFlag(s string) (soi2c.Kind, error) {
	k, err := soi2c.ParseKind(s)
	if err != nil {
		return 0, fmt.Errorf("invalid kind: %s (must be addr, hdr, query, request, or note)", s)
	}
	return k, nil
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter.logFilter())
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		formatEvent(output, event)
	}

	return nil
}
