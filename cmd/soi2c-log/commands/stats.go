package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/notecard-tools/soi2c-go/pkg/log"
	"github.com/notecard-tools/soi2c-go/pkg/soi2c"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents      int
	EventsByLayer    map[log.Layer]int
	EventsByCategory map[log.Category]int
	EventsByKind     map[soi2c.Kind]int
	Sessions         map[string]*SessionStats
	Faults           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats holds statistics for a single analyzer session.
type SessionStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Address   uint8
	Notes     int
	NoteBytes int
	Faults    int
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByLayer:    make(map[log.Layer]int),
		EventsByCategory: make(map[log.Category]int),
		EventsByKind:     make(map[soi2c.Kind]int),
		Sessions:         make(map[string]*SessionStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		stats.add(event)
	}

	printStats(w, stats)
	return nil
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByLayer[event.Layer]++
	s.EventsByCategory[event.Category]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.End.After(s.TimeRange.End) {
		s.TimeRange.End = event.End
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	sess, ok := s.Sessions[event.SessionID]
	if !ok {
		sess = &SessionStats{
			FirstSeen: event.Timestamp,
			LastSeen:  event.Timestamp,
			Address:   event.Address,
		}
		s.Sessions[event.SessionID] = sess
	}
	sess.Events++
	if event.Timestamp.After(sess.LastSeen) {
		sess.LastSeen = event.Timestamp
	}

	if event.Decoded != nil {
		s.EventsByKind[event.Decoded.Kind]++
		if event.Decoded.Kind == soi2c.KindNote {
			sess.Notes++
			sess.NoteBytes += len(event.Decoded.Text)
		}
	}

	if event.Fault != nil {
		s.Faults++
		sess.Faults++
	}
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Serial-over-I2C Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339Nano),
			stats.TimeRange.End.Format(time.RFC3339Nano))
		fmt.Fprintf(w, "Duration:   %s\n", formatDuration(stats.TimeRange.End.Sub(stats.TimeRange.Start)))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Layer:")
	for _, layer := range []log.Layer{log.LayerBus, log.LayerProtocol} {
		if count := stats.EventsByLayer[layer]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", layer.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryFrame, log.CategoryDecoded, log.CategoryFault} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.EventsByKind) > 0 {
		fmt.Fprintln(w, "Decoded Events by Kind:")
		for _, k := range soi2c.Kinds {
			if count := stats.EventsByKind[k]; count > 0 {
				fmt.Fprintf(w, "  %-12s %d\n", k.String()+":", count)
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))
	if len(stats.Sessions) > 0 {
		type sessInfo struct {
			id    string
			stats *SessionStats
		}
		sessions := make([]sessInfo, 0, len(stats.Sessions))
		for id, ss := range stats.Sessions {
			sessions = append(sessions, sessInfo{id, ss})
		}
		sort.Slice(sessions, func(i, j int) bool {
			return sessions[i].stats.FirstSeen.Before(sessions[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, s := range sessions {
			fmt.Fprintf(w, "  [%s] %d events at 0x%02X, duration %s\n",
				shortenSessionID(s.id), s.stats.Events, s.stats.Address,
				formatDuration(s.stats.LastSeen.Sub(s.stats.FirstSeen)))
			if s.stats.Notes > 0 {
				fmt.Fprintf(w, "           Notes: %d (%d bytes)\n", s.stats.Notes, s.stats.NoteBytes)
			}
			if s.stats.Faults > 0 {
				fmt.Fprintf(w, "           Faults: %d\n", s.stats.Faults)
			}
		}
	}

	if stats.Faults > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Faults: %d\n", stats.Faults)
	}
}
