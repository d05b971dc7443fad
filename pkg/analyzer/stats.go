package analyzer

import (
	"fmt"
	"io"

	"github.com/notecard-tools/soi2c-go/pkg/soi2c"
)

// Stats holds running counters for a Session.
type Stats struct {
	// Frames is the number of bus frames fed to the decoder.
	Frames int

	// Transactions is the number of start frames seen.
	Transactions int

	// Ignored is the number of transactions addressed to another device.
	Ignored int

	// Events counts decoded events by kind.
	Events map[soi2c.Kind]int

	// Faults is the number of transactions that failed to decode.
	Faults int
}

func newStats() Stats {
	return Stats{Events: make(map[soi2c.Kind]int)}
}

func (s Stats) clone() Stats {
	c := s
	c.Events = make(map[soi2c.Kind]int, len(s.Events))
	for k, v := range s.Events {
		c.Events[k] = v
	}
	return c
}

// TotalEvents returns the number of decoded events of all kinds.
func (s Stats) TotalEvents() int {
	total := 0
	for _, n := range s.Events {
		total += n
	}
	return total
}

// Print writes a human-readable summary to w.
func (s Stats) Print(w io.Writer) {
	fmt.Fprintf(w, "Frames:       %d\n", s.Frames)
	fmt.Fprintf(w, "Transactions: %d (%d for other addresses)\n", s.Transactions, s.Ignored)
	fmt.Fprintf(w, "Events:       %d\n", s.TotalEvents())
	for _, k := range soi2c.Kinds {
		if n := s.Events[k]; n > 0 {
			fmt.Fprintf(w, "  %-10s %d\n", k.String()+":", n)
		}
	}
	if s.Faults > 0 {
		fmt.Fprintf(w, "Faults:       %d\n", s.Faults)
	}
}
