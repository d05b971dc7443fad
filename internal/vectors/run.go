package vectors

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/notecard-tools/soi2c-go/pkg/analyzer"
	"github.com/notecard-tools/soi2c-go/pkg/bus"
	"github.com/notecard-tools/soi2c-go/pkg/soi2c"
)

// Epoch is the timestamp of the first frame a vector generates.
var Epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// BusFrames expands the vector's frame specs into bus frames on a synthetic
// timeline starting at Epoch.
func (v *Vector) BusFrames() []bus.Frame {
	b := bus.NewBuilder(Epoch)
	for _, s := range v.Frames {
		switch s.Kind {
		case SpecStart:
			b.Start()
		case SpecAddress:
			b.Address(s.Address, s.Read)
		case SpecData:
			b.Data(s.Data...)
		case SpecText:
			b.Text(s.Text)
		case SpecStop:
			b.Stop()
		}
	}
	return b.Frames()
}

// Result is the outcome of running a vector.
type Result struct {
	Vector     *Vector
	Events     []soi2c.Event
	Faults     []*soi2c.DecodeFault
	Stats      analyzer.Stats
	Mismatches []string
}

// Passed reports whether the decoder output matched every expectation.
func (r *Result) Passed() bool {
	return len(r.Mismatches) == 0
}

func (r *Result) mismatch(format string, args ...any) {
	r.Mismatches = append(r.Mismatches, fmt.Sprintf(format, args...))
}

// Run decodes the vector's frames and compares the output against its
// expectations. The returned error is only set when decoding could not
// complete; mismatches are reported in the Result.
func (v *Vector) Run(ctx context.Context, logger *slog.Logger) (*Result, error) {
	session, err := analyzer.New(analyzer.Config{
		Decoder: soi2c.Config{Address: v.Address, Logger: logger},
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("vector %s: %w", v.ID, err)
	}

	var sink analyzer.Collector
	stats, err := session.Run(ctx, bus.NewSliceSource(v.BusFrames()), &sink)
	if err != nil {
		return nil, fmt.Errorf("vector %s: %w", v.ID, err)
	}

	r := &Result{
		Vector: v,
		Events: sink.Events,
		Faults: sink.Faults,
		Stats:  stats,
	}
	r.compare()
	return r, nil
}

func (r *Result) compare() {
	v := r.Vector

	if len(r.Events) != len(v.Expect) {
		r.mismatch("got %d events, want %d", len(r.Events), len(v.Expect))
	}
	n := min(len(r.Events), len(v.Expect))
	for i := 0; i < n; i++ {
		compareEvent(r, i, r.Events[i], v.Expect[i])
	}

	if len(r.Faults) != v.Faults {
		r.mismatch("got %d faults, want %d", len(r.Faults), v.Faults)
	}

	for i := 1; i < len(r.Events); i++ {
		if r.Events[i].Start.Before(r.Events[i-1].Start) {
			r.mismatch("event %d starts before event %d", i, i-1)
		}
	}
}

func compareEvent(r *Result, i int, got soi2c.Event, want Expectation) {
	kind, _ := soi2c.ParseKind(want.Kind)
	if got.Kind != kind {
		r.mismatch("event %d: kind %s, want %s", i, got.Kind, kind)
		return
	}
	if want.Sender != "" && got.Sender != want.Sender {
		r.mismatch("event %d: sender %q, want %q", i, got.Sender, want.Sender)
	}
	if want.Action != "" && got.Action != want.Action {
		r.mismatch("event %d: action %q, want %q", i, got.Action, want.Action)
	}
	if want.Length != nil && got.Length != *want.Length {
		r.mismatch("event %d: length %d, want %d", i, got.Length, *want.Length)
	}
	if want.Text != nil && got.Text != *want.Text {
		r.mismatch("event %d: text %q, want %q", i, got.Text, *want.Text)
	}
}
