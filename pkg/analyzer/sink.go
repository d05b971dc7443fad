package analyzer

import "github.com/notecard-tools/soi2c-go/pkg/soi2c"

// Sink receives the output of a Session run.
type Sink interface {
	// Event is called for every decoded event, in bus order.
	Event(e soi2c.Event)

	// Fault is called for every transaction that failed to decode.
	Fault(f *soi2c.DecodeFault)
}

// SinkFuncs adapts a pair of functions to a Sink. Nil functions are skipped.
type SinkFuncs struct {
	OnEvent func(soi2c.Event)
	OnFault func(*soi2c.DecodeFault)
}

// Event calls OnEvent.
func (s SinkFuncs) Event(e soi2c.Event) {
	if s.OnEvent != nil {
		s.OnEvent(e)
	}
}

// Fault calls OnFault.
func (s SinkFuncs) Fault(f *soi2c.DecodeFault) {
	if s.OnFault != nil {
		s.OnFault(f)
	}
}

// Discard is a Sink that drops everything.
var Discard Sink = SinkFuncs{}

// Collector is a Sink that keeps everything it receives.
type Collector struct {
	Events []soi2c.Event
	Faults []*soi2c.DecodeFault
}

// Event appends e to Events.
func (c *Collector) Event(e soi2c.Event) {
	c.Events = append(c.Events, e)
}

// Fault appends f to Faults.
func (c *Collector) Fault(f *soi2c.DecodeFault) {
	c.Faults = append(c.Faults, f)
}

// Compile-time interface satisfaction checks.
var (
	_ Sink = SinkFuncs{}
	_ Sink = (*Collector)(nil)
)
