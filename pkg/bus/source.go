package bus

import (
	"io"
	"time"
)

// Source yields frames in bus order.
// Next returns io.EOF when no more frames are available.
type Source interface {
	Next() (Frame, error)
}

// SliceSource is a Source over an in-memory slice of frames.
type SliceSource struct {
	frames []Frame
	pos    int
}

// NewSliceSource creates a Source that yields the given frames in order.
func NewSliceSource(frames []Frame) *SliceSource {
	return &SliceSource{frames: frames}
}

// Next returns the next frame.
func (s *SliceSource) Next() (Frame, error) {
	if s.pos >= len(s.frames) {
		return Frame{}, io.EOF
	}
	f := s.frames[s.pos]
	s.pos++
	return f, nil
}

// Compile-time interface satisfaction check.
var _ Source = (*SliceSource)(nil)

// ReadAll drains src into a slice.
func ReadAll(src Source) ([]Frame, error) {
	var frames []Frame
	for {
		f, err := src.Next()
		if err == io.EOF {
			return frames, nil
		}
		if err != nil {
			return frames, err
		}
		frames = append(frames, f)
	}
}

// Default timing used by Builder. A 100 kHz bus clocks one byte plus ACK
// in 90µs; the defaults keep synthetic captures easy to read instead.
const (
	DefaultSlot  = 10 * time.Microsecond
	DefaultWidth = 8 * time.Microsecond
)

// Builder synthesizes frames with monotonically increasing timestamps.
// Each frame occupies one slot and is Width wide.
type Builder struct {
	Slot  time.Duration
	Width time.Duration

	next   time.Time
	frames []Frame
}

// NewBuilder creates a Builder whose first frame starts at base.
func NewBuilder(base time.Time) *Builder {
	return &Builder{Slot: DefaultSlot, Width: DefaultWidth, next: base}
}

func (b *Builder) span() (time.Time, time.Time) {
	start := b.next
	b.next = b.next.Add(b.Slot)
	return start, start.Add(b.Width)
}

// Start appends a start frame.
func (b *Builder) Start() *Builder {
	s, e := b.span()
	b.frames = append(b.frames, StartFrame(s, e))
	return b
}

// Address appends an address frame.
func (b *Builder) Address(addr uint8, read bool) *Builder {
	s, e := b.span()
	b.frames = append(b.frames, AddressFrame(s, e, addr, read))
	return b
}

// Data appends one data frame per byte.
func (b *Builder) Data(data ...byte) *Builder {
	for _, d := range data {
		s, e := b.span()
		b.frames = append(b.frames, DataFrame(s, e, d))
	}
	return b
}

// Text appends one data frame per byte of text.
func (b *Builder) Text(text string) *Builder {
	return b.Data([]byte(text)...)
}

// Stop appends a stop frame.
func (b *Builder) Stop() *Builder {
	s, e := b.span()
	b.frames = append(b.frames, StopFrame(s, e))
	return b
}

// Transaction appends a complete start/address/data/stop sequence.
func (b *Builder) Transaction(addr uint8, read bool, data ...byte) *Builder {
	return b.Start().Address(addr, read).Data(data...).Stop()
}

// Frames returns the frames built so far.
func (b *Builder) Frames() []Frame {
	return b.frames
}

// Reset discards the frames built so far. The clock keeps running.
func (b *Builder) Reset() {
	b.frames = nil
}
