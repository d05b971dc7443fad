package bus

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// MaxAddress is the highest 7-bit I2C address.
const MaxAddress = 0x7F

// ErrUnknownFrameType is returned when a frame type name cannot be parsed.
var ErrUnknownFrameType = errors.New("unknown frame type")

// FrameType identifies the kind of a low-level bus frame.
type FrameType uint8

const (
	// FrameStart opens a transaction.
	FrameStart FrameType = 0
	// FrameAddress carries the target address and read/write flag.
	FrameAddress FrameType = 1
	// FrameData carries one payload byte.
	FrameData FrameType = 2
	// FrameStop closes a transaction.
	FrameStop FrameType = 3
)

// String returns the frame type name as used by Logic 2 exports.
func (t FrameType) String() string {
	switch t {
	case FrameStart:
		return "start"
	case FrameAddress:
		return "address"
	case FrameData:
		return "data"
	case FrameStop:
		return "stop"
	default:
		return "unknown"
	}
}

// ParseFrameType parses a frame type name (case-insensitive).
func ParseFrameType(s string) (FrameType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "start":
		return FrameStart, nil
	case "address":
		return FrameAddress, nil
	case "data":
		return FrameData, nil
	case "stop":
		return FrameStop, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFrameType, s)
	}
}

// Frame is one low-level bus event.
// CBOR encoding uses integer keys for compactness.
type Frame struct {
	// Type of the frame.
	Type FrameType `cbor:"1,keyasint" json:"type"`

	// Start is when the frame began on the bus.
	Start time.Time `cbor:"2,keyasint" json:"start"`

	// End is when the frame finished on the bus.
	End time.Time `cbor:"3,keyasint" json:"end"`

	// Address is the 7-bit target address (address frames only).
	Address uint8 `cbor:"4,keyasint,omitempty" json:"address,omitempty"`

	// Read is the R/W flag, true for a read (address frames only).
	Read bool `cbor:"5,keyasint,omitempty" json:"read,omitempty"`

	// Ack reports whether the byte was acknowledged.
	Ack bool `cbor:"6,keyasint,omitempty" json:"ack,omitempty"`

	// Data is the payload byte (data frames only).
	Data byte `cbor:"7,keyasint,omitempty" json:"data,omitempty"`
}

// Duration returns the time the frame occupied the bus.
func (f Frame) Duration() time.Duration {
	return f.End.Sub(f.Start)
}

// String returns a short human-readable description of the frame.
func (f Frame) String() string {
	switch f.Type {
	case FrameAddress:
		rw := "write"
		if f.Read {
			rw = "read"
		}
		return fmt.Sprintf("address 0x%02X %s", f.Address, rw)
	case FrameData:
		return fmt.Sprintf("data 0x%02X", f.Data)
	default:
		return f.Type.String()
	}
}

// StartFrame returns a start frame spanning [start, end].
func StartFrame(start, end time.Time) Frame {
	return Frame{Type: FrameStart, Start: start, End: end}
}

// AddressFrame returns an acknowledged address frame.
func AddressFrame(start, end time.Time, addr uint8, read bool) Frame {
	return Frame{Type: FrameAddress, Start: start, End: end, Address: addr, Read: read, Ack: true}
}

// DataFrame returns an acknowledged data frame.
func DataFrame(start, end time.Time, b byte) Frame {
	return Frame{Type: FrameData, Start: start, End: end, Data: b, Ack: true}
}

// StopFrame returns a stop frame spanning [start, end].
func StopFrame(start, end time.Time) Frame {
	return Frame{Type: FrameStop, Start: start, End: end}
}
