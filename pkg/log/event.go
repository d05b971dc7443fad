package log

import (
	"time"

	"github.com/notecard-tools/soi2c-go/pkg/bus"
	"github.com/notecard-tools/soi2c-go/pkg/soi2c"
)

// Event represents an analyzer log record captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp is the bus time the record starts at (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint" json:"timestamp"`

	// End is the bus time the record ends at.
	End time.Time `cbor:"2,keyasint" json:"end"`

	// SessionID uniquely identifies the analyzer run (UUID).
	SessionID string `cbor:"3,keyasint" json:"session_id"`

	// Layer where the record was captured.
	Layer Layer `cbor:"4,keyasint" json:"layer"`

	// Category classifies the record.
	Category Category `cbor:"5,keyasint" json:"category"`

	// Address is the decoder's target address.
	Address uint8 `cbor:"6,keyasint,omitempty" json:"address,omitempty"`

	// Type-specific payload (one of these will be set).
	Frame   *bus.Frame   `cbor:"10,keyasint,omitempty" json:"frame,omitempty"`
	Decoded *soi2c.Event `cbor:"11,keyasint,omitempty" json:"decoded,omitempty"`
	Fault   *FaultData   `cbor:"12,keyasint,omitempty" json:"fault,omitempty"`
}

// Layer indicates which layer captured the record.
type Layer uint8

const (
	// LayerBus is the low-level I2C frame layer.
	LayerBus Layer = 0
	// LayerProtocol is the decoded Serial-over-I2C layer.
	LayerProtocol Layer = 1
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerBus:
		return "BUS"
	case LayerProtocol:
		return "PROTOCOL"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the record.
type Category uint8

const (
	// CategoryFrame is a raw bus frame.
	CategoryFrame Category = 0
	// CategoryDecoded is a decoded protocol event.
	CategoryDecoded Category = 1
	// CategoryFault is a decode fault.
	CategoryFault Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryFrame:
		return "FRAME"
	case CategoryDecoded:
		return "DECODED"
	case CategoryFault:
		return "FAULT"
	default:
		return "UNKNOWN"
	}
}

// FaultData captures a transaction that could not be decoded.
type FaultData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint" json:"message"`

	// Offset of the offending payload byte, if known.
	Offset *int `cbor:"2,keyasint,omitempty" json:"offset,omitempty"`

	// Byte is the offending value, if known.
	Byte *uint8 `cbor:"3,keyasint,omitempty" json:"byte,omitempty"`
}

// FrameRecord builds a bus-layer record for a raw frame.
func FrameRecord(sessionID string, f bus.Frame) Event {
	return Event{
		Timestamp: f.Start,
		End:       f.End,
		SessionID: sessionID,
		Layer:     LayerBus,
		Category:  CategoryFrame,
		Frame:     &f,
	}
}

// DecodedRecord builds a protocol-layer record for a decoded event.
func DecodedRecord(sessionID string, e soi2c.Event) Event {
	return Event{
		Timestamp: e.Start,
		End:       e.End,
		SessionID: sessionID,
		Layer:     LayerProtocol,
		Category:  CategoryDecoded,
		Decoded:   &e,
	}
}

// FaultRecord builds a protocol-layer record for a decode fault.
func FaultRecord(sessionID string, f *soi2c.DecodeFault) Event {
	offset := f.Offset
	b := f.Byte
	return Event{
		Timestamp: f.Start,
		End:       f.End,
		SessionID: sessionID,
		Layer:     LayerProtocol,
		Category:  CategoryFault,
		Fault: &FaultData{
			Message: f.Error(),
			Offset:  &offset,
			Byte:    &b,
		},
	}
}
