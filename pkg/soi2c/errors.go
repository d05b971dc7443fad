package soi2c

import (
	"errors"
	"fmt"
	"time"
)

// Decoder errors.
var (
	// ErrInvalidAddress is returned for a target address outside 0-127.
	ErrInvalidAddress = errors.New("invalid I2C address")

	// ErrNonASCIINote is returned when note bytes are not 7-bit ASCII.
	ErrNonASCIINote = errors.New("note is not ASCII")

	// ErrUnknownFrame is returned for a frame type the decoder does not handle.
	ErrUnknownFrame = errors.New("unknown frame")
)

// DecodeFault reports a transaction whose payload could not be decoded.
// The decoder stays usable; the next start frame begins a clean transaction.
type DecodeFault struct {
	// Start of the payload that failed to decode.
	Start time.Time

	// End of the stop frame that closed the transaction.
	End time.Time

	// Offset of the offending byte within the payload.
	Offset int

	// Byte is the offending value.
	Byte byte

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (f *DecodeFault) Error() string {
	return fmt.Sprintf("decode fault at payload offset %d (0x%02X): %v", f.Offset, f.Byte, f.Err)
}

// Unwrap returns the underlying cause.
func (f *DecodeFault) Unwrap() error {
	return f.Err
}
