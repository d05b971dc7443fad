package soi2c

import (
	"fmt"
	"strings"
	"time"
)

// Kind classifies a decoded protocol event.
type Kind uint8

const (
	// KindSender identifies the party that initiated the transaction.
	KindSender Kind = 0
	// KindHeader announces a header byte's role and value.
	KindHeader Kind = 1
	// KindQuery marks a zero-length status query from the host.
	KindQuery Kind = 2
	// KindRequest announces the length of an upcoming request.
	KindRequest Kind = 3
	// KindNote carries an assembled text payload.
	KindNote Kind = 4
)

// String returns the short kind name used by display templates.
func (k Kind) String() string {
	switch k {
	case KindSender:
		return "addr"
	case KindHeader:
		return "hdr"
	case KindQuery:
		return "query"
	case KindRequest:
		return "request"
	case KindNote:
		return "note"
	default:
		return "unknown"
	}
}

// ParseKind parses a kind name (case-insensitive).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "addr", "sender":
		return KindSender, nil
	case "hdr", "header":
		return KindHeader, nil
	case "query":
		return KindQuery, nil
	case "request":
		return KindRequest, nil
	case "note":
		return KindNote, nil
	default:
		return 0, fmt.Errorf("invalid kind: %s (must be addr, hdr, query, request, or note)", s)
	}
}

// Kinds lists all event kinds in display order.
var Kinds = []Kind{KindSender, KindHeader, KindQuery, KindRequest, KindNote}

// Sender labels.
const (
	SenderHost     = "Host MCU"
	SenderNotecard = "Notecard"
)

// Header actions.
const (
	ActionQueued  = "Queued"
	ActionSending = "Sending"
)

// Event is one decoded protocol event.
// Only the fields relevant to Kind are set.
type Event struct {
	// Kind of the event.
	Kind Kind `cbor:"1,keyasint" json:"kind"`

	// Start of the first contributing bus frame.
	Start time.Time `cbor:"2,keyasint" json:"start"`

	// End of the terminating bus frame.
	End time.Time `cbor:"3,keyasint" json:"end"`

	// Sender is set for KindSender.
	Sender string `cbor:"4,keyasint,omitempty" json:"sender,omitempty"`

	// Action is set for KindHeader.
	Action string `cbor:"5,keyasint,omitempty" json:"action,omitempty"`

	// Length is set for KindHeader and KindRequest.
	Length int `cbor:"6,keyasint,omitempty" json:"length,omitempty"`

	// Text is set for KindNote.
	Text string `cbor:"7,keyasint,omitempty" json:"text,omitempty"`
}

// Direction is the data flow of a transaction.
type Direction uint8

const (
	// DirectionUnknown is the direction before the address phase.
	DirectionUnknown Direction = 0
	// HostToDevice is an I2C write from the host MCU.
	HostToDevice Direction = 1
	// DeviceToHost is an I2C read answered by the Notecard.
	DeviceToHost Direction = 2
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case HostToDevice:
		return "HOST_TO_DEVICE"
	case DeviceToHost:
		return "DEVICE_TO_HOST"
	default:
		return "UNKNOWN"
	}
}

// Sender returns the label of the party driving data in this direction.
func (d Direction) Sender() string {
	switch d {
	case HostToDevice:
		return SenderHost
	case DeviceToHost:
		return SenderNotecard
	default:
		return ""
	}
}
