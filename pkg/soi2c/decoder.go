package soi2c

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/notecard-tools/soi2c-go/pkg/bus"
)

// DefaultAddress is the Notecard's factory I2C address.
const DefaultAddress uint8 = 0x17

// Config configures a Decoder.
type Config struct {
	// Address is the Notecard's 7-bit I2C address.
	// Zero means unset and selects DefaultAddress.
	Address uint8

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger
}

// DefaultConfig returns a Config targeting DefaultAddress.
func DefaultConfig() Config {
	return Config{Address: DefaultAddress}
}

// Validate checks if the config is valid.
func (c *Config) Validate() error {
	if c.Address > bus.MaxAddress {
		return fmt.Errorf("%w: 0x%02X exceeds 0x%02X", ErrInvalidAddress, c.Address, bus.MaxAddress)
	}
	return nil
}

// TransactionState is the decoder state scoped to one bus transaction.
type TransactionState struct {
	// Direction is set from the address frame.
	Direction Direction

	// Ignored is true when the transaction targets another address.
	Ignored bool

	// Header1 and Header2 are the first two data bytes, nil until seen.
	Header1 *byte
	Header2 *byte

	// PendingRequestStart marks where a host poll began when Header1 was zero.
	PendingRequestStart *time.Time

	// Payload accumulates the bytes after the headers.
	Payload []byte

	// PayloadStart is the start time of the first payload byte.
	PayloadStart *time.Time
}

// clone returns a deep copy of the state.
func (s TransactionState) clone() TransactionState {
	c := TransactionState{
		Direction: s.Direction,
		Ignored:   s.Ignored,
		Header1:   cloneByte(s.Header1),
		Header2:   cloneByte(s.Header2),
	}
	if s.PendingRequestStart != nil {
		t := *s.PendingRequestStart
		c.PendingRequestStart = &t
	}
	if s.PayloadStart != nil {
		t := *s.PayloadStart
		c.PayloadStart = &t
	}
	if s.Payload != nil {
		c.Payload = append([]byte(nil), s.Payload...)
	}
	return c
}

func cloneByte(b *byte) *byte {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

// Decoder turns low-level bus frames into protocol events.
// A Decoder is not safe for concurrent use.
type Decoder struct {
	address uint8
	logger  *slog.Logger

	state TransactionState

	// closed is set by a stop frame; frames other than start are then dropped.
	closed bool
}

// New creates a Decoder from the given config.
func New(cfg Config) (*Decoder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	addr := cfg.Address
	if addr == 0 {
		addr = DefaultAddress
	}
	return &Decoder{address: addr, logger: cfg.Logger}, nil
}

// Address returns the effective target address.
func (d *Decoder) Address() uint8 {
	return d.address
}

// State returns a copy of the current transaction state.
func (d *Decoder) State() TransactionState {
	return d.state.clone()
}

// Handle processes one frame and returns the event it produced, if any.
//
// A nil event with a nil error means the frame produced no output. The only
// decode error is a *DecodeFault returned for a stop frame whose payload
// is not ASCII; the decoder remains usable afterwards.
func (d *Decoder) Handle(f bus.Frame) (*Event, error) {
	switch f.Type {
	case bus.FrameStart:
		d.reset()
		return nil, nil
	case bus.FrameAddress:
		return d.handleAddress(f), nil
	case bus.FrameData:
		return d.handleData(f), nil
	case bus.FrameStop:
		return d.handleStop(f)
	default:
		return nil, fmt.Errorf("%w: type %d", ErrUnknownFrame, f.Type)
	}
}

func (d *Decoder) reset() {
	d.state = TransactionState{}
	d.closed = false
}

func (d *Decoder) handleAddress(f bus.Frame) *Event {
	if d.closed {
		return nil
	}
	if f.Address != d.address {
		d.state.Ignored = true
		return nil
	}

	d.state.Direction = HostToDevice
	if f.Read {
		d.state.Direction = DeviceToHost
	}

	sender := d.state.Direction.Sender()
	d.debug("sender", slog.String("sender", sender))
	return &Event{Kind: KindSender, Start: f.Start, End: f.End, Sender: sender}
}

func (d *Decoder) handleData(f bus.Frame) *Event {
	if d.closed || d.state.Ignored {
		return nil
	}

	switch d.state.Direction {
	case DeviceToHost:
		if ev, consumed := d.responseHeader(f); consumed {
			return ev
		}
	case HostToDevice:
		if ev, consumed := d.requestHeader(f); consumed {
			return ev
		}
	default:
		// No address phase yet.
		return nil
	}

	if d.state.PayloadStart == nil {
		t := f.Start
		d.state.PayloadStart = &t
	}
	d.state.Payload = append(d.state.Payload, f.Data)
	return nil
}

// responseHeader handles the two header bytes of a Notecard response.
// consumed is false once both headers are set.
func (d *Decoder) responseHeader(f bus.Frame) (ev *Event, consumed bool) {
	switch {
	case d.state.Header1 == nil:
		d.state.Header1 = cloneByte(&f.Data)
		d.debug("header", slog.String("action", ActionQueued), slog.Int("length", int(f.Data)))
		return d.header(f, ActionQueued), true
	case d.state.Header2 == nil:
		d.state.Header2 = cloneByte(&f.Data)
		d.debug("header", slog.String("action", ActionSending), slog.Int("length", int(f.Data)))
		return d.header(f, ActionSending), true
	}
	return nil, false
}

// requestHeader handles the header bytes of a host request.
// consumed is false when the byte belongs to the payload.
func (d *Decoder) requestHeader(f bus.Frame) (ev *Event, consumed bool) {
	switch {
	case d.state.Header1 == nil:
		d.state.Header1 = cloneByte(&f.Data)
		if f.Data == 0 {
			t := f.Start
			d.state.PendingRequestStart = &t
			return nil, true
		}
		d.debug("header", slog.String("action", ActionSending), slog.Int("length", int(f.Data)))
		return d.header(f, ActionSending), true

	case d.state.Header2 == nil:
		d.state.Header2 = cloneByte(&f.Data)
		if d.state.PendingRequestStart == nil {
			// Header1 was a write length; this byte starts the body.
			return nil, false
		}
		start := *d.state.PendingRequestStart
		if f.Data == 0 {
			d.debug("query")
			return &Event{Kind: KindQuery, Start: start, End: f.End}, true
		}
		d.debug("request", slog.Int("length", int(f.Data)))
		return &Event{Kind: KindRequest, Start: start, End: f.End, Length: int(f.Data)}, true
	}
	return nil, false
}

func (d *Decoder) header(f bus.Frame, action string) *Event {
	return &Event{Kind: KindHeader, Start: f.Start, End: f.End, Action: action, Length: int(f.Data)}
}

func (d *Decoder) handleStop(f bus.Frame) (*Event, error) {
	if d.closed {
		return nil, nil
	}
	d.closed = true

	if len(d.state.Payload) == 0 {
		return nil, nil
	}

	start := f.Start
	if d.state.PayloadStart != nil {
		start = *d.state.PayloadStart
	}

	text, err := decodeNote(d.state.Payload)
	if err != nil {
		err.Start = start
		err.End = f.End
		d.warn("note decode failed", slog.Int("offset", err.Offset), slog.Int("byte", int(err.Byte)))
		return nil, err
	}

	d.debug("note", slog.String("text", text))
	return &Event{Kind: KindNote, Start: start, End: f.End, Text: text}, nil
}

// decodeNote interprets payload as ASCII text and strips one trailing newline.
func decodeNote(payload []byte) (string, *DecodeFault) {
	for i, b := range payload {
		if b > 0x7F {
			return "", &DecodeFault{Offset: i, Byte: b, Err: ErrNonASCIINote}
		}
	}
	return strings.TrimSuffix(string(payload), "\n"), nil
}

func (d *Decoder) debug(msg string, attrs ...slog.Attr) {
	if d.logger == nil {
		return
	}
	d.logger.LogAttrs(context.Background(), slog.LevelDebug, msg, attrs...)
}

func (d *Decoder) warn(msg string, attrs ...slog.Attr) {
	if d.logger == nil {
		return
	}
	d.logger.LogAttrs(context.Background(), slog.LevelWarn, msg, attrs...)
}
