// Package analyzer runs bus frame streams through a Serial-over-I2C decoder.
//
// A Session owns one Decoder and forwards its output to a Sink and,
// optionally, to a protocol log. It also keeps running statistics.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/notecard-tools/soi2c-go/pkg/bus"
	"github.com/notecard-tools/soi2c-go/pkg/log"
	"github.com/notecard-tools/soi2c-go/pkg/soi2c"
)

// Config configures a Session.
type Config struct {
	// Decoder configures the protocol decoder.
	Decoder soi2c.Config

	// ProtocolLogger receives decoded events and faults.
	// If nil, protocol logging is disabled.
	ProtocolLogger log.Logger

	// LogFrames also records every raw bus frame in the protocol log.
	LogFrames bool

	// Logger is the optional logger for operational output.
	// If nil, logging is disabled.
	Logger *slog.Logger
}

// Session decodes one stream of bus frames.
// A Session is not safe for concurrent use.
type Session struct {
	id       string
	decoder  *soi2c.Decoder
	protocol log.Logger
	frames   bool
	logger   *slog.Logger
	stats    Stats
}

// New creates a Session from the given config.
func New(cfg Config) (*Session, error) {
	dec, err := soi2c.New(cfg.Decoder)
	if err != nil {
		return nil, err
	}

	protocol := cfg.ProtocolLogger
	if protocol == nil {
		protocol = log.NoopLogger{}
	}

	s := &Session{
		id:       uuid.New().String(),
		decoder:  dec,
		protocol: protocol,
		frames:   cfg.LogFrames,
		logger:   cfg.Logger,
		stats:    newStats(),
	}

	if s.logger != nil {
		s.logger.Info("analyzer session created",
			"session_id", s.id,
			"address", fmt.Sprintf("0x%02X", dec.Address()))
	}
	return s, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Decoder returns the session's decoder.
func (s *Session) Decoder() *soi2c.Decoder {
	return s.decoder
}

// Stats returns a copy of the statistics gathered so far.
func (s *Session) Stats() Stats {
	return s.stats.clone()
}

// Feed hands a single frame to the decoder, records the outcome and returns it.
func (s *Session) Feed(f bus.Frame) (*soi2c.Event, error) {
	s.stats.Frames++
	if s.frames {
		s.record(log.FrameRecord(s.id, f))
	}

	switch f.Type {
	case bus.FrameStart:
		s.stats.Transactions++
	case bus.FrameAddress:
		if f.Address != s.decoder.Address() {
			s.stats.Ignored++
		}
	}

	ev, err := s.decoder.Handle(f)
	if err != nil {
		var fault *soi2c.DecodeFault
		if errors.As(err, &fault) {
			s.stats.Faults++
			s.record(log.FaultRecord(s.id, fault))
			if s.logger != nil {
				s.logger.Warn("decode fault",
					"session_id", s.id,
					"start", fault.Start,
					"end", fault.End,
					"error", fault)
			}
		}
		return nil, err
	}

	if ev != nil {
		s.stats.Events[ev.Kind]++
		s.record(log.DecodedRecord(s.id, *ev))
	}
	return ev, nil
}

// Run feeds every frame from src through the decoder until src is drained.
//
// Decoded events go to sink.Event and decode faults to sink.Fault; a fault
// does not stop the run. Source errors and context cancellation do, and
// are returned together with the statistics gathered so far.
func (s *Session) Run(ctx context.Context, src bus.Source, sink Sink) (Stats, error) {
	if sink == nil {
		sink = Discard
	}

	for {
		if err := ctx.Err(); err != nil {
			return s.Stats(), err
		}

		f, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return s.Stats(), fmt.Errorf("read frame: %w", err)
		}

		ev, err := s.Feed(f)
		if err != nil {
			var fault *soi2c.DecodeFault
			if errors.As(err, &fault) {
				sink.Fault(fault)
				continue
			}
			return s.Stats(), fmt.Errorf("decode %s frame: %w", f.Type, err)
		}
		if ev != nil {
			sink.Event(*ev)
		}
	}

	if s.logger != nil {
		s.logger.Info("analyzer session finished",
			"session_id", s.id,
			"frames", s.stats.Frames,
			"transactions", s.stats.Transactions,
			"faults", s.stats.Faults)
	}
	return s.Stats(), nil
}

func (s *Session) record(e log.Event) {
	e.Address = s.decoder.Address()
	s.protocol.Log(e)
}
