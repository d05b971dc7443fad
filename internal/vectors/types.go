// Package vectors loads YAML decode vectors: a sequence of bus frames
// together with the protocol events a decoder must produce for them.
package vectors

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Vector is a single decode vector loaded from YAML.
type Vector struct {
	// ID is the unique vector identifier (e.g., "SOI-RESP-001").
	ID string `yaml:"id"`

	// Name is a human-readable name.
	Name string `yaml:"name"`

	// Description explains what the vector exercises.
	Description string `yaml:"description,omitempty"`

	// Address is the decoder's target address (0 selects the default).
	Address uint8 `yaml:"address,omitempty"`

	// Frames is the bus traffic fed to the decoder.
	Frames []FrameSpec `yaml:"frames"`

	// Expect lists the events the decoder must emit, in order.
	Expect []Expectation `yaml:"expect"`

	// Faults is the number of decode faults expected.
	Faults int `yaml:"faults,omitempty"`

	// Tags for categorizing vectors.
	Tags []string `yaml:"tags,omitempty"`

	// File is the path the vector was loaded from, if any.
	File string `yaml:"-"`
}

// FrameSpec describes one or more bus frames.
//
// In YAML a spec is either a bare "start"/"stop" scalar or a mapping with
// one of the keys address (plus read), data (a byte or a list of bytes)
// or text (one data frame per character).
type FrameSpec struct {
	Kind    FrameSpecKind
	Address uint8
	Read    bool
	Data    []byte
	Text    string
}

// FrameSpecKind is the kind of a FrameSpec.
type FrameSpecKind string

const (
	SpecStart   FrameSpecKind = "start"
	SpecAddress FrameSpecKind = "address"
	SpecData    FrameSpecKind = "data"
	SpecText    FrameSpecKind = "text"
	SpecStop    FrameSpecKind = "stop"
)

// frameSpecYAML is the mapping form of a FrameSpec.
type frameSpecYAML struct {
	Address *int      `yaml:"address"`
	Read    bool      `yaml:"read"`
	Data    yaml.Node `yaml:"data"`
	Text    *string   `yaml:"text"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *FrameSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		switch FrameSpecKind(strings.ToLower(node.Value)) {
		case SpecStart:
			*s = FrameSpec{Kind: SpecStart}
		case SpecStop:
			*s = FrameSpec{Kind: SpecStop}
		default:
			return fmt.Errorf("line %d: unknown frame %q (want start or stop)", node.Line, node.Value)
		}
		return nil

	case yaml.MappingNode:
		var raw frameSpecYAML
		if err := node.Decode(&raw); err != nil {
			return err
		}
		return s.fromMapping(node.Line, raw)

	default:
		return fmt.Errorf("line %d: frame must be a scalar or a mapping", node.Line)
	}
}

func (s *FrameSpec) fromMapping(line int, raw frameSpecYAML) error {
	set := 0
	if raw.Address != nil {
		set++
	}
	if raw.Data.Kind != 0 {
		set++
	}
	if raw.Text != nil {
		set++
	}
	if set != 1 {
		return fmt.Errorf("line %d: frame needs exactly one of address, data or text", line)
	}

	switch {
	case raw.Address != nil:
		if *raw.Address < 0 || *raw.Address > 0x7F {
			return fmt.Errorf("line %d: address %d out of range", line, *raw.Address)
		}
		*s = FrameSpec{Kind: SpecAddress, Address: uint8(*raw.Address), Read: raw.Read}

	case raw.Text != nil:
		*s = FrameSpec{Kind: SpecText, Text: *raw.Text}

	default:
		var values []int
		switch raw.Data.Kind {
		case yaml.ScalarNode:
			var v int
			if err := raw.Data.Decode(&v); err != nil {
				return err
			}
			values = []int{v}
		case yaml.SequenceNode:
			if err := raw.Data.Decode(&values); err != nil {
				return err
			}
		default:
			return fmt.Errorf("line %d: data must be a byte or a list of bytes", line)
		}
		data := make([]byte, 0, len(values))
		for _, v := range values {
			if v < 0 || v > 0xFF {
				return fmt.Errorf("line %d: data value %d out of range", line, v)
			}
			data = append(data, byte(v))
		}
		*s = FrameSpec{Kind: SpecData, Data: data}
	}
	return nil
}

// Expectation describes one expected event. Empty/nil fields are not checked.
type Expectation struct {
	// Kind is the event kind name (addr, hdr, query, request, note).
	Kind string `yaml:"kind"`

	Sender string  `yaml:"sender,omitempty"`
	Action string  `yaml:"action,omitempty"`
	Length *int    `yaml:"length,omitempty"`
	Text   *string `yaml:"text,omitempty"`
}

// LoadError provides details about a vector loading error.
type LoadError struct {
	// File is the path to the file that failed to load.
	File string

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.File == "" {
		return msg
	}
	return e.File + ": " + msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
