package bus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// CSVError describes a malformed row in a Logic 2 CSV export.
type CSVError struct {
	// Line is the 1-based line number in the input.
	Line int
	// Column is the header name of the offending column (may be empty).
	Column string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *CSVError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("csv line %d, column %q: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("csv line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *CSVError) Unwrap() error {
	return e.Err
}

// ErrMissingColumn is returned when a required column is absent from the header.
var ErrMissingColumn = errors.New("missing column")

// required columns of a Logic 2 I2C analyzer export.
var csvRequired = []string{"type", "start_time"}

// CSVReader reads frames from a Saleae Logic 2 I2C analyzer CSV export.
//
// Columns are located by header name, so exports with extra or reordered
// columns are accepted. Rows whose type is not a bus frame (for example
// "error") are skipped.
type CSVReader struct {
	r      *csv.Reader
	epoch  time.Time
	cols   map[string]int
	header bool
}

// NewCSVReader creates a CSVReader. Relative start_time values (seconds
// since capture start) are added to epoch; RFC3339 timestamps are used as-is.
func NewCSVReader(r io.Reader, epoch time.Time) *CSVReader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return &CSVReader{r: cr, epoch: epoch}
}

// Next returns the next frame.
// Returns io.EOF when no more frames are available.
func (c *CSVReader) Next() (Frame, error) {
	if !c.header {
		if err := c.readHeader(); err != nil {
			return Frame{}, err
		}
	}

	for {
		record, err := c.r.Read()
		if err == io.EOF {
			return Frame{}, io.EOF
		}
		if err != nil {
			return Frame{}, err
		}
		line, _ := c.r.FieldPos(0)

		typ, err := ParseFrameType(c.field(record, "type"))
		if err != nil {
			continue
		}

		frame, err := c.parseRow(record, typ)
		if err != nil {
			var ce *CSVError
			if errors.As(err, &ce) {
				ce.Line = line
			}
			return Frame{}, err
		}
		return frame, nil
	}
}

func (c *CSVReader) readHeader() error {
	record, err := c.r.Read()
	if err != nil {
		return err
	}
	c.cols = make(map[string]int, len(record))
	for i, name := range record {
		c.cols[strings.ToLower(strings.Trim(strings.TrimSpace(name), `"`))] = i
	}
	for _, name := range csvRequired {
		if _, ok := c.cols[name]; !ok {
			return &CSVError{Line: 1, Column: name, Err: ErrMissingColumn}
		}
	}
	c.header = true
	return nil
}

// field returns the trimmed value of the named column, or "" if absent.
func (c *CSVReader) field(record []string, name string) string {
	i, ok := c.cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func (c *CSVReader) parseRow(record []string, typ FrameType) (Frame, error) {
	start, err := c.parseTime(c.field(record, "start_time"))
	if err != nil {
		return Frame{}, &CSVError{Column: "start_time", Err: err}
	}

	frame := Frame{Type: typ, Start: start, End: start}

	if d := c.field(record, "duration"); d != "" {
		secs, err := strconv.ParseFloat(d, 64)
		if err != nil {
			return Frame{}, &CSVError{Column: "duration", Err: err}
		}
		frame.End = start.Add(seconds(secs))
	}

	if a := c.field(record, "ack"); a != "" {
		frame.Ack, err = strconv.ParseBool(a)
		if err != nil {
			return Frame{}, &CSVError{Column: "ack", Err: err}
		}
	}

	switch typ {
	case FrameAddress:
		addr, err := parseByte(c.field(record, "address"))
		if err != nil {
			return Frame{}, &CSVError{Column: "address", Err: err}
		}
		if addr > MaxAddress {
			return Frame{}, &CSVError{Column: "address", Err: fmt.Errorf("address 0x%02X exceeds 7 bits", addr)}
		}
		frame.Address = addr
		frame.Read, err = strconv.ParseBool(c.field(record, "read"))
		if err != nil {
			return Frame{}, &CSVError{Column: "read", Err: err}
		}
	case FrameData:
		frame.Data, err = parseByte(c.field(record, "data"))
		if err != nil {
			return Frame{}, &CSVError{Column: "data", Err: err}
		}
	}

	return frame, nil
}

func (c *CSVReader) parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return c.epoch.Add(seconds(secs)), nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

// seconds converts fractional seconds to a Duration, rounded to the nanosecond.
func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

// parseByte accepts 0x-prefixed hex, 0b-prefixed binary or decimal values.
func parseByte(s string) (byte, error) {
	s = strings.Trim(s, `"`)
	if s == "" {
		return 0, errors.New("empty value")
	}
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, err
	}
	return byte(v), nil
}

// Compile-time interface satisfaction check.
var _ Source = (*CSVReader)(nil)
