package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/notecard-tools/soi2c-go/pkg/bus"
)

// csvEpoch anchors the relative timestamps of CSV exports.
var csvEpoch = time.Unix(0, 0).UTC()

// detectFormat picks an input format from the file extension.
func detectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".i2c", ".cbor":
		return FormatCapture, nil
	default:
		return "", fmt.Errorf("cannot detect format of %s (use -format csv or -format capture)", filepath.Base(path))
	}
}

// frameSource is a bus.Source backed by an open file.
type frameSource interface {
	bus.Source
	io.Closer
}

type csvSource struct {
	*bus.CSVReader
	file *os.File
}

func (s *csvSource) Close() error {
	return s.file.Close()
}

// openSource opens path as a frame source. window restricts capture files
// to a time range and is ignored for CSV input.
func openSource(path, format string, window bus.Filter) (frameSource, error) {
	if format == FormatAuto || format == "" {
		var err error
		if format, err = detectFormat(path); err != nil {
			return nil, err
		}
	}

	switch format {
	case FormatCSV:
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		return &csvSource{CSVReader: bus.NewCSVReader(f, csvEpoch), file: f}, nil
	case FormatCapture:
		r, err := bus.OpenFilteredCapture(path, window)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
