package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/notecard-tools/soi2c-go/pkg/bus"
)

// runConvert converts a CSV export into a CBOR capture file and returns
// the number of frames written. An existing output file is only replaced
// when force is set.
func runConvert(in, out string, force bool) (int, error) {
	if format, err := detectFormat(in); err == nil && format == FormatCapture {
		return 0, fmt.Errorf("%s is already a capture file", in)
	}

	if _, err := os.Stat(out); err == nil {
		if !force {
			return 0, fmt.Errorf("%s exists (use -force to overwrite)", out)
		}
		if err := os.Remove(out); err != nil {
			return 0, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return 0, err
	}

	src, err := openSource(in, FormatCSV, bus.Filter{})
	if err != nil {
		return 0, fmt.Errorf("opening input: %w", err)
	}
	defer src.Close()

	w, err := bus.NewCaptureWriter(out)
	if err != nil {
		return 0, fmt.Errorf("creating capture: %w", err)
	}
	defer w.Close()

	n := 0
	for {
		f, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, fmt.Errorf("reading %s: %w", in, err)
		}
		if err := w.Write(f); err != nil {
			return n, fmt.Errorf("writing capture: %w", err)
		}
		n++
	}

	return n, w.Close()
}
