package commands

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/notecard-tools/soi2c-go/pkg/log"
	"github.com/notecard-tools/soi2c-go/pkg/soi2c"
)

func readAll(t *testing.T, path string) []log.Event {
	t.Helper()
	reader, err := log.NewReader(path)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer reader.Close()

	var events []log.Event
	for {
		e, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}
		events = append(events, e)
	}
	return events
}

func TestFilterByCategory(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "decoded.nlog")

	n, err := RunFilter(path, FilterOptions{Output: out, Category: "decoded"})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 events, got %d", n)
	}

	events := readAll(t, out)
	if len(events) != 3 {
		t.Fatalf("expected 3 events in output, got %d", len(events))
	}
	for _, e := range events {
		if e.Category != log.CategoryDecoded {
			t.Errorf("unexpected category %s", e.Category)
		}
	}
}

func TestFilterByKind(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "notes.nlog")

	n, err := RunFilter(path, FilterOptions{Output: out, Kind: "note"})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 event, got %d", n)
	}

	events := readAll(t, out)
	if events[0].Decoded == nil || events[0].Decoded.Kind != soi2c.KindNote {
		t.Errorf("expected note, got %+v", events[0])
	}
}

func TestFilterBySessionAndLayer(t *testing.T) {
	events := sampleEvents()
	other := log.DecodedRecord("other-session", soi2c.Event{Kind: soi2c.KindQuery, Start: testTime, End: testTime})
	events = append(events, other)

	path := createTestLogFile(t, events)
	out := filepath.Join(t.TempDir(), "out.nlog")

	n, err := RunFilter(path, FilterOptions{Output: out, SessionID: "other-session", Layer: "protocol"})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 event, got %d", n)
	}
}

func TestFilterByTimeRange(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "out.nlog")

	opts := FilterOptions{
		Output:    out,
		TimeStart: testTime.Add(20 * time.Microsecond).Format(time.RFC3339Nano),
		TimeEnd:   testTime.Add(200 * time.Microsecond).Format(time.RFC3339Nano),
	}
	n, err := RunFilter(path, opts)
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	// Header and note; the fault starts exactly at TimeEnd.
	if n != 2 {
		t.Errorf("expected 2 events, got %d", n)
	}
}

func TestFilterInvalidOptions(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "out.nlog")

	tests := []struct {
		name string
		opts FilterOptions
		want string
	}{
		{"layer", FilterOptions{Output: out, Layer: "wire"}, "invalid layer"},
		{"category", FilterOptions{Output: out, Category: "state"}, "invalid category"},
		{"kind", FilterOptions{Output: out, Kind: "frame"}, "invalid kind"},
		{"time-start", FilterOptions{Output: out, TimeStart: "yesterday"}, "invalid time-start"},
		{"time-end", FilterOptions{Output: out, TimeEnd: "tomorrow"}, "invalid time-end"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RunFilter(path, tt.opts)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected %q in error, got %v", tt.want, err)
			}
		})
	}
}
