package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/notecard-tools/soi2c-go/pkg/bus"
	"github.com/notecard-tools/soi2c-go/pkg/log"
	"github.com/notecard-tools/soi2c-go/pkg/soi2c"
)

func TestFormatFrameEvent(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, sampleEvents()[0])
	output := buf.String()

	if !strings.HasPrefix(output, "2026-01-28T10:15:32.123466Z [sess:5f0c6a2e] BUS Frame\n") {
		t.Errorf("unexpected header line:\n%s", output)
	}
	if !strings.Contains(output, "  Frame: address 0x17 read\n") {
		t.Errorf("expected frame details, got:\n%s", output)
	}
	if !strings.Contains(output, "  Span: 8.000us\n") {
		t.Errorf("expected span, got:\n%s", output)
	}
	if strings.Contains(output, "NACK") {
		t.Errorf("acknowledged frame reported as NACK:\n%s", output)
	}
	if !strings.HasSuffix(output, "\n\n") {
		t.Error("expected blank line after event")
	}
}

func TestFormatNackFrame(t *testing.T) {
	f := bus.DataFrame(testTime, testTime.Add(time.Microsecond), 0x42)
	f.Ack = false

	var buf bytes.Buffer
	formatEvent(&buf, log.FrameRecord("s", f))

	if !strings.Contains(buf.String(), "  NACK\n") {
		t.Errorf("expected NACK, got:\n%s", buf.String())
	}
}

func TestFormatDecodedEvents(t *testing.T) {
	events := sampleEvents()

	tests := []struct {
		event log.Event
		label string
		line  string
	}{
		{events[1], "PROTOCOL addr", "  Notecard\n"},
		{events[2], "PROTOCOL hdr", "  Sending: 12\n"},
		{events[3], "PROTOCOL note", "  {\"ok\":1}\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		formatEvent(&buf, tt.event)
		output := buf.String()
		if !strings.Contains(output, tt.label+"\n") {
			t.Errorf("expected %q in header, got:\n%s", tt.label, output)
		}
		if !strings.Contains(output, tt.line) {
			t.Errorf("expected %q, got:\n%s", tt.line, output)
		}
	}
}

func TestFormatFaultEvent(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, sampleEvents()[4])
	output := buf.String()

	for _, want := range []string{"PROTOCOL Fault", "  Message: decode fault", "  Offset: 3\n", "  Byte: 0xC3\n", "  Span: 40.000us"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q, got:\n%s", want, output)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{8 * time.Microsecond, "8.000us"},
		{1500 * time.Microsecond, "1.500ms"},
		{2 * time.Second, "2.000s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestParseFlags(t *testing.T) {
	if l, err := ParseLayerFlag("BUS"); err != nil || l != log.LayerBus {
		t.Errorf("ParseLayerFlag(BUS) = %v, %v", l, err)
	}
	if l, err := ParseLayerFlag("protocol"); err != nil || l != log.LayerProtocol {
		t.Errorf("ParseLayerFlag(protocol) = %v, %v", l, err)
	}
	if _, err := ParseLayerFlag("wire"); err == nil {
		t.Error("expected error for invalid layer")
	}

	if c, err := ParseCategoryFlag("Fault"); err != nil || c != log.CategoryFault {
		t.Errorf("ParseCategoryFlag(Fault) = %v, %v", c, err)
	}
	if _, err := ParseCategoryFlag("message"); err == nil {
		t.Error("expected error for invalid category")
	}

	if k, err := ParseKindFlag("note"); err != nil || k != soi2c.KindNote {
		t.Errorf("ParseKindFlag(note) = %v, %v", k, err)
	}
	if _, err := ParseKindFlag("frame"); err == nil {
		t.Error("expected error for invalid kind")
	}
}

func TestRunViewAll(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	var buf bytes.Buffer
	if err := RunView(path, ViewFilter{}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}

	if n := strings.Count(buf.String(), "[sess:5f0c6a2e]"); n != 5 {
		t.Errorf("expected 5 events, got %d", n)
	}
}

func TestRunViewFilters(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	busLayer := log.LayerBus
	fault := log.CategoryFault
	note := soi2c.KindNote

	tests := []struct {
		name   string
		filter ViewFilter
		count  int
		want   string
	}{
		{"layer", ViewFilter{Layer: &busLayer}, 1, "BUS Frame"},
		{"category", ViewFilter{Category: &fault}, 1, "PROTOCOL Fault"},
		{"kind", ViewFilter{Kind: &note}, 1, "PROTOCOL note"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := RunView(path, tt.filter, &buf); err != nil {
				t.Fatalf("RunView failed: %v", err)
			}
			output := buf.String()
			if n := strings.Count(output, "[sess:"); n != tt.count {
				t.Errorf("expected %d events, got %d", tt.count, n)
			}
			if !strings.Contains(output, tt.want) {
				t.Errorf("expected %q, got:\n%s", tt.want, output)
			}
		})
	}
}

func TestRunViewMissingFile(t *testing.T) {
	var buf bytes.Buffer
	if err := RunView("/nonexistent/file.nlog", ViewFilter{}, &buf); err == nil {
		t.Error("expected error for missing file")
	}
}
