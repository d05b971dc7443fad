package log

import (
	"testing"
	"time"

	"github.com/notecard-tools/soi2c-go/pkg/bus"
	"github.com/notecard-tools/soi2c-go/pkg/soi2c"
)

func TestLayerString(t *testing.T) {
	tests := []struct {
		layer Layer
		want  string
	}{
		{LayerBus, "BUS"},
		{LayerProtocol, "PROTOCOL"},
		{Layer(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		got := tt.layer.String()
		if got != tt.want {
			t.Errorf("Layer(%d).String() = %q, want %q", tt.layer, got, tt.want)
		}
	}
}

func TestCategoryString(t *testing.T) {
	tests := []struct {
		cat  Category
		want string
	}{
		{CategoryFrame, "FRAME"},
		{CategoryDecoded, "DECODED"},
		{CategoryFault, "FAULT"},
		{Category(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		got := tt.cat.String()
		if got != tt.want {
			t.Errorf("Category(%d).String() = %q, want %q", tt.cat, got, tt.want)
		}
	}
}

func TestFrameRecord(t *testing.T) {
	start := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Microsecond)

	rec := FrameRecord("s1", bus.AddressFrame(start, end, 0x17, true))

	if rec.Layer != LayerBus || rec.Category != CategoryFrame {
		t.Errorf("got layer %s category %s, want BUS FRAME", rec.Layer, rec.Category)
	}
	if !rec.Timestamp.Equal(start) || !rec.End.Equal(end) {
		t.Errorf("span = [%v, %v], want [%v, %v]", rec.Timestamp, rec.End, start, end)
	}
	if rec.Frame == nil || rec.Frame.Address != 0x17 || !rec.Frame.Read {
		t.Errorf("Frame = %+v, want read from 0x17", rec.Frame)
	}
}

func TestDecodedRecordCopiesEvent(t *testing.T) {
	start := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	ev := soi2c.Event{Kind: soi2c.KindNote, Start: start, End: start.Add(time.Millisecond), Text: "hi"}

	rec := DecodedRecord("s1", ev)
	ev.Text = "changed"

	if rec.Decoded == nil || rec.Decoded.Text != "hi" {
		t.Errorf("Decoded = %+v, want note %q", rec.Decoded, "hi")
	}
	if rec.Layer != LayerProtocol || rec.Category != CategoryDecoded {
		t.Errorf("got layer %s category %s, want PROTOCOL DECODED", rec.Layer, rec.Category)
	}
}

func TestFaultRecord(t *testing.T) {
	start := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	fault := &soi2c.DecodeFault{Start: start, End: start.Add(time.Millisecond), Offset: 3, Byte: 0xFF, Err: soi2c.ErrNonASCIINote}

	rec := FaultRecord("s1", fault)

	if rec.Category != CategoryFault || rec.Fault == nil {
		t.Fatalf("got category %s fault %v, want FAULT", rec.Category, rec.Fault)
	}
	if rec.Fault.Message != fault.Error() {
		t.Errorf("Message = %q, want %q", rec.Fault.Message, fault.Error())
	}
	if rec.Fault.Offset == nil || *rec.Fault.Offset != 3 {
		t.Errorf("Offset = %v, want 3", rec.Fault.Offset)
	}
	if rec.Fault.Byte == nil || *rec.Fault.Byte != 0xFF {
		t.Errorf("Byte = %v, want 0xFF", rec.Fault.Byte)
	}
}

func TestEncodeDecodeKeepsNanoseconds(t *testing.T) {
	start := time.Date(2026, 1, 28, 10, 0, 0, 123456789, time.UTC)
	rec := DecodedRecord("s1", soi2c.Event{Kind: soi2c.KindHeader, Start: start, End: start.Add(90 * time.Microsecond), Action: soi2c.ActionQueued, Length: 5})

	data, err := EncodeEvent(rec)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	got, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if !got.Timestamp.Equal(start) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, start)
	}
	if got.Decoded == nil || got.Decoded.Length != 5 || got.Decoded.Action != soi2c.ActionQueued {
		t.Errorf("Decoded = %+v, want Queued 5", got.Decoded)
	}
}
