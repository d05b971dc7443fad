package bus

import (
	"io"
	"testing"
	"time"
)

func TestSliceSourceYieldsInOrder(t *testing.T) {
	now := time.Now()
	src := NewSliceSource([]Frame{StartFrame(now, now), StopFrame(now, now)})

	f, err := src.Next()
	if err != nil || f.Type != FrameStart {
		t.Fatalf("first Next = %v, %v; want start", f, err)
	}
	f, err = src.Next()
	if err != nil || f.Type != FrameStop {
		t.Fatalf("second Next = %v, %v; want stop", f, err)
	}
	if _, err := src.Next(); err != io.EOF {
		t.Errorf("third Next err = %v, want io.EOF", err)
	}
}

func TestBuilderTiming(t *testing.T) {
	base := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	frames := NewBuilder(base).Transaction(0x17, true, 0x00, 0x02).Frames()

	if len(frames) != 5 {
		t.Fatalf("got %d frames, want 5", len(frames))
	}
	for i, f := range frames {
		wantStart := base.Add(time.Duration(i) * DefaultSlot)
		if !f.Start.Equal(wantStart) {
			t.Errorf("frame %d start = %v, want %v", i, f.Start, wantStart)
		}
		if f.Duration() != DefaultWidth {
			t.Errorf("frame %d duration = %v, want %v", i, f.Duration(), DefaultWidth)
		}
	}
	if frames[1].Type != FrameAddress || frames[1].Address != 0x17 || !frames[1].Read {
		t.Errorf("frame 1 = %v, want read address 0x17", frames[1])
	}
}

func TestBuilderText(t *testing.T) {
	frames := NewBuilder(time.Now()).Text("ok").Frames()
	if len(frames) != 2 || frames[0].Data != 'o' || frames[1].Data != 'k' {
		t.Errorf("Text frames = %v", frames)
	}
}

func TestBuilderResetKeepsClock(t *testing.T) {
	base := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	b := NewBuilder(base)
	b.Start()
	b.Reset()
	b.Stop()

	frames := b.Frames()
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	if !frames[0].Start.Equal(base.Add(DefaultSlot)) {
		t.Errorf("stop starts at %v, want %v", frames[0].Start, base.Add(DefaultSlot))
	}
}

func TestReadAll(t *testing.T) {
	frames := NewBuilder(time.Now()).Transaction(0x17, false, 1, 2, 3).Frames()
	got, err := ReadAll(NewSliceSource(frames))
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(got) != len(frames) {
		t.Errorf("got %d frames, want %d", len(got), len(frames))
	}
}
