package interactive

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notecard-tools/soi2c-go/pkg/soi2c"
)

func newTestShell(t *testing.T, addr uint8) (*Shell, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	sh, err := NewShell(Config{Address: addr}, &out)
	require.NoError(t, err)
	return sh, &out
}

func run(sh *Shell, out *bytes.Buffer, lines ...string) string {
	out.Reset()
	for _, l := range lines {
		sh.Execute(l)
	}
	return out.String()
}

func TestShellQueryTransaction(t *testing.T) {
	sh, out := newTestShell(t, 0)

	got := run(sh, out, "tx w 0 0")
	assert.Equal(t, "  +10us  [addr   ] Host MCU\n  +20us  [query  ] Query Notecard\n", got)
}

func TestShellFrameByFrame(t *testing.T) {
	sh, out := newTestShell(t, 0)

	got := run(sh, out,
		"start",
		"addr 0x17 r",
		"data 0x00 0x03",
		`text "hi\n"`,
		"stop",
	)

	assert.Contains(t, got, "[addr   ] Notecard")
	assert.Contains(t, got, "[hdr    ] Queued: 0")
	assert.Contains(t, got, "[hdr    ] Sending: 3")
	assert.Contains(t, got, "[note   ] hi\n")
	assert.Equal(t, 1, sh.Session().Stats().Events[soi2c.KindNote])
}

func TestShellTextTransaction(t *testing.T) {
	sh, out := newTestShell(t, 0x42)

	got := run(sh, out, `tx w "\x05abcd"`)
	assert.Contains(t, got, "[hdr    ] Sending: 5")
	assert.Contains(t, got, "[note   ] abcd")
}

func TestShellFault(t *testing.T) {
	sh, out := newTestShell(t, 0)

	got := run(sh, out, "tx r 0 2 0xC3 0x41", "tx w 0 0")
	assert.Contains(t, got, "fault: decode fault at payload offset 0 (0xC3)")
	assert.Contains(t, got, "[query  ] Query Notecard")
	assert.Equal(t, 1, sh.Session().Stats().Faults)
}

func TestShellState(t *testing.T) {
	sh, out := newTestShell(t, 0)

	got := run(sh, out, "start", "addr 0x17 r", "data 1 2 0x41", "state")
	assert.Contains(t, got, "Direction: DEVICE_TO_HOST")
	assert.Contains(t, got, "Header 1:  0x01 (1)")
	assert.Contains(t, got, "Header 2:  0x02 (2)")
	assert.Contains(t, got, `Payload:   1 bytes "A"`)

	got = run(sh, out, "start", "addr 0x3C w", "state")
	assert.Contains(t, got, "Ignored:   yes")
	assert.Contains(t, got, "Header 1:  -")
}

func TestShellInputErrors(t *testing.T) {
	sh, out := newTestShell(t, 0)

	tests := []struct {
		line string
		want string
	}{
		{"addr 0x80 r", "Invalid address: 0x80"},
		{"addr 0x17", "Usage: addr"},
		{"addr 0x17 x", "invalid direction"},
		{"data", "Usage: data"},
		{"data 0x100", "invalid byte: 0x100"},
		{`text "unterminated`, "invalid text"},
		{"tx", "Usage: tx"},
		{"bogus", "Unknown command: bogus"},
	}
	for _, tt := range tests {
		got := run(sh, out, tt.line)
		assert.Contains(t, got, tt.want, tt.line)
	}
	assert.Equal(t, 0, sh.Session().Stats().Frames)
}

func TestShellHelpAndQuit(t *testing.T) {
	sh, out := newTestShell(t, 0x20)

	assert.True(t, sh.Execute("help"))
	assert.True(t, strings.Contains(out.String(), "target 0x20"))
	assert.True(t, sh.Execute("   "))

	assert.False(t, sh.Execute("quit"))
	assert.Contains(t, out.String(), "Exiting...")
}

func TestShellStats(t *testing.T) {
	sh, out := newTestShell(t, 0)

	got := run(sh, out, "tx w 0 0", "tx w 0 0", "stats")
	assert.Contains(t, got, "Transactions: 2 (0 for other addresses)")
}
