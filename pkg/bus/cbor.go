package bus

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// captureEncMode is the CBOR encoder mode for capture files.
var captureEncMode cbor.EncMode

// captureDecMode is the CBOR decoder mode for capture files.
var captureDecMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano, // Logic 2 timestamps are sub-microsecond
	}
	captureEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create capture CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}
	captureDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create capture CBOR decoder mode: %v", err))
	}
}

// EncodeFrame encodes a Frame to CBOR bytes.
func EncodeFrame(f Frame) ([]byte, error) {
	return captureEncMode.Marshal(f)
}

// DecodeFrame decodes CBOR bytes into a Frame.
func DecodeFrame(data []byte) (Frame, error) {
	var f Frame
	if err := captureDecMode.Unmarshal(data, &f); err != nil {
		return Frame{}, err
	}
	return f, nil
}

// NewEncoder creates a CBOR encoder for frames that writes to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return captureEncMode.NewEncoder(w)
}

// NewDecoder creates a CBOR decoder for frames that reads from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return captureDecMode.NewDecoder(r)
}
