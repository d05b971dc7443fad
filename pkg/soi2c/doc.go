// Package soi2c decodes the Blues Notecard Serial-over-I2C protocol.
//
// The Decoder consumes low-level bus frames (start, address, data, stop)
// one at a time and returns at most one protocol Event per frame. All
// per-transaction state is held in a TransactionState that is reset on
// every start frame, so nothing leaks from one transaction to the next.
//
// # Framing
//
// A Notecard response (device to host, I2C read) starts with two header
// bytes: the number of bytes still queued and the number of bytes sent in
// this chunk. The remaining bytes are note text.
//
// A host request (host to device, I2C write) starts with a length byte.
// A zero length byte announces a poll whose second byte is either zero
// (a bare status query) or the number of bytes the host wants to read.
//
// # Usage
//
//	dec, err := soi2c.New(soi2c.Config{Address: 0x17})
//	if err != nil {
//	    return err
//	}
//	for _, f := range frames {
//	    ev, err := dec.Handle(f)
//	    if err != nil {
//	        // A *DecodeFault; the decoder keeps going.
//	        continue
//	    }
//	    if ev != nil {
//	        fmt.Println(soi2c.Format(*ev))
//	    }
//	}
package soi2c

//go:generate go run ../../cmd/soi2c-vecgen -vectors ../../internal/vectors/testdata -output golden_gen_test.go
