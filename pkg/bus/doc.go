// Package bus models low-level I2C bus frames as produced by an external
// bus-level decoder (for example the Saleae Logic 2 I2C analyzer).
//
// A transaction is always delimited by a start frame and a stop frame. In
// between, exactly one address frame carries the 7-bit target address and
// the read/write flag, followed by zero or more data frames.
//
// # Sources
//
// Frames are consumed through the Source interface. Three implementations
// are provided:
//   - SliceSource: an in-memory sequence, used by tests and the REPL
//   - CSVReader: a Logic 2 I2C analyzer CSV export
//   - CaptureReader: a CBOR capture file written by CaptureWriter
//
// # Capture Files
//
// Capture files are a plain stream of CBOR-encoded frames using integer
// keys. The soi2c CLI uses the .i2c extension for them.
package bus
