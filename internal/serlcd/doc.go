// Package serlcd drives SparkFun serial-enabled character LCDs.
//
// The package is split in two layers, mirroring the device protocol:
//
//   - Command builders construct the raw byte sequences the display
//     understands (command flag 0xFE, backlight flag 0x7C, position codes,
//     clear, screen size).
//   - Display wraps any io.Writer (typically an open serial port) and
//     implements the menu.Display transport, inserting the settle delay the
//     hardware needs after each command.
//
// # Protocol
//
// The display is write-only. Printable bytes are drawn at the cursor;
// control sequences are introduced by one of two flag bytes:
//
//	0xFE 0x01        clear screen, cursor home
//	0xFE 128+pos     move cursor (row one: pos 0-15, row two: pos 64-79)
//	0x7C 128..157    backlight brightness (128 = off, 157 = full)
//	0x7C '3'..'6'    screen size setting, sent as an ASCII digit
//
// Each command needs a short settle delay (10 ms by default) before the
// next byte is safe to send; Display handles that internally, so callers
// may issue commands back to back.
package serlcd
