package serlcd

import (
	"fmt"
	"strconv"
)

// Command flag bytes.
const (
	// CommandFlag introduces cursor and clear commands.
	CommandFlag = 0xFE
	// BacklightFlag introduces backlight and screen-size commands.
	BacklightFlag = 0x7C
)

// Command codes following CommandFlag.
const (
	// ClearCode erases the display and homes the cursor.
	ClearCode = 0x01
	// positionBase is added to a character offset to form a cursor command.
	positionBase = 128
	// rowTwoOffset is the character offset of the second row.
	rowTwoOffset = 64
)

// Backlight brightness levels following BacklightFlag.
const (
	// BacklightOff is the brightness level that turns the backlight off.
	BacklightOff = 128
	// BacklightFull is full brightness.
	BacklightFull = 157
)

// Screen-size setting bounds. The setting is transmitted as an ASCII digit.
const (
	MinScreenSize = 3
	MaxScreenSize = 6
)

// DefaultWidth is the number of characters per row on the common 16x2
// modules this package targets.
const DefaultWidth = 16

// ClearCommand returns the byte sequence that erases the whole display.
func ClearCommand() []byte {
	return []byte{CommandFlag, ClearCode}
}

// PositionCommand returns the cursor-move sequence for a linear character
// position: row one is 0-15, row two is 16-31. Anything past 31 falls back
// to position 0, matching the firmware the protocol was captured from.
func PositionCommand(pos int) []byte {
	switch {
	case pos >= 0 && pos < DefaultWidth:
		return []byte{CommandFlag, byte(positionBase + pos)}
	case pos >= DefaultWidth && pos < 2*DefaultWidth:
		return []byte{CommandFlag, byte(positionBase + rowTwoOffset + pos - DefaultWidth)}
	default:
		return PositionCommand(0)
	}
}

// SelectRowCommand returns the sequence that homes the cursor on the given
// row (0 or 1). Out-of-range rows select row 0.
func SelectRowCommand(row int) []byte {
	if row == 1 {
		return PositionCommand(DefaultWidth)
	}
	return PositionCommand(0)
}

// BacklightCommand returns the backlight power sequence.
func BacklightCommand(on bool) []byte {
	level := byte(BacklightOff)
	if on {
		level = BacklightFull
	}
	return []byte{BacklightFlag, level}
}

// ScreenSizeCommand returns the one-time screen-size configuration
// sequence. The size is sent as its ASCII decimal digit, a quirk of the
// SparkFun command set.
func ScreenSizeCommand(size int) ([]byte, error) {
	if size < MinScreenSize || size > MaxScreenSize {
		return nil, fmt.Errorf("screen size %d out of range [%d, %d]", size, MinScreenSize, MaxScreenSize)
	}
	return append([]byte{BacklightFlag}, strconv.Itoa(size)...), nil
}
