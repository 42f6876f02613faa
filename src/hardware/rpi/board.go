package rpi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

//This file holds the things that differ between the Raspberry Pi models we
//boot on. Everything else addresses peripherals as an offset from the
//PeripheralBase of the Board picked here.

// BoardID is the part number field of MIDR_EL1 (bits 15:4).
type BoardID uint32

const Pi3ID = BoardID(0x0D03) //Cortex-A53
const Pi4ID = BoardID(0x0D08) //Cortex-A72

const Pi3PeripheralBase = uintptr(0x3F000000)
const Pi4PeripheralBase = uintptr(0xFE000000)

//offsets from the peripheral base
const GPIOOffset = uintptr(0x00200000)
const UART0Offset = uintptr(0x00201000)

var ErrUnrecognizedBoard = errors.New("unrecognized_board")

type Board struct {
	Name           string
	ID             BoardID
	PeripheralBase uintptr
}

// Boards is the static table consulted by Identify.  There is no fallback
// entry: a board not listed here has no safe base address.
var Boards = map[BoardID]Board{
	Pi3ID: {Name: "Raspberry Pi 3", ID: Pi3ID, PeripheralBase: Pi3PeripheralBase},
	Pi4ID: {Name: "Raspberry Pi 4", ID: Pi4ID, PeripheralBase: Pi4PeripheralBase},
}

// Identify maps a board identifier to its board description.
func Identify(id BoardID) (Board, error) {
	b, ok := Boards[id]
	if !ok {
		return Board{}, ErrUnrecognizedBoard
	}
	return b, nil
}

func (b Board) GPIOBase() uintptr  { return b.PeripheralBase + GPIOOffset }
func (b Board) UART0Base() uintptr { return b.PeripheralBase + UART0Offset }

func (b Board) String() string {
	return fmt.Sprintf("%s (id 0x%04X, peripherals at 0x%08X)", b.Name, uint32(b.ID), b.PeripheralBase)
}

func (id BoardID) String() string {
	if b, ok := Boards[id]; ok {
		return b.Name
	}
	return fmt.Sprintf("unknown board 0x%04X", uint32(id))
}

// ParseBoard accepts "pi3", "pi4" or a numeric part number such as 0xd03.
// Numbers that are not in Boards are returned as is, so callers can
// exercise the unrecognized path.
func ParseBoard(s string) (BoardID, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pi3", "rpi3":
		return Pi3ID, nil
	case "pi4", "rpi4":
		return Pi4ID, nil
	}
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return 0, fmt.Errorf("bad board %q: %w", s, err)
	}
	return BoardID(v), nil
}
