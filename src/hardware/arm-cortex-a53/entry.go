package arm_cortex_a53

import (
	"fmt"

	"eos/src/hardware/rpi"
)

// EntryState is what the core tells us about itself at the stage 2 entry
// point. It is read exactly once and never changes afterwards.
type EntryState struct {
	BoardID        rpi.BoardID
	ExceptionLevel uint32 //captured for diagnostics, nothing branches on it
	StackPointer   uint64
}

// PartNumber extracts the board identifier from a raw MIDR_EL1 value.
func PartNumber(midr uint64) rpi.BoardID {
	return rpi.BoardID((midr & MainIDRegisterPartNumMask) >> MainIDRegisterPartNumShift)
}

// ExceptionLevelOf extracts the level (0-3) from a raw CurrentEL value.
func ExceptionLevelOf(currentEL uint64) uint32 {
	return uint32((currentEL & CurrentELMask) >> CurrentELShift)
}

func DecodeEntryState(midr, currentEL, sp uint64) EntryState {
	return EntryState{
		BoardID:        PartNumber(midr),
		ExceptionLevel: ExceptionLevelOf(currentEL),
		StackPointer:   sp,
	}
}

func (e EntryState) String() string {
	return fmt.Sprintf("board 0x%04X EL%d sp 0x%X", uint32(e.BoardID), e.ExceptionLevel, e.StackPointer)
}
